// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

// Package corejs translates the typed input IR (package ir) into the
// JavaScript-compatible output IR (package jsast), resolving calls through a
// metadata.Store that classifies every member as one of several
// compilation kinds.
package corejs

import "fmt"

// TranslateError is the sentinel error shape used for every source-level
// diagnostic the Translator records (mirrors the teacher's sentinel *Error
// + NewXError constructor pattern).
type TranslateError struct {
	Name    string
	Message string
}

func (e *TranslateError) Error() string {
	if e.Message == "" {
		return e.Name
	}
	return e.Name + ": " + e.Message
}

// NewError returns a copy of the sentinel carrying a specific message, the
// same way the teacher's *Error.NewError specializes a shared sentinel.
func (e *TranslateError) NewError(format string, args ...any) *TranslateError {
	return &TranslateError{Name: e.Name, Message: fmt.Sprintf(format, args...)}
}

var (
	// ErrMemberNotFound is returned when a metadata lookup finds no member.
	ErrMemberNotFound = &TranslateError{Name: "MemberNotFoundError"}

	// ErrTypeNotFound is returned for a type with no class address and no
	// custom type (§4.1.6, §4.1.7).
	ErrTypeNotFound = &TranslateError{Name: "TypeNotFoundError"}

	// ErrInlineCycle marks a member detected on the active inProgress stack
	// (§4.2, §7 "inline-cycle errors").
	ErrInlineCycle = &TranslateError{Name: "InlineCycleError"}

	// ErrAmbiguousTrait is returned when more than one candidate type in a
	// trait call implements the requested method (§4.1.5).
	ErrAmbiguousTrait = &TranslateError{Name: "AmbiguousTraitCallError"}

	// ErrNotConstructor marks a Constructor kind returned from a method
	// lookup, or vice versa (§4.1.2, §4.1.3).
	ErrNotConstructor = &TranslateError{Name: "NotConstructorError"}

	// ErrUnknownDelegateMethod is returned when TransformNewDelegate's lookup
	// of the delegate target yields neither a method record (Compiled or
	// Compiling) nor a lookup error (§4.1.4).
	ErrUnknownDelegateMethod = &TranslateError{Name: "UnknownDelegateMethodError"}

	// ErrUnionCaseNotFound is returned by the custom-type handler (§4.3).
	ErrUnionCaseNotFound = &TranslateError{Name: "UnionCaseNotFoundError"}

	// ErrTypeParamOutsideInline marks a type check against a type parameter
	// outside an inline body (§4.1.6, §4.2).
	ErrTypeParamOutsideInline = &TranslateError{Name: "TypeParamOutsideInlineError"}

	// ErrMacroFailed is attached to every MacroError result of a
	// Macro/Generator, including one converted from a recovered panic (§4.6,
	// §7 "macro/generator errors").
	ErrMacroFailed = &TranslateError{Name: "MacroError"}

	// ErrInvalidForm is raised by the invalid-form checker (§4.4). The check
	// runs on every non-delayed compile; no build mode or option turns it off.
	ErrInvalidForm = &TranslateError{Name: "InvalidFormError"}
)
