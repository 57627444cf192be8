// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package metadata

import (
	"fmt"

	"github.com/go-netjs/corejs/ir"
)

// ErrorKind classifies a recorded diagnostic (spec.md §7).
type ErrorKind int

const (
	SourceError ErrorKind = iota
	TypeNotFound
	MemberNotFound
	MacroErrorKind
	GeneratorErrorKind
)

func (k ErrorKind) String() string {
	switch k {
	case SourceError:
		return "source error"
	case TypeNotFound:
		return "type not found"
	case MemberNotFound:
		return "member not found"
	case MacroErrorKind:
		return "macro error"
	case GeneratorErrorKind:
		return "generator error"
	default:
		return "error"
	}
}

// Diagnostic is one entry recorded against the store by AddError/AddWarning
// (spec.md §7 "diagnostics-as-data": no exceptions, translation continues).
type Diagnostic struct {
	Kind    ErrorKind
	Member  ir.MemberRef
	Message string
	Warning bool
	// Err is a *TranslateError copy of the named sentinel the diagnostic was
	// raised against, carrying the diagnostic's message. Because it is a copy,
	// errors.Is against the sentinel value does not match; recover it with
	// errors.As and compare its Name. Nil for diagnostics that never carried
	// a named sentinel.
	Err error
}

func (d Diagnostic) Error() string {
	if d.Warning {
		return fmt.Sprintf("warning: %s: %s: %s", d.Member, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Member, d.Kind, d.Message)
}
