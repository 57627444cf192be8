// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package metadata

import "github.com/go-netjs/corejs/ir"

// MemberInfo identifies the resolved member behind a Compiled/Compiling
// lookup result: its dispatch kind and the formal parameters (and, for an
// instance member, the bound `this` identifier) substitution needs when the
// kind is Inline or NotCompiledInline.
type MemberInfo struct {
	Ref    ir.MemberRef
	Kind   CompilationKind
	Params []*ir.Ident
	This   *ir.Ident // nil for a static member
}

// LookupResult is the sum type returned by LookupMethodInfo/
// LookupConstructorInfo (spec.md §3).
type LookupResult interface{ lookupResultKind() }

// Compiled carries the result of a finished translation. Body's dynamic
// type depends on Info.Kind: for NotCompiledInline (including an Inline
// demoted after a delayed transform) it is still the original ir.Expr,
// awaiting generic resolution at each call site; for Inline and every other
// translated kind it is the translated, optimized jsast.Expr.
type Compiled struct {
	Info MemberInfo
	Opts OptimizationRecord
	Body any
}

func (Compiled) lookupResultKind() {}

// Compiling is returned for a forward reference to a member the driver has
// not translated yet (spec.md §4.1.1 step 2, §4.2 "cyclic references"). Body
// is always the original ir.Expr, since the member has not been translated.
type Compiling struct {
	Info MemberInfo
	Body ir.Expr
}

func (Compiling) lookupResultKind() {}

type CustomTypeMember struct{ Info CustomTypeInfo }

func (CustomTypeMember) lookupResultKind() {}

type LookupMemberError struct{ Err error }

func (LookupMemberError) lookupResultKind() {}

// IsInline reports whether a Compiling/Compiled member's kind substitutes
// its body at call sites rather than dispatching a call (spec.md §4.1.1
// step 2 "isInline(info)").
func IsInline(k CompilationKind) bool {
	switch k.(type) {
	case Inline, NotCompiledInline:
		return true
	default:
		return false
	}
}
