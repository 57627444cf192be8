// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package metadata

import "github.com/go-netjs/corejs/ir"

// TypeCheckKind classifies how a `:?` test against a type is implemented
// (spec.md §4.1.6).
type TypeCheckKind interface{ typeCheckKind() }

// TypeOf performs `typeof e == "Name"` (primitives, Function, Object, Void).
type TypeOf struct{ Name string }

func (TypeOf) typeCheckKind() {}

// InstanceOf performs `e instanceof Addr` (classes, Error, Array).
type InstanceOf struct{ Addr ir.Address }

func (InstanceOf) typeCheckKind() {}

// IsNull performs `e === null` (Unit).
type IsNull struct{}

func (IsNull) typeCheckKind() {}

// PlainObject has no primitive test; record/union/struct custom types fall
// through to the class-specific policy in the custom-type handler.
type PlainObject struct{}

func (PlainObject) typeCheckKind() {}

// OtherTypeCheck requires further work by the Translator: IDisposable,
// choice/erased-union cases, concrete-type-without-address errors, type
// parameters (legal only inside inlines), and rejected Array/F#-function
// generic tests (spec.md §4.1.6).
type OtherTypeCheck struct{ Reason string }

func (OtherTypeCheck) typeCheckKind() {}
