// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package metadata

import "github.com/go-netjs/corejs/ir"

// Store is the external metadata collaborator the translator queries and
// reports into (spec.md §3). The driver (spec.md §4.5) drains it until
// CompilingMethods and its siblings report nothing left.
type Store interface {
	// Lookups (spec.md §4.1.1-§4.1.3).
	LookupMethodInfo(ref ir.MemberRef) LookupResult
	LookupConstructorInfo(ref ir.MemberRef) LookupResult
	LookupFieldInfo(ref ir.MemberRef) (FieldInfo, bool)

	TryLookupClassInfo(t ir.Entity) (ClassInfo, bool)
	TryLookupStaticConstructorAddress(t ir.Entity) (ir.Address, bool)
	TryLookupClassAddressOrCustomType(t ir.Entity) (ir.Address, CustomTypeInfo, bool)
	GetCustomType(t ir.Entity) (CustomTypeInfo, bool)

	GetMethods(t ir.Entity) []ir.MemberRef
	FindProxied(t ir.Entity, iface ir.Entity, method string) (ir.MemberRef, bool)

	HasType(t ir.Entity) bool
	IsInterface(t ir.Entity) bool
	MethodExistsInMetadata(ref ir.MemberRef) bool
	ConstructorExistsInMetadata(ref ir.MemberRef) bool
	TryGetRecordConstructor(t ir.Entity) (ir.MemberRef, bool)

	// Work-queue iteration (spec.md §4.5).
	CompilingMethods() []ir.MemberRef
	GetCompilingConstructors() []ir.MemberRef
	GetCompilingStaticConstructors() []ir.MemberRef
	GetCompilingImplementations() []ir.MemberRef
	EntryPoint() (ir.MemberRef, bool)

	// Mutations recording a completed translation (spec.md §4.5). body's
	// dynamic type is the translated jsast.Expr, except for a
	// NotCompiledInline member or a delayed Inline about to be demoted, where
	// it is the original ir.Expr (metadata.Compiled.Body, spec.md §4.1.2).
	AddCompiledMethod(ref ir.MemberRef, opts OptimizationRecord, body any)
	AddCompiledConstructor(ref ir.MemberRef, opts OptimizationRecord, body any)
	AddCompiledImplementation(ref ir.MemberRef, opts OptimizationRecord, body any)
	AddCompiledStaticConstructor(ref ir.MemberRef, opts OptimizationRecord, body any)

	FailedCompiledMethod(ref ir.MemberRef, err error)
	FailedCompiledConstructor(ref ir.MemberRef, err error)

	// DemoteToNotCompiledInline rewrites ref's dispatch kind to
	// NotCompiledInline, so that a translation left incomplete by a delayed
	// transform re-triggers at every future call site instead of being
	// treated as a finished Inline body (spec.md §4.7).
	DemoteToNotCompiledInline(ref ir.MemberRef, isCtor bool)

	// Diagnostics (spec.md §7).
	AddError(d Diagnostic)
	AddWarning(d Diagnostic)

	// Macro/generator plug-in host (spec.md §4.6).
	GetMacroInstance(kind MacroKind) (Macro, bool)
	GetGeneratorInstance(t ir.Entity) (Generator, bool)
	CloseMacros() []Diagnostic
	UseLocalMacros(use bool)
}

// ClassInfo is the subset of class metadata the custom-type and field
// handlers need: its address and whether it has a static constructor to
// trigger on first static-field access (spec.md §4.1.7 "StaticField").
type ClassInfo struct {
	Addr      ir.Address
	HasCctor  bool
	IsAbstract bool
}
