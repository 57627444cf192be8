// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package metadata

import "github.com/go-netjs/corejs/ir"

// Macro is a compile-time plug-in bound to a MacroKind.Type tag; it resolves
// a call expression to a MacroResult instead of ordinary dispatch (spec.md
// §4.6).
type Macro interface {
	Expand(call *ir.Call, parameter string) MacroResult
}

// Generator is a compile-time plug-in bound to a type, expanding to a whole
// literal rather than a single call site (spec.md §4.6 "generator").
type Generator interface {
	Generate(addr ir.Address, typeArgs []ir.Type) MacroResult
}

// MacroResult is the protocol a Macro/Generator returns (spec.md §4.6
// "result protocol"): exactly one of Ok, Warning, Error, Dependencies,
// Fallback, NeedsResolvedTypeArg, or one of the generator-only kinds below
// is returned.
type MacroResult interface{ macroResultKind() }

// MacroOk replaces the call/generator site with Value outright.
type MacroOk struct{ Value ir.Expr }

func (MacroOk) macroResultKind() {}

// MacroWarning accepts Value but records Message as a diagnostic.
type MacroWarning struct {
	Value   ir.Expr
	Message string
}

func (MacroWarning) macroResultKind() {}

// MacroError substitutes an errorPlaceholder and records Message as a
// diagnostic; translation continues (spec.md §7 "diagnostics-as-data").
type MacroError struct{ Message string }

func (MacroError) macroResultKind() {}

// MacroDependencies declares further members a call-site macro depends on;
// the translator records a dependency edge to each. It carries no
// replacement expression and the macro is not retried: inside an inline
// body the translation is marked delayed, elsewhere it is recorded as an
// error. A generator returning it gets an "unrecognized result" error.
type MacroDependencies struct{ Refs []ir.MemberRef }

func (MacroDependencies) macroResultKind() {}

// MacroFallback asks the translator to proceed with ordinary dispatch using
// Kind instead (spec.md §3 MacroKind.Fallback).
type MacroFallback struct{ Kind CompilationKind }

func (MacroFallback) macroResultKind() {}

// MacroNeedsResolvedTypeArg reports that expansion needs the type argument
// at Index to be a concrete (non-parameter) type (spec.md §4.6). For a
// call-site macro inside an inline body the translation is marked delayed;
// elsewhere, and always for a generator, it is recorded as an error.
type MacroNeedsResolvedTypeArg struct{ Index int }

func (MacroNeedsResolvedTypeArg) macroResultKind() {}

// GeneratorQuotation is a generator-only result kind: Value is a raw
// source-language expression tree, first read into ir the same way a
// hand-written member body would be, then translated like MacroOk (spec.md
// §4.6 "quotation").
type GeneratorQuotation struct{ Value ir.Expr }

func (GeneratorQuotation) macroResultKind() {}

// GeneratorRawExpr supplies pre-formed JavaScript expression source; the
// writer incorporates Source verbatim instead of interpreting it
// structurally (spec.md §4.6 "two literal kinds that accept pre-formed
// JavaScript source/strings").
type GeneratorRawExpr struct{ Source string }

func (GeneratorRawExpr) macroResultKind() {}

// GeneratorRawStmt is GeneratorRawExpr's statement-shaped sibling.
type GeneratorRawStmt struct{ Source string }

func (GeneratorRawStmt) macroResultKind() {}
