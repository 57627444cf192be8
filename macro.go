// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package corejs

import (
	"github.com/go-netjs/corejs/graph"
	"github.com/go-netjs/corejs/ir"
	"github.com/go-netjs/corejs/jsast"
	"github.com/go-netjs/corejs/metadata"
)

// invokeMacro runs a call-site macro and interprets its result (§4.6).
func (t *Translator) invokeMacro(ref ir.MemberRef, k metadata.MacroKind, n *ir.Call, _ any) jsast.Expr {
	m, ok := t.store.GetMacroInstance(k)
	if !ok {
		t.diag.error(metadata.MacroErrorKind, "TranslateCall: %s: macro %q not registered", ref, k.Type)
		return jsast.ErrorPlaceholder{Reason: "macro not registered"}
	}
	result := safeExpand(m, n, k.Parameter)
	return t.interpretMacroResult(ref, k, result, n, false)
}

// invokeMacroCtor runs a constructor-site macro, wrapping the ctor as a
// synthetic call the way the teacher's macro host presents a single request
// shape to user plug-ins regardless of call-vs-ctor origin (§4.6 "request
// object"). Its "not registered" diagnostic reads "TranslateCall", not
// "TranslateCtor", even though this is the ctor path: spec.md §9 preserves
// that mismatch as-is rather than treating it as a bug to fix.
func (t *Translator) invokeMacroCtor(ref ir.MemberRef, k metadata.MacroKind, n *ir.Ctor) jsast.Expr {
	m, ok := t.store.GetMacroInstance(k)
	if !ok {
		t.diag.error(metadata.MacroErrorKind, "TranslateCall: %s: macro %q not registered", ref, k.Type)
		return jsast.ErrorPlaceholder{Reason: "macro not registered"}
	}
	synth := &ir.Call{Type: n.Type, Method: n.Ctor, Args: n.Args, At: n.At}
	result := safeExpand(m, synth, k.Parameter)
	return t.interpretMacroResult(ref, k, result, synth, true)
}

// safeExpand converts a panicking macro into an Error result (§4.6
// "Exceptions raised by a macro ... are converted to Error").
func safeExpand(m metadata.Macro, call *ir.Call, parameter string) (result metadata.MacroResult) {
	defer func() {
		if r := recover(); r != nil {
			result = metadata.MacroError{Message: "macro panicked"}
		}
	}()
	return m.Expand(call, parameter)
}

func (t *Translator) interpretMacroResult(ref ir.MemberRef, k metadata.MacroKind, result metadata.MacroResult, n *ir.Call, isCtor bool) jsast.Expr {
	switch r := result.(type) {
	case metadata.MacroOk:
		return t.Translate(r.Value)

	case metadata.MacroWarning:
		t.diag.warn("%s", r.Message)
		return t.Translate(r.Value)

	case metadata.MacroError:
		t.diag.errorSentinel(metadata.MacroErrorKind, ErrMacroFailed, "%s: %s", ref, r.Message)
		return jsast.ErrorPlaceholder{Reason: r.Message}

	case metadata.MacroDependencies:
		for _, dep := range r.Refs {
			t.addEdge(graph.MethodNode{Type: dep.Type.ID, Method: dep.Name})
		}
		if t.currentIsInline {
			t.hasDelayedTransform = true
			return jsast.ErrorPlaceholder{Reason: "macro dependencies pending"}
		}
		t.diag.error(metadata.MacroErrorKind, "%s: macro dependencies not yet compiled", ref)
		return jsast.ErrorPlaceholder{Reason: "macro dependencies unresolved"}

	case metadata.MacroFallback:
		if r.Kind == nil {
			t.diag.error(metadata.MacroErrorKind, "%s: macro requested fallback but none was supplied", ref)
			return jsast.ErrorPlaceholder{Reason: "no macro fallback"}
		}
		info := metadata.MemberInfo{Ref: ref, Kind: r.Kind}
		if isCtor {
			ctorNode := &ir.Ctor{Type: n.Type, Ctor: n.Method, Args: n.Args, At: n.At}
			return t.CompileCtor(ref, info, metadata.OptimizationRecord{}, nil, ctorNode)
		}
		return t.CompileCall(ref, info, metadata.OptimizationRecord{}, nil, n)

	case metadata.MacroNeedsResolvedTypeArg:
		if t.currentIsInline {
			t.hasDelayedTransform = true
			return jsast.ErrorPlaceholder{Reason: "macro waiting on a resolved type argument"}
		}
		t.diag.error(metadata.MacroErrorKind, "%s: macro needs a resolved type argument; mark the member inline", ref)
		return jsast.ErrorPlaceholder{Reason: "macro needs resolved type argument"}

	default:
		t.diag.error(metadata.MacroErrorKind, "TranslateCall: %s: unrecognized macro result %T", ref, result)
		return jsast.ErrorPlaceholder{Reason: "unrecognized macro result"}
	}
}

// invokeGenerator runs a type-bound generator and interprets its result the
// same way a call-site macro's is interpreted, minus the call-specific
// fallback/dependency plumbing that only makes sense for a single call site.
func (t *Translator) invokeGenerator(addr ir.Address, entity ir.Entity, typeArgs []ir.Type) jsast.Expr {
	g, ok := t.store.GetGeneratorInstance(entity)
	if !ok {
		t.diag.error(metadata.GeneratorErrorKind, "%s: generator not registered", entity.ID)
		return jsast.ErrorPlaceholder{Reason: "generator not registered"}
	}
	result := safeGenerate(g, addr, typeArgs)
	switch r := result.(type) {
	case metadata.MacroOk:
		return t.Translate(r.Value)
	case metadata.MacroWarning:
		t.diag.warn("%s", r.Message)
		return t.Translate(r.Value)
	case metadata.MacroError:
		t.diag.errorSentinel(metadata.GeneratorErrorKind, ErrMacroFailed, "%s: %s", entity.ID, r.Message)
		return jsast.ErrorPlaceholder{Reason: r.Message}
	case metadata.MacroNeedsResolvedTypeArg:
		t.diag.error(metadata.GeneratorErrorKind, "%s: generator needs a resolved type argument at index %d", entity.ID, r.Index)
		return jsast.ErrorPlaceholder{Reason: "generator needs resolved type argument"}
	case metadata.GeneratorQuotation:
		return t.Translate(r.Value)
	case metadata.GeneratorRawExpr:
		return jsast.RawExpr{Source: r.Source}
	case metadata.GeneratorRawStmt:
		return &jsast.StatementExpr{Stmts: []jsast.Stmt{jsast.RawStmt{Source: r.Source}}, Value: jsast.Undefined{}}
	default:
		t.diag.error(metadata.GeneratorErrorKind, "%s: unrecognized generator result %T", entity.ID, result)
		return jsast.ErrorPlaceholder{Reason: "unrecognized generator result"}
	}
}

func safeGenerate(g metadata.Generator, addr ir.Address, typeArgs []ir.Type) (result metadata.MacroResult) {
	defer func() {
		if r := recover(); r != nil {
			result = metadata.MacroError{Message: "generator panicked"}
		}
	}()
	return g.Generate(addr, typeArgs)
}
