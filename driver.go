// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package corejs

import (
	"github.com/go-netjs/corejs/graph"
	"github.com/go-netjs/corejs/ir"
	"github.com/go-netjs/corejs/metadata"
)

// Run drains the store's work queues in the fixed order constructors,
// static constructors, interface implementations, the entry point, then
// loops over freshly-enqueued methods until the queue runs dry (§4.5).
// CloseMacros runs inside that fixed point: a macro may itself enqueue new
// Compiling members, so after each close the method queue is re-drained and,
// if that drain did any work, CloseMacros runs again. The loop only stops
// once a close is followed by an empty drain, satisfying §3's invariant
// that every Compiling entry eventually becomes Compiled or FailedCompiled*
// even when CloseMacros is asynchronous rather than the in-package
// MemoryStore's synchronous no-op.
func Run(store metadata.Store, g graph.Graph) []metadata.Diagnostic {
	for _, ref := range store.GetCompilingConstructors() {
		compileConstructorRef(store, g, ref)
	}
	for _, ref := range store.GetCompilingStaticConstructors() {
		compileStaticConstructorRef(store, g, ref)
	}
	for _, ref := range store.GetCompilingImplementations() {
		compileImplementationRef(store, g, ref)
	}
	if ref, ok := store.EntryPoint(); ok {
		compileMethodRef(store, g, ref)
	}

	drainCompilingMethods(store, g)
	var diags []metadata.Diagnostic
	for {
		diags = append(diags, store.CloseMacros()...)
		if !drainCompilingMethods(store, g) {
			break
		}
	}
	return diags
}

// drainCompilingMethods compiles every method CompilingMethods hands back,
// looping until the queue is empty, and reports whether it compiled
// anything at all.
func drainCompilingMethods(store metadata.Store, g graph.Graph) bool {
	drainedAny := false
	for {
		methods := store.CompilingMethods()
		if len(methods) == 0 {
			return drainedAny
		}
		drainedAny = true
		for _, ref := range methods {
			compileMethodRef(store, g, ref)
		}
	}
}

// compileMethodRef drives one queued method to a Compiled (or demoted
// NotCompiledInline) record. A ref that is no longer Compiling — already
// finished, already errored, or resolved through a custom-type handler
// instead — is left untouched.
func compileMethodRef(store metadata.Store, g graph.Graph, ref ir.MemberRef) {
	compiling, ok := store.LookupMethodInfo(ref).(metadata.Compiling)
	if !ok {
		return
	}
	node := graph.MethodNode{Type: ref.Type.ID, Method: ref.Name}
	driveCompile(store, g, ref, node, compiling.Info, compiling.Body, false,
		store.AddCompiledMethod, store.DemoteToNotCompiledInline)
}

func compileImplementationRef(store metadata.Store, g graph.Graph, ref ir.MemberRef) {
	compiling, ok := store.LookupMethodInfo(ref).(metadata.Compiling)
	if !ok {
		return
	}
	node := graph.ImplementationNode{Type: ref.Type.ID, Method: ref.Name}
	driveCompile(store, g, ref, node, compiling.Info, compiling.Body, false,
		store.AddCompiledImplementation, store.DemoteToNotCompiledInline)
}

func compileConstructorRef(store metadata.Store, g graph.Graph, ref ir.MemberRef) {
	compiling, ok := store.LookupConstructorInfo(ref).(metadata.Compiling)
	if !ok {
		return
	}
	node := graph.ConstructorNode{Type: ref.Type.ID, Ctor: ref.Name}
	driveCompile(store, g, ref, node, compiling.Info, compiling.Body, true,
		store.AddCompiledConstructor, store.DemoteToNotCompiledInline)
}

// compileStaticConstructorRef is the one queue whose translator must carry
// a selfAddress: a static constructor's own body can legitimately contain
// Self, resolving back to the type's static-member address (§4.1.8).
func compileStaticConstructorRef(store metadata.Store, g graph.Graph, ref ir.MemberRef) {
	compiling, ok := store.LookupMethodInfo(ref).(metadata.Compiling)
	if !ok {
		return
	}
	node := graph.MethodNode{Type: ref.Type.ID, Method: ref.Name}
	t := New(store, g, ref, node)
	if addr, ok := store.TryLookupStaticConstructorAddress(ref.Type); ok {
		t.selfAddress = &addr
	}
	finishCompile(t, store, ref, compiling.Info, compiling.Body, false,
		store.AddCompiledStaticConstructor, store.DemoteToNotCompiledInline)
}

// allowSelfOutsideInline reports whether t carries a selfAddress, the one
// case where a bare Self legitimately appears in a non-inline body (§4.1.8).
func allowSelfOutsideInline(t *Translator) bool {
	return t.selfAddress != nil
}

// driveCompile builds a fresh top-level Translator for ref and finishes the
// compile; every queue but the static-constructor one shares this shape.
func driveCompile(
	store metadata.Store, g graph.Graph, ref ir.MemberRef, node graph.Node,
	info metadata.MemberInfo, body ir.Expr, isCtor bool,
	addCompiled func(ir.MemberRef, metadata.OptimizationRecord, any),
	demote func(ir.MemberRef, bool),
) {
	t := New(store, g, ref, node)
	finishCompile(t, store, ref, info, body, isCtor, addCompiled, demote)
}

func finishCompile(
	t *Translator, store metadata.Store, ref ir.MemberRef,
	info metadata.MemberInfo, body ir.Expr, isCtor bool,
	addCompiled func(ir.MemberRef, metadata.OptimizationRecord, any),
	demote func(ir.MemberRef, bool),
) {
	switch info.Kind.(type) {
	case metadata.Inline:
		t.currentIsInline = true
		translated := t.Translate(body)
		optimized := t.Optimize(translated, true)
		if t.hasDelayedTransform {
			addCompiled(ref, metadata.OptimizationRecord{}, body)
			demote(ref, isCtor)
			return
		}
		reportInvalidForms(store, ref, body, true, allowSelfOutsideInline(t))
		addCompiled(ref, metadata.OptimizationRecord{}, optimized)

	case metadata.NotCompiledInline:
		// Cannot be translated without a call site's resolved generics;
		// CompileCall/CompileCtor's NotCompiledInline branch does the real
		// work per call (§4.1.2). Nothing has been optimized yet, so the
		// invalid-form check does not apply here either.
		addCompiled(ref, metadata.OptimizationRecord{}, body)

	default:
		translated := t.Translate(body)
		optimized := t.OptimizeTop(translated, isCtor)
		reportInvalidForms(store, ref, body, false, allowSelfOutsideInline(t))
		addCompiled(ref, metadata.OptimizationRecord{}, optimized)
	}
}

// reportInvalidForms runs the invalid-form check (§4.4) over the
// body a member was just translated from and records any hit against ref.
// The check walks the pre-translation ir.Expr rather than the jsast output
// it produced: jsast has no node shapes for Self/FieldGet/Let/etc. at all
// (every Translate case rewrites them into something else outright), so a
// forbidden form can only ever be observed on the input side — the
// assertion that matters is that the member's own body never carried one of
// these forms somewhere Translate wasn't prepared to rewrite it from.
func reportInvalidForms(store metadata.Store, ref ir.MemberRef, body ir.Expr, inline, allowSelf bool) {
	for _, d := range CheckInvalidForms(body, inline, allowSelf) {
		d.Member = ref
		store.AddError(d)
	}
}
