// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package corejs

import (
	"fmt"

	"github.com/go-netjs/corejs/graph"
	"github.com/go-netjs/corejs/ir"
	"github.com/go-netjs/corejs/jsast"
	"github.com/go-netjs/corejs/metadata"
)

// dynamicBinaryOps maps a dynamic-object operator method name to the
// binary operator it lowers to (§4.1.1 step 1).
var dynamicBinaryOps = map[string]ir.BinaryOp{
	"op_Addition":           ir.OpAdd,
	"op_Subtraction":        ir.OpSub,
	"op_Multiply":           ir.OpMul,
	"op_Division":           ir.OpDiv,
	"op_Modulus":            ir.OpMod,
	"op_Equality":           ir.OpEq,
	"op_Inequality":         ir.OpNotEq,
	"op_LessThan":           ir.OpLt,
	"op_LessThanOrEqual":    ir.OpLtEq,
	"op_GreaterThan":        ir.OpGt,
	"op_GreaterThanOrEqual": ir.OpGtEq,
}

// TransformCall lowers a resolved-or-dynamic method call (§4.1.1).
func (t *Translator) TransformCall(n *ir.Call) jsast.Expr {
	if n.Type.Entity == ir.DynamicEntity {
		return t.transformDynamicCall(n)
	}

	ref := ir.MemberRef{Type: n.Type.Entity, Name: n.Method.Entity.ID}
	t.addEdge(graph.MethodNode{Type: n.Type.Entity.ID, Method: n.Method.Entity.ID})
	return t.dispatchCallResult(ref, t.store.LookupMethodInfo(ref), n)
}

func (t *Translator) transformDynamicCall(n *ir.Call) jsast.Expr {
	name := n.Method.Entity.ID
	if n.Receiver == nil {
		t.diag.error(metadata.SourceError, "static call on dynamic object: %s", name)
		return jsast.ErrorPlaceholder{Reason: "static call on dynamic object"}
	}
	receiver := t.Translate(n.Receiver)
	if op, ok := dynamicBinaryOps[name]; ok && len(n.Args) == 1 {
		return &jsast.BinaryExpr{Op: string(op), Left: receiver, Right: t.Translate(n.Args[0])}
	}
	switch name {
	case "op_Increment":
		return &jsast.BinaryExpr{Op: "+", Left: receiver, Right: jsast.IntLit{Value: 1}}
	case "op_Decrement":
		return &jsast.BinaryExpr{Op: "-", Left: receiver, Right: jsast.IntLit{Value: 1}}
	}
	args := make([]jsast.Expr, len(n.Args))
	for i, a := range n.Args {
		args[i] = t.Translate(a)
	}
	return &jsast.Call{Callee: &jsast.Member{Object: receiver, Name: name}, Args: args}
}

func (t *Translator) dispatchCallResult(ref ir.MemberRef, result metadata.LookupResult, n *ir.Call) jsast.Expr {
	switch r := result.(type) {
	case metadata.Compiled:
		return t.CompileCall(ref, r.Info, r.Opts, r.Body, n)
	case metadata.Compiling:
		if metadata.IsInline(r.Info.Kind) {
			t.compileMemberNow(ref, r.Info, r.Body, false)
			return t.dispatchCallResult(ref, t.store.LookupMethodInfo(ref), n)
		}
		return t.CompileCall(ref, r.Info, metadata.OptimizationRecord{}, r.Body, n)
	case metadata.CustomTypeMember:
		return t.transformCustomTypeCall(ref, r.Info, n)
	case metadata.LookupMemberError:
		t.diag.errorSentinel(metadata.MemberNotFound, ErrMemberNotFound, "%s: %v", ref, r.Err)
		return jsast.ErrorPlaceholder{Reason: r.Err.Error()}
	default:
		t.diag.error(metadata.SourceError, "%s: unrecognized lookup result %T", ref, result)
		return jsast.ErrorPlaceholder{Reason: "unrecognized lookup result"}
	}
}

// compileMemberNow drives translation of a forward-referenced inline member
// so the caller's retry sees a Compiled entry (§4.1.1 step 2, §4.2). isCtor
// selects the constructor side of the Store's parallel method/constructor
// bookkeeping; the dispatch logic itself does not differ by slot.
func (t *Translator) compileMemberNow(ref ir.MemberRef, info metadata.MemberInfo, body ir.Expr, isCtor bool) {
	addCompiled := t.store.AddCompiledMethod
	failCompiled := t.store.FailedCompiledMethod
	if isCtor {
		addCompiled = t.store.AddCompiledConstructor
		failCompiled = t.store.FailedCompiledConstructor
	}

	if idx := t.inProgressIndex(ref); idx >= 0 {
		t.diag.error(metadata.SourceError, "Inline loop found at method %s", ref)
		failCompiled(ref, ErrInlineCycle.NewError("cycle at %s", ref))
		return
	}
	switch info.Kind.(type) {
	case metadata.Inline:
		node := graph.MethodNode{Type: ref.Type.ID, Method: ref.Name}
		sub := t.fork(ref, node, true, t.selfAddress, nil, nil, true)
		translated := sub.Translate(body)
		optimized := sub.Optimize(translated, true)
		if sub.hasDelayedTransform {
			addCompiled(ref, metadata.OptimizationRecord{}, body)
			t.store.DemoteToNotCompiledInline(ref, isCtor)
			return
		}
		addCompiled(ref, metadata.OptimizationRecord{}, optimized)
	default:
		// NotCompiledInline (and any other isInline kind the metadata might
		// introduce): the body cannot be translated without the call site's
		// resolved generics, so it is recorded as-is; CompileCall's
		// NotCompiledInline branch does the real work per call.
		addCompiled(ref, metadata.OptimizationRecord{}, body)
	}
}

// CompileCall dispatches a resolved method reference to its emission shape
// by compilation kind (§4.1.2).
func (t *Translator) CompileCall(ref ir.MemberRef, info metadata.MemberInfo, opts metadata.OptimizationRecord, body any, n *ir.Call) jsast.Expr {
	baseCall := n.BaseCall || isBaseReceiver(n.Receiver)

	var receiver jsast.Expr
	if n.Receiver != nil {
		if baseCall {
			receiver = jsast.This{}
		} else {
			receiver = t.Translate(n.Receiver)
		}
	}
	args := t.shapeAndTranslateArgs(n.Args, opts.FuncArgs)

	switch k := info.Kind.(type) {
	case metadata.Instance:
		if baseCall {
			return t.baseCallEmit(n.Type.Entity, k.Name, receiver, args)
		}
		return &jsast.Call{Callee: &jsast.Member{Object: receiver, Name: k.Name}, Args: args}

	case metadata.Static:
		fullArgs := args
		if receiver != nil {
			fullArgs = append([]jsast.Expr{receiver}, args...)
		}
		return &jsast.Call{Callee: jsast.GlobalAccess{Path: k.Addr.Outermost()}, Args: fullArgs}

	case metadata.Inline:
		jsBody, ok := body.(jsast.Expr)
		if !ok {
			t.diag.error(metadata.SourceError, "%s: inline body not available", ref)
			return jsast.ErrorPlaceholder{Reason: "inline body missing"}
		}
		return t.substituteInlineJS(jsBody, info, args, receiver)

	case metadata.NotCompiledInline:
		irBody, ok := body.(ir.Expr)
		if !ok {
			t.diag.error(metadata.SourceError, "%s: uncompiled inline body not available", ref)
			return jsast.ErrorPlaceholder{Reason: "uncompiled inline body missing"}
		}
		return t.expandNotCompiledInline(ref, info, irBody, n.Type, n.Method.Generics, n.Args, n.Receiver)

	case metadata.MacroKind:
		return t.invokeMacro(ref, k, n, nil)

	case metadata.GeneratorKind:
		return t.invokeGenerator(k.Addr, ref.Type, n.Type.Generics)

	case metadata.Remote:
		return t.emitRemoteCall(k, n, receiver, args)

	case metadata.Constructor:
		t.diag.errorSentinel(metadata.SourceError, ErrNotConstructor, "%s: constructor kind used as method info", ref)
		return jsast.ErrorPlaceholder{Reason: "constructor used as method"}

	default:
		t.diag.error(metadata.SourceError, "%s: unhandled compilation kind %T", ref, info.Kind)
		return jsast.ErrorPlaceholder{Reason: fmt.Sprintf("unhandled kind %T", info.Kind)}
	}
}

func isBaseReceiver(e ir.Expr) bool {
	_, ok := e.(*ir.Base)
	return ok
}

func (t *Translator) baseCallEmit(owner ir.Entity, name string, thisExpr jsast.Expr, args []jsast.Expr) jsast.Expr {
	info, ok := t.store.TryLookupClassInfo(owner)
	if !ok {
		t.diag.error(metadata.TypeNotFound, "%s has no prototype address for base call", owner.ID)
		return jsast.ErrorPlaceholder{Reason: "base call: no prototype address"}
	}
	path := append(append([]string(nil), info.Addr.Outermost()...), "prototype", name)
	return &jsast.Call{
		Callee: &jsast.Member{Object: jsast.GlobalAccess{Path: path}, Name: "call"},
		Args:   append([]jsast.Expr{thisExpr}, args...),
	}
}

// shapeAndTranslateArgs pre-adapts each argument to opts.FuncArgs[i] before
// translation (§4.1.2 "Argument shaping").
func (t *Translator) shapeAndTranslateArgs(args []ir.Expr, tags []ir.FuncArgTag) []jsast.Expr {
	out := make([]jsast.Expr, len(args))
	for i, a := range args {
		shaped := a
		if tags != nil && i < len(tags) {
			shaped = t.shapeArg(a, tags[i])
		}
		out[i] = t.Translate(shaped)
	}
	return out
}

func (t *Translator) shapeArg(arg ir.Expr, tag ir.FuncArgTag) ir.Expr {
	switch want := tag.(type) {
	case ir.NotOptimizedFuncArg:
		return arg
	case ir.CurriedFuncArg:
		if opt, ok := arg.(*ir.OptimizedFSharpArg); ok {
			if have, ok2 := opt.Tag.(ir.CurriedFuncArg); ok2 && have.Arity == want.Arity {
				return opt.Value
			}
		}
		return wrapCurried(arg, want.Arity)
	case ir.TupledFuncArg:
		if opt, ok := arg.(*ir.OptimizedFSharpArg); ok {
			if have, ok2 := opt.Tag.(ir.TupledFuncArg); ok2 && have.Arity == want.Arity {
				return opt.Value
			}
		}
		if lam, ok := arg.(*ir.Lambda); ok && len(lam.Params) == want.Arity {
			return lam
		}
		return wrapTupled(arg, want.Arity)
	default:
		return arg
	}
}

// wrapCurried synthesizes λ(x₁…xₙ). e x₁ … xₙ (§4.1.2).
func wrapCurried(e ir.Expr, n int) ir.Expr {
	params := make([]*ir.Ident, n)
	for i := range params {
		params[i] = ir.NewIdent(fmt.Sprintf("$x%d", i), ir.NoPos)
	}
	body := e
	for _, p := range params {
		body = &ir.Apply{Func: body, Args: []ir.Expr{&ir.Var{Ident: p}}}
	}
	return &ir.Lambda{Params: params, Body: body}
}

// wrapTupled synthesizes λx. e([x₀…xₙ₋₁]) (§4.1.2).
func wrapTupled(e ir.Expr, n int) ir.Expr {
	x := ir.NewIdent("$tuple", ir.NoPos)
	items := make([]ir.Expr, n)
	for i := range items {
		idx := i
		items[i] = &ir.ItemGet{Object: &ir.Var{Ident: x}, Key: ir.ItemKey{Int: &idx}}
	}
	return &ir.Lambda{Params: []*ir.Ident{x}, Body: &ir.Apply{Func: e, Args: []ir.Expr{&ir.ArrayLit{Elements: items}}}}
}

// substituteInlineJS performs the already-compiled Inline substitution:
// bind formal parameters and `this` inside the stored jsast body, directly
// at the call site (§4.1.2 "Inline" row).
func (t *Translator) substituteInlineJS(body jsast.Expr, info metadata.MemberInfo, args []jsast.Expr, receiver jsast.Expr) jsast.Expr {
	bindings := make(map[string]jsast.Expr, len(info.Params))
	for i, p := range info.Params {
		if i < len(args) {
			bindings[p.Name] = args[i]
		}
	}
	var this jsast.Expr
	if info.This != nil {
		this = receiver
	}
	return jsSubstitution{args: bindings, thisObj: this}.apply(body)
}

// expandNotCompiledInline resolves generics, then substitutes args/this,
// then retranslates (§4.1.2 "NotCompiledInline" row, §4.2).
func (t *Translator) expandNotCompiledInline(ref ir.MemberRef, info metadata.MemberInfo, body ir.Expr, callType ir.ConcreteType, methodGenerics []ir.Type, args []ir.Expr, receiver ir.Expr) jsast.Expr {
	if idx := t.inProgressIndex(ref); idx >= 0 {
		t.diag.error(metadata.SourceError, "Inline loop found at method %s", ref)
		t.store.FailedCompiledMethod(ref, ErrInlineCycle.NewError("cycle at %s", ref))
		return jsast.ErrorPlaceholder{Reason: "inline cycle"}
	}

	gs := append(append([]ir.Type(nil), callType.Generics...), methodGenerics...)
	if len(gs) > 0 {
		body = genericInlineResolver{gs: gs}.apply(body)
	}

	bindings := make(map[string]ir.Expr, len(info.Params))
	for i, p := range info.Params {
		if i < len(args) {
			bindings[p.Name] = args[i]
		}
	}
	var thisObj ir.Expr
	if info.This != nil {
		thisObj = receiver
	}
	body = irSubstitution{args: bindings, thisObj: thisObj}.apply(body)

	node := graph.MethodNode{Type: ref.Type.ID, Method: ref.Name}
	sub := t.fork(ref, node, true, t.selfAddress, nil, gs, true)
	return sub.Translate(body)
}

// TransformCtor lowers a resolved constructor call (§4.1.3).
func (t *Translator) TransformCtor(n *ir.Ctor) jsast.Expr {
	ref := ir.MemberRef{Type: n.Type.Entity, Name: n.Ctor.Entity.ID}
	t.addEdge(graph.ConstructorNode{Type: n.Type.Entity.ID, Ctor: n.Ctor.Entity.ID})
	return t.dispatchCtorResult(ref, t.store.LookupConstructorInfo(ref), n)
}

func (t *Translator) dispatchCtorResult(ref ir.MemberRef, result metadata.LookupResult, n *ir.Ctor) jsast.Expr {
	switch r := result.(type) {
	case metadata.Compiled:
		return t.CompileCtor(ref, r.Info, r.Opts, r.Body, n)
	case metadata.Compiling:
		if metadata.IsInline(r.Info.Kind) {
			t.compileMemberNow(ref, r.Info, r.Body, true)
			return t.dispatchCtorResult(ref, t.store.LookupConstructorInfo(ref), n)
		}
		return t.CompileCtor(ref, r.Info, metadata.OptimizationRecord{}, r.Body, n)
	case metadata.CustomTypeMember:
		return t.transformCustomTypeCtor(ref, r.Info, n)
	case metadata.LookupMemberError:
		t.diag.errorSentinel(metadata.MemberNotFound, ErrMemberNotFound, "%s: %v", ref, r.Err)
		return jsast.ErrorPlaceholder{Reason: r.Err.Error()}
	default:
		t.diag.error(metadata.SourceError, "%s: unrecognized lookup result %T", ref, result)
		return jsast.ErrorPlaceholder{Reason: "unrecognized lookup result"}
	}
}

// CompileCtor dispatches a resolved constructor reference (§4.1.3, mirrors
// CompileCall).
func (t *Translator) CompileCtor(ref ir.MemberRef, info metadata.MemberInfo, opts metadata.OptimizationRecord, body any, n *ir.Ctor) jsast.Expr {
	args := t.shapeAndTranslateArgs(n.Args, opts.FuncArgs)

	switch k := info.Kind.(type) {
	case metadata.Constructor:
		return &jsast.New{Callee: jsast.GlobalAccess{Path: k.Addr.Outermost()}, Args: args}

	case metadata.Static:
		return &jsast.Call{Callee: jsast.GlobalAccess{Path: k.Addr.Outermost()}, Args: args}

	case metadata.Inline:
		jsBody, ok := body.(jsast.Expr)
		if !ok {
			t.diag.error(metadata.SourceError, "%s: inline ctor body not available", ref)
			return jsast.ErrorPlaceholder{Reason: "inline ctor body missing"}
		}
		return t.substituteInlineJS(jsBody, info, args, nil)

	case metadata.NotCompiledInline:
		irBody, ok := body.(ir.Expr)
		if !ok {
			t.diag.error(metadata.SourceError, "%s: uncompiled inline ctor body not available", ref)
			return jsast.ErrorPlaceholder{Reason: "uncompiled inline ctor body missing"}
		}
		return t.expandNotCompiledInline(ref, info, irBody, n.Type, n.Ctor.Generics, n.Args, nil)

	case metadata.MacroKind:
		return t.invokeMacroCtor(ref, k, n)

	case metadata.GeneratorKind:
		return t.invokeGenerator(k.Addr, ref.Type, n.Type.Generics)

	default:
		t.diag.errorSentinel(metadata.SourceError, ErrNotConstructor, "%s: non-constructor kind %T in ctor slot", ref, info.Kind)
		return jsast.ErrorPlaceholder{Reason: "non-constructor in ctor slot"}
	}
}

// TransformBaseCtor lowers a derived constructor's call into its parent
// constructor (§4.1.3).
func (t *Translator) TransformBaseCtor(n *ir.BaseCtor) jsast.Expr {
	ctorNode := &ir.Ctor{Type: n.Type, Ctor: n.Ctor, Args: n.Args, At: n.At}
	result := t.TransformCtor(ctorNode)
	thisExpr := t.Translate(n.This)

	if t.currentIsInline {
		if _, ok := n.This.(*ir.This); ok {
			return result
		}
	}

	if nw, ok := result.(*jsast.New); ok {
		return &jsast.Call{
			Callee: &jsast.Member{Object: nw.Callee, Name: "call"},
			Args:   append([]jsast.Expr{thisExpr}, nw.Args...),
		}
	}

	if se, ok := result.(*jsast.StatementExpr); ok && len(se.Stmts) == 1 {
		if vd, ok := se.Stmts[0].(*jsast.VarDecl); ok {
			if nw, ok := se.Value.(*jsast.New); ok && len(nw.Args) == 1 {
				if id, ok := nw.Args[0].(*jsast.Ident); ok && id.Name == vd.Name {
					return &jsast.Call{
						Callee: &jsast.Member{Object: nw.Callee, Name: "call"},
						Args:   []jsast.Expr{thisExpr, vd.Value},
					}
				}
			}
		}
	}

	t.diag.error(metadata.SourceError, "base constructor call did not lower to a recognizable new-expression")
	return jsast.ErrorPlaceholder{Reason: "unrecognized base-ctor shape"}
}

// emitRemoteCall constructs a call through a remoting-provider object and
// records the RPC dependency edges (§4.1.2 "Remote" row).
func (t *Translator) emitRemoteCall(k metadata.Remote, n *ir.Call, receiver jsast.Expr, args []jsast.Expr) jsast.Expr {
	providerExpr := jsast.Expr(jsast.GlobalAccess{Path: []string{"Runtime", "DefaultRemotingProvider"}})
	if k.Provider != nil {
		providerExpr = jsast.GlobalAccess{Path: []string{k.Provider.ID}}
	}

	t.addEdge(graph.AbstractMethodNode{Type: "$remote", Method: k.Kind.String()})
	if n.Method.ReturnType != nil {
		for _, entity := range n.Method.ReturnType.ConcreteEntities() {
			t.addEdge(graph.TypeNode{Type: entity.ID})
		}
	}

	jsArgs := make([]jsast.Expr, 0, len(args)+1)
	if receiver != nil {
		jsArgs = append(jsArgs, receiver)
	}
	argArray := jsast.Array{Elements: args}

	return &jsast.Call{
		Callee: &jsast.Member{Object: providerExpr, Name: k.Kind.String()},
		Args:   append([]jsast.Expr{jsast.StringLit{Value: k.Handle}, argArray}, jsArgs...),
	}
}
