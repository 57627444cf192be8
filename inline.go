// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package corejs

import (
	"github.com/igo9go/go-deepdump"

	"github.com/go-netjs/corejs/ir"
	"github.com/go-netjs/corejs/jsast"
)

// traceSubstitution logs the bound names going into an inline expansion
// when tracing is enabled, using go-deepdump the way the teacher's
// printTrace logs compiler state (compiler.go) -- here for a map of
// argument substitutions rather than bytecode.
func (t *Translator) traceSubstitution(label string, args map[string]ir.Expr) {
	if t.trace == nil {
		return
	}
	t.tracef("%s %s", label, deepdump.Sdump(args))
}

// genericInlineResolver substitutes positional generic arguments into every
// ir.Type reference reachable from an inline body's Call/Ctor/TraitCall/
// TypeCheck nodes (§4.2). It is applied before Substitution whenever the
// inline's type or method carries generics.
type genericInlineResolver struct {
	gs []ir.Type
}

func (r genericInlineResolver) resolveType(t ir.Type) ir.Type {
	if t.TypeParam == nil {
		return t
	}
	idx := t.TypeParam.Index
	if idx < 0 || idx >= len(r.gs) {
		return t
	}
	return r.gs[idx]
}

func (r genericInlineResolver) resolveConcreteType(ct ir.ConcreteType) ir.ConcreteType {
	gen := make([]ir.Type, len(ct.Generics))
	for i, g := range ct.Generics {
		gen[i] = r.resolveType(g)
	}
	return ir.ConcreteType{Entity: ct.Entity, Generics: gen}
}

func (r genericInlineResolver) resolveConcreteMethod(cm ir.ConcreteMethod) ir.ConcreteMethod {
	gen := make([]ir.Type, len(cm.Generics))
	for i, g := range cm.Generics {
		gen[i] = r.resolveType(g)
	}
	var ret *ir.Type
	if cm.ReturnType != nil {
		resolved := r.resolveType(*cm.ReturnType)
		ret = &resolved
	}
	return ir.ConcreteMethod{Entity: cm.Entity, Generics: gen, ReturnType: ret}
}

// apply returns a deep copy of e with every reachable generic reference
// resolved. deepCopyExpr produces the copy so the original (still referenced
// by the metadata store as the member's canonical body) is left untouched.
func (r genericInlineResolver) apply(e ir.Expr) ir.Expr {
	e = deepCopyExpr(e)
	return r.rewrite(e)
}

func (r genericInlineResolver) rewrite(e ir.Expr) ir.Expr {
	switch n := e.(type) {
	case *ir.Call:
		n.Type = r.resolveConcreteType(n.Type)
		n.Method = r.resolveConcreteMethod(n.Method)
		n.Receiver = r.rewriteMaybe(n.Receiver)
		for i := range n.Args {
			n.Args[i] = r.rewrite(n.Args[i])
		}
		return n
	case *ir.Ctor:
		n.Type = r.resolveConcreteType(n.Type)
		n.Ctor = r.resolveConcreteMethod(n.Ctor)
		for i := range n.Args {
			n.Args[i] = r.rewrite(n.Args[i])
		}
		return n
	case *ir.TraitCall:
		for i := range n.CandidateTypes {
			n.CandidateTypes[i] = r.resolveConcreteType(n.CandidateTypes[i])
		}
		n.Receiver = r.rewriteMaybe(n.Receiver)
		for i := range n.Args {
			n.Args[i] = r.rewrite(n.Args[i])
		}
		return n
	case *ir.TypeCheck:
		n.Checked = r.resolveType(n.Checked)
		n.Value = r.rewrite(n.Value)
		return n
	default:
		return rewriteChildren(e, r.rewrite)
	}
}

func (r genericInlineResolver) rewriteMaybe(e ir.Expr) ir.Expr {
	if e == nil {
		return nil
	}
	return r.rewrite(e)
}

// deepCopyExpr clones an entire ir.Expr tree so inline expansion never
// mutates the metadata store's canonical, shared body. Covers every node
// kind explicitly rather than through reflection, since the substitution
// and generic-resolution rewrites below need exact control over which
// fields are themselves Expr trees.
func deepCopyExpr(e ir.Expr) ir.Expr {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *ir.Call:
		cp := *n
		cp.Receiver = deepCopyExpr(n.Receiver)
		cp.Args = deepCopyExprSlice(n.Args)
		return &cp
	case *ir.Ctor:
		cp := *n
		cp.Args = deepCopyExprSlice(n.Args)
		return &cp
	case *ir.BaseCtor:
		cp := *n
		cp.This = deepCopyExpr(n.This)
		cp.Args = deepCopyExprSlice(n.Args)
		return &cp
	case *ir.TraitCall:
		cp := *n
		cp.CandidateTypes = append([]ir.ConcreteType(nil), n.CandidateTypes...)
		cp.Receiver = deepCopyExpr(n.Receiver)
		cp.Args = deepCopyExprSlice(n.Args)
		return &cp
	case *ir.TypeCheck:
		cp := *n
		cp.Value = deepCopyExpr(n.Value)
		return &cp
	case *ir.NewDelegate:
		cp := *n
		cp.This = deepCopyExpr(n.This)
		return &cp
	case *ir.CopyCtor:
		cp := *n
		cp.Value = deepCopyExpr(n.Value)
		return &cp
	case *ir.NewRecord:
		cp := *n
		cp.Fields = make([]ir.ObjectProp, len(n.Fields))
		for i, p := range n.Fields {
			cp.Fields[i] = ir.ObjectProp{Name: p.Name, Value: deepCopyExpr(p.Value)}
		}
		return &cp
	case *ir.NewUnionCase:
		cp := *n
		cp.Args = deepCopyExprSlice(n.Args)
		return &cp
	case *ir.UnionCaseTest:
		cp := *n
		cp.Value = deepCopyExpr(n.Value)
		return &cp
	case *ir.UnionCaseGet:
		cp := *n
		cp.Value = deepCopyExpr(n.Value)
		return &cp
	case *ir.UnionCaseTag:
		cp := *n
		cp.Value = deepCopyExpr(n.Value)
		return &cp
	case *ir.Var, *ir.This, *ir.Self, *ir.Base, *ir.IntLit, *ir.FloatLit,
		*ir.DecimalLit, *ir.BoolLit, *ir.StringLit, *ir.Undefined, *ir.Hole,
		*ir.ErrorPlaceholder, *ir.GlobalAccess:
		return e // leaves: no Expr-typed fields to descend into
	default:
		return rewriteChildren(shallowCopy(e), deepCopyExpr)
	}
}

func deepCopyExprSlice(es []ir.Expr) []ir.Expr {
	if es == nil {
		return nil
	}
	out := make([]ir.Expr, len(es))
	for i, e := range es {
		out[i] = deepCopyExpr(e)
	}
	return out
}

// shallowCopy returns a one-level copy of e (new pointer, copied struct
// value) for every kind rewriteChildren mutates in place, so a single
// rewrite pass never touches the shared canonical tree.
func shallowCopy(e ir.Expr) ir.Expr {
	switch n := e.(type) {
	case *ir.Let:
		cp := *n
		return &cp
	case *ir.Lambda:
		cp := *n
		return &cp
	case *ir.Apply:
		cp := *n
		return &cp
	case *ir.Conditional:
		cp := *n
		return &cp
	case *ir.Sequential:
		cp := *n
		return &cp
	case *ir.ObjectLit:
		cp := *n
		return &cp
	case *ir.ArrayLit:
		cp := *n
		return &cp
	case *ir.FieldGet:
		cp := *n
		return &cp
	case *ir.FieldSet:
		cp := *n
		return &cp
	case *ir.ItemGet:
		cp := *n
		return &cp
	case *ir.ItemSet:
		cp := *n
		return &cp
	case *ir.BinaryExpr:
		cp := *n
		return &cp
	case *ir.UnaryExpr:
		cp := *n
		return &cp
	case *ir.NewExpr:
		cp := *n
		return &cp
	case *ir.BaseCtor:
		cp := *n
		return &cp
	case *ir.NewDelegate:
		cp := *n
		return &cp
	case *ir.CopyCtor:
		cp := *n
		return &cp
	case *ir.NewRecord:
		cp := *n
		return &cp
	case *ir.NewUnionCase:
		cp := *n
		return &cp
	case *ir.UnionCaseTest:
		cp := *n
		return &cp
	case *ir.UnionCaseGet:
		cp := *n
		return &cp
	case *ir.UnionCaseTag:
		cp := *n
		return &cp
	case *ir.Await:
		cp := *n
		return &cp
	case *ir.NamedParameter:
		cp := *n
		return &cp
	case *ir.RefOrOutParameter:
		cp := *n
		return &cp
	case *ir.Coalesce:
		cp := *n
		return &cp
	case *ir.OptimizedFSharpArg:
		cp := *n
		return &cp
	default:
		return e
	}
}

// irSubstitution binds formal parameters and `this` to supplied ir
// expressions inside a still-uncompiled inline body (NotCompiledInline,
// §4.1.2).
type irSubstitution struct {
	args    map[string]ir.Expr
	thisObj ir.Expr // nil if the inline has no bound `this`
}

func (s irSubstitution) apply(e ir.Expr) ir.Expr {
	return s.rewrite(deepCopyExpr(e))
}

func (s irSubstitution) rewrite(e ir.Expr) ir.Expr {
	switch n := e.(type) {
	case *ir.Var:
		if repl, ok := s.args[n.Ident.Name]; ok {
			return repl
		}
		return n
	case *ir.This:
		if s.thisObj != nil {
			return s.thisObj
		}
		return n
	default:
		return rewriteChildren(e, s.rewrite)
	}
}

// rewriteChildren applies f to every direct Expr child of e for the node
// kinds that carry no special substitution rule, i.e. every pass-through
// kind the Translator itself recurses through structurally. e is shallow-
// copied first so substitution never mutates the metadata store's shared,
// canonical body.
func rewriteChildren(e ir.Expr, f func(ir.Expr) ir.Expr) ir.Expr {
	e = shallowCopy(e)
	switch n := e.(type) {
	case *ir.Let:
		n.Bindings = append([]ir.LetBinding(nil), n.Bindings...)
		for i := range n.Bindings {
			n.Bindings[i].Value = f(n.Bindings[i].Value)
		}
		n.Body = f(n.Body)
	case *ir.Lambda:
		n.Body = f(n.Body)
	case *ir.Apply:
		n.Func = f(n.Func)
		n.Args = append([]ir.Expr(nil), n.Args...)
		for i := range n.Args {
			n.Args[i] = f(n.Args[i])
		}
	case *ir.Conditional:
		n.Cond, n.Then, n.Else = f(n.Cond), f(n.Then), f(n.Else)
	case *ir.Sequential:
		n.Exprs = append([]ir.Expr(nil), n.Exprs...)
		for i := range n.Exprs {
			n.Exprs[i] = f(n.Exprs[i])
		}
	case *ir.ObjectLit:
		n.Props = append([]ir.ObjectProp(nil), n.Props...)
		for i := range n.Props {
			n.Props[i].Value = f(n.Props[i].Value)
		}
	case *ir.ArrayLit:
		n.Elements = append([]ir.Expr(nil), n.Elements...)
		for i := range n.Elements {
			n.Elements[i] = f(n.Elements[i])
		}
	case *ir.FieldGet:
		n.Object = f(n.Object)
	case *ir.FieldSet:
		n.Object, n.Value = f(n.Object), f(n.Value)
	case *ir.ItemGet:
		n.Object = f(n.Object)
	case *ir.ItemSet:
		n.Object, n.Value = f(n.Object), f(n.Value)
	case *ir.BinaryExpr:
		n.Left, n.Right = f(n.Left), f(n.Right)
	case *ir.UnaryExpr:
		n.Operand = f(n.Operand)
	case *ir.NewExpr:
		n.Args = append([]ir.Expr(nil), n.Args...)
		for i := range n.Args {
			n.Args[i] = f(n.Args[i])
		}
	case *ir.BaseCtor:
		n.This = f(n.This)
		n.Args = append([]ir.Expr(nil), n.Args...)
		for i := range n.Args {
			n.Args[i] = f(n.Args[i])
		}
	case *ir.NewDelegate:
		if n.This != nil {
			n.This = f(n.This)
		}
	case *ir.CopyCtor:
		n.Value = f(n.Value)
	case *ir.NewRecord:
		n.Fields = append([]ir.ObjectProp(nil), n.Fields...)
		for i := range n.Fields {
			n.Fields[i].Value = f(n.Fields[i].Value)
		}
	case *ir.NewUnionCase:
		n.Args = append([]ir.Expr(nil), n.Args...)
		for i := range n.Args {
			n.Args[i] = f(n.Args[i])
		}
	case *ir.UnionCaseTest:
		n.Value = f(n.Value)
	case *ir.UnionCaseGet:
		n.Value = f(n.Value)
	case *ir.UnionCaseTag:
		n.Value = f(n.Value)
	case *ir.Await:
		n.Value = f(n.Value)
	case *ir.NamedParameter:
		n.Value = f(n.Value)
	case *ir.RefOrOutParameter:
		n.Value = f(n.Value)
	case *ir.Coalesce:
		n.Left, n.Right = f(n.Left), f(n.Right)
	case *ir.OptimizedFSharpArg:
		n.Value = f(n.Value)
	}
	return e
}

// jsSubstitution binds formal parameter names and `this` to supplied jsast
// expressions inside an already-compiled inline body (Inline kind, §4.1.2).
type jsSubstitution struct {
	args    map[string]jsast.Expr
	thisObj jsast.Expr // nil if the inline has no bound `this`
}

func (s jsSubstitution) apply(e jsast.Expr) jsast.Expr {
	switch n := e.(type) {
	case *jsast.Ident:
		if repl, ok := s.args[n.Name]; ok {
			return repl
		}
		return n
	case jsast.This:
		if s.thisObj != nil {
			return s.thisObj
		}
		return n
	case *jsast.Member:
		return &jsast.Member{Object: s.apply(n.Object), Name: n.Name}
	case *jsast.Index:
		return &jsast.Index{Object: s.apply(n.Object), Key: s.apply(n.Key)}
	case *jsast.BinaryExpr:
		return &jsast.BinaryExpr{Op: n.Op, Left: s.apply(n.Left), Right: s.apply(n.Right)}
	case *jsast.UnaryExpr:
		return &jsast.UnaryExpr{Op: n.Op, Prefix: n.Prefix, Operand: s.apply(n.Operand)}
	case *jsast.Assign:
		return &jsast.Assign{Target: s.apply(n.Target), Value: s.apply(n.Value)}
	case *jsast.Conditional:
		return &jsast.Conditional{Cond: s.apply(n.Cond), Then: s.apply(n.Then), Else: s.apply(n.Else)}
	case *jsast.Sequence:
		exprs := make([]jsast.Expr, len(n.Exprs))
		for i, x := range n.Exprs {
			exprs[i] = s.apply(x)
		}
		return &jsast.Sequence{Exprs: exprs}
	case *jsast.Call:
		args := make([]jsast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = s.apply(a)
		}
		return &jsast.Call{Callee: s.apply(n.Callee), Args: args}
	case *jsast.New:
		args := make([]jsast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = s.apply(a)
		}
		return &jsast.New{Callee: s.apply(n.Callee), Args: args}
	case jsast.Array:
		elems := make([]jsast.Expr, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = s.apply(el)
		}
		return jsast.Array{Elements: elems}
	case jsast.Object:
		props := make([]jsast.ObjectProp, len(n.Props))
		for i, p := range n.Props {
			props[i] = jsast.ObjectProp{Name: p.Name, Value: s.apply(p.Value)}
		}
		return jsast.Object{Props: props}
	default:
		return e
	}
}
