// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package corejs

import (
	"github.com/go-netjs/corejs/ir"
	"github.com/go-netjs/corejs/jsast"
	"github.com/go-netjs/corejs/metadata"
)

// Optimize runs the fixed-order peephole chain over a just-translated body
// (§4.4). With inline set, only let-removal and statement-expression
// flattening run; OptimizeTop's isCtor is what skips curried-function
// collection for constructors.
func (t *Translator) Optimize(e jsast.Expr, inline bool) jsast.Expr {
	e = mapExpr(e, removeRedundantLet)
	if inline {
		return mapExpr(e, flattenNestedStatementExpr)
	}
	e = mapExpr(e, cleanRuntimeNoop)
	e = mapExpr(e, flattenNestedStatementExpr)
	e = mapExpr(e, cleanRuntimeNoop)
	return e
}

// OptimizeTop additionally runs curried-function collection on a top-level
// function body, skipped for constructors (§4.4 "Curried-function
// recognition").
func (t *Translator) OptimizeTop(e jsast.Expr, isCtor bool) jsast.Expr {
	e = t.Optimize(e, false)
	if isCtor {
		return e
	}
	return collectCurried(e)
}

// removeRedundantLet collapses `{const x = v; x}` into `v` — the common
// case left behind by translateLet when the body is a bare reference to the
// last-bound name.
func removeRedundantLet(e jsast.Expr) jsast.Expr {
	se, ok := e.(*jsast.StatementExpr)
	if !ok || len(se.Stmts) == 0 {
		return e
	}
	last, ok := se.Stmts[len(se.Stmts)-1].(*jsast.VarDecl)
	if !ok {
		return e
	}
	ident, ok := se.Value.(*jsast.Ident)
	if !ok || ident.Name != last.Name {
		return e
	}
	stmts := se.Stmts[:len(se.Stmts)-1]
	if len(stmts) == 0 {
		return last.Value
	}
	return &jsast.StatementExpr{Stmts: append([]jsast.Stmt(nil), stmts...), Value: last.Value}
}

// cleanRuntimeNoop removes wrapper nodes that carry no runtime effect: a
// one-element Sequence, and a StatementExpr with no statements.
func cleanRuntimeNoop(e jsast.Expr) jsast.Expr {
	switch n := e.(type) {
	case *jsast.Sequence:
		if len(n.Exprs) == 1 {
			return n.Exprs[0]
		}
	case *jsast.StatementExpr:
		if len(n.Stmts) == 0 {
			return n.Value
		}
	}
	return e
}

// flattenNestedStatementExpr hoists a StatementExpr's trailing value, when
// it is itself a StatementExpr, into the parent's statement list — the
// shape a nested let produces (§4.4 "statement-breaker").
func flattenNestedStatementExpr(e jsast.Expr) jsast.Expr {
	se, ok := e.(*jsast.StatementExpr)
	if !ok {
		return e
	}
	inner, ok := se.Value.(*jsast.StatementExpr)
	if !ok {
		return e
	}
	stmts := append(append([]jsast.Stmt(nil), se.Stmts...), inner.Stmts...)
	return &jsast.StatementExpr{Stmts: stmts, Value: inner.Value}
}

// collectCurried recognizes λa.λb. … λz. f(x₁…xₙ, a, b, …, z) and rewrites
// it to a Runtime.Curried* helper call (§4.4).
func collectCurried(e jsast.Expr) jsast.Expr {
	fn, ok := e.(*jsast.Function)
	if !ok {
		return e
	}

	var params []string
	cur := fn
	for {
		if len(cur.Params) == 0 || len(cur.Body) != 1 {
			break
		}
		ret, ok := cur.Body[0].(*jsast.Return)
		if !ok {
			break
		}
		params = append(params, cur.Params...)
		inner, ok := ret.Value.(*jsast.Function)
		if !ok {
			break
		}
		cur = inner
	}
	if len(params) < 2 || len(cur.Body) != 1 {
		return e
	}
	ret, ok := cur.Body[0].(*jsast.Return)
	if !ok {
		return e
	}
	call, ok := ret.Value.(*jsast.Call)
	if !ok || len(call.Args) < len(params) {
		return e
	}

	n := len(params)
	trailing := call.Args[len(call.Args)-n:]
	for i, a := range trailing {
		id, ok := a.(*jsast.Ident)
		if !ok || id.Name != params[i] {
			return e
		}
	}
	leading := call.Args[:len(call.Args)-n]

	if len(leading) == 0 {
		helper := "Curried"
		switch n {
		case 2:
			helper = "Curried2"
		case 3:
			helper = "Curried3"
		}
		return &jsast.Call{
			Callee: jsast.GlobalAccess{Path: []string{"Runtime", helper}},
			Args:   []jsast.Expr{call.Callee, jsast.IntLit{Value: int64(n)}},
		}
	}
	return &jsast.Call{
		Callee: jsast.GlobalAccess{Path: []string{"Runtime", "CurriedA"}},
		Args:   []jsast.Expr{call.Callee, jsast.IntLit{Value: int64(n)}, jsast.Array{Elements: leading}},
	}
}

// mapExpr applies f bottom-up: every Expr-typed child is rewritten first,
// then f is applied to the resulting node.
func mapExpr(e jsast.Expr, f func(jsast.Expr) jsast.Expr) jsast.Expr {
	switch n := e.(type) {
	case *jsast.Member:
		return f(&jsast.Member{Object: mapExpr(n.Object, f), Name: n.Name})
	case *jsast.Index:
		return f(&jsast.Index{Object: mapExpr(n.Object, f), Key: mapExpr(n.Key, f)})
	case *jsast.BinaryExpr:
		return f(&jsast.BinaryExpr{Op: n.Op, Left: mapExpr(n.Left, f), Right: mapExpr(n.Right, f)})
	case *jsast.UnaryExpr:
		return f(&jsast.UnaryExpr{Op: n.Op, Prefix: n.Prefix, Operand: mapExpr(n.Operand, f)})
	case *jsast.Assign:
		return f(&jsast.Assign{Target: mapExpr(n.Target, f), Value: mapExpr(n.Value, f)})
	case *jsast.Conditional:
		return f(&jsast.Conditional{Cond: mapExpr(n.Cond, f), Then: mapExpr(n.Then, f), Else: mapExpr(n.Else, f)})
	case *jsast.Sequence:
		exprs := make([]jsast.Expr, len(n.Exprs))
		for i, x := range n.Exprs {
			exprs[i] = mapExpr(x, f)
		}
		return f(&jsast.Sequence{Exprs: exprs})
	case *jsast.Call:
		args := make([]jsast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = mapExpr(a, f)
		}
		return f(&jsast.Call{Callee: mapExpr(n.Callee, f), Args: args})
	case *jsast.New:
		args := make([]jsast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = mapExpr(a, f)
		}
		return f(&jsast.New{Callee: mapExpr(n.Callee, f), Args: args})
	case jsast.Array:
		elems := make([]jsast.Expr, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = mapExpr(el, f)
		}
		return f(jsast.Array{Elements: elems})
	case jsast.Object:
		props := make([]jsast.ObjectProp, len(n.Props))
		for i, p := range n.Props {
			props[i] = jsast.ObjectProp{Name: p.Name, Value: mapExpr(p.Value, f)}
		}
		return f(jsast.Object{Props: props})
	case *jsast.Function:
		body := make([]jsast.Stmt, len(n.Body))
		for i, st := range n.Body {
			body[i] = mapStmt(st, f)
		}
		return f(&jsast.Function{Name: n.Name, Params: n.Params, Body: body})
	case *jsast.StatementExpr:
		stmts := make([]jsast.Stmt, len(n.Stmts))
		for i, st := range n.Stmts {
			stmts[i] = mapStmt(st, f)
		}
		return f(&jsast.StatementExpr{Stmts: stmts, Value: mapExpr(n.Value, f)})
	default:
		return f(e)
	}
}

func mapStmt(s jsast.Stmt, f func(jsast.Expr) jsast.Expr) jsast.Stmt {
	switch n := s.(type) {
	case *jsast.Block:
		stmts := make([]jsast.Stmt, len(n.Stmts))
		for i, st := range n.Stmts {
			stmts[i] = mapStmt(st, f)
		}
		return &jsast.Block{Stmts: stmts}
	case *jsast.Return:
		if n.Value == nil {
			return n
		}
		return &jsast.Return{Value: mapExpr(n.Value, f)}
	case *jsast.Throw:
		return &jsast.Throw{Value: mapExpr(n.Value, f)}
	case *jsast.Try:
		jt := &jsast.Try{Body: mapStmt(n.Body, f).(*jsast.Block)}
		if n.Catch != nil {
			jt.Catch = &jsast.Catch{Param: n.Catch.Param, Body: mapStmt(n.Catch.Body, f).(*jsast.Block)}
		}
		if n.Finally != nil {
			jt.Finally = mapStmt(n.Finally, f).(*jsast.Block)
		}
		return jt
	case *jsast.While:
		return &jsast.While{Cond: mapExpr(n.Cond, f), Body: mapStmt(n.Body, f).(*jsast.Block)}
	case *jsast.For:
		var init, post jsast.Stmt
		if n.Init != nil {
			init = mapStmt(n.Init, f)
		}
		if n.Post != nil {
			post = mapStmt(n.Post, f)
		}
		var cond jsast.Expr
		if n.Cond != nil {
			cond = mapExpr(n.Cond, f)
		}
		return &jsast.For{Init: init, Cond: cond, Post: post, Body: mapStmt(n.Body, f).(*jsast.Block)}
	case *jsast.If:
		jif := &jsast.If{Cond: mapExpr(n.Cond, f), Then: mapStmt(n.Then, f).(*jsast.Block)}
		if n.Else != nil {
			jif.Else = mapStmt(n.Else, f)
		}
		return jif
	case *jsast.Switch:
		cases := make([]jsast.SwitchCase, len(n.Cases))
		for i, c := range n.Cases {
			vals := make([]jsast.Expr, len(c.Values))
			for j, v := range c.Values {
				vals[j] = mapExpr(v, f)
			}
			body := make([]jsast.Stmt, len(c.Body))
			for j, bs := range c.Body {
				body[j] = mapStmt(bs, f)
			}
			cases[i] = jsast.SwitchCase{Values: vals, Body: body}
		}
		return &jsast.Switch{Value: mapExpr(n.Value, f), Cases: cases}
	case *jsast.Labeled:
		return &jsast.Labeled{Name: n.Name, Stmt: mapStmt(n.Stmt, f)}
	case *jsast.ExprStmt:
		return &jsast.ExprStmt{Value: mapExpr(n.Value, f)}
	case *jsast.VarDecl:
		return &jsast.VarDecl{Kind: n.Kind, Name: n.Name, Value: mapExpr(n.Value, f)}
	default:
		return s
	}
}

// CheckInvalidForms is an assertion over a member's input body (§4.4),
// run by the driver on every non-delayed compile: certain ir forms only make sense while an inline template is
// still under construction, and their presence in a non-inline body or in a
// finished inline signals a translator bug rather than a source error.
// allowSelf excuses a bare Self outside an inline body for the one other
// legitimate case: a static constructor resolving Self via its own
// selfAddress (§4.1.8).
func CheckInvalidForms(e ir.Expr, inline bool, allowSelf bool) []metadata.Diagnostic {
	var out []metadata.Diagnostic
	report := func(format string) {
		out = append(out, metadata.Diagnostic{
			Kind:    metadata.SourceError,
			Message: format,
			Err:     ErrInvalidForm.NewError("%s", format),
		})
	}
	var walk func(e ir.Expr)
	walk = func(e ir.Expr) {
		if e == nil {
			return
		}
		switch n := e.(type) {
		case *ir.Self:
			if !inline && !allowSelf {
				report("Self outside an inline body")
			}
		case *ir.Base:
			if !inline {
				report("Base outside an inline body")
			}
		case *ir.Hole:
			if !inline {
				report("Hole outside an inline body")
			}
		case *ir.FieldGet:
			report("unresolved FieldGet reached the invalid-form check")
			walk(n.Object)
		case *ir.FieldSet:
			report("unresolved FieldSet reached the invalid-form check")
			walk(n.Object)
			walk(n.Value)
		case *ir.Let:
			if !inline {
				report("Let/LetRec outside an inline body")
			}
			for _, b := range n.Bindings {
				walk(b.Value)
			}
			walk(n.Body)
		case *ir.StatementExpr:
			if !inline {
				report("StatementExpr outside an inline body")
			}
		case *ir.Await:
			report("unresolved Await reached the invalid-form check")
			walk(n.Value)
		case *ir.NamedParameter:
			report("unresolved NamedParameter reached the invalid-form check")
			walk(n.Value)
		case *ir.RefOrOutParameter:
			report("unresolved RefOrOutParameter reached the invalid-form check")
			walk(n.Value)
		case *ir.Coalesce:
			report("unresolved Coalesce reached the invalid-form check")
			walk(n.Left)
			walk(n.Right)
		case *ir.TypeCheck:
			report("unresolved TypeCheck reached the invalid-form check")
			walk(n.Value)
		default:
			rewriteChildren(e, func(c ir.Expr) ir.Expr { walk(c); return c })
		}
	}
	walk(e)
	return out
}
