// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package corejs

import (
	"fmt"
	"io"

	"github.com/go-netjs/corejs/graph"
	"github.com/go-netjs/corejs/ir"
	"github.com/go-netjs/corejs/jsast"
	"github.com/go-netjs/corejs/metadata"
)

// Translator is a stateful, re-entrant recursive-descent rewriter from the
// input IR to the output IR (§4.1). Every sub-translation (inline bodies,
// macro-resolved calls, nested compile-on-demand) forks a new Translator
// carrying updated, but not mutably-shared, per-invocation state — mirrors
// the teacher's Compiler.fork threading a child Compiler through nested
// compilation (compiler.go).
type Translator struct {
	store metadata.Store
	graph graph.Graph // nil when no graph is attached; edge recording is then a no-op
	diag  *Collector

	currentNode   graph.Node
	currentMember ir.MemberRef

	currentIsInline     bool
	selfAddress         *ir.Address
	hasDelayedTransform bool
	currentFuncArgs     []ir.FuncArgTag

	// generics is the concatenated type.Generics ++ method.Generics list
	// active while resolving ir.TypeParam references inside an inline body
	// being expanded by NotCompiledInline (§4.1.2, §4.2).
	generics []ir.Type

	inProgress []ir.MemberRef

	trace  io.Writer
	indent int
}

// New returns a Translator bound to a single member, as the driver does for
// every compiling-member record it pulls (§4.5).
func New(store metadata.Store, g graph.Graph, member ir.MemberRef, node graph.Node) *Translator {
	return &Translator{
		store:         store,
		graph:         g,
		diag:          newCollector(store, member),
		currentNode:   node,
		currentMember: member,
		inProgress:    []ir.MemberRef{member},
	}
}

// WithTrace attaches a trace sink, mirroring the teacher's
// CompilerOptions.Trace/TraceCompiler mechanism (compiler.go).
func (t *Translator) WithTrace(w io.Writer) *Translator {
	t.trace = w
	return t
}

// fork produces a sub-translator for a nested translation (an inline body,
// a macro-resolved expression, an on-demand compile of a forward-referenced
// member). State the spec calls out as "per-invocation" is copied, not
// shared, so edge attribution and the inProgress stack stay correct when
// nesting returns (§4.1, §5).
func (t *Translator) fork(member ir.MemberRef, node graph.Node, isInline bool, selfAddress *ir.Address, funcArgs []ir.FuncArgTag, generics []ir.Type, pushInProgress bool) *Translator {
	inProgress := t.inProgress
	if pushInProgress {
		inProgress = append(append([]ir.MemberRef(nil), t.inProgress...), member)
	}
	child := &Translator{
		store:               t.store,
		graph:               t.graph,
		diag:                newCollector(t.store, member),
		currentNode:         node,
		currentMember:       member,
		currentIsInline:     isInline,
		selfAddress:         selfAddress,
		currentFuncArgs:     funcArgs,
		generics:            generics,
		inProgress:          inProgress,
		trace:               t.trace,
		indent:              t.indent + 1,
	}
	return child
}

// inProgressIndex returns the position of member on the inProgress stack, or
// -1 (§4.2 cycle detection).
func (t *Translator) inProgressIndex(member ir.MemberRef) int {
	for i, m := range t.inProgress {
		if m == member {
			return i
		}
	}
	return -1
}

func (t *Translator) tracef(format string, args ...any) {
	if t.trace == nil {
		return
	}
	dots := "...................................................................."
	n := t.indent * 2
	if n > len(dots) {
		n = len(dots)
	}
	fmt.Fprintf(t.trace, "%s%s\n", dots[:n], fmt.Sprintf(format, args...))
}

// hasGraph reports whether edge recording is active (§3 "HasGraph gates
// edge-recording").
func (t *Translator) hasGraph() bool { return t.graph != nil }

func (t *Translator) addEdge(to graph.Node) {
	if t.hasGraph() {
		t.graph.AddEdge(t.currentNode, to)
	}
}

// Translate is the polymorphic recursive descent over the expression IR
// (§4.1). Pass-through rules recurse structurally; the non-obvious rewrite
// rules are implemented in call.go, delegate.go, traitcall.go, typecheck.go,
// field.go, and customtype.go.
func (t *Translator) Translate(e ir.Expr) jsast.Expr {
	if e == nil {
		return jsast.Undefined{}
	}
	t.tracef("translate %T", e)

	switch n := e.(type) {
	case *ir.IntLit:
		return jsast.IntLit{Value: n.Value}
	case *ir.FloatLit:
		return jsast.FloatLit{Value: n.Value}
	case *ir.DecimalLit:
		return jsast.DecimalLit{Value: n.Value}
	case *ir.BoolLit:
		return jsast.BoolLit{Value: n.Value}
	case *ir.StringLit:
		return jsast.StringLit{Value: n.Value}
	case *ir.Undefined:
		return jsast.Undefined{}
	case *ir.Hole:
		// Legal only inside an inline body under construction; the
		// invalid-form checker (optimize.go) rejects it elsewhere.
		return jsast.Undefined{}
	case *ir.ErrorPlaceholder:
		return jsast.ErrorPlaceholder{Reason: n.Reason}

	case *ir.Var:
		return &jsast.Ident{Name: n.Ident.Name}

	case *ir.Let:
		return t.translateLet(n)

	case *ir.Lambda:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Name
		}
		return &jsast.Function{Params: params, Body: []jsast.Stmt{&jsast.Return{Value: t.Translate(n.Body)}}}

	case *ir.Apply:
		args := make([]jsast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = t.Translate(a)
		}
		return &jsast.Call{Callee: t.Translate(n.Func), Args: args}

	case *ir.Conditional:
		return &jsast.Conditional{Cond: t.Translate(n.Cond), Then: t.Translate(n.Then), Else: t.Translate(n.Else)}

	case *ir.Sequential:
		exprs := make([]jsast.Expr, len(n.Exprs))
		for i, x := range n.Exprs {
			exprs[i] = t.Translate(x)
		}
		return &jsast.Sequence{Exprs: exprs}

	case *ir.ObjectLit:
		props := make([]jsast.ObjectProp, len(n.Props))
		for i, p := range n.Props {
			props[i] = jsast.ObjectProp{Name: p.Name, Value: t.Translate(p.Value)}
		}
		return jsast.Object{Props: props}

	case *ir.ArrayLit:
		elems := make([]jsast.Expr, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = t.Translate(el)
		}
		return jsast.Array{Elements: elems}

	case *ir.FieldGet:
		return t.translateFieldGet(n)
	case *ir.FieldSet:
		return t.translateFieldSet(n)

	case *ir.ItemGet:
		return &jsast.Index{Object: t.Translate(n.Object), Key: t.translateItemKey(n.Key)}
	case *ir.ItemSet:
		return &jsast.Assign{
			Target: &jsast.Index{Object: t.Translate(n.Object), Key: t.translateItemKey(n.Key)},
			Value:  t.Translate(n.Value),
		}

	case *ir.BinaryExpr:
		return &jsast.BinaryExpr{Op: string(n.Op), Left: t.Translate(n.Left), Right: t.Translate(n.Right)}
	case *ir.UnaryExpr:
		prefix := n.Op != ir.OpIncr && n.Op != ir.OpDecr
		return &jsast.UnaryExpr{Op: string(n.Op), Prefix: prefix, Operand: t.Translate(n.Operand)}

	case *ir.GlobalAccess:
		return jsast.GlobalAccess{Path: n.Addr.Outermost()}

	case *ir.This:
		return jsast.This{}
	case *ir.Self:
		if t.selfAddress == nil {
			t.diag.error(metadata.SourceError, "Self used outside a static-constructor-bound member")
			return jsast.ErrorPlaceholder{Reason: "self without address"}
		}
		return jsast.GlobalAccess{Path: t.selfAddress.Outermost()}
	case *ir.Base:
		// Base only makes sense as a Call/Ctor receiver; reaching here means
		// it surfaced somewhere TransformCall/TransformCtor didn't consume it.
		return jsast.This{}

	case *ir.NewExpr:
		args := make([]jsast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = t.Translate(a)
		}
		return &jsast.New{Callee: jsast.GlobalAccess{Path: n.Addr.Outermost()}, Args: args}

	case *ir.Call:
		return t.TransformCall(n)
	case *ir.Ctor:
		return t.TransformCtor(n)
	case *ir.BaseCtor:
		return t.TransformBaseCtor(n)

	case *ir.NewDelegate:
		return t.TransformNewDelegate(n)

	case *ir.CopyCtor:
		return t.translateCopyCtor(n)

	case *ir.NewRecord:
		return t.translateNewRecord(n)
	case *ir.NewUnionCase:
		return t.TransformNewUnionCase(n)
	case *ir.UnionCaseTest:
		return t.TransformUnionCaseTest(n)
	case *ir.UnionCaseGet:
		return t.TransformUnionCaseGet(n)
	case *ir.UnionCaseTag:
		return t.translateUnionCaseTag(n)

	case *ir.CctorTrigger:
		return t.TransformCctor(n.Type)

	case *ir.TypeCheck:
		return t.TransformTypeCheck(n)

	case *ir.TraitCall:
		return t.TransformTraitCall(n)

	case *ir.Await:
		// Await has no direct JS expression shape in this IR; callers are
		// expected to desugar async bodies before reaching this node
		// (outside the translator's scope, §1). Pass the operand through so
		// a later pass can detect and reject it via the invalid-form check.
		return t.Translate(n.Value)

	case *ir.NamedParameter:
		return t.Translate(n.Value)
	case *ir.RefOrOutParameter:
		return t.Translate(n.Value)

	case *ir.Coalesce:
		left := t.Translate(n.Left)
		return &jsast.Conditional{
			Cond: &jsast.BinaryExpr{Op: "!==", Left: left, Right: jsast.Null{}},
			Then: left,
			Else: t.Translate(n.Right),
		}

	case *ir.StatementExpr:
		return &jsast.StatementExpr{Stmts: []jsast.Stmt{t.TranslateStmt(n.Stmt)}, Value: jsast.Undefined{}}

	case *ir.OptimizedFSharpArg:
		return t.Translate(n.Value)

	default:
		t.diag.error(metadata.SourceError, "unhandled expression node %T", e)
		return jsast.ErrorPlaceholder{Reason: fmt.Sprintf("unhandled %T", e)}
	}
}

func (t *Translator) translateItemKey(k ir.ItemKey) jsast.Expr {
	if k.Str != nil {
		return jsast.StringLit{Value: *k.Str}
	}
	if k.Int != nil {
		return jsast.IntLit{Value: int64(*k.Int)}
	}
	return jsast.Undefined{}
}

// translateLet lowers a let/letrec binding list into declarations followed
// by the body, wrapped in a StatementExpr (let-removal in optimize.go
// collapses the `{const x = v; x}` shape back into `v`).
func (t *Translator) translateLet(n *ir.Let) jsast.Expr {
	stmts := make([]jsast.Stmt, 0, len(n.Bindings))
	kind := jsast.VarLet
	if !n.Recur {
		kind = jsast.VarConst
	}
	for _, b := range n.Bindings {
		stmts = append(stmts, &jsast.VarDecl{Kind: kind, Name: b.Ident.Name, Value: t.Translate(b.Value)})
	}
	return &jsast.StatementExpr{Stmts: stmts, Value: t.Translate(n.Body)}
}

func (t *Translator) translateCopyCtor(n *ir.CopyCtor) jsast.Expr {
	// customtype.go's union-case encoding emits its own Runtime.SetPrototype
	// call and builds no CopyCtor; an ir.CopyCtor in the input still needs
	// its target prototype resolved by address.
	addr, _, ok := t.store.TryLookupClassAddressOrCustomType(n.Type.Entity)
	if !ok {
		t.diag.error(metadata.TypeNotFound, "%s has no class address for CopyCtor", n.Type.Entity.ID)
		return jsast.ErrorPlaceholder{Reason: "copy-ctor target not found"}
	}
	return &jsast.Call{
		Callee: jsast.GlobalAccess{Path: []string{"Runtime", "SetPrototype"}},
		Args:   []jsast.Expr{t.Translate(n.Value), jsast.GlobalAccess{Path: addr.Outermost()}},
	}
}

// TranslateStmt is the structural recursion over the statement IR.
func (t *Translator) TranslateStmt(s ir.Stmt) jsast.Stmt {
	if s == nil {
		return nil
	}
	switch n := s.(type) {
	case *ir.Block:
		stmts := make([]jsast.Stmt, len(n.Stmts))
		for i, st := range n.Stmts {
			stmts[i] = t.TranslateStmt(st)
		}
		return &jsast.Block{Stmts: stmts}

	case *ir.Return:
		return &jsast.Return{Value: t.Translate(n.Value)}

	case *ir.Throw:
		return &jsast.Throw{Value: t.Translate(n.Value)}

	case *ir.Try:
		jt := &jsast.Try{Body: t.translateBlock(n.Body)}
		if n.Catch != nil {
			param := ""
			if n.Catch.Param != nil {
				param = n.Catch.Param.Name
			}
			jt.Catch = &jsast.Catch{Param: param, Body: t.translateBlock(n.Catch.Body)}
		}
		if n.Finally != nil {
			jt.Finally = t.translateBlock(n.Finally)
		}
		return jt

	case *ir.While:
		return &jsast.While{Cond: t.Translate(n.Cond), Body: t.translateBlock(n.Body)}

	case *ir.For:
		return &jsast.For{
			Init: t.TranslateStmt(n.Init),
			Cond: t.Translate(n.Cond),
			Post: t.TranslateStmt(n.Post),
			Body: t.translateBlock(n.Body),
		}

	case *ir.If:
		return &jsast.If{Cond: t.Translate(n.Cond), Then: t.translateBlock(n.Then), Else: t.TranslateStmt(n.Else)}

	case *ir.Switch:
		cases := make([]jsast.SwitchCase, len(n.Cases))
		for i, c := range n.Cases {
			vals := make([]jsast.Expr, len(c.Values))
			for j, v := range c.Values {
				vals[j] = t.Translate(v)
			}
			body := make([]jsast.Stmt, len(c.Body))
			for j, bs := range c.Body {
				body[j] = t.TranslateStmt(bs)
			}
			cases[i] = jsast.SwitchCase{Values: vals, Body: body}
		}
		return &jsast.Switch{Value: t.Translate(n.Value), Cases: cases}

	case *ir.Break:
		return jsast.Break{Label: n.Label}
	case *ir.Continue:
		return jsast.Continue{Label: n.Label}

	case *ir.Label:
		return &jsast.Labeled{Name: n.Name, Stmt: t.TranslateStmt(n.Stmt)}

	case *ir.ExprStmt:
		return &jsast.ExprStmt{Value: t.Translate(n.Value)}

	case *ir.VarDecl:
		kind := jsast.VarLet
		if !n.Ident.Mutable {
			kind = jsast.VarConst
		}
		return &jsast.VarDecl{Kind: kind, Name: n.Ident.Name, Value: t.Translate(n.Value)}

	default:
		t.diag.error(metadata.SourceError, "unhandled statement node %T", s)
		return &jsast.ExprStmt{Value: jsast.ErrorPlaceholder{Reason: fmt.Sprintf("unhandled %T", s)}}
	}
}

func (t *Translator) translateBlock(b *ir.Block) *jsast.Block {
	if b == nil {
		return &jsast.Block{}
	}
	stmts := make([]jsast.Stmt, len(b.Stmts))
	for i, st := range b.Stmts {
		stmts[i] = t.TranslateStmt(st)
	}
	return &jsast.Block{Stmts: stmts}
}
