package corejs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-netjs/corejs/ir"
	"github.com/go-netjs/corejs/jsast"
	"github.com/go-netjs/corejs/metadata"
)

func TestRemoveRedundantLet(t *testing.T) {
	se := &jsast.StatementExpr{
		Stmts: []jsast.Stmt{&jsast.VarDecl{Kind: jsast.VarConst, Name: "x", Value: jsast.IntLit{Value: 1}}},
		Value: &jsast.Ident{Name: "x"},
	}
	got := mapExpr(se, removeRedundantLet)
	assert.Equal(t, "1", jsast.Dump(got))
}

func TestRemoveRedundantLet_KeepsPrecedingBindings(t *testing.T) {
	se := &jsast.StatementExpr{
		Stmts: []jsast.Stmt{
			&jsast.VarDecl{Kind: jsast.VarConst, Name: "a", Value: jsast.IntLit{Value: 1}},
			&jsast.VarDecl{Kind: jsast.VarConst, Name: "b", Value: jsast.IntLit{Value: 2}},
		},
		Value: &jsast.Ident{Name: "b"},
	}
	got := mapExpr(se, removeRedundantLet)
	result, ok := got.(*jsast.StatementExpr)
	assert.True(t, ok)
	assert.Len(t, result.Stmts, 1)
	assert.Equal(t, "2", jsast.Dump(result.Value))
}

func TestRemoveRedundantLet_LeavesUnrelatedValueAlone(t *testing.T) {
	se := &jsast.StatementExpr{
		Stmts: []jsast.Stmt{&jsast.VarDecl{Kind: jsast.VarConst, Name: "x", Value: jsast.IntLit{Value: 1}}},
		Value: &jsast.Ident{Name: "y"},
	}
	got := removeRedundantLet(se)
	assert.Same(t, se, got)
}

func TestCleanRuntimeNoop(t *testing.T) {
	seq := &jsast.Sequence{Exprs: []jsast.Expr{jsast.IntLit{Value: 9}}}
	assert.Equal(t, jsast.Expr(jsast.IntLit{Value: 9}), cleanRuntimeNoop(seq))

	multi := &jsast.Sequence{Exprs: []jsast.Expr{jsast.IntLit{Value: 1}, jsast.IntLit{Value: 2}}}
	assert.Same(t, multi, cleanRuntimeNoop(multi))

	empty := &jsast.StatementExpr{Value: jsast.IntLit{Value: 5}}
	assert.Equal(t, jsast.Expr(jsast.IntLit{Value: 5}), cleanRuntimeNoop(empty))
}

func TestFlattenNestedStatementExpr(t *testing.T) {
	outer := &jsast.StatementExpr{
		Stmts: []jsast.Stmt{&jsast.VarDecl{Kind: jsast.VarConst, Name: "a", Value: jsast.IntLit{Value: 1}}},
		Value: &jsast.StatementExpr{
			Stmts: []jsast.Stmt{&jsast.VarDecl{Kind: jsast.VarConst, Name: "b", Value: jsast.IntLit{Value: 2}}},
			Value: &jsast.Ident{Name: "b"},
		},
	}
	got := flattenNestedStatementExpr(outer).(*jsast.StatementExpr)
	assert.Len(t, got.Stmts, 2)
	assert.Equal(t, "b", jsast.Dump(got.Value))
}

func TestCollectCurried_TwoArg(t *testing.T) {
	// λa.λb. f(a, b)
	fn := &jsast.Function{
		Params: []string{"a"},
		Body: []jsast.Stmt{&jsast.Return{Value: &jsast.Function{
			Params: []string{"b"},
			Body: []jsast.Stmt{&jsast.Return{Value: &jsast.Call{
				Callee: &jsast.Ident{Name: "f"},
				Args:   []jsast.Expr{&jsast.Ident{Name: "a"}, &jsast.Ident{Name: "b"}},
			}}},
		}}},
	}
	got := collectCurried(fn)
	assert.Equal(t, "Runtime.Curried2(f, 2)", jsast.Dump(got))
}

func TestCollectCurried_WithLeadingArgs(t *testing.T) {
	// λa.λb. f(x, a, b) — x is a leading, already-bound argument.
	fn := &jsast.Function{
		Params: []string{"a"},
		Body: []jsast.Stmt{&jsast.Return{Value: &jsast.Function{
			Params: []string{"b"},
			Body: []jsast.Stmt{&jsast.Return{Value: &jsast.Call{
				Callee: &jsast.Ident{Name: "f"},
				Args: []jsast.Expr{
					&jsast.Ident{Name: "x"},
					&jsast.Ident{Name: "a"},
					&jsast.Ident{Name: "b"},
				},
			}}},
		}}},
	}
	got := collectCurried(fn)
	assert.Equal(t, "Runtime.CurriedA(f, 2, [x])", jsast.Dump(got))
}

func TestCollectCurried_NotCurriedShapeUnchanged(t *testing.T) {
	fn := &jsast.Function{
		Params: []string{"a"},
		Body:   []jsast.Stmt{&jsast.Return{Value: &jsast.Ident{Name: "a"}}},
	}
	got := collectCurried(fn)
	assert.Same(t, fn, got)
}

func TestOptimize_InlineStopsAfterLetRemovalAndFlatten(t *testing.T) {
	tr := &Translator{}
	se := &jsast.StatementExpr{
		Stmts: []jsast.Stmt{&jsast.VarDecl{Kind: jsast.VarConst, Name: "x", Value: jsast.IntLit{Value: 3}}},
		Value: &jsast.Ident{Name: "x"},
	}
	got := tr.Optimize(se, true)
	assert.Equal(t, "3", jsast.Dump(got))
}

func TestOptimizeTop_SkipsCurryingForCtor(t *testing.T) {
	tr := &Translator{}
	fn := &jsast.Function{
		Params: []string{"a"},
		Body: []jsast.Stmt{&jsast.Return{Value: &jsast.Function{
			Params: []string{"b"},
			Body: []jsast.Stmt{&jsast.Return{Value: &jsast.Call{
				Callee: &jsast.Ident{Name: "f"},
				Args:   []jsast.Expr{&jsast.Ident{Name: "a"}, &jsast.Ident{Name: "b"}},
			}}},
		}}},
	}
	got := tr.OptimizeTop(fn, true)
	_, stillFn := got.(*jsast.Function)
	assert.True(t, stillFn, "constructor bodies must not be collapsed into Runtime.Curried*")
}

func TestOptimizeTop_CollectsCurryingForOrdinaryMethod(t *testing.T) {
	tr := &Translator{}
	fn := &jsast.Function{
		Params: []string{"a"},
		Body: []jsast.Stmt{&jsast.Return{Value: &jsast.Function{
			Params: []string{"b"},
			Body: []jsast.Stmt{&jsast.Return{Value: &jsast.Call{
				Callee: &jsast.Ident{Name: "f"},
				Args:   []jsast.Expr{&jsast.Ident{Name: "a"}, &jsast.Ident{Name: "b"}},
			}}},
		}}},
	}
	got := tr.OptimizeTop(fn, false)
	assert.Equal(t, "Runtime.Curried2(f, 2)", jsast.Dump(got))
}

func TestCheckInvalidForms_SelfOutsideInline(t *testing.T) {
	diags := CheckInvalidForms(&ir.Self{}, false, false)
	assert := assert.New(t)
	assert.Len(diags, 1)
	assert.Equal(metadata.SourceError, diags[0].Kind)
}

func TestCheckInvalidForms_SelfInsideInlineIsFine(t *testing.T) {
	diags := CheckInvalidForms(&ir.Self{}, true, false)
	assert.Empty(t, diags)
}

func TestCheckInvalidForms_SelfOutsideInlineAllowedForStaticConstructor(t *testing.T) {
	diags := CheckInvalidForms(&ir.Self{}, false, true)
	assert.Empty(t, diags)
}

func TestCheckInvalidForms_RecursesIntoChildren(t *testing.T) {
	expr := &ir.Conditional{
		Cond: &ir.BoolLit{Value: true},
		Then: &ir.Self{},
		Else: &ir.Hole{},
	}
	diags := CheckInvalidForms(expr, false, false)
	assert.Len(t, diags, 2)
}
