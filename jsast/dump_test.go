package jsast

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertDump fails with a unified diff of got-vs-want when a Dump rendering
// doesn't match, since a one-line string diff is otherwise unreadable once
// the expression nests more than a couple of levels deep.
func assertDump(t *testing.T, want string, e Expr) {
	t.Helper()
	got := Dump(e)
	if got == want {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	require.NoError(t, err)
	t.Fatalf("Dump mismatch:\n%s", diff)
}

func TestDump_Literals(t *testing.T) {
	assertDump(t, "undefined", Undefined{})
	assertDump(t, "null", Null{})
	assertDump(t, "42", IntLit{Value: 42})
	assertDump(t, "true", BoolLit{Value: true})
	assertDump(t, `"hi"`, StringLit{Value: "hi"})
	assertDump(t, "<error:bad>", ErrorPlaceholder{Reason: "bad"})
}

func TestDump_Composite(t *testing.T) {
	e := &BinaryExpr{
		Op:   "+",
		Left: &Ident{Name: "a"},
		Right: &Call{
			Callee: &Member{Object: &Ident{Name: "Math"}, Name: "abs"},
			Args:   []Expr{IntLit{Value: -1}},
		},
	}
	assertDump(t, "(a + Math.abs(-1))", e)
}

func TestDump_ArrayAndObject(t *testing.T) {
	arr := Array{Elements: []Expr{IntLit{Value: 1}, IntLit{Value: 2}}}
	assertDump(t, "[1, 2]", arr)

	obj := Object{Props: []ObjectProp{{Name: "a", Value: IntLit{Value: 1}}}}
	assertDump(t, "{a: 1}", obj)
}

func TestDump_StatementExpr(t *testing.T) {
	se := &StatementExpr{
		Stmts: []Stmt{&VarDecl{Kind: VarConst, Name: "x", Value: IntLit{Value: 1}}},
		Value: &Ident{Name: "x"},
	}
	assertDump(t, "(stmt-expr:1;x)", se)
}

// TestDump_Idempotent asserts the property spec.md §8.3 cares about: dumping
// the same tree twice yields byte-identical output, since Dump is pure and
// never consults external state.
func TestDump_Idempotent(t *testing.T) {
	e := &Conditional{
		Cond: &BinaryExpr{Op: "===", Left: &Ident{Name: "x"}, Right: Null{}},
		Then: Undefined{},
		Else: &Ident{Name: "x"},
	}
	assert.Equal(t, Dump(e), Dump(e))
}
