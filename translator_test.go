package corejs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-netjs/corejs/graph"
	"github.com/go-netjs/corejs/ir"
	"github.com/go-netjs/corejs/jsast"
	"github.com/go-netjs/corejs/metadata"
)

func newTestTranslator(store metadata.Store) *Translator {
	member := ir.MemberRef{Type: ir.Entity{ID: "T"}, Name: "m"}
	return New(store, nil, member, graph.MethodNode{Type: "T", Method: "m"})
}

func TestTranslate_Literals(t *testing.T) {
	tr := newTestTranslator(metadata.NewMemoryStore())

	tests := []struct {
		name string
		in   ir.Expr
		want string
	}{
		{"int", &ir.IntLit{Value: 7}, "7"},
		{"bool", &ir.BoolLit{Value: true}, "true"},
		{"string", &ir.StringLit{Value: "hi"}, `"hi"`},
		{"undefined", &ir.Undefined{}, "undefined"},
		{"nil expr", nil, "undefined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, jsast.Dump(tr.Translate(tt.in)))
		})
	}
}

func TestTranslate_BinaryAndVar(t *testing.T) {
	tr := newTestTranslator(metadata.NewMemoryStore())
	x := ir.NewIdent("x", ir.NoPos)
	e := &ir.BinaryExpr{Op: ir.OpAdd, Left: &ir.Var{Ident: x}, Right: &ir.IntLit{Value: 1}}
	assert.Equal(t, "(x + 1)", jsast.Dump(tr.Translate(e)))
}

func TestTranslate_Conditional(t *testing.T) {
	tr := newTestTranslator(metadata.NewMemoryStore())
	e := &ir.Conditional{
		Cond: &ir.BoolLit{Value: true},
		Then: &ir.IntLit{Value: 1},
		Else: &ir.IntLit{Value: 2},
	}
	assert.Equal(t, "true ? 1 : 2", jsast.Dump(tr.Translate(e)))
}

func TestTranslate_Lambda(t *testing.T) {
	tr := newTestTranslator(metadata.NewMemoryStore())
	p := ir.NewIdent("a", ir.NoPos)
	e := &ir.Lambda{Params: []*ir.Ident{p}, Body: &ir.Var{Ident: p}}
	got := tr.Translate(e).(*jsast.Function)
	assert.Equal(t, []string{"a"}, got.Params)
	require.Len(t, got.Body, 1)
	ret, ok := got.Body[0].(*jsast.Return)
	require.True(t, ok)
	assert.Equal(t, "a", jsast.Dump(ret.Value))
}

func TestTranslate_Let(t *testing.T) {
	tr := newTestTranslator(metadata.NewMemoryStore())
	x := ir.NewIdent("x", ir.NoPos)
	e := &ir.Let{Bindings: []ir.LetBinding{{Ident: x, Value: &ir.IntLit{Value: 5}}}, Body: &ir.Var{Ident: x}}
	assert.Equal(t, "(stmt-expr:1;x)", jsast.Dump(tr.Translate(e)))
}

func TestTranslate_SelfWithoutAddressErrors(t *testing.T) {
	store := metadata.NewMemoryStore()
	tr := newTestTranslator(store)
	got := tr.Translate(&ir.Self{})

	_, isPlaceholder := got.(jsast.ErrorPlaceholder)
	assert.True(t, isPlaceholder)

	diags := store.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, metadata.SourceError, diags[0].Kind)
}

func TestTranslate_SelfWithAddressResolves(t *testing.T) {
	tr := newTestTranslator(metadata.NewMemoryStore())
	addr := ir.NewAddress("T")
	tr.selfAddress = &addr
	got := tr.Translate(&ir.Self{})
	assert.Equal(t, "T", jsast.Dump(got))
}

func TestTranslate_GlobalAccess(t *testing.T) {
	tr := newTestTranslator(metadata.NewMemoryStore())
	addr := ir.NewAddress("Core", "Option", "None")
	got := tr.Translate(&ir.GlobalAccess{Addr: addr})
	assert.Equal(t, "Core.Option.None", jsast.Dump(got))
}

func TestTranslate_SequentialAndObjectArrayLit(t *testing.T) {
	tr := newTestTranslator(metadata.NewMemoryStore())

	seq := &ir.Sequential{Exprs: []ir.Expr{&ir.IntLit{Value: 1}, &ir.IntLit{Value: 2}}}
	assert.Equal(t, "(1, 2)", jsast.Dump(tr.Translate(seq)))

	obj := &ir.ObjectLit{Props: []ir.ObjectProp{{Name: "a", Value: &ir.IntLit{Value: 1}}}}
	assert.Equal(t, "{a: 1}", jsast.Dump(tr.Translate(obj)))

	arr := &ir.ArrayLit{Elements: []ir.Expr{&ir.IntLit{Value: 1}, &ir.IntLit{Value: 2}}}
	assert.Equal(t, "[1, 2]", jsast.Dump(tr.Translate(arr)))
}

func TestTranslate_CoalesceLowersToConditional(t *testing.T) {
	tr := newTestTranslator(metadata.NewMemoryStore())
	x := ir.NewIdent("x", ir.NoPos)
	e := &ir.Coalesce{Left: &ir.Var{Ident: x}, Right: &ir.IntLit{Value: 0}}
	assert.Equal(t, "(x !== null) ? x : 0", jsast.Dump(tr.Translate(e)))
}

func TestEmitRemoteCall_AddsReturnTypeDependencyClosure(t *testing.T) {
	g := graph.NewMemory()
	member := ir.MemberRef{Type: ir.Entity{ID: "T"}, Name: "m"}
	node := graph.MethodNode{Type: "T", Method: "m"}
	tr := New(metadata.NewMemoryStore(), g, member, node)

	returnType := ir.Type{Concrete: &ir.ConcreteType{
		Entity:   ir.Entity{ID: "Task"},
		Generics: []ir.Type{{Concrete: &ir.ConcreteType{Entity: ir.Entity{ID: "User"}}}},
	}}
	call := &ir.Call{
		Type:   ir.ConcreteType{Entity: ir.Entity{ID: "T"}},
		Method: ir.ConcreteMethod{Entity: ir.Entity{ID: "m"}, ReturnType: &returnType},
	}
	got := tr.emitRemoteCall(metadata.Remote{Kind: metadata.RemoteAsync, Handle: "T.m"}, call, nil, nil)

	assert.Equal(t, `Runtime.DefaultRemotingProvider.Async("T.m", [])`, jsast.Dump(got))
	assert.True(t, g.HasEdge(node, graph.AbstractMethodNode{Type: "$remote", Method: "Async"}))
	assert.True(t, g.HasEdge(node, graph.TypeNode{Type: "Task"}))
	assert.True(t, g.HasEdge(node, graph.TypeNode{Type: "User"}))
}

