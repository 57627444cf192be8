package corejs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-netjs/corejs/graph"
	"github.com/go-netjs/corejs/ir"
	"github.com/go-netjs/corejs/jsast"
	"github.com/go-netjs/corejs/metadata"
)

func TestTranslateNewRecord_PlainFields(t *testing.T) {
	store := metadata.NewMemoryStore()
	store.DefineCustomType(ir.Entity{ID: "Point"}, metadata.RecordInfo{
		Fields: []metadata.RecordField{{Name: "X", JSName: "x"}, {Name: "Y", JSName: "y"}},
	})
	tr := newTestTranslator(store)

	n := &ir.NewRecord{
		Type: ir.ConcreteType{Entity: ir.Entity{ID: "Point"}},
		Fields: []ir.ObjectProp{
			{Name: "X", Value: &ir.IntLit{Value: 1}},
			{Name: "Y", Value: &ir.IntLit{Value: 2}},
		},
	}
	got := tr.translateNewRecord(n)
	assert.Equal(t, "{x: 1, y: 2}", jsast.Dump(got))
}

func TestTranslateNewRecord_OptionalFieldWrapsDeleteEmptyFields(t *testing.T) {
	store := metadata.NewMemoryStore()
	store.DefineCustomType(ir.Entity{ID: "Maybe"}, metadata.RecordInfo{
		Fields: []metadata.RecordField{{Name: "V", JSName: "v", Optional: true}},
	})
	tr := newTestTranslator(store)

	n := &ir.NewRecord{
		Type:   ir.ConcreteType{Entity: ir.Entity{ID: "Maybe"}},
		Fields: []ir.ObjectProp{{Name: "V", Value: &ir.IntLit{Value: 1}}},
	}
	got := tr.translateNewRecord(n)
	assert.Equal(t, "Runtime.DeleteEmptyFields({v: 1})", jsast.Dump(got))
}

func TestTransformNewUnionCase_ObjectShaped(t *testing.T) {
	store := metadata.NewMemoryStore()
	store.DefineCustomType(ir.Entity{ID: "Shape"}, metadata.UnionInfo{
		Address: ir.NewAddress("Shape"),
		Cases: []metadata.UnionCaseInfo{
			{Name: "Circle", Fields: []string{"radius"}},
			{Name: "Square", Fields: []string{"side"}},
		},
	})
	tr := newTestTranslator(store)

	n := &ir.NewUnionCase{
		Type: ir.ConcreteType{Entity: ir.Entity{ID: "Shape"}},
		Case: "Square",
		Args: []ir.Expr{&ir.IntLit{Value: 4}},
	}
	got := tr.TransformNewUnionCase(n)
	assert.Equal(t, `{$: 1, $0: 4}`, jsast.Dump(got))
}

func TestTransformNewUnionCase_Singleton(t *testing.T) {
	store := metadata.NewMemoryStore()
	store.DefineCustomType(ir.Entity{ID: "Option"}, metadata.UnionInfo{
		Address: ir.NewAddress("Option"),
		Cases: []metadata.UnionCaseInfo{
			{Name: "Some", Fields: []string{"value"}},
			{Name: "None", Singleton: true},
		},
	})
	tr := newTestTranslator(store)

	n := &ir.NewUnionCase{Type: ir.ConcreteType{Entity: ir.Entity{ID: "Option"}}, Case: "None"}
	got := tr.TransformNewUnionCase(n)
	assert.Equal(t, `Option["None"]`, jsast.Dump(got))
}

func optionShapedUnion() metadata.UnionInfo {
	return metadata.UnionInfo{
		Address: ir.NewAddress("Option"),
		Cases: []metadata.UnionCaseInfo{
			{Name: "Some", Fields: []string{"value"}},
			{Name: "None", Singleton: true},
		},
	}
}

func TestTransformNewUnionCase_OptionShapedFlattensBearingCase(t *testing.T) {
	store := metadata.NewMemoryStore()
	store.DefineCustomType(ir.Entity{ID: "Option"}, optionShapedUnion())
	tr := newTestTranslator(store)

	n := &ir.NewUnionCase{
		Type: ir.ConcreteType{Entity: ir.Entity{ID: "Option"}},
		Case: "Some",
		Args: []ir.Expr{&ir.IntLit{Value: 4}},
	}
	got := tr.TransformNewUnionCase(n)
	// No {"$": tag, ...} wrapper: Some(4) collapses to its own payload.
	assert.Equal(t, "4", jsast.Dump(got))
}

func TestTransformUnionCaseTest_OptionShapedComparesAgainstNullSide(t *testing.T) {
	store := metadata.NewMemoryStore()
	store.DefineCustomType(ir.Entity{ID: "Option"}, optionShapedUnion())
	tr := newTestTranslator(store)
	v := &ir.Var{Ident: ir.NewIdent("v", ir.NoPos)}

	isSome := tr.TransformUnionCaseTest(&ir.UnionCaseTest{Type: ir.ConcreteType{Entity: ir.Entity{ID: "Option"}}, Value: v, Case: "Some"})
	assert.Equal(t, `(v !== Option["None"])`, jsast.Dump(isSome))

	isNone := tr.TransformUnionCaseTest(&ir.UnionCaseTest{Type: ir.ConcreteType{Entity: ir.Entity{ID: "Option"}}, Value: v, Case: "None"})
	assert.Equal(t, `(v === Option["None"])`, jsast.Dump(isNone))
}

func TestTransformUnionCaseGet_OptionShapedReadsRawValue(t *testing.T) {
	store := metadata.NewMemoryStore()
	store.DefineCustomType(ir.Entity{ID: "Option"}, optionShapedUnion())
	tr := newTestTranslator(store)

	got := tr.TransformUnionCaseGet(&ir.UnionCaseGet{
		Type: ir.ConcreteType{Entity: ir.Entity{ID: "Option"}}, Value: &ir.Var{Ident: ir.NewIdent("v", ir.NoPos)},
		Case: "Some", Field: "value",
	})
	assert.Equal(t, "v", jsast.Dump(got))
}

func TestTransformUnionCaseTest_NonErasedComparesTag(t *testing.T) {
	store := metadata.NewMemoryStore()
	store.DefineCustomType(ir.Entity{ID: "Shape"}, metadata.UnionInfo{
		Cases: []metadata.UnionCaseInfo{{Name: "Circle"}, {Name: "Square"}},
	})
	tr := newTestTranslator(store)

	n := &ir.UnionCaseTest{
		Type:  ir.ConcreteType{Entity: ir.Entity{ID: "Shape"}},
		Value: &ir.Var{Ident: ir.NewIdent("s", ir.NoPos)},
		Case:  "Square",
	}
	got := tr.TransformUnionCaseTest(n)
	assert.Equal(t, "(s.$ === 1)", jsast.Dump(got))
}

func TestTransformUnionCaseTest_ErasedFallsBackToTypeofObject(t *testing.T) {
	store := metadata.NewMemoryStore()
	store.DefineCustomType(ir.Entity{ID: "Json"}, metadata.UnionInfo{
		Erased: true,
		Cases:  []metadata.UnionCaseInfo{{Name: "Obj"}},
	})
	tr := newTestTranslator(store)

	n := &ir.UnionCaseTest{
		Type:  ir.ConcreteType{Entity: ir.Entity{ID: "Json"}},
		Value: &ir.Var{Ident: ir.NewIdent("v", ir.NoPos)},
		Case:  "Obj",
	}
	got := tr.TransformUnionCaseTest(n)
	// Dump concatenates a prefix unary operator directly against its operand
	// with no space, even for a word operator like "typeof" — a cosmetic
	// quirk of the debug renderer, not of the lowering itself.
	assert.Equal(t, `(typeofv === "object")`, jsast.Dump(got))
}

func TestTransformUnionCaseGet_ReadsPositionalField(t *testing.T) {
	store := metadata.NewMemoryStore()
	store.DefineCustomType(ir.Entity{ID: "Shape"}, metadata.UnionInfo{
		Cases: []metadata.UnionCaseInfo{
			{Name: "Square", Fields: []string{"side"}},
			{Name: "Circle", Fields: []string{"radius"}},
		},
	})
	tr := newTestTranslator(store)

	n := &ir.UnionCaseGet{
		Type:  ir.ConcreteType{Entity: ir.Entity{ID: "Shape"}},
		Value: &ir.Var{Ident: ir.NewIdent("s", ir.NoPos)},
		Case:  "Square",
		Field: "side",
	}
	got := tr.TransformUnionCaseGet(n)
	assert.Equal(t, "s.$0", jsast.Dump(got))
}

func TestTransformCctor_NoStaticConstructorYieldsUndefined(t *testing.T) {
	store := metadata.NewMemoryStore()
	tr := New(store, graph.NewMemory(), ir.MemberRef{Type: ir.Entity{ID: "T"}, Name: "m"}, graph.MethodNode{Type: "T", Method: "m"})
	got := tr.TransformCctor(ir.ConcreteType{Entity: ir.Entity{ID: "T"}})
	assert.Equal(t, "undefined", jsast.Dump(got))
}

func TestTransformCctor_TriggersStaticConstructor(t *testing.T) {
	store := metadata.NewMemoryStore()
	store.DefineClass(ir.Entity{ID: "T"}, metadata.ClassInfo{Addr: ir.NewAddress("T", ".cctor"), HasCctor: true})
	g := graph.NewMemory()
	node := graph.MethodNode{Type: "T", Method: "m"}
	tr := New(store, g, ir.MemberRef{Type: ir.Entity{ID: "T"}, Name: "m"}, node)

	got := tr.TransformCctor(ir.ConcreteType{Entity: ir.Entity{ID: "T"}})
	assert.Equal(t, "T..cctor()", jsast.Dump(got))
	assert.True(t, g.HasEdge(node, graph.TypeNode{Type: "T"}))
}
