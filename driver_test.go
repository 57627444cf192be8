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

func TestRun_CompilesQueuedMethod(t *testing.T) {
	store := metadata.NewMemoryStore()
	ref := ir.MemberRef{Type: ir.Entity{ID: "T"}, Name: "five"}
	info := metadata.MemberInfo{Ref: ref, Kind: metadata.Static{Addr: ir.NewAddress("T", "five")}}
	store.DefineMethod(ref, metadata.Compiling{Info: info, Body: &ir.IntLit{Value: 5}})
	store.EnqueueMethod(ref)

	diags := Run(store, graph.NewMemory())
	assert.Empty(t, diags)

	compiled, ok := store.LookupMethodInfo(ref).(metadata.Compiled)
	require.True(t, ok)
	assert.Equal(t, "5", jsast.Dump(compiled.Body.(jsast.Expr)))
}

func TestRun_ConstructorAndEntryPointQueuesDrain(t *testing.T) {
	store := metadata.NewMemoryStore()

	ctorRef := ir.MemberRef{Type: ir.Entity{ID: "T"}, Name: ".ctor"}
	ctorInfo := metadata.MemberInfo{Ref: ctorRef, Kind: metadata.Constructor{Addr: ir.NewAddress("T")}}
	store.DefineConstructor(ctorRef, metadata.Compiling{Info: ctorInfo, Body: &ir.IntLit{Value: 1}})
	store.EnqueueConstructor(ctorRef)

	entryRef := ir.MemberRef{Type: ir.Entity{ID: "Program"}, Name: "Main"}
	entryInfo := metadata.MemberInfo{Ref: entryRef, Kind: metadata.Static{Addr: ir.NewAddress("Program", "Main")}}
	store.DefineMethod(entryRef, metadata.Compiling{Info: entryInfo, Body: &ir.BoolLit{Value: true}})
	store.SetEntryPoint(entryRef)

	diags := Run(store, graph.NewMemory())
	assert.Empty(t, diags)

	ctorCompiled, ok := store.LookupConstructorInfo(ctorRef).(metadata.Compiled)
	require.True(t, ok)
	assert.Equal(t, "1", jsast.Dump(ctorCompiled.Body.(jsast.Expr)))

	entryCompiled, ok := store.LookupMethodInfo(entryRef).(metadata.Compiled)
	require.True(t, ok)
	assert.Equal(t, "true", jsast.Dump(entryCompiled.Body.(jsast.Expr)))
}

func TestRun_StaticConstructorResolvesSelf(t *testing.T) {
	store := metadata.NewMemoryStore()
	addr := ir.NewAddress("T")
	store.DefineClass(ir.Entity{ID: "T"}, metadata.ClassInfo{Addr: addr, HasCctor: true})

	ref := ir.MemberRef{Type: ir.Entity{ID: "T"}, Name: ".cctor"}
	info := metadata.MemberInfo{Ref: ref, Kind: metadata.Static{Addr: addr}}
	store.DefineMethod(ref, metadata.Compiling{Info: info, Body: &ir.Self{}})
	store.EnqueueStaticConstructor(ref)

	diags := Run(store, graph.NewMemory())
	assert.Empty(t, diags)

	compiled, ok := store.LookupMethodInfo(ref).(metadata.Compiled)
	require.True(t, ok)
	assert.Equal(t, "T", jsast.Dump(compiled.Body.(jsast.Expr)))
}

func TestRun_InlineDelayedTransformDemotesToNotCompiledInline(t *testing.T) {
	store := metadata.NewMemoryStore()
	ref := ir.MemberRef{Type: ir.Entity{ID: "T"}, Name: "ambiguousTrait"}
	info := metadata.MemberInfo{Ref: ref, Kind: metadata.Inline{}}
	body := &ir.TraitCall{
		CandidateTypes: []ir.ConcreteType{{Entity: ir.Entity{ID: "A"}}, {Entity: ir.Entity{ID: "B"}}},
		MethodName:     "Go",
	}
	for _, id := range []string{"A", "B"} {
		goRef := ir.MemberRef{Type: ir.Entity{ID: id}, Name: "Go"}
		store.DefineMethod(goRef, metadata.Compiled{Info: metadata.MemberInfo{Ref: goRef, Kind: metadata.Static{Addr: ir.NewAddress(id, "Go")}}})
	}
	store.DefineMethod(ref, metadata.Compiling{Info: info, Body: body})
	store.EnqueueMethod(ref)

	diags := Run(store, graph.NewMemory())
	assert.Empty(t, diags, "a delayed transform is not itself an error")

	compiled, ok := store.LookupMethodInfo(ref).(metadata.Compiled)
	require.True(t, ok)
	assert.Equal(t, metadata.NotCompiledInline{}, compiled.Info.Kind)
	assert.Same(t, body, compiled.Body)
}

func TestRun_NoWorkReturnsNoDiagnostics(t *testing.T) {
	store := metadata.NewMemoryStore()
	diags := Run(store, graph.NewMemory())
	assert.Empty(t, diags)
}
