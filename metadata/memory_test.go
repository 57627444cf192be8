package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-netjs/corejs/ir"
)

func TestMemoryStore_LookupMethodInfo(t *testing.T) {
	s := NewMemoryStore()
	ref := ir.MemberRef{Type: ir.Entity{ID: "List"}, Name: "Add"}

	_, ok := s.LookupMethodInfo(ref).(LookupMemberError)
	assert.True(t, ok, "unseeded lookup should report an error result")

	info := MemberInfo{Ref: ref, Kind: Instance{Name: "add"}}
	s.DefineMethod(ref, Compiling{Info: info, Body: &ir.IntLit{Value: 1}})

	compiling, ok := s.LookupMethodInfo(ref).(Compiling)
	require.True(t, ok)
	assert.Equal(t, info, compiling.Info)
}

func TestMemoryStore_CustomTypeFallback(t *testing.T) {
	s := NewMemoryStore()
	entity := ir.Entity{ID: "Option"}
	union := UnionInfo{Cases: []UnionCaseInfo{{Name: "None", Singleton: true}}}
	s.DefineCustomType(entity, union)

	ref := ir.MemberRef{Type: entity, Name: "get_IsNone"}
	member, ok := s.LookupMethodInfo(ref).(CustomTypeMember)
	require.True(t, ok)
	assert.Equal(t, union, member.Info)
}

func TestMemoryStore_AddCompiledMethodPreservesKind(t *testing.T) {
	s := NewMemoryStore()
	ref := ir.MemberRef{Type: ir.Entity{ID: "T"}, Name: "f"}
	info := MemberInfo{Ref: ref, Kind: Static{Addr: ir.NewAddress("T", "f")}}
	s.DefineMethod(ref, Compiling{Info: info, Body: &ir.Undefined{}})

	s.AddCompiledMethod(ref, OptimizationRecord{IsPure: true}, "translated-body")

	compiled, ok := s.LookupMethodInfo(ref).(Compiled)
	require.True(t, ok)
	assert.Equal(t, info.Kind, compiled.Info.Kind)
	assert.Equal(t, "translated-body", compiled.Body)
	assert.True(t, compiled.Opts.IsPure)
}

func TestMemoryStore_DemoteToNotCompiledInline(t *testing.T) {
	s := NewMemoryStore()
	ref := ir.MemberRef{Type: ir.Entity{ID: "T"}, Name: "inlineMe"}
	info := MemberInfo{Ref: ref, Kind: Inline{}}
	s.DefineMethod(ref, Compiling{Info: info, Body: &ir.IntLit{Value: 7}})

	s.DemoteToNotCompiledInline(ref, false)

	compiling, ok := s.LookupMethodInfo(ref).(Compiling)
	require.True(t, ok)
	assert.Equal(t, NotCompiledInline{}, compiling.Info.Kind)
	assert.Equal(t, &ir.IntLit{Value: 7}, compiling.Body)
}

func TestMemoryStore_DemoteUnknownRefIsNoop(t *testing.T) {
	s := NewMemoryStore()
	ref := ir.MemberRef{Type: ir.Entity{ID: "T"}, Name: "ghost"}
	assert.NotPanics(t, func() { s.DemoteToNotCompiledInline(ref, false) })
}

func TestMemoryStore_WorkQueuesDrainOnRead(t *testing.T) {
	s := NewMemoryStore()
	ref := ir.MemberRef{Type: ir.Entity{ID: "T"}, Name: "main"}
	s.EnqueueMethod(ref)

	first := s.CompilingMethods()
	assert.Equal(t, []ir.MemberRef{ref}, first)

	second := s.CompilingMethods()
	assert.Empty(t, second)
}

func TestMemoryStore_EntryPoint(t *testing.T) {
	s := NewMemoryStore()
	_, ok := s.EntryPoint()
	assert.False(t, ok)

	ref := ir.MemberRef{Type: ir.Entity{ID: "Program"}, Name: "Main"}
	s.SetEntryPoint(ref)

	got, ok := s.EntryPoint()
	require.True(t, ok)
	assert.Equal(t, ref, got)
}

func TestMemoryStore_Diagnostics(t *testing.T) {
	s := NewMemoryStore()
	s.AddError(Diagnostic{Kind: SourceError, Message: "boom"})
	s.AddWarning(Diagnostic{Kind: SourceError, Message: "careful"})

	diags := s.CloseMacros()
	require.Len(t, diags, 2)
	assert.False(t, diags[0].Warning)
	assert.True(t, diags[1].Warning)
}

func TestUnionInfo_IsSingleCaseOrOptionShaped(t *testing.T) {
	tests := []struct {
		name    string
		union   UnionInfo
		wantOK  bool
		wantLen int
	}{
		{
			name:    "single case",
			union:   UnionInfo{Cases: []UnionCaseInfo{{Name: "Box", Fields: []string{"v"}}}},
			wantOK:  true,
			wantLen: 1,
		},
		{
			name: "option shaped",
			union: UnionInfo{Cases: []UnionCaseInfo{
				{Name: "Some", Fields: []string{"v"}},
				{Name: "None", Singleton: true},
			}},
			wantOK:  true,
			wantLen: 1,
		},
		{
			name: "plain enum-like union",
			union: UnionInfo{Cases: []UnionCaseInfo{
				{Name: "Red", Singleton: true},
				{Name: "Blue", Singleton: true},
				{Name: "Green", Singleton: true},
			}},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := tt.union.IsSingleCaseOrOptionShaped()
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Len(t, c.Fields, tt.wantLen)
			}
		})
	}
}

func TestDiagnostic_Error(t *testing.T) {
	d := Diagnostic{Kind: MemberNotFound, Member: ir.MemberRef{Type: ir.Entity{ID: "T"}, Name: "f"}, Message: "missing"}
	assert.Equal(t, "T.f: member not found: missing", d.Error())

	d.Warning = true
	assert.Equal(t, "warning: T.f: member not found: missing", d.Error())
}
