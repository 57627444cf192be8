package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_AddEdgeDeduplicates(t *testing.T) {
	g := NewMemory()
	from := MethodNode{Type: "List", Method: "Add"}
	to := MethodNode{Type: "Iterator", Method: "Next"}

	g.AddEdge(from, to)
	g.AddEdge(from, to)

	assert.True(t, g.HasEdge(from, to))
	assert.Len(t, g.edges[from.String()], 1)
}

func TestMemory_Reachable(t *testing.T) {
	g := NewMemory()
	a := MethodNode{Type: "A", Method: "f"}
	b := MethodNode{Type: "B", Method: "g"}
	c := MethodNode{Type: "C", Method: "h"}
	d := TypeNode{Type: "D"}

	g.AddEdge(a, b)
	g.AddEdge(b, c)
	g.AddEdge(a, d)

	got := g.Reachable(a)
	var names []string
	for _, n := range got {
		names = append(names, n.String())
	}
	assert.ElementsMatch(t, []string{a.String(), b.String(), c.String(), d.String()}, names)
}

func TestMemory_ReachableIsolated(t *testing.T) {
	g := NewMemory()
	a := EntryPointNode{}
	got := g.Reachable(a)
	assert.Len(t, got, 1)
	assert.Equal(t, a.String(), got[0].String())
}

func TestNodeStrings(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"method", MethodNode{Type: "T", Method: "M"}, "method:T.M"},
		{"abstract", AbstractMethodNode{Type: "T", Method: "M"}, "abstract:T.M"},
		{"ctor", ConstructorNode{Type: "T", Ctor: ".ctor"}, "ctor:T..ctor"},
		{"impl", ImplementationNode{Type: "T", Iface: "I", Method: "M"}, "impl:T:I.M"},
		{"type", TypeNode{Type: "T"}, "type:T"},
		{"assembly", AssemblyNode{Name: "Core"}, "assembly:Core"},
		{"entrypoint", EntryPointNode{}, "entrypoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.String())
		})
	}
}

func TestDump_RendersEdges(t *testing.T) {
	g := NewMemory()
	from := MethodNode{Type: "A", Method: "f"}
	to := MethodNode{Type: "B", Method: "g"}
	g.AddEdge(from, to)

	out := Dump(g)
	assert.Contains(t, out, from.String())
	assert.Contains(t, out, to.String())
}
