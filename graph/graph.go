// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

// Package graph defines the dependency-graph node kinds assumed by the
// translator (spec.md §3, §6) and a small in-memory implementation used for
// tests. The data structure itself is owned by the enclosing pipeline
// (spec.md §1); the core only ever inserts edges and, in tests, queries
// reachability.
package graph

import (
	"fmt"
	"sort"

	"github.com/xlab/treeprint"
)

// Node identifies a graph-participating entity (spec.md §6).
type Node interface {
	fmt.Stringer
	nodeKind()
}

type MethodNode struct{ Type, Method string }

func (n MethodNode) String() string { return "method:" + n.Type + "." + n.Method }
func (MethodNode) nodeKind()        {}

type AbstractMethodNode struct{ Type, Method string }

func (n AbstractMethodNode) String() string { return "abstract:" + n.Type + "." + n.Method }
func (AbstractMethodNode) nodeKind()        {}

type ConstructorNode struct{ Type, Ctor string }

func (n ConstructorNode) String() string { return "ctor:" + n.Type + "." + n.Ctor }
func (ConstructorNode) nodeKind()        {}

type ImplementationNode struct{ Type, Iface, Method string }

func (n ImplementationNode) String() string {
	return "impl:" + n.Type + ":" + n.Iface + "." + n.Method
}
func (ImplementationNode) nodeKind() {}

type TypeNode struct{ Type string }

func (n TypeNode) String() string { return "type:" + n.Type }
func (TypeNode) nodeKind()        {}

type AssemblyNode struct {
	Name      string
	IsLibrary bool
}

func (n AssemblyNode) String() string { return "assembly:" + n.Name }
func (AssemblyNode) nodeKind()        {}

type EntryPointNode struct{}

func (EntryPointNode) String() string { return "entrypoint" }
func (EntryPointNode) nodeKind()      {}

// Graph is the capability surface the translator is given (spec.md §3
// "Graph.AddEdge"). HasGraph gates whether it is present at all: the driver
// may run without a graph attached, in which case no edges are recorded.
type Graph interface {
	AddEdge(from, to Node)
}

// Memory is a small in-memory Graph for tests, plus the reachability query
// spec.md §3 assumes the externally-owned graph supports.
type Memory struct {
	edges map[string][]Node
	order []string
}

func NewMemory() *Memory {
	return &Memory{edges: make(map[string][]Node)}
}

func (g *Memory) AddEdge(from, to Node) {
	key := from.String()
	if _, ok := g.edges[key]; !ok {
		g.order = append(g.order, key)
	}
	for _, existing := range g.edges[key] {
		if existing.String() == to.String() {
			return
		}
	}
	g.edges[key] = append(g.edges[key], to)
}

// HasEdge reports whether an edge from → to was recorded.
func (g *Memory) HasEdge(from, to Node) bool {
	for _, to2 := range g.edges[from.String()] {
		if to2.String() == to.String() {
			return true
		}
	}
	return false
}

// Reachable returns every node transitively reachable from from, from
// included.
func (g *Memory) Reachable(from Node) []Node {
	seen := map[string]Node{from.String(): from}
	queue := []Node{from}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, to := range g.edges[n.String()] {
			if _, ok := seen[to.String()]; !ok {
				seen[to.String()] = to
				queue = append(queue, to)
			}
		}
	}
	out := make([]Node, 0, len(seen))
	for _, n := range seen {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Dump renders the graph as an indented tree, rooted at each node that has
// outgoing edges, for debug logging.
func Dump(g *Memory) string {
	tree := treeprint.New()
	for _, key := range g.order {
		branch := tree.AddBranch(key)
		for _, to := range g.edges[key] {
			branch.AddNode(to.String())
		}
	}
	return tree.String()
}
