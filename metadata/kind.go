// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

// Package metadata defines the query/mutation surface of the metadata
// store collaborator (spec.md §3), the compilation-kind tags attached to
// every member, and the macro/generator plug-in interfaces (spec.md §4.6).
// The store itself is an external collaborator; MemoryStore is a concrete,
// in-memory implementation used to exercise the translator in tests
// (SPEC_FULL.md "supplemented features").
package metadata

import "github.com/go-netjs/corejs/ir"

// CompilationKind is the tag attached to every resolved member (spec.md §3
// "Compilation-kind tag").
type CompilationKind interface{ compilationKind() }

type Instance struct{ Name string }

func (Instance) compilationKind() {}

type Static struct{ Addr ir.Address }

func (Static) compilationKind() {}

type Constructor struct{ Addr ir.Address }

func (Constructor) compilationKind() {}

// Inline marks a member whose body has already been compiled and is
// substituted verbatim at every call site.
type Inline struct{}

func (Inline) compilationKind() {}

// NotCompiledInline marks a member substituted only after generic
// resolution (spec.md §4.1.2).
type NotCompiledInline struct{}

func (NotCompiledInline) compilationKind() {}

type MacroKind struct {
	Type      string
	Parameter string
	Fallback  CompilationKind // nil if the macro has no fallback
}

func (MacroKind) compilationKind() {}

// GeneratorKind marks a member whose body is produced by a type-bound
// Generator instead of stored source; Addr is the address passed to
// Generator.Generate alongside the call/ctor site's resolved generics
// (spec.md §4.6 "generator").
type GeneratorKind struct{ Addr ir.Address }

func (GeneratorKind) compilationKind() {}

// RemoteCallKind distinguishes the four RPC call shapes (spec.md §4.1.2).
type RemoteCallKind int

const (
	RemoteSync RemoteCallKind = iota
	RemoteAsync
	RemoteTask
	RemoteSend
)

func (k RemoteCallKind) String() string {
	switch k {
	case RemoteSync:
		return "Sync"
	case RemoteAsync:
		return "Async"
	case RemoteTask:
		return "Task"
	case RemoteSend:
		return "Send"
	default:
		return "Remote?"
	}
}

type Remote struct {
	Kind     RemoteCallKind
	Handle   string
	Provider *ir.Entity // nil selects the default remoting-provider object
}

func (Remote) compilationKind() {}

// OptimizationRecord describes how caller-side arguments must be shaped for
// a given member (spec.md §4.1.2). Reuses ir's tags since the shape vocabulary is
// shared between the input IR (where an already-shaped argument is tagged
// OptimizedFSharpArg) and the metadata opts record (where the required
// shape is declared per parameter).
type OptimizationRecord struct {
	// FuncArgs is nil when the member declares no curried/tupled-argument
	// adaptation; otherwise it has one entry per formal parameter.
	FuncArgs []ir.FuncArgTag
	Purity   Purity
	IsPure   bool
	Warn     *string
}

type Purity int

const (
	PurityUnknown Purity = iota
	PurityPure
	PurityImpure
)
