// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

// Package ir defines the typed, object-oriented/functional intermediate
// representation produced by the front-end from a .NET-family source
// language. It is the input of the translation pipeline; nothing in this
// package executes or resolves anything by itself.
package ir

// Pos is an opaque source position. The front-end that produces it is out
// of scope for this module; Pos only needs to round-trip through
// diagnostics.
type Pos int

// NoPos means "no position available".
const NoPos Pos = 0

// Node is the common interface of every IR node.
type Node interface {
	Pos() Pos
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Ident is an opaque, fresh-per-binding identifier. Equality is identity
// equality; two Idents with the same Name are still different bindings.
type Ident struct {
	Name    string
	Mutable bool
	At      Pos
}

func NewIdent(name string, pos Pos) *Ident {
	return &Ident{Name: name, At: pos}
}

func (id *Ident) Pos() Pos { return id.At }

// Address names a global path, reversed (innermost segment first), used
// both for emission and for instanceof/prototype-chain lookups.
type Address struct {
	// Segments is stored innermost-first, e.g. ["M", "N"] for N.M.
	Segments []string
}

func NewAddress(segmentsOutermostFirst ...string) Address {
	rev := make([]string, len(segmentsOutermostFirst))
	for i, s := range segmentsOutermostFirst {
		rev[len(segmentsOutermostFirst)-1-i] = s
	}
	return Address{Segments: rev}
}

// Outermost returns the address segments in emission order (outermost
// first), e.g. ["N", "M"].
func (a Address) Outermost() []string {
	out := make([]string, len(a.Segments))
	for i, s := range a.Segments {
		out[len(a.Segments)-1-i] = s
	}
	return out
}

func (a Address) String() string {
	segs := a.Outermost()
	s := ""
	for i, seg := range segs {
		if i > 0 {
			s += "."
		}
		s += seg
	}
	return s
}

// Entity is an opaque, hashable reference to a type, method, constructor or
// field as supplied by the front-end.
type Entity struct {
	ID string
}

// ConcreteType is a type entity together with resolved generic arguments.
type ConcreteType struct {
	Entity   Entity
	Generics []Type
}

// ConcreteMethod is a method entity together with resolved generic
// arguments.
type ConcreteMethod struct {
	Entity   Entity
	Generics []Type
	// ReturnType is the method's resolved return type, used by callers that
	// need to walk the return shape (e.g. a remote call's dependency closure,
	// §4.1.2 "Remote"). Nil for a void-returning method.
	ReturnType *Type
}

// Type is either a concrete, fully resolved type, or an open generic type
// parameter that only makes sense inside an inline body (§4.1.6, §4.2).
type Type struct {
	Concrete  *ConcreteType
	TypeParam *TypeParam
}

// TypeParam is a reference to the Nth generic parameter of the enclosing
// inline member (0-indexed, positional).
type TypeParam struct {
	Index int
}

// DynamicEntity is the sentinel type entity used for calls on the dynamic
// object (§4.1.1 step 1).
var DynamicEntity = Entity{ID: "$dynamic"}

// ConcreteEntities walks t and every generic argument nested inside it,
// collecting every concrete type entity reached (e.g. Task<List<User>>
// yields Task, List, and User). An open type parameter contributes nothing.
func (t Type) ConcreteEntities() []Entity {
	var out []Entity
	var walk func(t Type)
	walk = func(t Type) {
		if t.Concrete == nil {
			return
		}
		out = append(out, t.Concrete.Entity)
		for _, g := range t.Concrete.Generics {
			walk(g)
		}
	}
	walk(t)
	return out
}

// MemberRef names a member for diagnostics: "Type.Method(sig)".
type MemberRef struct {
	Type      Entity
	Name      string
	Signature string
}

func (m MemberRef) String() string {
	if m.Signature == "" {
		return m.Type.ID + "." + m.Name
	}
	return m.Type.ID + "." + m.Name + m.Signature
}
