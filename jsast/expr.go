// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

// Package jsast is the JavaScript-compatible expression/statement IR
// produced by the translation pipeline (spec.md §3, §6 "writer
// collaborator"). It is deliberately smaller than the ir package: several
// input shapes collapse onto the same JS shape once lowered (Call/Ctor/
// Macro all become Call or New, for instance).
package jsast

import "github.com/shopspring/decimal"

type Expr interface{ exprNode() }
type Stmt interface{ stmtNode() }

type Undefined struct{}

func (Undefined) exprNode() {}

type Null struct{}

func (Null) exprNode() {}

type IntLit struct{ Value int64 }

func (IntLit) exprNode() {}

type FloatLit struct{ Value float64 }

func (FloatLit) exprNode() {}

type DecimalLit struct{ Value decimal.Decimal }

func (DecimalLit) exprNode() {}

type BoolLit struct{ Value bool }

func (BoolLit) exprNode() {}

type StringLit struct{ Value string }

func (StringLit) exprNode() {}

// ErrorPlaceholder stands in for an expression whose translation failed
// (spec.md §7). The writer collaborator is expected to emit something
// innocuous (e.g. `undefined`) plus a comment, but that policy belongs to
// the writer, not the core.
type ErrorPlaceholder struct{ Reason string }

func (ErrorPlaceholder) exprNode() {}

// Ident is a JS identifier reference.
type Ident struct{ Name string }

func (*Ident) exprNode() {}

type This struct{}

func (This) exprNode() {}

// GlobalAccess reads the value at a global, dotted path.
type GlobalAccess struct{ Path []string }

func (GlobalAccess) exprNode() {}

type Array struct{ Elements []Expr }

func (Array) exprNode() {}

type ObjectProp struct {
	Name  string
	Value Expr
}

type Object struct{ Props []ObjectProp }

func (Object) exprNode() {}

// Member is dotted property access: Object.Name.
type Member struct {
	Object Expr
	Name   string
}

func (*Member) exprNode() {}

// Index is bracketed property access: Object[Key].
type Index struct {
	Object Expr
	Key    Expr
}

func (*Index) exprNode() {}

type BinaryExpr struct {
	Op          string
	Left, Right Expr
}

func (*BinaryExpr) exprNode() {}

type UnaryExpr struct {
	Op       string
	Prefix   bool
	Operand  Expr
}

func (*UnaryExpr) exprNode() {}

// Assign is a plain `target = value` expression, produced when field and
// item sets are lowered.
type Assign struct {
	Target Expr
	Value  Expr
}

func (*Assign) exprNode() {}

type Conditional struct {
	Cond, Then, Else Expr
}

func (*Conditional) exprNode() {}

// Sequence is a JS comma expression.
type Sequence struct{ Exprs []Expr }

func (*Sequence) exprNode() {}

type Call struct {
	Callee Expr
	Args   []Expr
}

func (*Call) exprNode() {}

// New is `new Callee(Args)`.
type New struct {
	Callee Expr
	Args   []Expr
}

func (*New) exprNode() {}

// Function is a function expression. Name is empty for an anonymous
// closure; curried-function recognition (spec.md §4.4) replaces a curried
// top-level member body with a Call to a runtime helper. Nested functions
// and constructor bodies are left as Function.
type Function struct {
	Name   string
	Params []string
	Body   []Stmt
}

func (*Function) exprNode() {}

// StatementExpr embeds a statement sequence in expression position (legal
// only immediately after inline substitution, spec.md §4.4).
type StatementExpr struct {
	Stmts []Stmt
	Value Expr
}

func (*StatementExpr) exprNode() {}

// RawExpr is pre-formed JavaScript expression source handed back by a
// generator; the writer incorporates Source verbatim rather than
// interpreting it structurally (spec.md §4.6).
type RawExpr struct{ Source string }

func (RawExpr) exprNode() {}
