// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package ir

import "github.com/shopspring/decimal"

// Literals.

type IntLit struct {
	Value    int64
	At       Pos
}

func (e *IntLit) exprNode() {}
func (e *IntLit) Pos() Pos  { return e.At }

type FloatLit struct {
	Value    float64
	At       Pos
}

func (e *FloatLit) exprNode() {}
func (e *FloatLit) Pos() Pos  { return e.At }

type DecimalLit struct {
	Value    decimal.Decimal
	At       Pos
}

func (e *DecimalLit) exprNode() {}
func (e *DecimalLit) Pos() Pos  { return e.At }

type BoolLit struct {
	Value    bool
	At       Pos
}

func (e *BoolLit) exprNode() {}
func (e *BoolLit) Pos() Pos  { return e.At }

type StringLit struct {
	Value    string
	At       Pos
}

func (e *StringLit) exprNode() {}
func (e *StringLit) Pos() Pos  { return e.At }

// Undefined is the JS `undefined` literal.
type Undefined struct{ At       Pos }

func (e *Undefined) exprNode() {}
func (e *Undefined) Pos() Pos  { return e.At }

// Hole is a placeholder slot filled in later (curried-arg synthesis, partial
// application). Forbidden outside inline bodies once compiled (§4.4).
type Hole struct{ At       Pos }

func (e *Hole) exprNode() {}
func (e *Hole) Pos() Pos  { return e.At }

// ErrorPlaceholder replaces an expression whose translation failed (§7).
type ErrorPlaceholder struct {
	Reason   string
	At       Pos
}

func (e *ErrorPlaceholder) exprNode() {}
func (e *ErrorPlaceholder) Pos() Pos  { return e.At }

// Variable, binding forms.

type Var struct {
	Ident    *Ident
	At       Pos
}

func (e *Var) exprNode() {}
func (e *Var) Pos() Pos  { return e.At }

type LetBinding struct {
	Ident *Ident
	Value Expr
}

type Let struct {
	Bindings []LetBinding
	Body     Expr
	Recur    bool // true for letrec
	At       Pos
}

func (e *Let) exprNode() {}
func (e *Let) Pos() Pos  { return e.At }

type Lambda struct {
	Params   []*Ident
	Body     Expr
	At       Pos
}

func (e *Lambda) exprNode() {}
func (e *Lambda) Pos() Pos  { return e.At }

type Apply struct {
	Func     Expr
	Args     []Expr
	At       Pos
}

func (e *Apply) exprNode() {}
func (e *Apply) Pos() Pos  { return e.At }

type Conditional struct {
	Cond, Then, Else Expr
	At               Pos
}

func (e *Conditional) exprNode() {}
func (e *Conditional) Pos() Pos  { return e.At }

// Sequential evaluates Exprs in order and yields the value of the last one.
type Sequential struct {
	Exprs    []Expr
	At       Pos
}

func (e *Sequential) exprNode() {}
func (e *Sequential) Pos() Pos  { return e.At }

// Object/array literals.

type ObjectProp struct {
	Name  string
	Value Expr
}

type ObjectLit struct {
	Props    []ObjectProp
	At       Pos
}

func (e *ObjectLit) exprNode() {}
func (e *ObjectLit) Pos() Pos  { return e.At }

type ArrayLit struct {
	Elements []Expr
	At       Pos
}

func (e *ArrayLit) exprNode() {}
func (e *ArrayLit) Pos() Pos  { return e.At }

// Field/item access.

type FieldGet struct {
	Object   Expr
	Type     ConcreteType
	Field    Entity
	At       Pos
}

func (e *FieldGet) exprNode() {}
func (e *FieldGet) Pos() Pos  { return e.At }

type FieldSet struct {
	Object   Expr
	Type     ConcreteType
	Field    Entity
	Value    Expr
	At       Pos
}

func (e *FieldSet) exprNode() {}
func (e *FieldSet) Pos() Pos  { return e.At }

// ItemKey is either a string key or an integer index.
type ItemKey struct {
	Str    *string
	Int    *int
}

type ItemGet struct {
	Object   Expr
	Key      ItemKey
	At       Pos
}

func (e *ItemGet) exprNode() {}
func (e *ItemGet) Pos() Pos  { return e.At }

type ItemSet struct {
	Object   Expr
	Key      ItemKey
	Value    Expr
	At       Pos
}

func (e *ItemSet) exprNode() {}
func (e *ItemSet) Pos() Pos  { return e.At }

// Operators.

type BinaryOp string

const (
	OpAdd      BinaryOp = "+"
	OpSub      BinaryOp = "-"
	OpMul      BinaryOp = "*"
	OpDiv      BinaryOp = "/"
	OpMod      BinaryOp = "%"
	OpEq       BinaryOp = "=="
	OpNotEq    BinaryOp = "!="
	OpLt       BinaryOp = "<"
	OpLtEq     BinaryOp = "<="
	OpGt       BinaryOp = ">"
	OpGtEq     BinaryOp = ">="
	OpAnd      BinaryOp = "&&"
	OpOr       BinaryOp = "||"
)

type UnaryOp string

const (
	OpNeg    UnaryOp = "-"
	OpNot    UnaryOp = "!"
	OpIncr   UnaryOp = "++"
	OpDecr   UnaryOp = "--"
)

type BinaryExpr struct {
	Op          BinaryOp
	Left, Right Expr
	At          Pos
}

func (e *BinaryExpr) exprNode() {}
func (e *BinaryExpr) Pos() Pos  { return e.At }

type UnaryExpr struct {
	Op       UnaryOp
	Operand  Expr
	At       Pos
}

func (e *UnaryExpr) exprNode() {}
func (e *UnaryExpr) Pos() Pos  { return e.At }

// GlobalAccess reads the value at a global Address.
type GlobalAccess struct {
	Addr     Address
	At       Pos
}

func (e *GlobalAccess) exprNode() {}
func (e *GlobalAccess) Pos() Pos  { return e.At }

// This/Self/Base references.

type This struct{ At       Pos }

func (e *This) exprNode() {}
func (e *This) Pos() Pos  { return e.At }

// Self resolves to selfAddress inside static-constructor-bound members
// (§4.1).
type Self struct{ At       Pos }

func (e *Self) exprNode() {}
func (e *Self) Pos() Pos  { return e.At }

// Base marks a receiver used for a base-class dispatch (§4.1.1).
type Base struct{ At       Pos }

func (e *Base) exprNode() {}
func (e *Base) Pos() Pos  { return e.At }

// New-expression (plain `new Addr(args)`, not a resolved Ctor).
type NewExpr struct {
	Addr     Address
	Args     []Expr
	At       Pos
}

func (e *NewExpr) exprNode() {}
func (e *NewExpr) Pos() Pos  { return e.At }

// Call is a resolved method call.
type Call struct {
	Receiver Expr // nil for a static call with no instance receiver
	Type     ConcreteType
	Method   ConcreteMethod
	Args     []Expr
	BaseCall bool
	At       Pos
}

func (e *Call) exprNode() {}
func (e *Call) Pos() Pos  { return e.At }

// Ctor is a resolved constructor call.
type Ctor struct {
	Type     ConcreteType
	Ctor     ConcreteMethod
	Args     []Expr
	At       Pos
}

func (e *Ctor) exprNode() {}
func (e *Ctor) Pos() Pos  { return e.At }

// BaseCtor invokes a base class's constructor from inside a derived
// constructor body (§4.1.3).
type BaseCtor struct {
	This     Expr
	Type     ConcreteType
	Ctor     ConcreteMethod
	Args     []Expr
	At       Pos
}

func (e *BaseCtor) exprNode() {}
func (e *BaseCtor) Pos() Pos  { return e.At }

// NewDelegate constructs a delegate value from a method reference (§4.1.4).
type NewDelegate struct {
	This     Expr // nil for a static method
	Type     ConcreteType
	Method   ConcreteMethod
	At       Pos
}

func (e *NewDelegate) exprNode() {}
func (e *NewDelegate) Pos() Pos  { return e.At }

// CopyCtor produces a shallow copy of Value with its prototype rewired to
// Type (§4.3 "Union case encoding").
type CopyCtor struct {
	Type     ConcreteType
	Value    Expr
	At       Pos
}

func (e *CopyCtor) exprNode() {}
func (e *CopyCtor) Pos() Pos  { return e.At }

// Record/union construction and inspection (§4.3).

type NewRecord struct {
	Type     ConcreteType
	Fields   []ObjectProp
	At       Pos
}

func (e *NewRecord) exprNode() {}
func (e *NewRecord) Pos() Pos  { return e.At }

type NewUnionCase struct {
	Type     ConcreteType
	Case     string
	Args     []Expr
	At       Pos
}

func (e *NewUnionCase) exprNode() {}
func (e *NewUnionCase) Pos() Pos  { return e.At }

type UnionCaseTest struct {
	Type     ConcreteType
	Value    Expr
	Case     string
	At       Pos
}

func (e *UnionCaseTest) exprNode() {}
func (e *UnionCaseTest) Pos() Pos  { return e.At }

type UnionCaseGet struct {
	Type     ConcreteType
	Value    Expr
	Case     string
	Field    string
	At       Pos
}

func (e *UnionCaseGet) exprNode() {}
func (e *UnionCaseGet) Pos() Pos  { return e.At }

type UnionCaseTag struct {
	Type     ConcreteType
	Value    Expr
	At       Pos
}

func (e *UnionCaseTag) exprNode() {}
func (e *UnionCaseTag) Pos() Pos  { return e.At }

// CctorTrigger forces Type's static constructor to run; it translates to a
// call of that constructor, or to Undefined when the type has none (§4.1.8).
type CctorTrigger struct {
	Type     ConcreteType
	At       Pos
}

func (e *CctorTrigger) exprNode() {}
func (e *CctorTrigger) Pos() Pos  { return e.At }

// TypeCheck is a runtime `:?` test (§4.1.6).
type TypeCheck struct {
	Value    Expr
	Checked  Type
	At       Pos
}

func (e *TypeCheck) exprNode() {}
func (e *TypeCheck) Pos() Pos  { return e.At }

// TraitCall dispatches a method call through a set of candidate receiver
// types (§4.1.5).
type TraitCall struct {
	CandidateTypes []ConcreteType
	Receiver       Expr
	MethodName     string
	Args           []Expr
	At             Pos
}

func (e *TraitCall) exprNode() {}
func (e *TraitCall) Pos() Pos  { return e.At }

type Await struct {
	Value    Expr
	At       Pos
}

func (e *Await) exprNode() {}
func (e *Await) Pos() Pos  { return e.At }

// NamedParameter marks Value as passed by name rather than position.
type NamedParameter struct {
	Name     string
	Value    Expr
	At       Pos
}

func (e *NamedParameter) exprNode() {}
func (e *NamedParameter) Pos() Pos  { return e.At }

// RefOrOutParameter marks Value as a by-reference or out parameter.
type RefOrOutParameter struct {
	Out      bool
	Value    Expr
	At       Pos
}

func (e *RefOrOutParameter) exprNode() {}
func (e *RefOrOutParameter) Pos() Pos  { return e.At }

// Coalesce is a null-coalescing binary expression (`a ?? b`).
type Coalesce struct {
	Left, Right Expr
	At          Pos
}

func (e *Coalesce) exprNode() {}
func (e *Coalesce) Pos() Pos  { return e.At }

// StatementExpr embeds a Stmt in expression position (only legal inside
// inline bodies after substitution, §4.4).
type StatementExpr struct {
	Stmt     Stmt
	At       Pos
}

func (e *StatementExpr) exprNode() {}
func (e *StatementExpr) Pos() Pos  { return e.At }

// FuncArgTag describes how a caller must adapt an argument expression
// before passing it to a member compiled with a given FuncArgs shape
// (§4.1.2 "Argument shaping").
type FuncArgTag interface{ funcArgTag() }

type NotOptimizedFuncArg struct{}

func (NotOptimizedFuncArg) funcArgTag() {}

type CurriedFuncArg struct{ Arity int }

func (CurriedFuncArg) funcArgTag() {}

type TupledFuncArg struct{ Arity int }

func (TupledFuncArg) funcArgTag() {}

// OptimizedFSharpArg wraps an argument expression that the caller has
// already pre-adapted to a known curried/tupled shape, so a matching
// CompileCall can strip the wrapper instead of re-wrapping (§4.1.2).
type OptimizedFSharpArg struct {
	Tag      FuncArgTag
	Value    Expr
	At       Pos
}

func (e *OptimizedFSharpArg) exprNode() {}
func (e *OptimizedFSharpArg) Pos() Pos  { return e.At }
