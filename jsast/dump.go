// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package jsast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders an Expr as a compact JavaScript-like string, used by tests to
// assert structural equality (spec.md §8.3, the idempotent-translation
// property) without depending on a real JS writer, which is out of scope
// for this module.
func Dump(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	switch t := e.(type) {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case IntLit:
		return strconv.FormatInt(t.Value, 10)
	case FloatLit:
		return strconv.FormatFloat(t.Value, 'g', -1, 64)
	case DecimalLit:
		return t.Value.String()
	case BoolLit:
		return strconv.FormatBool(t.Value)
	case StringLit:
		return strconv.Quote(t.Value)
	case ErrorPlaceholder:
		return "<error:" + t.Reason + ">"
	case *Ident:
		return t.Name
	case This:
		return "this"
	case GlobalAccess:
		return strings.Join(t.Path, ".")
	case Array:
		parts := make([]string, len(t.Elements))
		for i, el := range t.Elements {
			parts[i] = Dump(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Object:
		parts := make([]string, len(t.Props))
		for i, p := range t.Props {
			parts[i] = p.Name + ": " + Dump(p.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *Member:
		return Dump(t.Object) + "." + t.Name
	case *Index:
		return Dump(t.Object) + "[" + Dump(t.Key) + "]"
	case *BinaryExpr:
		return "(" + Dump(t.Left) + " " + t.Op + " " + Dump(t.Right) + ")"
	case *UnaryExpr:
		if t.Prefix {
			return t.Op + Dump(t.Operand)
		}
		return Dump(t.Operand) + t.Op
	case *Assign:
		return Dump(t.Target) + " = " + Dump(t.Value)
	case *Conditional:
		return Dump(t.Cond) + " ? " + Dump(t.Then) + " : " + Dump(t.Else)
	case *Sequence:
		parts := make([]string, len(t.Exprs))
		for i, el := range t.Exprs {
			parts[i] = Dump(el)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *Call:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = Dump(a)
		}
		return Dump(t.Callee) + "(" + strings.Join(parts, ", ") + ")"
	case *New:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = Dump(a)
		}
		return "new " + Dump(t.Callee) + "(" + strings.Join(parts, ", ") + ")"
	case *Function:
		return fmt.Sprintf("function %s(%s){...}", t.Name, strings.Join(t.Params, ", "))
	case *StatementExpr:
		return fmt.Sprintf("(stmt-expr:%d;%s)", len(t.Stmts), Dump(t.Value))
	case RawExpr:
		return t.Source
	default:
		return fmt.Sprintf("<%T>", t)
	}
}
