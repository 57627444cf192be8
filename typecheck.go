// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package corejs

import (
	"github.com/go-netjs/corejs/graph"
	"github.com/go-netjs/corejs/ir"
	"github.com/go-netjs/corejs/jsast"
	"github.com/go-netjs/corejs/metadata"
)

// knownPrimitiveTypeOf classifies the handful of well-known .NET primitives
// that map directly onto a `typeof` test (§4.1.6).
var knownPrimitiveTypeOf = map[string]string{
	"System.Boolean": "boolean",
	"System.String":  "string",
	"System.Double":  "number",
	"System.Single":  "number",
	"System.Int32":   "number",
	"System.Int64":   "number",
	"System.Decimal": "number",
	"System.Object":  "object",
}

// rejectedGenericTypeChecks names types whose generic instantiation cannot
// be tested for at runtime in JS (erasure loses the element/argument type).
var rejectedGenericTypeChecks = map[string]string{
	"System.Array":                        "System.Array",
	"Microsoft.FSharp.Core.FSharpFunc`2":   "Function",
}

// GetTypeCheckKind classifies a checked Type into its test shape (§4.1.6).
func (t *Translator) GetTypeCheckKind(ty ir.Type) metadata.TypeCheckKind {
	if ty.TypeParam != nil {
		if t.currentIsInline {
			t.hasDelayedTransform = true
			return metadata.OtherTypeCheck{Reason: "type parameter"}
		}
		t.diag.errorSentinel(metadata.SourceError, ErrTypeParamOutsideInline, "type parameter used in a type check outside an inline body")
		return metadata.OtherTypeCheck{Reason: "type parameter outside inline"}
	}

	ct := *ty.Concrete
	id := ct.Entity.ID

	if name, ok := knownPrimitiveTypeOf[id]; ok {
		return metadata.TypeOf{Name: name}
	}
	if id == "System.Void" {
		return metadata.TypeOf{Name: "undefined"}
	}
	if id == "Microsoft.FSharp.Core.Unit" {
		return metadata.IsNull{}
	}
	if id == "System.IDisposable" {
		return metadata.OtherTypeCheck{Reason: "IDisposable"}
	}
	if reason, ok := rejectedGenericTypeChecks[id]; ok && len(ct.Generics) > 0 {
		t.diag.error(metadata.SourceError, "generic test against %s is not supported", reason)
		return metadata.OtherTypeCheck{Reason: "rejected generic test"}
	}
	if id == "System.Exception" {
		return metadata.InstanceOf{Addr: ir.NewAddress("Error")}
	}
	if id == "System.Array" {
		return metadata.InstanceOf{Addr: ir.NewAddress("Array")}
	}

	if custom, ok := t.store.GetCustomType(ct.Entity); ok {
		if _, isCase := custom.(metadata.UnionCaseRef); isCase {
			return metadata.OtherTypeCheck{Reason: "union case"}
		}
		return metadata.PlainObject{}
	}
	if addr, ok := t.store.TryLookupStaticConstructorAddress(ct.Entity); ok {
		return metadata.InstanceOf{Addr: addr}
	}
	if classInfo, ok := t.store.TryLookupClassInfo(ct.Entity); ok {
		return metadata.InstanceOf{Addr: classInfo.Addr}
	}

	t.diag.errorSentinel(metadata.TypeNotFound, ErrTypeNotFound, "%s has no class address or custom type for a type check; add a Prototype attribute", id)
	return metadata.OtherTypeCheck{Reason: "no address"}
}

// TransformTypeCheck lowers a `:?` test to its JS equivalent (§4.1.6).
func (t *Translator) TransformTypeCheck(n *ir.TypeCheck) jsast.Expr {
	value := t.Translate(n.Value)
	kind := t.GetTypeCheckKind(n.Checked)

	switch k := kind.(type) {
	case metadata.TypeOf:
		return &jsast.BinaryExpr{
			Op:    "==",
			Left:  &jsast.UnaryExpr{Op: "typeof", Prefix: true, Operand: value},
			Right: jsast.StringLit{Value: k.Name},
		}

	case metadata.InstanceOf:
		if n.Checked.Concrete != nil {
			t.addEdge(graph.TypeNode{Type: n.Checked.Concrete.Entity.ID})
		}
		return &jsast.BinaryExpr{Op: "instanceof", Left: value, Right: jsast.GlobalAccess{Path: k.Addr.Outermost()}}

	case metadata.IsNull:
		return &jsast.BinaryExpr{Op: "===", Left: value, Right: jsast.Null{}}

	case metadata.PlainObject:
		ct := *n.Checked.Concrete
		if addr, _, ok := t.store.TryLookupClassAddressOrCustomType(ct.Entity); ok && addr.String() != "" {
			return &jsast.BinaryExpr{Op: "instanceof", Left: value, Right: jsast.GlobalAccess{Path: addr.Outermost()}}
		}
		return &jsast.BinaryExpr{
			Op:   "&&",
			Left: &jsast.BinaryExpr{Op: "==", Left: &jsast.UnaryExpr{Op: "typeof", Prefix: true, Operand: value}, Right: jsast.StringLit{Value: "object"}},
			Right: &jsast.BinaryExpr{Op: "!==", Left: value, Right: jsast.Null{}},
		}

	case metadata.OtherTypeCheck:
		switch k.Reason {
		case "IDisposable":
			return &jsast.BinaryExpr{Op: "in", Left: jsast.StringLit{Value: "Dispose"}, Right: value}
		case "union case":
			ct := *n.Checked.Concrete
			ref, _ := t.store.GetCustomType(ct.Entity)
			caseRef := ref.(metadata.UnionCaseRef)
			return t.TransformUnionCaseTest(&ir.UnionCaseTest{
				Type:  ir.ConcreteType{Entity: caseRef.Union},
				Value: n.Value,
				Case:  caseRef.Case,
				At:    n.At,
			})
		case "type parameter":
			return jsast.ErrorPlaceholder{Reason: "type-parameter check delayed for inline resolution"}
		default:
			return jsast.ErrorPlaceholder{Reason: k.Reason}
		}

	default:
		t.diag.error(metadata.SourceError, "unhandled type-check kind %T", kind)
		return jsast.ErrorPlaceholder{Reason: "unhandled type-check kind"}
	}
}
