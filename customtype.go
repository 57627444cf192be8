// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package corejs

import (
	"fmt"
	"strings"

	"github.com/go-netjs/corejs/ir"
	"github.com/go-netjs/corejs/jsast"
	"github.com/go-netjs/corejs/metadata"
)

// transformCustomTypeCall dispatches a call whose receiver type is a
// compiler-synthesized custom type (§4.3).
func (t *Translator) transformCustomTypeCall(ref ir.MemberRef, info metadata.CustomTypeInfo, n *ir.Call) jsast.Expr {
	name := n.Method.Entity.ID

	switch ct := info.(type) {
	case metadata.DelegateInfo:
		switch {
		case name == ct.InvokeName || name == "Invoke":
			args := make([]jsast.Expr, len(n.Args))
			for i, a := range n.Args {
				args[i] = t.Translate(a)
			}
			return &jsast.Call{Callee: t.Translate(n.Receiver), Args: args}
		case name == "op_Addition":
			elems := []jsast.Expr{t.Translate(n.Receiver)}
			for _, a := range n.Args {
				elems = append(elems, t.Translate(a))
			}
			return &jsast.Call{
				Callee: jsast.GlobalAccess{Path: []string{"Runtime", "CombineDelegates"}},
				Args:   []jsast.Expr{jsast.Array{Elements: elems}},
			}
		case name == "op_Equality" && len(n.Args) == 1:
			return &jsast.Call{
				Callee: jsast.GlobalAccess{Path: []string{"Runtime", "DelegateEqual"}},
				Args:   []jsast.Expr{t.Translate(n.Receiver), t.Translate(n.Args[0])},
			}
		case name == "ToString":
			return jsast.StringLit{Value: n.Type.Entity.ID}
		default:
			t.diag.error(metadata.SourceError, "%s: unhandled delegate method %s", ref, name)
			return jsast.ErrorPlaceholder{Reason: "unhandled delegate method"}
		}

	case metadata.RecordInfo:
		switch {
		case strings.HasPrefix(name, "get_"):
			return t.translateFieldGet(&ir.FieldGet{
				Object: n.Receiver, Type: n.Type, Field: ir.Entity{ID: strings.TrimPrefix(name, "get_")}, At: n.At,
			})
		case strings.HasPrefix(name, "set_") && len(n.Args) == 1:
			return t.translateFieldSet(&ir.FieldSet{
				Object: n.Receiver, Type: n.Type, Field: ir.Entity{ID: strings.TrimPrefix(name, "set_")}, Value: n.Args[0], At: n.At,
			})
		case name == "ToString":
			return jsast.StringLit{Value: n.Type.Entity.ID}
		default:
			t.diag.error(metadata.SourceError, "%s: unhandled record method %s", ref, name)
			return jsast.ErrorPlaceholder{Reason: "unhandled record method"}
		}

	case metadata.UnionInfo:
		return t.transformUnionMethodCall(ref, ct, n)

	case metadata.UnionCaseRef:
		if strings.HasPrefix(name, "get_") {
			return t.TransformUnionCaseGet(&ir.UnionCaseGet{
				Type: ir.ConcreteType{Entity: ct.Union}, Value: n.Receiver, Case: ct.Case,
				Field: strings.TrimPrefix(name, "get_"), At: n.At,
			})
		}
		t.diag.error(metadata.SourceError, "%s: unhandled union-case method %s", ref, name)
		return jsast.ErrorPlaceholder{Reason: "unhandled union-case method"}

	default:
		t.diag.error(metadata.SourceError, "%s: unhandled custom type %T", ref, info)
		return jsast.ErrorPlaceholder{Reason: "unhandled custom type"}
	}
}

func (t *Translator) transformUnionMethodCall(ref ir.MemberRef, union metadata.UnionInfo, n *ir.Call) jsast.Expr {
	name := n.Method.Entity.ID
	switch {
	case strings.HasPrefix(name, "get_Is"):
		return t.TransformUnionCaseTest(&ir.UnionCaseTest{Type: n.Type, Value: n.Receiver, Case: strings.TrimPrefix(name, "get_Is"), At: n.At})

	case name == "get_Tag":
		return t.translateUnionCaseTag(&ir.UnionCaseTag{Type: n.Type, Value: n.Receiver, At: n.At})

	case strings.HasPrefix(name, "New"):
		return t.TransformNewUnionCase(&ir.NewUnionCase{Type: n.Type, Case: strings.TrimPrefix(name, "New"), Args: n.Args, At: n.At})

	case strings.HasPrefix(name, "get_"):
		caseName := strings.TrimPrefix(name, "get_")
		for _, c := range union.Cases {
			if c.Name != caseName {
				continue
			}
			switch {
			case c.Constant != nil:
				return t.Translate(c.Constant)
			case c.Singleton:
				return &jsast.Index{Object: jsast.GlobalAccess{Path: union.Address.Outermost()}, Key: jsast.StringLit{Value: caseName}}
			}
		}
		t.diag.error(metadata.SourceError, "%s: no singleton/constant union case %s", ref, caseName)
		return jsast.ErrorPlaceholder{Reason: "unresolved union case accessor"}

	default:
		t.diag.error(metadata.SourceError, "%s: unhandled union method %s", ref, name)
		return jsast.ErrorPlaceholder{Reason: "unhandled union method"}
	}
}

// transformCustomTypeCtor dispatches a constructor call against a
// compiler-synthesized custom type. Only records construct through an
// ordinary Ctor node; union cases construct through NewUnionCase (§4.3).
func (t *Translator) transformCustomTypeCtor(ref ir.MemberRef, info metadata.CustomTypeInfo, n *ir.Ctor) jsast.Expr {
	record, ok := info.(metadata.RecordInfo)
	if !ok {
		t.diag.error(metadata.SourceError, "%s: %T is not constructible", ref, info)
		return jsast.ErrorPlaceholder{Reason: "not constructible"}
	}
	return t.buildRecordObject(record, n.Args)
}

func (t *Translator) buildRecordObject(record metadata.RecordInfo, fieldValues []ir.Expr) jsast.Expr {
	props := make([]jsast.ObjectProp, 0, len(record.Fields))
	hasOptional := false
	for i, rf := range record.Fields {
		if rf.Optional {
			hasOptional = true
		}
		if i >= len(fieldValues) {
			continue
		}
		props = append(props, jsast.ObjectProp{Name: rf.JSName, Value: t.Translate(fieldValues[i])})
	}
	obj := jsast.Expr(jsast.Object{Props: props})
	if hasOptional {
		return &jsast.Call{Callee: jsast.GlobalAccess{Path: []string{"Runtime", "DeleteEmptyFields"}}, Args: []jsast.Expr{obj}}
	}
	return obj
}

// translateNewRecord lowers a direct record literal (§4.3 "Record").
func (t *Translator) translateNewRecord(n *ir.NewRecord) jsast.Expr {
	info, ok := t.store.GetCustomType(n.Type.Entity)
	if !ok {
		t.diag.error(metadata.TypeNotFound, "%s: record type not found", n.Type.Entity.ID)
		return jsast.ErrorPlaceholder{Reason: "record type not found"}
	}
	record, ok := info.(metadata.RecordInfo)
	if !ok {
		t.diag.error(metadata.SourceError, "%s: not a record type", n.Type.Entity.ID)
		return jsast.ErrorPlaceholder{Reason: "not a record type"}
	}

	byName := make(map[string]int, len(record.Fields))
	for i, rf := range record.Fields {
		byName[rf.Name] = i
	}
	props := make([]jsast.ObjectProp, 0, len(n.Fields))
	hasOptional := false
	for _, f := range n.Fields {
		jsName, optional := f.Name, false
		if i, ok := byName[f.Name]; ok {
			jsName, optional = record.Fields[i].JSName, record.Fields[i].Optional
		}
		if optional {
			hasOptional = true
		}
		props = append(props, jsast.ObjectProp{Name: jsName, Value: t.Translate(f.Value)})
	}
	obj := jsast.Expr(jsast.Object{Props: props})
	if hasOptional {
		return &jsast.Call{Callee: jsast.GlobalAccess{Path: []string{"Runtime", "DeleteEmptyFields"}}, Args: []jsast.Expr{obj}}
	}
	return obj
}

// findUnionCase looks up a union for t.Type.Entity and a case by name,
// returning its position (the runtime tag value) alongside its info.
func (t *Translator) findUnionCase(typeEntity ir.Entity, caseName string) (metadata.UnionInfo, metadata.UnionCaseInfo, int, bool) {
	info, ok := t.store.GetCustomType(typeEntity)
	if !ok {
		return metadata.UnionInfo{}, metadata.UnionCaseInfo{}, 0, false
	}
	union, ok := info.(metadata.UnionInfo)
	if !ok {
		return metadata.UnionInfo{}, metadata.UnionCaseInfo{}, 0, false
	}
	for i, c := range union.Cases {
		if c.Name == caseName {
			return union, c, i, true
		}
	}
	return union, metadata.UnionCaseInfo{}, 0, false
}

// nonBearingCase finds the other case of a two-case option-shaped union:
// the singleton "nothing" side that bearing (the sole field-bearing case)
// is flattened against.
func nonBearingCase(union metadata.UnionInfo, bearing metadata.UnionCaseInfo) (metadata.UnionCaseInfo, bool) {
	for _, c := range union.Cases {
		if c.Name != bearing.Name {
			return c, true
		}
	}
	return metadata.UnionCaseInfo{}, false
}

// TransformNewUnionCase constructs a union case value (§4.3 "Union case
// encoding").
func (t *Translator) TransformNewUnionCase(n *ir.NewUnionCase) jsast.Expr {
	union, kase, tag, ok := t.findUnionCase(n.Type.Entity, n.Case)
	if !ok {
		t.diag.errorSentinel(metadata.MemberNotFound, ErrUnionCaseNotFound, "%s: union case %s not found", n.Type.Entity.ID, n.Case)
		return jsast.ErrorPlaceholder{Reason: "union case not found"}
	}

	switch {
	case kase.Constant != nil:
		return t.Translate(kase.Constant)
	case kase.Singleton:
		return &jsast.Index{Object: jsast.GlobalAccess{Path: union.Address.Outermost()}, Key: jsast.StringLit{Value: kase.Name}}
	}

	if bearing, flat := union.IsSingleCaseOrOptionShaped(); flat && bearing.Name == kase.Name {
		return t.buildFlattenedUnionCase(kase, n.Args)
	}

	props := make([]jsast.ObjectProp, 0, len(n.Args)+1)
	props = append(props, jsast.ObjectProp{Name: "$", Value: jsast.IntLit{Value: int64(tag)}})
	for i, a := range n.Args {
		props = append(props, jsast.ObjectProp{Name: fmt.Sprintf("$%d", i), Value: t.Translate(a)})
	}
	obj := jsast.Expr(jsast.Object{Props: props})
	if kase.Address != nil {
		return &jsast.Call{
			Callee: jsast.GlobalAccess{Path: []string{"Runtime", "SetPrototype"}},
			Args:   []jsast.Expr{obj, jsast.GlobalAccess{Path: kase.Address.Outermost()}},
		}
	}
	return obj
}

// buildFlattenedUnionCase encodes the sole field-bearing case of a
// single-case or option-shaped union with no `$`-tag wrapper at all (§4.3
// "Single-case and (case, null) two-case unions are flattened to their
// sole field-bearing case"): a single field collapses to that field's own
// value; multiple fields still need an object, just without the tag key.
func (t *Translator) buildFlattenedUnionCase(kase metadata.UnionCaseInfo, args []ir.Expr) jsast.Expr {
	if len(kase.Fields) == 1 && len(args) == 1 {
		return t.Translate(args[0])
	}
	props := make([]jsast.ObjectProp, len(args))
	for i, a := range args {
		props[i] = jsast.ObjectProp{Name: fmt.Sprintf("$%d", i), Value: t.Translate(a)}
	}
	obj := jsast.Expr(jsast.Object{Props: props})
	if kase.Address != nil {
		return &jsast.Call{
			Callee: jsast.GlobalAccess{Path: []string{"Runtime", "SetPrototype"}},
			Args:   []jsast.Expr{obj, jsast.GlobalAccess{Path: kase.Address.Outermost()}},
		}
	}
	return obj
}

// TransformUnionCaseTest lowers a `:? Case` / `get_IsCase` test (§4.1.6,
// §4.3).
func (t *Translator) TransformUnionCaseTest(n *ir.UnionCaseTest) jsast.Expr {
	union, kase, tag, ok := t.findUnionCase(n.Type.Entity, n.Case)
	if !ok {
		t.diag.errorSentinel(metadata.MemberNotFound, ErrUnionCaseNotFound, "%s: union case %s not found", n.Type.Entity.ID, n.Case)
		return jsast.ErrorPlaceholder{Reason: "union case not found"}
	}
	value := t.Translate(n.Value)

	if bearing, flat := union.IsSingleCaseOrOptionShaped(); flat {
		if len(union.Cases) == 1 {
			// Nothing else the value could be; the test is tautological.
			return jsast.BoolLit{Value: true}
		}
		other, _ := nonBearingCase(union, bearing)
		sentinel := jsast.Expr(&jsast.Index{Object: jsast.GlobalAccess{Path: union.Address.Outermost()}, Key: jsast.StringLit{Value: other.Name}})
		if bearing.Name == kase.Name {
			return &jsast.BinaryExpr{Op: "!==", Left: value, Right: sentinel}
		}
		return &jsast.BinaryExpr{Op: "===", Left: value, Right: sentinel}
	}

	if !union.Erased {
		return &jsast.BinaryExpr{Op: "===", Left: &jsast.Member{Object: value, Name: "$"}, Right: jsast.IntLit{Value: int64(tag)}}
	}

	// Erased unions have no tag object: the case is reconstructed by
	// inspecting the value's own shape (its wired class address when it has
	// one, falling back to a plain-object test otherwise).
	if kase.Address != nil {
		return &jsast.BinaryExpr{Op: "instanceof", Left: value, Right: jsast.GlobalAccess{Path: kase.Address.Outermost()}}
	}
	return &jsast.BinaryExpr{
		Op:   "===",
		Left: &jsast.UnaryExpr{Op: "typeof", Prefix: true, Operand: value},
		Right: jsast.StringLit{Value: "object"},
	}
}

// TransformUnionCaseGet reads a field out of a union case value (§4.1.7,
// §4.3 "Union case").
func (t *Translator) TransformUnionCaseGet(n *ir.UnionCaseGet) jsast.Expr {
	union, kase, _, ok := t.findUnionCase(n.Type.Entity, n.Case)
	if !ok {
		t.diag.errorSentinel(metadata.MemberNotFound, ErrUnionCaseNotFound, "%s: union case %s not found", n.Type.Entity.ID, n.Case)
		return jsast.ErrorPlaceholder{Reason: "union case not found"}
	}
	if bearing, flat := union.IsSingleCaseOrOptionShaped(); flat && bearing.Name == kase.Name &&
		len(kase.Fields) == 1 && kase.Fields[0] == n.Field {
		return t.Translate(n.Value)
	}
	for i, f := range kase.Fields {
		if f == n.Field {
			return &jsast.Member{Object: t.Translate(n.Value), Name: fmt.Sprintf("$%d", i)}
		}
	}
	t.diag.error(metadata.MemberNotFound, "%s: no field %s on union case %s", n.Type.Entity.ID, n.Field, n.Case)
	return jsast.ErrorPlaceholder{Reason: "union case field not found"}
}

func (t *Translator) translateUnionCaseTag(n *ir.UnionCaseTag) jsast.Expr {
	return &jsast.Member{Object: t.Translate(n.Value), Name: "$"}
}
