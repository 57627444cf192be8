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

// TransformCctor forces Type's static constructor to run, or yields
// Undefined if it has none (§4.1.8).
func (t *Translator) TransformCctor(ct ir.ConcreteType) jsast.Expr {
	addr, ok := t.store.TryLookupStaticConstructorAddress(ct.Entity)
	if !ok {
		return jsast.Undefined{}
	}
	t.addEdge(graph.TypeNode{Type: ct.Entity.ID})
	return &jsast.Call{Callee: jsast.GlobalAccess{Path: addr.Outermost()}}
}

func (t *Translator) translateFieldGet(n *ir.FieldGet) jsast.Expr {
	ref := ir.MemberRef{Type: n.Type.Entity, Name: n.Field.ID}
	t.addEdge(graph.TypeNode{Type: n.Type.Entity.ID})

	info, ok := t.store.LookupFieldInfo(ref)
	if !ok {
		t.diag.error(metadata.MemberNotFound, "%s: field not found", ref)
		return jsast.ErrorPlaceholder{Reason: "field not found"}
	}

	switch k := info.(type) {
	case metadata.InstanceField:
		return &jsast.Member{Object: t.Translate(n.Object), Name: k.Name}

	case metadata.StaticField:
		addrExpr := jsast.Expr(jsast.GlobalAccess{Path: k.Addr.Outermost()})
		if k.HasCctor {
			return &jsast.Sequence{Exprs: []jsast.Expr{t.TransformCctor(n.Type), addrExpr}}
		}
		return addrExpr

	case metadata.OptionalField:
		return t.runtimeGetOptional(&jsast.Member{Object: t.Translate(n.Object), Name: k.Name})

	case metadata.IndexedField:
		return &jsast.Index{Object: t.Translate(n.Object), Key: jsast.IntLit{Value: int64(k.Index)}}

	case metadata.CustomTypeField:
		member := &jsast.Member{Object: t.Translate(n.Object), Name: k.JSName}
		if k.Optional {
			return t.runtimeGetOptional(member)
		}
		return member

	case metadata.PropertyField:
		if k.Getter == nil {
			t.diag.error(metadata.SourceError, "%s: no getter for property field", ref)
			return jsast.ErrorPlaceholder{Reason: "no getter"}
		}
		return t.TransformCall(&ir.Call{
			Receiver: n.Object,
			Type:     n.Type,
			Method:   ir.ConcreteMethod{Entity: *k.Getter},
			At:       n.At,
		})

	default:
		t.diag.error(metadata.SourceError, "%s: unhandled field kind %T", ref, info)
		return jsast.ErrorPlaceholder{Reason: "unhandled field kind"}
	}
}

func (t *Translator) translateFieldSet(n *ir.FieldSet) jsast.Expr {
	ref := ir.MemberRef{Type: n.Type.Entity, Name: n.Field.ID}
	t.addEdge(graph.TypeNode{Type: n.Type.Entity.ID})

	info, ok := t.store.LookupFieldInfo(ref)
	if !ok {
		t.diag.error(metadata.MemberNotFound, "%s: field not found", ref)
		return jsast.ErrorPlaceholder{Reason: "field not found"}
	}

	value := t.Translate(n.Value)

	switch k := info.(type) {
	case metadata.InstanceField:
		return &jsast.Assign{Target: &jsast.Member{Object: t.Translate(n.Object), Name: k.Name}, Value: value}

	case metadata.StaticField:
		return &jsast.Assign{Target: jsast.GlobalAccess{Path: k.Addr.Outermost()}, Value: value}

	case metadata.OptionalField:
		return &jsast.Call{
			Callee: jsast.GlobalAccess{Path: []string{"Runtime", "SetOptional"}},
			Args:   []jsast.Expr{t.Translate(n.Object), jsast.StringLit{Value: k.Name}, value},
		}

	case metadata.CustomTypeField:
		if k.Optional {
			return &jsast.Call{
				Callee: jsast.GlobalAccess{Path: []string{"Runtime", "SetOptional"}},
				Args:   []jsast.Expr{t.Translate(n.Object), jsast.StringLit{Value: k.JSName}, value},
			}
		}
		return &jsast.Assign{Target: &jsast.Member{Object: t.Translate(n.Object), Name: k.JSName}, Value: value}

	case metadata.PropertyField:
		if k.Setter == nil {
			t.diag.error(metadata.SourceError, "%s: no setter for property field", ref)
			return jsast.ErrorPlaceholder{Reason: "no setter"}
		}
		return t.TransformCall(&ir.Call{
			Receiver: n.Object,
			Type:     n.Type,
			Method:   ir.ConcreteMethod{Entity: *k.Setter},
			Args:     []ir.Expr{n.Value},
			At:       n.At,
		})

	default:
		t.diag.error(metadata.SourceError, "%s: unhandled field kind %T", ref, info)
		return jsast.ErrorPlaceholder{Reason: "unhandled field kind"}
	}
}

func (t *Translator) runtimeGetOptional(e jsast.Expr) jsast.Expr {
	return &jsast.Call{Callee: jsast.GlobalAccess{Path: []string{"Runtime", "GetOptional"}}, Args: []jsast.Expr{e}}
}
