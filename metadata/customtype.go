// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package metadata

import "github.com/go-netjs/corejs/ir"

// CustomTypeInfo tags a compiler-synthesized type: a record, a
// discriminated union, a delegate, or an erased union (spec.md §4.3,
// glossary "Custom type").
type CustomTypeInfo interface{ customTypeKind() }

type DelegateInfo struct {
	// InvokeName is the method name used to invoke the delegate value
	// itself (usually "Invoke").
	InvokeName string
}

func (DelegateInfo) customTypeKind() {}

type RecordField struct {
	Name     string // source name
	JSName   string // emitted object key
	Optional bool
}

type RecordInfo struct {
	Fields []RecordField
}

func (RecordInfo) customTypeKind() {}

type UnionCaseInfo struct {
	Name string
	// Fields is empty for a singleton or constant case.
	Fields []string
	// Singleton cases share one instance, stored at Union.CaseName.
	Singleton bool
	// Constant cases materialize a fixed literal instead of an object.
	Constant ir.Expr // non-nil only for constant cases
	// Address is the class address wired onto the case's objects by the
	// Runtime.SetPrototype call TransformNewUnionCase emits, if the case has
	// its own class.
	Address *ir.Address
}

type UnionInfo struct {
	Cases []UnionCaseInfo
	// Erased marks a union whose runtime representation has no tag object;
	// the tag is reconstructed by sequential type inspection (spec.md §4.3
	// "Erased unions").
	Erased bool
	// Address is the union's own address, used for singleton-case access
	// and for the sentinel a flattened union's case test compares against.
	Address ir.Address
}

func (UnionInfo) customTypeKind() {}

// UnionCaseRef identifies a case of a UnionInfo looked up independently
// (spec.md "Union case" dispatch kind in §4.3).
type UnionCaseRef struct {
	Union ir.Entity
	Case  string
}

func (UnionCaseRef) customTypeKind() {}

// IsSingleCaseOrOptionShaped reports whether a union flattens to its sole
// field-bearing case (spec.md §4.3 "Single-case and (case, null) two-case
// unions are flattened").
func (u UnionInfo) IsSingleCaseOrOptionShaped() (UnionCaseInfo, bool) {
	var bearing []UnionCaseInfo
	for _, c := range u.Cases {
		if len(c.Fields) > 0 {
			bearing = append(bearing, c)
		}
	}
	switch {
	case len(u.Cases) == 1 && len(bearing) == 1:
		return u.Cases[0], true
	case len(u.Cases) == 2 && len(bearing) == 1:
		return bearing[0], true
	default:
		return UnionCaseInfo{}, false
	}
}
