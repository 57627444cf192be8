// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package metadata

import "github.com/go-netjs/corejs/ir"

// FieldInfo is the per-field dispatch tag returned by LookupFieldInfo
// (spec.md §4.1.7).
type FieldInfo interface{ fieldKind() }

type InstanceField struct {
	Name     string
	Readonly bool
}

func (InstanceField) fieldKind() {}

type StaticField struct {
	Addr ir.Address
	// HasCctor marks that reading Addr must first sequence a call to the
	// owning type's static constructor trigger.
	HasCctor bool
}

func (StaticField) fieldKind() {}

type OptionalField struct{ Name string }

func (OptionalField) fieldKind() {}

type IndexedField struct{ Index int }

func (IndexedField) fieldKind() {}

// CustomTypeFieldKind distinguishes record fields from union-case fields;
// both are encoded positionally or by JS name (spec.md §4.1.7).
type CustomTypeFieldKind int

const (
	CustomTypeFieldRecord CustomTypeFieldKind = iota
	CustomTypeFieldUnionCase
)

type CustomTypeField struct {
	Kind     CustomTypeFieldKind
	JSName   string // e.g. "$0" or the record's JS name
	Optional bool
}

func (CustomTypeField) fieldKind() {}

type PropertyField struct {
	Getter *ir.Entity // nil if no getter
	Setter *ir.Entity // nil if no setter
}

func (PropertyField) fieldKind() {}
