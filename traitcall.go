// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package corejs

import (
	"github.com/go-netjs/corejs/ir"
	"github.com/go-netjs/corejs/jsast"
	"github.com/go-netjs/corejs/metadata"
)

// TransformTraitCall resolves a call against a set of candidate receiver
// types into a single concrete dispatch (§4.1.5).
func (t *Translator) TransformTraitCall(n *ir.TraitCall) jsast.Expr {
	var matched []ir.ConcreteType
	for _, ct := range n.CandidateTypes {
		ref := ir.MemberRef{Type: ct.Entity, Name: n.MethodName}
		if t.store.MethodExistsInMetadata(ref) {
			matched = append(matched, ct)
		}
	}

	if len(matched) == 1 {
		ct := matched[0]
		call := &ir.Call{
			Receiver: n.Receiver,
			Type:     ct,
			Method:   ir.ConcreteMethod{Entity: ir.Entity{ID: n.MethodName}},
			Args:     n.Args,
			At:       n.At,
		}
		return t.TransformCall(call)
	}

	if t.currentIsInline {
		t.hasDelayedTransform = true
		return jsast.ErrorPlaceholder{Reason: "trait call delayed for inline resolution"}
	}

	if len(matched) == 0 {
		t.diag.errorSentinel(metadata.MemberNotFound, ErrMemberNotFound, "no candidate type implements %s", n.MethodName)
	} else {
		t.diag.errorSentinel(metadata.SourceError, ErrAmbiguousTrait, "ambiguous trait call %s across %d candidate types", n.MethodName, len(matched))
	}
	return jsast.ErrorPlaceholder{Reason: "unresolved trait call"}
}
