// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package corejs

import (
	"fmt"

	"github.com/go-netjs/corejs/graph"
	"github.com/go-netjs/corejs/ir"
	"github.com/go-netjs/corejs/jsast"
	"github.com/go-netjs/corejs/metadata"
)

// TransformNewDelegate lowers a bound or unbound method reference into a
// delegate value (§4.1.4).
func (t *Translator) TransformNewDelegate(n *ir.NewDelegate) jsast.Expr {
	ref := ir.MemberRef{Type: n.Type.Entity, Name: n.Method.Entity.ID}
	t.addEdge(graph.MethodNode{Type: n.Type.Entity.ID, Method: n.Method.Entity.ID})

	var info metadata.MemberInfo
	switch r := t.store.LookupMethodInfo(ref).(type) {
	case metadata.Compiled:
		info = r.Info
	case metadata.Compiling:
		info = r.Info
	case metadata.LookupMemberError:
		t.diag.errorSentinel(metadata.MemberNotFound, ErrMemberNotFound, "%s: %v", ref, r.Err)
		return jsast.ErrorPlaceholder{Reason: r.Err.Error()}
	default:
		t.diag.errorSentinel(metadata.SourceError, ErrUnknownDelegateMethod, "%s: delegate target is not a method", ref)
		return jsast.ErrorPlaceholder{Reason: "not a method"}
	}

	switch k := info.Kind.(type) {
	case metadata.Static:
		return jsast.GlobalAccess{Path: k.Addr.Outermost()}

	case metadata.Instance:
		if n.This == nil {
			t.diag.error(metadata.SourceError, "%s: instance delegate with no receiver", ref)
			return jsast.ErrorPlaceholder{Reason: "instance delegate without receiver"}
		}
		classInfo, ok := t.store.TryLookupClassInfo(n.Type.Entity)
		if !ok {
			t.diag.error(metadata.TypeNotFound, "%s has no prototype address for delegate binding", n.Type.Entity.ID)
			return jsast.ErrorPlaceholder{Reason: "delegate target not found"}
		}
		path := append(append([]string(nil), classInfo.Addr.Outermost()...), "prototype")
		protoMethod := &jsast.Member{Object: jsast.GlobalAccess{Path: path}, Name: k.Name}
		return &jsast.Call{
			Callee: jsast.GlobalAccess{Path: []string{"Runtime", "BindDelegate"}},
			Args:   []jsast.Expr{protoMethod, t.Translate(n.This)},
		}

	default:
		// Every other kind (Inline, NotCompiledInline, Macro, Remote, ...)
		// has no single JS function value to reference directly, so a
		// closure is synthesized and equality of the resulting delegate is
		// not preserved across two such captures.
		arity := len(info.Params)
		params := make([]*ir.Ident, arity)
		args := make([]ir.Expr, arity)
		for i := range params {
			params[i] = ir.NewIdent(fmt.Sprintf("$darg%d", i), ir.NoPos)
			args[i] = &ir.Var{Ident: params[i]}
		}
		call := &ir.Call{Receiver: n.This, Type: n.Type, Method: n.Method, Args: args, At: n.At}
		t.diag.warn("delegate for %s is synthesized and does not preserve reference equality", ref)
		return t.Translate(&ir.Lambda{Params: params, Body: call, At: n.At})
	}
}
