// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package corejs

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/go-netjs/corejs/ir"
	"github.com/go-netjs/corejs/metadata"
)

// Collector is a convenience wrapper around a metadata.Store's two
// diagnostic sinks: it builds metadata.Diagnostic values from the current
// member/position and forwards them, the way the teacher's humanize.go
// renders a CompilerError for a human rather than inventing a second error
// channel.
type Collector struct {
	store  metadata.Store
	member ir.MemberRef
}

func newCollector(store metadata.Store, member ir.MemberRef) *Collector {
	return &Collector{store: store, member: member}
}

func (c *Collector) error(kind metadata.ErrorKind, format string, args ...any) {
	c.store.AddError(metadata.Diagnostic{
		Kind:    kind,
		Member:  c.member,
		Message: fmt.Sprintf(format, args...),
	})
}

// errorSentinel is error, but also attaches one of this package's named
// *TranslateError values to the recorded diagnostic so a caller can recover
// it with errors.As instead of matching on Message text.
func (c *Collector) errorSentinel(kind metadata.ErrorKind, sentinel *TranslateError, format string, args ...any) {
	c.store.AddError(metadata.Diagnostic{
		Kind:    kind,
		Member:  c.member,
		Message: fmt.Sprintf(format, args...),
		Err:     sentinel.NewError(format, args...),
	})
}

func (c *Collector) warn(format string, args ...any) {
	c.store.AddWarning(metadata.Diagnostic{
		Member:  c.member,
		Message: fmt.Sprintf(format, args...),
		Warning: true,
	})
}

// Summary renders a one-line, human-readable count of recorded diagnostics,
// grounded on the teacher's humanize.go ErrorHumanizing role.
func Summary(diags []metadata.Diagnostic) string {
	if len(diags) == 0 {
		return "no diagnostics"
	}
	var errs, warns int
	for _, d := range diags {
		if d.Warning {
			warns++
		} else {
			errs++
		}
	}
	parts := make([]string, 0, 2)
	if errs > 0 {
		parts = append(parts, humanize.Comma(int64(errs))+" error(s)")
	}
	if warns > 0 {
		parts = append(parts, humanize.Comma(int64(warns))+" warning(s)")
	}
	return strings.Join(parts, ", ")
}
