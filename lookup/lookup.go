// Package lookup holds linear-scan helpers over lists of records.
package lookup

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/staticbugs/toolwarn/record"
)

// valueEquality treats nil and empty slices or maps as equal, matching how
// they encode, and compares unexported fields too.
var valueEquality = []cmp.Option{
	cmpopts.EquateEmpty(),
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// Unique returns the elements of lst with structural duplicates removed.
// The first occurrence of each value is kept, in input order. Pointers are
// compared by the values they point to.
func Unique[T any](lst []T) []T {
	out := make([]T, 0, len(lst))
	for _, candidate := range lst {
		seen := false
		for _, kept := range out {
			if cmp.Equal(candidate, kept, valueEquality...) {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, candidate)
		}
	}
	return out
}

// FindMsgByProjAndCls returns every message whose project and class match
// exactly, in input order.
func FindMsgByProjAndCls[T record.Located](proj, cls string, msgs []T) []T {
	out := make([]T, 0)
	for _, m := range msgs {
		if m.Project() == proj && m.Class() == cls {
			out = append(out, m)
		}
	}
	return out
}
