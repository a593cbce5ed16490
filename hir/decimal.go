package hir

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// Decimal lazily parses b.Raw as an arbitrary-precision decimal (spec.md
// §4.1 "Numeric literals"), so a multiplicity bound wider than a machine
// int never silently truncates the way Value alone would. Grounded on
// the teacher's own use of apd for CUE's arbitrary-precision numbers
// (cue/literal, see _examples/cue-lang-cue/cue/literal).
func (b Bound) Decimal() (*apd.Decimal, error) {
	if b.Unbounded {
		return nil, fmt.Errorf("bound is unbounded (*)")
	}
	d, _, err := apd.NewFromString(b.Raw)
	return d, err
}
