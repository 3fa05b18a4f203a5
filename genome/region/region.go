// Package region models the "Region index" external contract from spec.md
// section 6: per-reference valid-region intervals, sorted and non-
// overlapping. The default implementation wraps interval.BEDUnion, adapted
// from grailbio/bio/interval to fix its import of the pre-fork biogo/hts.
package region

import (
	"github.com/heymanitshayden/delly/interval"
)

// Interval is a half-open [Start, End) valid region on one reference.
type Interval struct {
	Start, End int32
}

// Index answers whether a position is inside a valid region for a
// reference, and can enumerate the valid regions of a reference in order.
// The scanner (component D) uses ContainsByID to filter mate references
// before invoking the mate reconciler and to gate translocation candidates,
// and Regions to drive its own per-reference scan windows.
type Index interface {
	ContainsByID(refID int, pos int32) bool
	Regions(refID int) []Interval
}

// BEDIndex adapts interval.BEDUnion to Index.
type BEDIndex struct {
	Union *interval.BEDUnion
}

// ContainsByID implements Index.
func (b BEDIndex) ContainsByID(refID int, pos int32) bool {
	return b.Union.ContainsByID(refID, interval.PosType(pos))
}

// Regions implements Index.
func (b BEDIndex) Regions(refID int) []Interval {
	bounds := b.Union.IntervalBoundsByID(refID)
	out := make([]Interval, 0, len(bounds)/2)
	for i := 0; i+1 < len(bounds); i += 2 {
		out = append(out, Interval{Start: int32(bounds[i]), End: int32(bounds[i+1])})
	}
	return out
}

// AlwaysValid is the Index used when no region restriction was configured:
// every position in every reference is valid, spanning refLen.
type AlwaysValid struct{}

// ContainsByID implements Index.
func (AlwaysValid) ContainsByID(int, int32) bool { return true }

// Regions implements Index. AlwaysValid has no reference-length knowledge,
// so it reports no bounded intervals; callers fall back to scanning
// [0, refLen) directly when Regions returns empty for an AlwaysValid index.
func (AlwaysValid) Regions(int) []Interval { return nil }
