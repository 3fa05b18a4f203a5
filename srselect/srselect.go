// Package srselect implements the SR-junction selector (component E): from
// one read's sorted junction list, derive split-read breakpoint-pair
// records for the five SV families.
//
// original_source/src/shortpe.h declares the selector entry points but not
// their bodies (the per-family classification logic lives in a translation
// unit outside the retrieved header), so the pairwise rules below are
// modeled directly from spec.md's textual description of each family:
// same-strand adjacent junctions with the reference position increasing in
// read order are a deletion; same-strand junctions where the later-in-read
// junction has the smaller reference position are a tandem duplication (the
// read runs back over the duplicated segment); opposite-strand junctions are
// an inversion, oriented by which segment is forward; a large sequence-side
// gap with a small reference-side gap is an insertion; junctions on two
// different reference ids are a translocation.
package srselect

import (
	"sort"

	"github.com/heymanitshayden/delly/svtype"
)

// Params tunes the boundary between "small" and "large" gaps the insertion
// rule uses to separate an insertion from a plain deletion/duplication.
type Params struct {
	// MinInsertionSeqGap is the minimum excess of sequence-offset gap over
	// reference-position gap for a junction pair to be called an insertion.
	MinInsertionSeqGap int32
	// MaxInsertionRefGap is the maximum reference-position gap still
	// consistent with an insertion (as opposed to a deletion that happens
	// to have a large sequence gap from an adjoining clip).
	MaxInsertionRefGap int32
}

// DefaultParams mirrors typical short-read insert sizes: an insertion needs
// at least 10 unexplained sequence bases and at most a few bases of
// reference movement.
var DefaultParams = Params{MinInsertionSeqGap: 10, MaxInsertionRefGap: 3}

// Sink accumulates SR-breakpoint-pair records across every selection family
// SelectAll runs for one sample; the orchestrator merges every sample's Sink.Records before
// clustering per svt.
type Sink struct {
	Records []svtype.SRBamRecord
}

// SelectAll sorts every read's junction list by sequence offset, picks the
// single junction pair that best supports one breakpoint, and appends the
// classified result to sink. It is the SelectorFunc scanner.Scan invokes at
// the end of a sample's stream.
func SelectAll(store svtype.JunctionStore, sampleIdx int, sink *Sink, params Params) {
	for readID, junctions := range store {
		if len(junctions) < 2 {
			continue
		}
		sorted := append([]svtype.Junction(nil), junctions...)
		sort.Sort(svtype.ByReadOffset(sorted))

		i, j := bestPair(sorted)
		if rec, ok := classifyPair(sorted[i], sorted[j], readID, params); ok {
			sink.Records = append(sink.Records, rec)
		}
	}
}

// bestPair picks the pair of junctions from a read's sorted junction list
// that best supports a single breakpoint. Only read-order-adjacent junctions
// are candidates: the two junctions produced by one CIGAR operation (a
// deletion's before/after pair, or a clip beside the segment it clips) are
// always adjacent once sorted by sequence offset, while non-adjacent
// junctions never correspond to the same event. Among the adjacent
// candidates, the pair with the largest reference separation wins,
// tiebreaking on the smaller sequence-offset span between them. A read with
// more than two junctions (an ordinary CIGAR like 40S60M100D60M yields
// three) would otherwise have no principled way to tell a clip/deletion
// cross-pair apart from the deletion's own matched pair.
func bestPair(sorted []svtype.Junction) (int, int) {
	bi, bj := 0, 1
	bestRefSep, bestSeqSpan := refSeparation(sorted[0], sorted[1]), seqSpan(sorted[0], sorted[1])
	for i := 1; i+1 < len(sorted); i++ {
		refSep := refSeparation(sorted[i], sorted[i+1])
		span := seqSpan(sorted[i], sorted[i+1])
		if refSep > bestRefSep || (refSep == bestRefSep && span < bestSeqSpan) {
			bi, bj, bestRefSep, bestSeqSpan = i, i+1, refSep, span
		}
	}
	return bi, bj
}

func refSeparation(a, b svtype.Junction) int32 {
	d := b.RefPos - a.RefPos
	if d < 0 {
		return -d
	}
	return d
}

func seqSpan(a, b svtype.Junction) int32 {
	d := b.SeqPos - a.SeqPos
	if d < 0 {
		return -d
	}
	return d
}

func classifyPair(a, b svtype.Junction, readID uint64, params Params) (svtype.SRBamRecord, bool) {
	if a.RefID != b.RefID {
		return translocationPair(a, b, readID), true
	}

	seqGap := b.SeqPos - a.SeqPos
	if seqGap < 0 {
		seqGap = -seqGap
	}
	refGap := b.RefPos - a.RefPos
	if refGap < 0 {
		refGap = -refGap
	}

	if refGap <= params.MaxInsertionRefGap && seqGap-refGap >= params.MinInsertionSeqGap {
		return insertionPair(a, b, readID), true
	}

	if a.Fwd != b.Fwd {
		return inversionPair(a, b, readID), true
	}

	if b.RefPos >= a.RefPos {
		return svtype.SRBamRecord{
			Chr1: a.RefID, Pos1: a.RefPos,
			Chr2: b.RefID, Pos2: b.RefPos,
			ReadID: readID, Svt: svtype.SvtDeletion, Svid: -1,
		}, true
	}
	return svtype.SRBamRecord{
		Chr1: a.RefID, Pos1: b.RefPos,
		Chr2: a.RefID, Pos2: a.RefPos,
		ReadID: readID, Svt: svtype.SvtDuplication, Svid: -1,
	}, true
}

func insertionPair(a, b svtype.Junction, readID uint64) svtype.SRBamRecord {
	pos1, pos2 := a.RefPos, b.RefPos
	if pos2 < pos1 {
		pos1, pos2 = pos2, pos1
	}
	return svtype.SRBamRecord{
		Chr1: a.RefID, Pos1: pos1,
		Chr2: a.RefID, Pos2: pos2,
		ReadID: readID, Svt: svtype.SvtInsertion, Svid: -1,
	}
}

func inversionPair(a, b svtype.Junction, readID uint64) svtype.SRBamRecord {
	pos1, pos2 := a.RefPos, b.RefPos
	if pos2 < pos1 {
		pos1, pos2 = pos2, pos1
	}
	svt := svtype.SvtInv5to5
	if a.Fwd {
		svt = svtype.SvtInv3to3
	}
	return svtype.SRBamRecord{
		Chr1: a.RefID, Pos1: pos1,
		Chr2: a.RefID, Pos2: pos2,
		ReadID: readID, Svt: svt, Svid: -1,
	}
}

func translocationPair(a, b svtype.Junction, readID uint64) svtype.SRBamRecord {
	chr1, pos1, fwd1 := a.RefID, a.RefPos, a.Fwd
	chr2, pos2, fwd2 := b.RefID, b.RefPos, b.Fwd
	if chr2 < chr1 {
		chr1, pos1, fwd1, chr2, pos2, fwd2 = chr2, pos2, fwd2, chr1, pos1, fwd1
	}
	var sub svtype.Svt
	switch {
	case fwd1 && fwd2:
		sub = 0
	case !fwd1 && !fwd2:
		sub = 1
	case fwd1 && !fwd2:
		sub = 2
	default:
		sub = 3
	}
	return svtype.SRBamRecord{
		Chr1: chr1, Pos1: pos1,
		Chr2: chr2, Pos2: pos2,
		ReadID: readID, Svt: svtype.TransBase + sub, Svid: -1,
	}
}
