// Package pairclass implements the pair classifier (component B): map one
// paired-end mate's relative orientation and insert size to a candidate svt,
// or reject the pair as uninformative.
//
// spec.md section 4.B names the four orientation categories a same-
// chromosome discordant pair maps to (deletion, duplication, inversion-3'3',
// inversion-5'5') and states that translocations are classified by
// orientation too, but does not give the literal bit-level mapping (the
// upstream source's _getSVType/_isizeMappingPos routines live in tags.h and
// util.h, neither of which were retrieved alongside shortpe.h). The mapping
// below follows the discordant-pair convention shared by Delly, Lumpy and
// BreakDancer: classify by whether the pair's relative orientation is innie
// (FR), outie (RF), or same-strand (FF/RR). The convention is defined in
// terms of "upstream mate" rather than read1/read2, so it is symmetric: it
// classifies the same way regardless of which of the two mates is passed
// in, which is what lets the mate reconciler hand it either end of a pair.
package pairclass

import (
	"github.com/grailbio/hts/sam"

	"github.com/heymanitshayden/delly/align"
	"github.com/heymanitshayden/delly/svtype"
)

// Classify returns the svt implied by rec's orientation and insert size, and
// whether the pair carries SV evidence at all. overallMaxISize and
// maxISizeCutoff are the sample's library parameters (spec.md section 6,
// "Library stats"; libstats.Params.OverallMaxISize documents the former): a
// same-chromosome pair whose insert size falls within overallMaxISize is
// rejected outright, and an innie pair additionally needs to exceed the
// stricter maxISizeCutoff before it is called a deletion.
//
// Classify assumes both mates are mapped; callers filter unmapped and
// secondary/supplementary records before invoking it.
func Classify(rec *align.Record, overallMaxISize, maxISizeCutoff int32) (svt svtype.Svt, ok bool) {
	readReverse := rec.Flags&sam.Reverse != 0
	mateReverse := rec.Flags&sam.MateReverse != 0

	if rec.Ref == nil || rec.MateRef == nil {
		return 0, false
	}

	if rec.Ref.ID() != rec.MateRef.ID() {
		return translocationSvt(readReverse, mateReverse), true
	}

	isize := int32(rec.TempLen)
	if isize < 0 {
		isize = -isize
	}
	if isize <= overallMaxISize {
		return 0, false
	}

	upstream := rec.Pos <= rec.MatePos
	switch orientation(readReverse, mateReverse, upstream) {
	case orientInnie:
		if isize <= maxISizeCutoff {
			return 0, false
		}
		return svtype.SvtDeletion, true
	case orientOutie:
		return svtype.SvtDuplication, true
	case orientForwardForward:
		return svtype.SvtInv5to5, true
	case orientReverseReverse:
		return svtype.SvtInv3to3, true
	}
	return 0, false
}

type orient int

const (
	orientInnie orient = iota
	orientOutie
	orientForwardForward
	orientReverseReverse
)

// orientation classifies a same-chromosome pair from the perspective of
// whichever mate is passed in: the result does not depend on whether rec is
// the upstream or the downstream mate, only on the strands the two mates
// actually took.
func orientation(readReverse, mateReverse, upstream bool) orient {
	switch {
	case !readReverse && !mateReverse:
		return orientForwardForward
	case readReverse && mateReverse:
		return orientReverseReverse
	case upstream:
		if !readReverse && mateReverse {
			return orientInnie
		}
		return orientOutie
	default:
		if readReverse && !mateReverse {
			return orientInnie
		}
		return orientOutie
	}
}

// translocationSvt encodes an inter-chromosomal pair's orientation into the
// [TransBase, 2*TransBase) range, per svtype's translocation encoding.
func translocationSvt(readReverse, mateReverse bool) svtype.Svt {
	var sub svtype.Svt
	switch {
	case !readReverse && !mateReverse:
		sub = 0
	case readReverse && mateReverse:
		sub = 1
	case !readReverse && mateReverse:
		sub = 2
	default:
		sub = 3
	}
	return svtype.TransBase + sub
}
