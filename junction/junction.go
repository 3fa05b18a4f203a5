// Package junction implements the junction extractor (component A):
// from one aligned read's CIGAR, derive the within-read breakpoint signals
// (internal gaps and clips) later selectors use to build split-read
// evidence.
//
// The CIGAR walk mirrors scanPEandSR's inner loop in
// original_source/src/shortpe.h almost statement for statement; the
// >= boundary on minRefSep/minClip follows spec.md's explicit testable
// boundary behaviour ("a gap/clip of exactly the threshold emits a
// junction"), which accepts one more length than the source's plain '>' test.
package junction

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/sam"

	"github.com/heymanitshayden/delly/align"
	"github.com/heymanitshayden/delly/svtype"
)

// Extract appends the junctions found in rec's CIGAR to out and returns the
// extended slice. minRefSep and minClip are inclusive thresholds: a gap or
// clip of exactly that length still emits a junction.
func Extract(rec *align.Record, out []svtype.Junction, minRefSep, minClip int32) []svtype.Junction {
	refID := int32(rec.Ref.ID())
	fwd := rec.Flags&sam.Reverse == 0

	rp := int32(rec.Pos)
	var sp int32

	emit := func(pos, seq int32, scleft bool) []svtype.Junction {
		return append(out, svtype.Junction{
			RefID:  refID,
			RefPos: pos,
			SeqPos: seq,
			Fwd:    fwd,
			SCLeft: scleft,
		})
	}

	for _, op := range rec.Cigar {
		n := int32(op.Len())
		switch op.Type() {
		case sam.CigarMatch, sam.CigarEqual, sam.CigarMismatch:
			rp += n
			sp += n
		case sam.CigarDeletion:
			if n >= minRefSep {
				out = emit(rp, sp, false)
			}
			rp += n
			if n >= minRefSep {
				out = emit(rp, sp, true)
			}
		case sam.CigarInsertion:
			sp += n
		case sam.CigarSoftClipped, sam.CigarHardClipped:
			finalSp := sp
			scleft := false
			if sp == 0 {
				finalSp += n
				scleft = true
			}
			sp += n
			if n >= minClip {
				out = emit(rp, finalSp, scleft)
			}
		case sam.CigarSkipped:
			rp += n
		default:
			log.Error.Printf("junction: unknown CIGAR operation %v in read %s", op.Type(), rec.Name)
		}
	}
	return out
}
