// Package matepair implements the mate reconciler (component C): join two
// mates of a discordant pair into one BamAlignRecord.
//
// Reconciler mirrors shortpe.h's two-map design (an intra-chromosomal map
// reset at each reference partition, an inter-chromosomal map spanning the
// whole sample): the first mate observed at a hash is stashed, the second
// mate observed there consumes the stash and emits a pair record, zeroing
// the stash's quality so a later duplicate at the identical hash cannot
// double-emit.
package matepair

import (
	"github.com/heymanitshayden/delly/align"
	"github.com/heymanitshayden/delly/svtype"
)

// stashed holds what the reconciler needs to remember about the first mate
// of a pair once its partner has not yet been seen.
type stashed struct {
	mapQual   uint8
	alignLen  int32
	sampleIdx int
	svt       svtype.Svt
}

// Reconciler pairs up mates within one sample's scan. Callers create one
// per intra-chromosomal reference partition and one that spans the whole
// sample for inter-chromosomal pairs, per spec.md's two-map design.
type Reconciler struct {
	pending map[uint64]stashed
	// lastPos and seenAtPos implement the "local dedup set of read-id
	// hashes at the current position, cleared whenever the read position
	// advances" rule: it stops a duplicate template at the same coordinate
	// from being reconciled twice against the same stash.
	lastPos   int32
	haveLast  bool
	seenAtPos map[uint64]bool
}

// NewReconciler returns an empty Reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{
		pending:   make(map[uint64]stashed),
		seenAtPos: make(map[uint64]bool),
	}
}

// Reset clears all pending mate state so the Reconciler can be reused. The
// scanner does not call it; it builds a fresh intra-chromosomal Reconciler
// for each reference partition instead.
func (r *Reconciler) Reset() {
	for k := range r.pending {
		delete(r.pending, k)
	}
	r.haveLast = false
}

func (r *Reconciler) advance(pos int32) {
	if !r.haveLast || pos != r.lastPos {
		for k := range r.seenAtPos {
			delete(r.seenAtPos, k)
		}
		r.lastPos = pos
		r.haveLast = true
	}
}

// Observe processes one aligned mate, classified by pairclass into svt, and
// returns the BamAlignRecord for the pair together with true if rec was the
// second mate seen (completing a pair). rec is assumed to already satisfy
// the standard input filters and pairclass's own acceptance test.
func (r *Reconciler) Observe(rec *align.Record, svt svtype.Svt, sampleIdx int, alignLen int32) (svtype.BamAlignRecord, bool) {
	r.advance(int32(rec.Pos))

	seed := align.PairSeed(rec)
	if r.seenAtPos[seed] {
		return svtype.BamAlignRecord{}, false
	}

	if r.isFirstMate(rec, seed) {
		r.pending[seed] = stashed{
			mapQual:   uint8(rec.MapQ),
			alignLen:  alignLen,
			sampleIdx: sampleIdx,
			svt:       svt,
		}
		return svtype.BamAlignRecord{}, false
	}

	stash, ok := r.pending[seed]
	if !ok || stash.mapQual == 0 {
		return svtype.BamAlignRecord{}, false
	}

	pairQual := stash.mapQual
	if uint8(rec.MapQ) < pairQual {
		pairQual = uint8(rec.MapQ)
	}

	out := svtype.BamAlignRecord{
		Chr1:        int32(rec.Ref.ID()),
		Pos1:        int32(rec.Pos),
		Chr2:        int32(rec.MateRef.ID()),
		Pos2:        int32(rec.MatePos),
		PairQuality: pairQual,
		AlenFirst:   stash.alignLen,
		AlenSecond:  alignLen,
		InsertSize:  int32(rec.TempLen),
		SampleIdx:   sampleIdx,
		Svt:         svt,
	}

	stash.mapQual = 0
	r.pending[seed] = stash
	r.seenAtPos[seed] = true
	return out, true
}

// isFirstMate applies the deterministic "lower reference-then-position mate
// appears first" predicate spec.md names, so the reconciler doesn't rely on
// BAM's own read1/read2 flags (which say nothing about coordinate order).
// Two mates can share the exact same (ref, pos) for very short or fully
// overlapping fragments, where the coordinate predicate alone can't tell
// them apart; that case falls back to first-observed-wins, keyed off
// whether a stash already exists for seed, so the pair still gets
// reconciled instead of the second mate silently overwriting the first
// mate's stash.
func (r *Reconciler) isFirstMate(rec *align.Record, seed uint64) bool {
	self := svtype.Coord{RefID: int32(rec.Ref.ID()), Pos: int32(rec.Pos)}
	mate := svtype.Coord{RefID: int32(rec.MateRef.ID()), Pos: int32(rec.MatePos)}
	if self.Equal(mate) {
		_, alreadyStashed := r.pending[seed]
		return !alreadyStashed
	}
	return self.LT(mate)
}
