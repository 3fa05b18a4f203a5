package matepair

import (
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/assert"

	"github.com/heymanitshayden/delly/align"
	"github.com/heymanitshayden/delly/svtype"
)

var chr1, _ = sam.NewReference("chr1", "", "", 1000000, nil, nil)

func mate(name string, pos int, mapQ int, matePos int) *align.Record {
	return &align.Record{
		Name:    name,
		Ref:     chr1,
		MateRef: chr1,
		Pos:     pos,
		MatePos: matePos,
		MapQ:    byte(mapQ),
		Flags:   sam.Paired,
		TempLen: matePos - pos,
	}
}

func TestObserveEmitsOnSecondMate(t *testing.T) {
	r := NewReconciler()

	first := mate("readA", 100, 60, 5000)
	_, done := r.Observe(first, svtype.SvtDeletion, 0, 100)
	assert.False(t, done)

	second := mate("readA", 5000, 40, 100)
	rec, done := r.Observe(second, svtype.SvtDeletion, 0, 98)
	assert.True(t, done)
	assert.Equal(t, uint8(40), rec.PairQuality)
	assert.Equal(t, svtype.SvtDeletion, rec.Svt)
}

func TestObserveDoesNotDoubleEmit(t *testing.T) {
	r := NewReconciler()
	first := mate("readB", 100, 60, 5000)
	r.Observe(first, svtype.SvtDeletion, 0, 100)

	second := mate("readB", 5000, 40, 100)
	_, done := r.Observe(second, svtype.SvtDeletion, 0, 98)
	assert.True(t, done)

	// A duplicate template at the identical position must not re-emit.
	dup := mate("readB", 5000, 50, 100)
	_, done = r.Observe(dup, svtype.SvtDeletion, 0, 98)
	assert.False(t, done)
}

func TestObserveReconcilesMatesAtIdenticalCoordinate(t *testing.T) {
	// A fully overlapping fragment can put both mates at the exact same
	// (ref, pos): the coordinate-order predicate alone can't tell them
	// apart, so this must still emit on the second Observe rather than
	// silently losing the pair.
	r := NewReconciler()

	first := mate("readD", 100, 60, 100)
	_, done := r.Observe(first, svtype.SvtDeletion, 0, 90)
	assert.False(t, done)

	second := mate("readD", 100, 45, 100)
	rec, done := r.Observe(second, svtype.SvtDeletion, 0, 90)
	assert.True(t, done)
	assert.Equal(t, uint8(45), rec.PairQuality)
}

func TestResetClearsPendingMates(t *testing.T) {
	r := NewReconciler()
	first := mate("readC", 100, 60, 5000)
	r.Observe(first, svtype.SvtDeletion, 0, 100)

	r.Reset()

	second := mate("readC", 5000, 40, 100)
	_, done := r.Observe(second, svtype.SvtDeletion, 0, 98)
	assert.False(t, done, "reset should have dropped the stashed first mate")
}
