package srselect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heymanitshayden/delly/svtype"
)

func TestSelectAllDeletion(t *testing.T) {
	store := svtype.JunctionStore{
		1: {
			{RefID: 0, RefPos: 1000, SeqPos: 40, Fwd: true, SCLeft: false},
			{RefID: 0, RefPos: 1500, SeqPos: 41, Fwd: true, SCLeft: true},
		},
	}
	var sink Sink
	SelectAll(store, 0, &sink, DefaultParams)
	assert.Len(t, sink.Records, 1)
	assert.Equal(t, svtype.SvtDeletion, sink.Records[0].Svt)
	assert.Equal(t, int32(1000), sink.Records[0].Pos1)
	assert.Equal(t, int32(1500), sink.Records[0].Pos2)
}

func TestSelectAllDuplication(t *testing.T) {
	store := svtype.JunctionStore{
		2: {
			{RefID: 0, RefPos: 1500, SeqPos: 40, Fwd: true, SCLeft: false},
			{RefID: 0, RefPos: 1000, SeqPos: 41, Fwd: true, SCLeft: true},
		},
	}
	var sink Sink
	SelectAll(store, 0, &sink, DefaultParams)
	assert.Len(t, sink.Records, 1)
	assert.Equal(t, svtype.SvtDuplication, sink.Records[0].Svt)
	assert.Equal(t, int32(1000), sink.Records[0].Pos1)
	assert.Equal(t, int32(1500), sink.Records[0].Pos2)
}

func TestSelectAllInversion(t *testing.T) {
	store := svtype.JunctionStore{
		3: {
			{RefID: 0, RefPos: 1000, SeqPos: 40, Fwd: true, SCLeft: false},
			{RefID: 0, RefPos: 1500, SeqPos: 41, Fwd: false, SCLeft: true},
		},
	}
	var sink Sink
	SelectAll(store, 0, &sink, DefaultParams)
	assert.Len(t, sink.Records, 1)
	assert.Equal(t, svtype.SvtInv3to3, sink.Records[0].Svt)
}

func TestSelectAllInsertion(t *testing.T) {
	store := svtype.JunctionStore{
		4: {
			{RefID: 0, RefPos: 1000, SeqPos: 40, Fwd: true, SCLeft: false},
			{RefID: 0, RefPos: 1001, SeqPos: 65, Fwd: true, SCLeft: true},
		},
	}
	var sink Sink
	SelectAll(store, 0, &sink, DefaultParams)
	assert.Len(t, sink.Records, 1)
	assert.Equal(t, svtype.SvtInsertion, sink.Records[0].Svt)
}

func TestSelectAllTranslocation(t *testing.T) {
	store := svtype.JunctionStore{
		5: {
			{RefID: 0, RefPos: 1000, SeqPos: 40, Fwd: true, SCLeft: false},
			{RefID: 1, RefPos: 2000, SeqPos: 41, Fwd: true, SCLeft: true},
		},
	}
	var sink Sink
	SelectAll(store, 0, &sink, DefaultParams)
	assert.Len(t, sink.Records, 1)
	assert.True(t, sink.Records[0].Svt.IsTranslocation())
}

func TestSelectAllPicksBestPairAmongThreeJunctions(t *testing.T) {
	// 40S60M100D60M: a leading soft clip plus an internal deletion produce
	// three junctions on one read. The clip pairs with the deletion's near
	// end at a small reference separation; the true deletion pair (the
	// second and third junctions) has the largest reference separation and
	// must be the one selected, not either clip cross-pair.
	store := svtype.JunctionStore{
		7: {
			{RefID: 0, RefPos: 1000, SeqPos: 40, Fwd: true, SCLeft: true},
			{RefID: 0, RefPos: 1060, SeqPos: 100, Fwd: true, SCLeft: false},
			{RefID: 0, RefPos: 1160, SeqPos: 100, Fwd: true, SCLeft: true},
		},
	}
	var sink Sink
	SelectAll(store, 0, &sink, DefaultParams)
	assert.Len(t, sink.Records, 1)
	assert.Equal(t, svtype.SvtDeletion, sink.Records[0].Svt)
	assert.Equal(t, int32(1060), sink.Records[0].Pos1)
	assert.Equal(t, int32(1160), sink.Records[0].Pos2)
}

func TestSelectAllSkipsSingleJunctionReads(t *testing.T) {
	store := svtype.JunctionStore{
		6: {{RefID: 0, RefPos: 1000, SeqPos: 40, Fwd: true, SCLeft: false}},
	}
	var sink Sink
	SelectAll(store, 0, &sink, DefaultParams)
	assert.Empty(t, sink.Records)
}
