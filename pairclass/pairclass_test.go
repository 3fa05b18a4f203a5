package pairclass

import (
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/assert"

	"github.com/heymanitshayden/delly/align"
	"github.com/heymanitshayden/delly/svtype"
)

var (
	chr1, _ = sam.NewReference("chr1", "", "", 1000000, nil, nil)
	chr2, _ = sam.NewReference("chr2", "", "", 1000000, nil, nil)

	// Registering the references in a header gives them distinct IDs (0 and
	// 1); a reference outside any header reports ID -1.
	_, _ = sam.NewHeader(nil, []*sam.Reference{chr1, chr2})
)

func newRecord(pos int, flags sam.Flags, mateRef *sam.Reference, matePos int, tempLen int) *align.Record {
	return &align.Record{
		Name:    "r",
		Ref:     chr1,
		Pos:     pos,
		MateRef: mateRef,
		MatePos: matePos,
		Flags:   flags,
		TempLen: tempLen,
	}
}

func TestClassifyRejectsNormalInnie(t *testing.T) {
	// Upstream, forward mate with a reverse mate downstream: a textbook
	// normal FR pair well inside the library's insert-size range.
	r := newRecord(100, sam.Paired|sam.ProperPair|sam.MateReverse, chr1, 300, 500)
	_, ok := Classify(r, 700, 1000)
	assert.False(t, ok)
}

func TestClassifyCallsDeletion(t *testing.T) {
	r := newRecord(100, sam.Paired|sam.MateReverse, chr1, 5000, 4900)
	svt, ok := Classify(r, 700, 1000)
	assert.True(t, ok)
	assert.Equal(t, svtype.SvtDeletion, svt)
}

func TestClassifyInnieBelowCutoffIsRejected(t *testing.T) {
	// Abnormal enough to clear overallMaxISize but not the stricter
	// deletion-specific cutoff.
	r := newRecord(100, sam.Paired|sam.MateReverse, chr1, 800, 700)
	_, ok := Classify(r, 500, 1000)
	assert.False(t, ok)
}

func TestClassifyCallsDuplication(t *testing.T) {
	// Outie: this mate is downstream and forward, its upstream mate is
	// reverse strand.
	r := newRecord(5000, sam.Paired|sam.MateReverse, chr1, 100, 4900)
	svt, ok := Classify(r, 700, 1000)
	assert.True(t, ok)
	assert.Equal(t, svtype.SvtDuplication, svt)
}

func TestClassifyCallsInversions(t *testing.T) {
	ff := newRecord(100, sam.Paired, chr1, 5000, 4900)
	svt, ok := Classify(ff, 700, 1000)
	assert.True(t, ok)
	assert.Equal(t, svtype.SvtInv5to5, svt)

	rr := newRecord(100, sam.Paired|sam.Reverse|sam.MateReverse, chr1, 5000, 4900)
	svt, ok = Classify(rr, 700, 1000)
	assert.True(t, ok)
	assert.Equal(t, svtype.SvtInv3to3, svt)
}

func TestClassifySymmetricAcrossMates(t *testing.T) {
	// The downstream mate of the deletion pair above must classify the
	// same way when handed to Classify directly.
	downstream := newRecord(5000, sam.Paired|sam.Reverse, chr1, 100, -4900)
	svt, ok := Classify(downstream, 700, 1000)
	assert.True(t, ok)
	assert.Equal(t, svtype.SvtDeletion, svt)
}

func TestClassifyTranslocation(t *testing.T) {
	r := newRecord(100, sam.Paired|sam.MateReverse, chr2, 200, 0)
	svt, ok := Classify(r, 700, 1000)
	assert.True(t, ok)
	assert.True(t, svt.IsTranslocation())
	assert.Equal(t, svtype.Svt(2), svt.Orientation())
}
