package scanner

import (
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/assert"

	"github.com/heymanitshayden/delly/align"
	"github.com/heymanitshayden/delly/genome/region"
	"github.com/heymanitshayden/delly/libstats"
	"github.com/heymanitshayden/delly/svtype"
)

var chr1, _ = sam.NewReference("chr1", "", "", 100000, nil, nil)

// Registering chr1 in a header gives it reference ID 0; a reference outside
// any header reports ID -1, which the standard input filters reject.
var _, _ = sam.NewHeader(nil, []*sam.Reference{chr1})

type fakeIterator struct {
	recs []*align.Record
	i    int
}

func (f *fakeIterator) Scan() bool {
	if f.i >= len(f.recs) {
		return false
	}
	f.i++
	return true
}
func (f *fakeIterator) Record() *align.Record { return f.recs[f.i-1] }
func (f *fakeIterator) Err() error            { return nil }
func (f *fakeIterator) Close() error          { return nil }

type fakeProvider struct{ recs []*align.Record }

func (p *fakeProvider) Header() (*sam.Header, error)        { return nil, nil }
func (p *fakeProvider) HasAlignments(int) (bool, error)     { return true, nil }
func (p *fakeProvider) Close() error                        { return nil }
func (p *fakeProvider) RegionIterator(int, int, int) align.Iterator {
	return &fakeIterator{recs: p.recs}
}

func delRecord(name string, pos, matePos int, flags sam.Flags) *align.Record {
	return &align.Record{
		Name:    name,
		Ref:     chr1,
		MateRef: chr1,
		Pos:     pos,
		MatePos: matePos,
		MapQ:    60,
		Flags:   flags,
		TempLen: matePos - pos,
		Cigar:   sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 100)},
	}
}

func TestScanEmitsDeletionPairEvidence(t *testing.T) {
	// read1: forward, upstream. read2: reverse, downstream. Textbook innie
	// pair with an insert size far beyond the library's normal range.
	recs := []*align.Record{
		delRecord("r1", 100, 10100, sam.Paired|sam.MateReverse),
		delRecord("r1", 10100, 100, sam.Paired|sam.Reverse),
	}
	provider := &fakeProvider{recs: recs}
	sink := NewSink()
	lib := libstats.Params{Median: 500, MAD: 50, MaxNormalISize: 700, MaxISizeCutoff: 1000, ReadSize: 100}

	err := Scan(provider, 0, []RefPartition{{RefID: 0, Len: 100000, HasAlignment: true}},
		region.AlwaysValid{}, lib, Params{MinMapQual: 1, MinTraQual: 20, MinClip: 5, MinRefSep: 5},
		sink, nil)
	assert.NoError(t, err)
	assert.Len(t, sink.Pairs[svtype.SvtDeletion], 1)
	assert.Equal(t, uint8(60), sink.Pairs[svtype.SvtDeletion][0].PairQuality)
}

func TestScanSkipsSingleEndLibrary(t *testing.T) {
	recs := []*align.Record{
		delRecord("r1", 100, 10100, sam.Paired|sam.MateReverse),
		delRecord("r1", 10100, 100, sam.Paired|sam.Reverse),
	}
	provider := &fakeProvider{recs: recs}
	sink := NewSink()

	err := Scan(provider, 0, []RefPartition{{RefID: 0, Len: 100000, HasAlignment: true}},
		region.AlwaysValid{}, libstats.Params{}, Params{MinMapQual: 1},
		sink, nil)
	assert.NoError(t, err)
	assert.Empty(t, sink.Pairs)
}
