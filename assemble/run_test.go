package assemble

import (
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/assert"

	"github.com/heymanitshayden/delly/align"
	"github.com/heymanitshayden/delly/svcall/config"
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
func (f *fakeIterator) Err() error             { return nil }
func (f *fakeIterator) Close() error           { return nil }

type fakeProvider struct{ recs []*align.Record }

func (p *fakeProvider) Header() (*sam.Header, error)    { return nil, nil }
func (p *fakeProvider) HasAlignments(int) (bool, error) { return true, nil }
func (p *fakeProvider) Close() error                    { return nil }
func (p *fakeProvider) RegionIterator(int, int, int) align.Iterator {
	return &fakeIterator{recs: p.recs}
}

type fakeRefIndex struct{}

func (fakeRefIndex) Sequence(refID int, start, end int32) (string, error) {
	panic("Sequence should not be called when fewer than two reads support an SV")
}

func srRead(name string, pos int, flags sam.Flags, mapQ byte) *align.Record {
	return &align.Record{
		Name:  name,
		Ref:   chr1,
		Pos:   pos,
		Flags: flags,
		MapQ:  mapQ,
		Seq:   sam.NewSeq([]byte("ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGT")),
	}
}

// TestRunExcludesSecondaryAlignmentsFromAssembly guards against a supporting
// read that shares a clustered SR position by name but is a secondary
// alignment: it must not be folded into the SV's consensus sequence even
// though srStore.Lookup matches on position and name hash alone.
func TestRunExcludesSecondaryAlignmentsFromAssembly(t *testing.T) {
	readID := align.ReadNameSeed("readA")
	srBySvt := map[svtype.Svt][]svtype.SRBamRecord{
		svtype.SvtDeletion: {
			{Chr1: 0, Pos1: 100, Chr2: 0, Pos2: 200, ReadID: readID, Svt: svtype.SvtDeletion, Svid: 0},
		},
	}
	refLens := []int32{100000}
	srStore := BuildSRStore(srBySvt, refLens)

	svs := []svtype.StructuralVariantRecord{
		{ID: 0, Svt: svtype.SvtDeletion, Chr1: 0, Start: 100, Chr2: 0, End: 200, SRSupport: 3},
	}

	provider := &fakeProvider{recs: []*align.Record{
		srRead("readA", 100, sam.Paired, 60),
		srRead("readA", 100, sam.Paired|sam.Secondary, 60),
	}}

	p := config.DefaultParams
	err := Run([]align.Provider{provider}, refLens, srStore, svs, fakeRefIndex{}, p)
	assert.NoError(t, err)

	assert.False(t, svs[0].Precise, "a lone qualifying read cannot form a consensus")
	assert.Equal(t, "", svs[0].Consensus)
	assert.Equal(t, int32(3), svs[0].SRSupport, "SRSupport is untouched when assembly never runs")
}
