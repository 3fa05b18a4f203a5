package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heymanitshayden/delly/svtype"
)

func TestBuildSRStoreIndexesBothEndpoints(t *testing.T) {
	recs := map[svtype.Svt][]svtype.SRBamRecord{
		svtype.SvtDeletion: {
			{Chr1: 0, Pos1: 100, Chr2: 0, Pos2: 500, ReadID: 42, Svt: svtype.SvtDeletion, Svid: 7},
			{Chr1: 0, Pos1: 9000, Chr2: 0, Pos2: 9500, ReadID: 43, Svt: svtype.SvtDeletion, Svid: -1},
		},
	}
	store := BuildSRStore(recs, []int32{10000})

	svid, ok := store.Lookup(0, 100, 42)
	assert.True(t, ok)
	assert.Equal(t, int32(7), svid)

	svid, ok = store.Lookup(0, 500, 42)
	assert.True(t, ok)
	assert.Equal(t, int32(7), svid)

	_, ok = store.Lookup(0, 9000, 43)
	assert.False(t, ok, "unclustered record must not be indexed")

	_, ok = store.Lookup(0, 100, 999)
	assert.False(t, ok, "wrong read id must not match")
}

func TestBuildSRStoreOutOfRangeRefIsIgnored(t *testing.T) {
	recs := map[svtype.Svt][]svtype.SRBamRecord{
		svtype.SvtDeletion: {
			{Chr1: 5, Pos1: 100, Chr2: 5, Pos2: 200, ReadID: 1, Svid: 0},
		},
	}
	store := BuildSRStore(recs, []int32{1000})
	_, ok := store.Lookup(5, 100, 1)
	assert.False(t, ok)
}
