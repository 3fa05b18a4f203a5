package junction

import (
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/assert"

	"github.com/heymanitshayden/delly/svtype"
)

var chr1, _ = sam.NewReference("chr1", "", "", 1000000, nil, nil)

func TestExtractEmitsDeletionJunctionPair(t *testing.T) {
	rec := &sam.Record{
		Name:  "read1",
		Ref:   chr1,
		Pos:   100,
		Flags: 0,
		Cigar: sam.Cigar{
			sam.NewCigarOp(sam.CigarMatch, 50),
			sam.NewCigarOp(sam.CigarDeletion, 30),
			sam.NewCigarOp(sam.CigarMatch, 50),
		},
	}
	out := Extract(rec, nil, 25, 25)
	assert.Len(t, out, 2)
	assert.Equal(t, int32(150), out[0].RefPos)
	assert.Equal(t, int32(50), out[0].SeqPos)
	assert.False(t, out[0].SCLeft)
	assert.Equal(t, int32(180), out[1].RefPos)
	assert.Equal(t, int32(50), out[1].SeqPos)
	assert.True(t, out[1].SCLeft)
}

func TestExtractSkipsShortDeletion(t *testing.T) {
	rec := &sam.Record{
		Name: "read1",
		Ref:  chr1,
		Pos:  0,
		Cigar: sam.Cigar{
			sam.NewCigarOp(sam.CigarMatch, 50),
			sam.NewCigarOp(sam.CigarDeletion, 5),
			sam.NewCigarOp(sam.CigarMatch, 50),
		},
	}
	out := Extract(rec, nil, 25, 25)
	assert.Empty(t, out)
}

func TestExtractEmitsRightSoftClip(t *testing.T) {
	rec := &sam.Record{
		Name: "read1",
		Ref:  chr1,
		Pos:  0,
		Cigar: sam.Cigar{
			sam.NewCigarOp(sam.CigarMatch, 70),
			sam.NewCigarOp(sam.CigarSoftClipped, 30),
		},
	}
	out := Extract(rec, nil, 25, 25)
	assert.Len(t, out, 1)
	assert.Equal(t, int32(70), out[0].RefPos)
	assert.Equal(t, int32(70), out[0].SeqPos)
	assert.False(t, out[0].SCLeft)
}

func TestExtractEmitsLeftSoftClip(t *testing.T) {
	rec := &sam.Record{
		Name: "read1",
		Ref:  chr1,
		Pos:  100,
		Cigar: sam.Cigar{
			sam.NewCigarOp(sam.CigarSoftClipped, 30),
			sam.NewCigarOp(sam.CigarMatch, 70),
		},
	}
	out := Extract(rec, nil, 25, 25)
	assert.Len(t, out, 1)
	assert.Equal(t, int32(100), out[0].RefPos)
	assert.Equal(t, int32(30), out[0].SeqPos)
	assert.True(t, out[0].SCLeft)
}

func TestExtractSetsStrandFromFlags(t *testing.T) {
	rec := &sam.Record{
		Name:  "read1",
		Ref:   chr1,
		Pos:   0,
		Flags: sam.Reverse,
		Cigar: sam.Cigar{
			sam.NewCigarOp(sam.CigarMatch, 70),
			sam.NewCigarOp(sam.CigarSoftClipped, 30),
		},
	}
	out := Extract(rec, nil, 25, 25)
	assert.Len(t, out, 1)
	assert.False(t, out[0].Fwd)
}

func TestExtractAppendsToExistingSlice(t *testing.T) {
	seed := []svtype.Junction{{RefID: 5, RefPos: 1}}
	rec := &sam.Record{
		Name: "read1",
		Ref:  chr1,
		Pos:  0,
		Cigar: sam.Cigar{
			sam.NewCigarOp(sam.CigarMatch, 70),
			sam.NewCigarOp(sam.CigarSoftClipped, 30),
		},
	}
	out := Extract(rec, seed, 25, 25)
	assert.Len(t, out, 2)
	assert.Equal(t, int32(5), out[0].RefID)
}
