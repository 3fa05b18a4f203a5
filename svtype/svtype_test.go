package svtype

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordOrdering(t *testing.T) {
	a := Coord{RefID: 0, Pos: 100}
	b := Coord{RefID: 0, Pos: 200}
	c := Coord{RefID: 1, Pos: 0}
	assert.True(t, a.LT(b))
	assert.True(t, b.LT(c))
	assert.True(t, a.LE(a))
	assert.False(t, b.LT(a))
	assert.True(t, a.Equal(Coord{RefID: 0, Pos: 100}))
}

func TestSvtTranslocationEncoding(t *testing.T) {
	tra := TransBase + 2
	assert.True(t, tra.IsTranslocation())
	assert.Equal(t, TransBase+2, tra.Orientation()+TransBase)
	assert.False(t, SvtDeletion.IsTranslocation())
	assert.True(t, SvtDeletion.Valid())
	assert.False(t, Svt(NumSvt).Valid())
}

func TestSvtString(t *testing.T) {
	assert.Equal(t, "DEL", SvtDeletion.String())
	assert.Equal(t, "DUP", SvtDuplication.String())
	assert.Equal(t, "TRA:1", (TransBase + 1).String())
}

func TestDecodePackedSeq(t *testing.T) {
	// "AC" packed as two nibbles in one byte: A=1, C=2.
	packed := []byte{0x12}
	assert.Equal(t, "AC", DecodePackedSeq(packed, 2))
}

func TestByReadOffsetSortsBySeqPos(t *testing.T) {
	js := []Junction{
		{SeqPos: 30},
		{SeqPos: 10},
		{SeqPos: 20},
	}
	sort.Sort(ByReadOffset(js))
	assert.Equal(t, []int32{10, 20, 30}, []int32{js[0].SeqPos, js[1].SeqPos, js[2].SeqPos})
}
