package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMSARequiresTwoSequences(t *testing.T) {
	_, err := MSA([]string{"ACGT"})
	assert.Error(t, err)
}

func TestMSAMajorityVotesOnMismatch(t *testing.T) {
	seqs := []string{
		"ACGTACGT",
		"ACGTACGT",
		"ACGTACGA",
	}
	got, err := MSA(seqs)
	assert.NoError(t, err)
	assert.Equal(t, "ACGTACGT", got)
}

func TestMSATrimsIndelNoise(t *testing.T) {
	seqs := []string{
		"AAACCCGGGTTT",
		"AAACCCGGGTTT",
		"AAACCC_GGGTTT", // one read with a spurious extra base
	}
	// Use a real base instead of a placeholder underscore for the
	// insertion; consensus voting should still favor the two clean reads.
	seqs[2] = "AAACCCAGGGTTT"
	got, err := MSA(seqs)
	assert.NoError(t, err)
	assert.Equal(t, "AAACCCGGGTTT", got)
}

func TestAlignToReferenceFindsAnchor(t *testing.T) {
	ref := "TTTTTTTTTTACGTACGTACGTTTTTTTTTTT"
	consensus := "ACGTACGTACGT"
	start, end, quality, ok := AlignToReference(ref, consensus)
	assert.True(t, ok)
	assert.Equal(t, 1.0, quality)
	assert.Equal(t, ref[start:end], consensus)
}

func TestAlignToReferenceRejectsPoorMatch(t *testing.T) {
	ref := "TTTTTTTTTTTTTTTTTTTTTTTTTTTTTTTT"
	consensus := "ACGTACGTACGT"
	_, _, quality, ok := AlignToReference(ref, consensus)
	assert.False(t, ok)
	assert.Less(t, quality, MinAlignQuality)
}
