// Package svbitset is a per-reference presence bitmap for split-read
// breakpoint positions, used to skip the srStore hash lookup for reads whose
// alignment start cannot possibly match any known breakpoint.
//
// Structurally this is circular.Bitmap's row/word/popcount shape (a []word
// backing array plus a per-word population count for fast emptiness checks),
// simplified to a single non-circular reference-length bitmap: assembly's
// second pass streams one reference at a time and never needs circular's
// wraparound, and the reference lengths involved (chromosomes, not a fixed
// ring buffer) rule out its power-of-two sizing constraint. circular.Bitmap's
// SIMD word-scanning (base/simd, base/bitset) isn't retained here since only
// point membership is needed, not "find next set bit".
package svbitset

const wordBits = 64

// Set is a fixed-size bit array over one reference's coordinate space.
type Set struct {
	words []uint64
	pops  []uint8
}

// New allocates a Set covering positions [0, refLen).
func New(refLen int32) *Set {
	n := (int(refLen) + wordBits - 1) / wordBits
	if n == 0 {
		n = 1
	}
	return &Set{words: make([]uint64, n), pops: make([]uint8, n)}
}

// Add marks pos as present.
func (s *Set) Add(pos int32) {
	idx := int(pos) / wordBits
	if idx < 0 || idx >= len(s.words) {
		return
	}
	bit := uint64(1) << uint(int(pos)%wordBits)
	if s.words[idx]&bit == 0 {
		s.words[idx] |= bit
		s.pops[idx]++
	}
}

// Test reports whether pos was ever added.
func (s *Set) Test(pos int32) bool {
	idx := int(pos) / wordBits
	if idx < 0 || idx >= len(s.words) {
		return false
	}
	return s.words[idx]&(uint64(1)<<uint(int(pos)%wordBits)) != 0
}

// AnySet reports whether the word covering pos has any bit set, letting a
// caller skip a whole 64-position span with one check before testing
// individual positions in it.
func (s *Set) AnySet(pos int32) bool {
	idx := int(pos) / wordBits
	if idx < 0 || idx >= len(s.words) {
		return false
	}
	return s.pops[idx] != 0
}
