package svtype

// Junction is one within-read breakpoint signal, as produced by the
// junction extractor (component A) from a single read's alignment
// operations. Junctions belonging to one read are collected in read-order
// and later sorted by SeqPos before selection (component E).
type Junction struct {
	// RefID is the reference sequence the anchoring segment maps to.
	RefID int32
	// RefPos is the reference coordinate of the breakpoint.
	RefPos int32
	// SeqPos is the read-sequence offset of the breakpoint.
	SeqPos int32
	// Fwd is true if the anchoring segment maps to the forward strand.
	Fwd bool
	// SCLeft is true iff the clipped/gap portion of the read lies to the
	// left of the anchoring segment on the read.
	SCLeft bool
}

// JunctionStore is one sample's per-read junction map, keyed by the read-id
// hash (align.ReadNameSeed). It is private, per-worker state during a scan:
// the scanner drains it into the SR selectors at the end of each sample.
type JunctionStore map[uint64][]Junction

// ByReadOffset sorts Junctions by their read-sequence offset. This is the
// ordering required before srselect derives breakpoint pairs from a read's
// junction list.
type ByReadOffset []Junction

func (j ByReadOffset) Len() int           { return len(j) }
func (j ByReadOffset) Less(a, b int) bool { return j[a].SeqPos < j[b].SeqPos }
func (j ByReadOffset) Swap(a, b int)      { j[a], j[b] = j[b], j[a] }
