// Package assemble implements the split-read assembler (component H):
// rebuilding a per-reference index from clustered split-read evidence, a
// second streaming pass over every sample's alignments to gather the actual
// read sequences backing each candidate SV, and consensus-based refinement
// of the breakpoint via package consensus.
//
// The two-pass shape (cluster first without sequences, then rescan for
// sequences only at positions already known to matter) mirrors shortpe.h's
// own separation between PE/SR breakpoint scanning and its later
// assembly/genotyping pass, which reopens the BAM rather than keeping every
// read's sequence in memory during scanning.
package assemble

import (
	"github.com/heymanitshayden/delly/svbitset"
	"github.com/heymanitshayden/delly/svtype"
)

type svKey struct {
	pos    int32
	readID uint64
}

type refIndex struct {
	present *svbitset.Set
	byKey   map[svKey]int32
}

// SRStore maps (reference id, alignment position, read id hash) to the svid
// of the structural variant that position's split-read evidence was
// clustered into, so assembly's second pass can recognize a supporting read
// the instant it is scanned.
type SRStore struct {
	refs []refIndex
}

// BuildSRStore indexes every clustered (Svid != -1) split-read record's two
// endpoints, one entry per endpoint since either can be the position a
// supporting read is found at during the rescan.
func BuildSRStore(srBySvt map[svtype.Svt][]svtype.SRBamRecord, refLens []int32) SRStore {
	store := SRStore{refs: make([]refIndex, len(refLens))}
	for i, l := range refLens {
		store.refs[i] = refIndex{present: svbitset.New(l), byKey: make(map[svKey]int32)}
	}
	insert := func(refID, pos int32, readID uint64, svid int32) {
		if refID < 0 || int(refID) >= len(store.refs) {
			return
		}
		r := &store.refs[refID]
		r.present.Add(pos)
		r.byKey[svKey{pos: pos, readID: readID}] = svid
	}
	for _, recs := range srBySvt {
		for _, r := range recs {
			if r.Svid < 0 {
				continue
			}
			insert(r.Chr1, r.Pos1, r.ReadID, r.Svid)
			insert(r.Chr2, r.Pos2, r.ReadID, r.Svid)
		}
	}
	return store
}

// Lookup reports the svid a read at (refID, pos) with the given name hash
// was clustered into, if any.
func (s SRStore) Lookup(refID int, pos int32, readID uint64) (int32, bool) {
	if refID < 0 || refID >= len(s.refs) {
		return 0, false
	}
	r := &s.refs[refID]
	if !r.present.AnySet(pos) {
		return 0, false
	}
	svid, ok := r.byKey[svKey{pos: pos, readID: readID}]
	return svid, ok
}
