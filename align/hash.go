package align

import (
	"github.com/dgryski/go-farm"
)

// ReadNameSeed is the stable 64-bit hash of a read's name used as its
// read-id throughout the core: junction extraction seeds junctions with it,
// SRBamRecord.ReadID stores it, and split-read assembly looks records back
// up by it. farm.Hash64 is the same hash family grailbio/bio uses for
// k-mer identity in fusion/kmer_index.go.
func ReadNameSeed(name string) uint64 {
	return farm.Hash64([]byte(name))
}

// pairCoord orders a mate pair's two ends so both mates compute the same
// pairing hash regardless of which one is being processed: the smaller of
// (ref,pos) and (mateRef,matePos), by construction, since a read at (r,p)
// with mate at (mr,mp) is the same unordered pair as the mate at (mr,mp)
// with its own mate at (r,p).
func pairCoord(ref, pos, mateRef, matePos int32) (loRef, loPos int32) {
	if ref < mateRef || (ref == mateRef && pos <= matePos) {
		return ref, pos
	}
	return mateRef, matePos
}

// PairSeed returns the hash used to reconcile a mate pair: it collides
// between a record and its mate by hashing the read name together with the
// pair's canonical (smaller) coordinate, per spec.md's mate-reconciliation
// design note.
func PairSeed(r *Record) uint64 {
	loRef, loPos := pairCoord(int32(r.Ref.ID()), int32(r.Pos), int32(r.MateRef.ID()), int32(r.MatePos))
	return farm.Hash64WithSeed([]byte(r.Name), uint64(uint32(loRef))<<32|uint64(uint32(loPos)))
}
