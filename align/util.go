package align

import "github.com/grailbio/hts/sam"

// AlignmentLength returns the number of reference bases the record's CIGAR
// consumes (M/=/X/D/N operations), matching Delly's alignmentLength(rec)
// helper referenced from shortpe.h.
func AlignmentLength(r *Record) int32 {
	var n int32
	for _, op := range r.Cigar {
		switch op.Type() {
		case sam.CigarMatch, sam.CigarEqual, sam.CigarMismatch, sam.CigarDeletion, sam.CigarSkipped:
			n += int32(op.Len())
		}
	}
	return n
}

// IsPrimary reports whether r is neither a secondary nor a supplementary
// alignment, mirroring bamprovider's pair-iterator filter.
func IsPrimary(r *Record) bool {
	return r.Flags&(sam.Secondary|sam.Supplementary) == 0
}

// PassesStandardFilters applies the input filters common to every read the
// scanner touches: QC-fail, duplicate, unmapped, and a minimum mapping
// quality.
func PassesStandardFilters(r *Record, minMapQual int) bool {
	if r.Flags&(sam.QCFail|sam.Duplicate|sam.Unmapped) != 0 {
		return false
	}
	if r.Ref == nil || r.Ref.ID() < 0 {
		return false
	}
	return int(r.MapQ) >= minMapQual
}
