// Package svtype defines the shared data model for structural-variant
// discovery: the svt type-tag encoding, per-read junctions, split-read and
// paired-end evidence records, and the final StructuralVariantRecord.
//
// The types here have no behavior of their own beyond small helpers on the
// svt encoding; every component (junction, pairclass, matepair, scanner,
// srselect, cluster, assemble) reads and writes these types without owning
// them, the same way grailbio/bio's biopb structs are shared across its
// pileup and markduplicates packages.
package svtype

import "fmt"

// Svt is the structural-variant type tag described in spec.md section 3:
// an integer in [0, 2*TransBase). Values below TransBase name one of the
// five intra-chromosomal categories; TransBase and above are translocations,
// with the value minus TransBase giving the orientation sub-index.
type Svt int32

// TransBase is the first svt value reserved for translocations. Everything
// in [0, TransBase) names an intra-chromosomal category; everything in
// [TransBase, 2*TransBase) is a translocation with orientation sub-index
// (svt - TransBase).
const TransBase Svt = 5

// Intra-chromosomal categories, svt < TransBase.
const (
	SvtInv3to3 Svt = iota // inversion, 3'->3'
	SvtInv5to5            // inversion, 5'->5'
	SvtDeletion
	SvtDuplication
	SvtInsertion
)

// NumSvt is the total number of distinct svt values, 2*TransBase.
const NumSvt = int(2 * TransBase)

// IsTranslocation reports whether svt names a translocation.
func (s Svt) IsTranslocation() bool { return s >= TransBase }

// Orientation returns the translocation orientation sub-index. Only
// meaningful when IsTranslocation is true.
func (s Svt) Orientation() Svt { return s - TransBase }

// Valid reports whether s falls in the legal range [0, 2*TransBase).
func (s Svt) Valid() bool { return s >= 0 && s < Svt(NumSvt) }

func (s Svt) String() string {
	if s.IsTranslocation() {
		return fmt.Sprintf("TRA:%d", s.Orientation())
	}
	switch s {
	case SvtInv3to3:
		return "INV:3to3"
	case SvtInv5to5:
		return "INV:5to5"
	case SvtDeletion:
		return "DEL"
	case SvtDuplication:
		return "DUP"
	case SvtInsertion:
		return "INS"
	default:
		return fmt.Sprintf("SVT:%d", int(s))
	}
}

// NucleotideTable is the .bam seq nibble -> ASCII mapping, indexed by the
// 4-bit code. It is part of the contract with the aligned-read format: seq
// bytes are packed two bases per byte, high nibble first.
const NucleotideTable = "=ACMGRSVTWYHKDBN"

// DecodePackedSeq expands a nibble-packed sequence of the given base length
// into an ASCII string using NucleotideTable.
func DecodePackedSeq(packed []byte, length int) string {
	buf := make([]byte, length)
	for i := 0; i < length; i++ {
		b := packed[i>>1]
		var nibble byte
		if i&1 == 0 {
			nibble = b >> 4
		} else {
			nibble = b & 0x0f
		}
		buf[i] = NucleotideTable[nibble]
	}
	return string(buf)
}
