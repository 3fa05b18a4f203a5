package svtype

// SRBamRecord is a split-read breakpoint-pair, derived from two junctions of
// one read by the srselect selectors. Svid is mutated in place by the
// clusterer: -1 until the record is absorbed into a StructuralVariantRecord.
type SRBamRecord struct {
	Chr1   int32
	Pos1   int32
	Chr2   int32
	Pos2   int32
	// ReadID is a stable hash of the originating read's name, used both as a
	// canonicalisation tie-break and, later, as half of the srStore lookup
	// key during split-read assembly.
	ReadID uint64
	Svt    Svt
	Svid   int32
}

// Chr1Pos returns the record's first endpoint as a Coord.
func (r SRBamRecord) Chr1Pos() Coord { return Coord{RefID: r.Chr1, Pos: r.Pos1} }

// Chr2Pos returns the record's second endpoint as a Coord.
func (r SRBamRecord) Chr2Pos() Coord { return Coord{RefID: r.Chr2, Pos: r.Pos2} }

// BamAlignRecord is one piece of paired-end evidence: a discordant mate pair
// that the pair classifier has already mapped to a candidate svt.
type BamAlignRecord struct {
	Chr1, Chr2       int32
	Pos1, Pos2       int32
	// PairQuality is the minimum of the two mates' mapping qualities.
	PairQuality uint8
	// AlenFirst and AlenSecond are both mates' alignment lengths.
	AlenFirst, AlenSecond int32
	// InsertSize is the observed |isize| for the pair.
	InsertSize int32
	// Sample library parameters, captured at record time so clustering does
	// not need to re-consult the sample table.
	Median         float64
	Mad            float64
	MaxNormalISize int32
	// SampleIdx identifies which sample this evidence came from, needed to
	// build a per-SV PE confidence interval across possibly-heterogeneous
	// libraries.
	SampleIdx int
	Svt       Svt
}

// Chr1Pos returns the record's first endpoint as a Coord.
func (r BamAlignRecord) Chr1Pos() Coord { return Coord{RefID: r.Chr1, Pos: r.Pos1} }

// Chr2Pos returns the record's second endpoint as a Coord.
func (r BamAlignRecord) Chr2Pos() Coord { return Coord{RefID: r.Chr2, Pos: r.Pos2} }

// ConfidenceInterval is a PE-derived breakpoint confidence interval,
// expressed as offsets from the called breakpoint.
type ConfidenceInterval struct {
	CILow, CIHigh int32
}

// StructuralVariantRecord is a candidate or finished structural variant.
// Clustering (component F) appends these; assembly (component H) mutates
// Consensus, Precise, SRAlignQuality and SRSupport in place.
type StructuralVariantRecord struct {
	ID    int32
	Svt   Svt
	Chr1  int32
	Start int32
	Chr2  int32
	End   int32

	// Chr1Name and Chr2Name are Chr1/Chr2 resolved against the shared BAM
	// header once, by the orchestrator, rather than re-looked-up per record
	// at output time: the record is output-adjacent (VCF needs names), and
	// every sample shares one reference genome, so there is exactly one
	// resolution to do, not one per call.
	Chr1Name, Chr2Name string

	PESupport int32
	SRSupport int32
	Precise   bool

	// Consensus is the assembled split-read consensus sequence, empty until
	// (and possibly after a failed) assembly.
	Consensus      string
	SRAlignQuality float64

	PECI ConfidenceInterval
}
