// Package align is the aligned-read stream external collaborator described
// in spec.md section 6: random-access iteration over one sample's aligned
// reads by (reference id, begin, end), plus the per-reference "does this
// reference have any data" check the per-sample scanner needs before it
// opens an interval iterator.
//
// The interfaces are grounded on grailbio/bio/encoding/bamprovider's
// Provider/Iterator split; the default implementation adapts
// bamprovider.BAMProvider's index-driven seek logic directly, trimmed to
// single-reference-range queries (this core never needs
// bamprovider's byte-based whole-file sharding, since scanning here is
// driven by the sample's reference partitions, not shard boundaries).
package align

import "github.com/grailbio/hts/sam"

// Record is the read-record type the core operates on. It is a plain alias
// for sam.Record: every field spec.md section 6 requires (flags, reference
// id, position, mapping quality, CIGAR, packed sequence, qname, mate
// reference id/position, insert size) is already present on sam.Record, so
// there is no value in wrapping it further.
type Record = sam.Record

// Provider gives random access to one sample's aligned reads.
type Provider interface {
	// Header returns the sample's reference dictionary.
	Header() (*sam.Header, error)

	// HasAlignments reports whether refID has any aligned reads at all,
	// consulting index statistics without touching read data. A provider
	// backed by a format that has no fast per-reference count (e.g. CRAM)
	// may unconditionally report true here, deferring the decision to
	// RegionIterator.
	HasAlignments(refID int) (bool, error)

	// RegionIterator returns an Iterator over reads whose alignment start
	// falls in [start, end) on reference refID.
	RegionIterator(refID int, start, end int) Iterator

	// Close releases the provider's resources. Safe to call once all
	// iterators it produced have been closed.
	Close() error
}

// Iterator reads records from one region, in coordinate order.
type Iterator interface {
	// Scan advances to the next record, returning false at the end of the
	// region or on error (distinguishable via Err).
	Scan() bool
	// Record returns the record most recently made current by Scan.
	Record() *Record
	// Err returns the first error encountered, or nil at a clean end of
	// stream.
	Err() error
	// Close releases the iterator. Must be called exactly once.
	Close() error
}
