// Package refseq models the "Reference index" external contract from
// spec.md section 6: per-reference sequence fetch by name. The default
// implementation opens an indexed FASTA through encoding/fasta, exactly the
// way it is used to random-access a reference genome elsewhere in the
// grailbio/bio pack.
package refseq

import (
	"io"

	"github.com/heymanitshayden/delly/encoding/fasta"
)

// Index fetches reference bases by (name, start, end), used by the
// consensus-to-reference aligner to gather the anchor sequence around a
// candidate breakpoint.
type Index interface {
	Get(seqName string, start, end uint64) (string, error)
	Len(seqName string) (uint64, error)
}

// Open builds an Index backed by an indexed FASTA file and its .fai sidecar.
func Open(fastaFile io.ReadSeeker, indexFile io.Reader) (Index, error) {
	return fasta.NewIndexed(fastaFile, indexFile)
}
