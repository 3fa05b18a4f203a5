package assemble

import (
	"github.com/heymanitshayden/delly/align"
	"github.com/heymanitshayden/delly/consensus"
	"github.com/heymanitshayden/delly/svcall/config"
	"github.com/heymanitshayden/delly/svtype"
)

// ReferenceIndex gives assembly random access to reference bases around a
// candidate breakpoint, by reference id rather than by name: the caller
// resolves refID to a sequence name once (from the BAM header shared by
// every sample) and adapts genome/refseq.Index to this narrower shape.
type ReferenceIndex interface {
	Sequence(refID int, start, end int32) (string, error)
}

// assemblyFlank is the padding on either side of a candidate breakpoint the
// reference window supplies, letting AlignToReference's free end gaps
// absorb imprecision in the PE/SR-derived start/end estimate.
const assemblyFlank = 500

// Run gathers supporting-read sequences for every clustered SV, computes a
// consensus per SV with at least two supporting reads, and realigns that
// consensus against the reference to refine the call to base-pair precision.
// SVs that never accumulate two supporting reads are left as they were
// handed in. SVs whose MSA fails or whose consensus fails to realign keep
// their clustered Start/End, but their Consensus is cleared and their
// SRSupport set to zero.
//
// Only reads passing the standard filters (mirroring scanner's own gate) and
// excluding secondary/supplementary alignments contribute to a consensus;
// srStore is keyed on positions from qualifying reads only, but a
// low-quality or secondary alignment can still land on one by coincidence.
func Run(providers []align.Provider, refLens []int32, srStore SRStore, svs []svtype.StructuralVariantRecord, refseq ReferenceIndex, p config.Params) error {
	if refseq == nil {
		return nil
	}
	byID := make(map[int32]*svtype.StructuralVariantRecord, len(svs))
	for i := range svs {
		byID[svs[i].ID] = &svs[i]
	}
	if len(byID) == 0 {
		return nil
	}

	seqStore := make(map[int32][]string)

	for _, provider := range providers {
		for refID, refLen := range refLens {
			it := provider.RegionIterator(refID, 0, int(refLen))
			for it.Scan() {
				rec := it.Record()
				if !align.PassesStandardFilters(rec, p.MinMapQual) || !align.IsPrimary(rec) {
					continue
				}
				readID := align.ReadNameSeed(rec.Name)
				svid, ok := srStore.Lookup(refID, int32(rec.Pos), readID)
				if !ok {
					continue
				}
				sv, ok := byID[svid]
				if !ok {
					continue
				}
				if len(seqStore[svid]) >= p.MaxReadPerSV {
					continue
				}
				seq := svtype.DecodePackedSeq(align.PackedSeq(rec), align.SeqLength(rec))
				if needsRevComp(sv.Svt, sv.Chr1, sv.Start, int32(refID), int32(rec.Pos)) {
					seq = reverseComplement(seq)
				}
				seqStore[svid] = append(seqStore[svid], seq)
			}
			err := it.Err()
			it.Close()
			if err != nil {
				return err
			}
		}
	}

	for id, sv := range byID {
		seqs := seqStore[id]
		if len(seqs) < 2 {
			continue
		}
		cons, err := consensus.MSA(seqs)
		if err != nil || len(cons) == 0 {
			sv.Consensus = ""
			sv.SRSupport = 0
			continue
		}

		winStart := sv.Start - assemblyFlank
		if winStart < 0 {
			winStart = 0
		}
		winEnd := sv.End + assemblyFlank
		window, err := refseq.Sequence(int(sv.Chr1), winStart, winEnd)
		if err != nil || len(window) == 0 {
			sv.Consensus = ""
			sv.SRSupport = 0
			continue
		}

		start, end, quality, ok := consensus.AlignToReference(window, cons)
		if !ok {
			sv.Consensus = ""
			sv.SRSupport = 0
			continue
		}

		sv.Consensus = cons
		sv.Precise = true
		sv.SRAlignQuality = quality
		sv.Start = winStart + int32(start)
		if sv.Chr1 == sv.Chr2 {
			sv.End = winStart + int32(end)
		}
	}

	return nil
}

// needsRevComp reports whether a read anchored at refID needs its sequence
// flipped before joining the SV's consensus. For inter-chromosomal SVs, any
// read landing on the second breakpoint reads the other side of the
// junction. For every intra-chromosomal svt, shortpe.h's own bpPoint test
// (rec->core.pos > svs[svid].svStart) decides it: a read positioned beyond
// the SV's start reads the far side of the breakpoint relative to the reads
// anchoring the start itself.
func needsRevComp(svt svtype.Svt, chr1, svStart, refID, readPos int32) bool {
	if svt.IsTranslocation() {
		return refID != chr1
	}
	return readPos > svStart
}

// reverseComplement returns seq's reverse complement. This is a plain loop
// rather than biosimd's SSE-accelerated ReverseComp8Inplace: the amd64 fast
// paths in the retrieved biosimd sources call into hand-written assembly
// that was not part of the retrieval, and reverse-complementing a handful of
// reads per candidate SV is nowhere near a hot path here.
func reverseComplement(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		out[len(seq)-1-i] = complementBase(seq[i])
	}
	return string(out)
}

func complementBase(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	case 'T':
		return 'A'
	default:
		return b
	}
}
