// Package svcall implements the orchestrator (component G): drives the
// per-sample scanner across samples in parallel, clusters the resulting
// evidence per svt, rebuilds the SR back-index, and runs split-read
// assembly.
//
// The one-worker-per-sample parallelism is grailbio/base/traverse.Each, the
// same primitive pileup/snp uses to shard its own per-reference work; svcall
// uses it at sample rather than shard granularity because spec.md section 5
// scopes parallelism to "one worker per sample, no further parallelism".
package svcall

import (
	"github.com/grailbio/base/traverse"

	"github.com/heymanitshayden/delly/align"
	"github.com/heymanitshayden/delly/assemble"
	"github.com/heymanitshayden/delly/cluster"
	"github.com/heymanitshayden/delly/genome/region"
	"github.com/heymanitshayden/delly/libstats"
	"github.com/heymanitshayden/delly/scanner"
	"github.com/heymanitshayden/delly/srselect"
	"github.com/heymanitshayden/delly/svcall/config"
	"github.com/heymanitshayden/delly/svtype"
)

// Sample is one input BAM's provider, library statistics, and valid-region
// restriction.
type Sample struct {
	Provider align.Provider
	Lib      libstats.Params
	Regions  region.Index
}

// Result is everything a discovery run produces. PESVs and SRSVs are kept
// as the two vectors spec.md section 6 names ("two vectors of SV records
// (PE-derived and SR-derived)"): callers that care about provenance never
// have to guess which pool a record came from. They are combined into one
// deduplicated set only when config.Params.MergeNearDuplicates asked for
// it, and even then each survivor stays in the vector it started in.
type Result struct {
	PESVs   []svtype.StructuralVariantRecord
	SRSVs   []svtype.StructuralVariantRecord
	SRStore assemble.SRStore
}

// Run drives the full discovery pipeline over samples, refLens (indexed by
// reference id, shared across all samples since they must share one
// reference genome), refNames (the same header's sequence names, used to
// resolve every finished record's Chr1Name/Chr2Name exactly once), refseq
// (for assembly's consensus realignment), and p.
func Run(samples []Sample, refLens []int32, refNames []string, refseq assemble.ReferenceIndex, p config.Params) (Result, error) {
	sinks := make([]*scanner.Sink, len(samples))
	srSinks := make([]*srselect.Sink, len(samples))

	err := traverse.Each(len(samples), func(i int) error {
		sample := samples[i]
		sink := scanner.NewSink()
		srSink := &srselect.Sink{}
		sinks[i] = sink
		srSinks[i] = srSink

		parts, err := buildPartitions(sample.Provider, refLens)
		if err != nil {
			return err
		}

		selectors := []scanner.SelectorFunc{
			func(store svtype.JunctionStore, sampleIdx int) {
				srselect.SelectAll(store, sampleIdx, srSink, srselect.DefaultParams)
			},
		}

		return scanner.Scan(sample.Provider, i, parts, sample.Regions, sample.Lib,
			scanner.Params{MinMapQual: p.MinMapQual, MinTraQual: p.MinTraQual, MinClip: p.MinClip, MinRefSep: p.MinRefSep},
			sink, selectors)
	})
	if err != nil {
		return Result{}, err
	}

	pePool := make(map[svtype.Svt][]svtype.BamAlignRecord)
	var srPool []svtype.SRBamRecord
	for _, sink := range sinks {
		for svt, recs := range sink.Pairs {
			pePool[svt] = append(pePool[svt], recs...)
		}
	}
	for _, srSink := range srSinks {
		srPool = append(srPool, srSink.Records...)
	}

	var nextID int32
	var peSVs, srSVs []svtype.StructuralVariantRecord

	srBySvt := make(map[svtype.Svt][]svtype.SRBamRecord)
	for _, r := range srPool {
		srBySvt[r.Svt] = append(srBySvt[r.Svt], r)
	}
	// srBySvt keeps each svt's slice addressable so ClusterSR's
	// in-place Svid mutation is visible when building the back-index below.
	for svt := svtype.Svt(0); int(svt) < svtype.NumSvt; svt++ {
		if !p.Allows(svt) {
			continue
		}
		if recs := srBySvt[svt]; len(recs) > 0 {
			srSVs = append(srSVs, cluster.ClusterSR(recs, svt, p.MaxReadSep, p.MinSRSupport, &nextID)...)
		}
		if recs := pePool[svt]; len(recs) > 0 {
			peSVs = append(peSVs, cluster.ClusterPE(recs, svt, p.MinPESupport, &nextID)...)
		}
	}

	if p.MergeNearDuplicates {
		peSVs, srSVs = mergeAcrossPools(peSVs, srSVs, p.MergeNearDuplicatesWindow)
	}

	srStore := assemble.BuildSRStore(srBySvt, refLens)

	providers := make([]align.Provider, len(samples))
	for i, s := range samples {
		providers[i] = s.Provider
	}
	// Assembly gathers supporting reads by svid across both pools in one
	// pass over the read streams, so it needs one combined slice; the
	// mutations it makes in place are copied back into peSVs/srSVs by ID
	// afterward, keeping the two vectors the caller sees separate.
	combined := make([]svtype.StructuralVariantRecord, 0, len(srSVs)+len(peSVs))
	combined = append(combined, srSVs...)
	combined = append(combined, peSVs...)
	if err := assemble.Run(providers, refLens, srStore, combined, refseq, p); err != nil {
		return Result{}, err
	}
	byID := make(map[int32]svtype.StructuralVariantRecord, len(combined))
	for _, sv := range combined {
		byID[sv.ID] = sv
	}
	for i := range srSVs {
		srSVs[i] = byID[srSVs[i].ID]
	}
	for i := range peSVs {
		peSVs[i] = byID[peSVs[i].ID]
	}

	for i := range srSVs {
		srSVs[i].Chr1Name = refName(refNames, srSVs[i].Chr1)
		srSVs[i].Chr2Name = refName(refNames, srSVs[i].Chr2)
	}
	for i := range peSVs {
		peSVs[i].Chr1Name = refName(refNames, peSVs[i].Chr1)
		peSVs[i].Chr2Name = refName(refNames, peSVs[i].Chr2)
	}

	return Result{PESVs: peSVs, SRSVs: srSVs, SRStore: srStore}, nil
}

// mergeAcrossPools suppresses near-duplicate calls across the PE- and
// SR-derived pools together (the whole point of enabling the option is to
// catch a duplicate that split across the two), then hands each surviving
// record back to whichever pool it started in.
func mergeAcrossPools(peSVs, srSVs []svtype.StructuralVariantRecord, window int32) (mergedPE, mergedSR []svtype.StructuralVariantRecord) {
	fromSR := make(map[int32]bool, len(srSVs))
	for _, sv := range srSVs {
		fromSR[sv.ID] = true
	}

	combined := make([]svtype.StructuralVariantRecord, 0, len(srSVs)+len(peSVs))
	combined = append(combined, srSVs...)
	combined = append(combined, peSVs...)
	combined = MergeSort(combined, window)

	for _, sv := range combined {
		if fromSR[sv.ID] {
			mergedSR = append(mergedSR, sv)
		} else {
			mergedPE = append(mergedPE, sv)
		}
	}
	return mergedPE, mergedSR
}

func refName(names []string, id int32) string {
	if id < 0 || int(id) >= len(names) {
		return "."
	}
	return names[id]
}

func buildPartitions(provider align.Provider, refLens []int32) ([]scanner.RefPartition, error) {
	parts := make([]scanner.RefPartition, len(refLens))
	for refID, length := range refLens {
		has, err := provider.HasAlignments(refID)
		if err != nil {
			return nil, err
		}
		parts[refID] = scanner.RefPartition{RefID: refID, Len: length, HasAlignment: has}
	}
	return parts, nil
}
