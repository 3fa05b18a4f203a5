// Package scanner implements the per-sample scanner (component D): streams
// one sample's aligned reads, drives the junction extractor and, for paired
// reads, the pair classifier and mate reconciler, and at the end of the
// sample invokes the SR-junction selectors under the Sink's lock.
//
// The reference-partition loop, the input filter set (QC-fail, duplicate,
// unmapped, mapQ, mate-region, translocation quality) and the "single-end
// library" early skip all mirror scanPEandSR's outer loop in
// original_source/src/shortpe.h.
package scanner

import (
	"sync"

	"github.com/grailbio/hts/sam"

	"github.com/heymanitshayden/delly/align"
	"github.com/heymanitshayden/delly/genome/region"
	"github.com/heymanitshayden/delly/junction"
	"github.com/heymanitshayden/delly/libstats"
	"github.com/heymanitshayden/delly/matepair"
	"github.com/heymanitshayden/delly/pairclass"
	"github.com/heymanitshayden/delly/svtype"
)

// Params are the tunable thresholds from spec.md section 6's "Parameters"
// contract that scanner itself consults; maxReadPerSV and the svt allow-list
// belong to later components.
type Params struct {
	MinMapQual int
	MinTraQual int
	MinClip    int32
	MinRefSep  int32
}

// SelectorFunc runs one SR-junction selector (component E) over a sample's
// drained junction store, appending its records to the sample's SR sink.
// scanner is deliberately ignorant of which selectors exist; the
// orchestrator supplies them so scanner stays a pure streaming/dispatch
// component.
type SelectorFunc func(store svtype.JunctionStore, sampleIdx int)

// Sink accumulates one sample's per-svt pair evidence, and its mutex also
// serializes that sample's SelectorFunc calls. The orchestrator gives each
// sample worker its own Sink and merges them after all workers finish.
type Sink struct {
	mu    sync.Mutex
	Pairs map[svtype.Svt][]svtype.BamAlignRecord
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{Pairs: make(map[svtype.Svt][]svtype.BamAlignRecord)}
}

func (s *Sink) appendPair(rec svtype.BamAlignRecord) {
	s.mu.Lock()
	s.Pairs[rec.Svt] = append(s.Pairs[rec.Svt], rec)
	s.mu.Unlock()
}

// runSelectors invokes every selector under the sink's lock, the same lock
// that guards this sink's pair-evidence appends.
func (s *Sink) runSelectors(store svtype.JunctionStore, sampleIdx int, selectors []SelectorFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sel := range selectors {
		sel(store, sampleIdx)
	}
}

// RefPartition is one reference sequence to scan, with its length and
// whether the index reports any mapped reads on it at all.
type RefPartition struct {
	RefID        int
	Len          int32
	HasAlignment bool
}

// Scan streams sampleIdx's reads across parts in order, filtering,
// extracting junctions, and classifying+reconciling pairs, then invokes
// selectors over the sample's drained junction store.
func Scan(
	provider align.Provider,
	sampleIdx int,
	parts []RefPartition,
	regions region.Index,
	lib libstats.Params,
	p Params,
	sink *Sink,
	selectors []SelectorFunc,
) error {
	store := make(svtype.JunctionStore)
	var junctionBuf []svtype.Junction

	// interRecon spans the whole sample; intraRecon is rebuilt at each new
	// reference partition, per spec.md section 4.C's two-map design.
	interRecon := matepair.NewReconciler()

	for _, part := range parts {
		if !part.HasAlignment {
			continue
		}
		intraRecon := matepair.NewReconciler()

		windows := regions.Regions(part.RefID)
		if len(windows) == 0 {
			if _, all := regions.(region.AlwaysValid); !all {
				continue
			}
			windows = []region.Interval{{Start: 0, End: part.Len}}
		}
		for _, w := range windows {
			it := provider.RegionIterator(part.RefID, int(w.Start), int(w.End))
			err := scanWindow(it, sampleIdx, regions, lib, p, sink, intraRecon, interRecon, store, &junctionBuf)
			it.Close()
			if err != nil {
				return err
			}
		}
	}

	sink.runSelectors(store, sampleIdx, selectors)
	return nil
}

func scanWindow(
	it align.Iterator,
	sampleIdx int,
	regions region.Index,
	lib libstats.Params,
	p Params,
	sink *Sink,
	intraRecon, interRecon *matepair.Reconciler,
	store svtype.JunctionStore,
	junctionBuf *[]svtype.Junction,
) error {
	for it.Scan() {
		rec := it.Record()

		if !align.PassesStandardFilters(rec, p.MinMapQual) {
			continue
		}

		*junctionBuf = (*junctionBuf)[:0]
		*junctionBuf = junction.Extract(rec, *junctionBuf, p.MinRefSep, p.MinClip)
		if len(*junctionBuf) > 0 {
			seed := align.ReadNameSeed(rec.Name)
			store[seed] = append(store[seed], (*junctionBuf)...)
		}

		if rec.Flags&sam.Paired == 0 || lib.SingleEnd() {
			continue
		}
		if rec.Flags&(sam.Secondary|sam.Supplementary) != 0 {
			continue
		}
		if rec.MateRef == nil || rec.Flags&sam.MateUnmapped != 0 {
			continue
		}
		if !regions.ContainsByID(rec.MateRef.ID(), int32(rec.MatePos)) {
			continue
		}
		crossChr := rec.Ref.ID() != rec.MateRef.ID()
		if crossChr && int(rec.MapQ) < p.MinTraQual {
			continue
		}

		svt, ok := pairclass.Classify(rec, lib.OverallMaxISize(), lib.MaxISizeCutoff)
		if !ok {
			continue
		}

		alignLen := align.AlignmentLength(rec)
		recon := intraRecon
		if crossChr {
			recon = interRecon
		}
		pairRec, done := recon.Observe(rec, svt, sampleIdx, alignLen)
		if done {
			pairRec.Median = lib.Median
			pairRec.Mad = lib.MAD
			pairRec.MaxNormalISize = lib.MaxNormalISize
			sink.appendPair(pairRec)
		}
	}
	return it.Err()
}
