// Command dellysv is a thin CLI over the discovery core: it wires the
// aligned-read stream, region, and reference-index external collaborators
// to their default BAM/BED/FASTA-backed implementations and writes the
// resulting calls as VCF-shaped text.
//
// Flag parsing, grail.Init()/vcontext startup, and log usage follow
// cmd/bio-fusion's shape.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/sam"

	"github.com/heymanitshayden/delly/align"
	"github.com/heymanitshayden/delly/assemble"
	"github.com/heymanitshayden/delly/genome/refseq"
	"github.com/heymanitshayden/delly/genome/region"
	"github.com/heymanitshayden/delly/interval"
	"github.com/heymanitshayden/delly/libstats"
	"github.com/heymanitshayden/delly/svcall"
	"github.com/heymanitshayden/delly/svcall/config"
	"github.com/heymanitshayden/delly/svtype"
)

func main() {
	var (
		bamList      = flag.String("bam", "", "comma-separated list of coordinate-sorted, indexed input BAM files")
		fastaPath    = flag.String("fasta", "", "reference FASTA, used for split-read assembly (optional; no consensus is assembled without it)")
		faiPath      = flag.String("fasta-index", "", "reference .fai index (defaults to <fasta>.fai)")
		bedPath      = flag.String("bed", "", "BED file restricting discovery to listed regions (optional; default is genome-wide)")
		outPath      = flag.String("out", "-", "output path for VCF-shaped text records ('-' for stdout)")
		minMapQual   = flag.Int("min-map-qual", config.DefaultParams.MinMapQual, "minimum mapping quality for paired-end evidence")
		minTraQual   = flag.Int("min-tra-qual", config.DefaultParams.MinTraQual, "minimum mapping quality for translocation evidence")
		minClip      = flag.Int("min-clip", int(config.DefaultParams.MinClip), "minimum soft-clip length to seed a junction")
		minRefSep    = flag.Int("min-ref-sep", int(config.DefaultParams.MinRefSep), "minimum reference separation between a read's two junctions")
		maxReadSep   = flag.Int("max-read-sep", int(config.DefaultParams.MaxReadSep), "split-read clustering tolerance")
		maxReadPerSV = flag.Int("max-read-per-sv", config.DefaultParams.MaxReadPerSV, "cap on supporting reads gathered per SV during assembly")
		minSR        = flag.Int("min-sr-support", config.DefaultParams.MinSRSupport, "minimum split-read support to call a precise SV")
		minPE        = flag.Int("min-pe-support", config.DefaultParams.MinPESupport, "minimum paired-end support to call an imprecise SV")
		mergeDup     = flag.Bool("merge-near-duplicates", config.DefaultParams.MergeNearDuplicates, "suppress near-duplicate calls within -merge-window bp")
		mergeWindow  = flag.Int("merge-window", int(config.DefaultParams.MergeNearDuplicatesWindow), "window (bp) for -merge-near-duplicates")
		svtFlag      = flag.String("svtype", "", "comma-separated svt allow-list (DEL,DUP,INV,INS,TRA); default is all")
	)
	flag.Parse()

	cleanup := grail.Init()
	defer cleanup()

	if *bamList == "" {
		log.Fatal("at least one -bam is required")
	}
	bamPaths := strings.Split(*bamList, ",")

	providers := make([]align.Provider, len(bamPaths))
	for i, p := range bamPaths {
		providers[i] = &align.BAMProvider{Path: p}
	}
	defer func() {
		for _, p := range providers {
			p.Close()
		}
	}()

	header, err := providers[0].Header()
	if err != nil {
		log.Fatalf("read header of %s: %v", bamPaths[0], err)
	}
	refs := header.Refs()
	refLens := make([]int32, len(refs))
	refNames := make([]string, len(refs))
	for i, r := range refs {
		refLens[i] = int32(r.Len())
		refNames[i] = r.Name()
	}

	regionIdx := buildRegionIndex(*bedPath, header)

	refseqIdx := buildReferenceIndex(*fastaPath, *faiPath, refNames)

	p := config.DefaultParams
	p.MinMapQual = *minMapQual
	p.MinTraQual = *minTraQual
	p.MinClip = int32(*minClip)
	p.MinRefSep = int32(*minRefSep)
	p.MaxReadSep = int32(*maxReadSep)
	p.MaxReadPerSV = *maxReadPerSV
	p.MinSRSupport = *minSR
	p.MinPESupport = *minPE
	p.MergeNearDuplicates = *mergeDup
	p.MergeNearDuplicatesWindow = int32(*mergeWindow)
	if *svtFlag != "" {
		p.SvtAllowList = parseSvtAllowList(*svtFlag)
	}

	samples := make([]svcall.Sample, len(providers))
	for i, provider := range providers {
		lib, err := estimateLibrary(provider, refLens)
		if err != nil {
			log.Fatalf("estimate library stats for %s: %v", bamPaths[i], err)
		}
		samples[i] = svcall.Sample{Provider: provider, Lib: lib, Regions: regionIdx}
	}

	result, err := svcall.Run(samples, refLens, refNames, refseqIdx, p)
	if err != nil {
		log.Fatalf("discovery run failed: %v", err)
	}

	out, closeOut := openOutput(*outPath)
	defer closeOut()
	writeCalls(out, result.SRSVs, result.PESVs)
	log.Printf("wrote %d structural variant calls (%d precise, %d imprecise)",
		len(result.SRSVs)+len(result.PESVs), len(result.SRSVs), len(result.PESVs))
}

// estimateLibrary samples up to 200k reads' insert sizes, walking the
// references that carry alignments in order until the cap is reached, matching the sampled-median/MAD approach
// spec.md names as libstats.Estimator's own default technique.
func estimateLibrary(provider align.Provider, refLens []int32) (libstats.Params, error) {
	const sampleCap = 200000
	est := libstats.Estimator{}
	seen := 0
	for refID, refLen := range refLens {
		has, err := provider.HasAlignments(refID)
		if err != nil {
			return libstats.Params{}, err
		}
		if !has {
			continue
		}
		it := provider.RegionIterator(refID, 0, int(refLen))
		for seen < sampleCap && it.Scan() {
			rec := it.Record()
			if rec.Ref != nil && rec.MateRef != nil && rec.Ref.ID() == rec.MateRef.ID() && rec.TempLen != 0 {
				isize := int32(rec.TempLen)
				if isize < 0 {
					isize = -isize
				}
				est.Add(isize, int32(align.SeqLength(rec)))
				seen++
			}
		}
		err = it.Err()
		it.Close()
		if err != nil {
			return libstats.Params{}, err
		}
		if seen >= sampleCap {
			break
		}
	}
	return est.Estimate(), nil
}

func buildRegionIndex(bedPath string, header *sam.Header) region.Index {
	if bedPath == "" {
		return region.AlwaysValid{}
	}
	union, err := interval.NewBEDUnionFromPath(bedPath, interval.NewBEDOpts{SAMHeader: header})
	if err != nil {
		log.Fatalf("read BED file %s: %v", bedPath, err)
	}
	return region.BEDIndex{Union: &union}
}

func buildReferenceIndex(fastaPath, faiPath string, refNames []string) assemble.ReferenceIndex {
	if fastaPath == "" {
		return nil
	}
	if faiPath == "" {
		faiPath = fastaPath + ".fai"
	}
	fastaFile, err := os.Open(fastaPath)
	if err != nil {
		log.Fatalf("open fasta %s: %v", fastaPath, err)
	}
	faiFile, err := os.Open(faiPath)
	if err != nil {
		log.Fatalf("open fasta index %s: %v", faiPath, err)
	}
	defer faiFile.Close()
	idx, err := refseq.Open(fastaFile, faiFile)
	if err != nil {
		log.Fatalf("open indexed fasta %s: %v", fastaPath, err)
	}
	return refNameIndex{idx: idx, names: refNames}
}

// refNameIndex adapts genome/refseq.Index (name-keyed) to assemble's
// refID-keyed ReferenceIndex, resolving names once from the shared BAM
// header rather than on every lookup.
type refNameIndex struct {
	idx   refseq.Index
	names []string
}

func (r refNameIndex) Sequence(refID int, start, end int32) (string, error) {
	if refID < 0 || refID >= len(r.names) {
		return "", fmt.Errorf("refID %d out of range", refID)
	}
	length, err := r.idx.Len(r.names[refID])
	if err != nil {
		return "", err
	}
	if uint64(end) > length {
		end = int32(length)
	}
	if start < 0 || int32(start) >= int32(length) || start >= end {
		return "", fmt.Errorf("empty window")
	}
	return r.idx.Get(r.names[refID], uint64(start), uint64(end))
}

func parseSvtAllowList(spec string) map[svtype.Svt]bool {
	allow := make(map[svtype.Svt]bool)
	for _, tok := range strings.Split(spec, ",") {
		switch strings.ToUpper(strings.TrimSpace(tok)) {
		case "DEL":
			allow[svtype.SvtDeletion] = true
		case "DUP":
			allow[svtype.SvtDuplication] = true
		case "INS":
			allow[svtype.SvtInsertion] = true
		case "INV":
			allow[svtype.SvtInv3to3] = true
			allow[svtype.SvtInv5to5] = true
		case "TRA":
			for s := svtype.TransBase; int(s) < svtype.NumSvt; s++ {
				allow[s] = true
			}
		}
	}
	return allow
}

func openOutput(path string) (*bufio.Writer, func()) {
	if path == "-" || path == "" {
		w := bufio.NewWriter(os.Stdout)
		return w, func() { w.Flush() }
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("create %s: %v", path, err)
	}
	w := bufio.NewWriter(f)
	return w, func() { w.Flush(); f.Close() }
}

// writeCalls writes srSVs ahead of peSVs, matching the orchestrator's own
// clustering-loop order (spec.md section 6's two vectors, SR-derived then
// PE-derived).
func writeCalls(w *bufio.Writer, srSVs, peSVs []svtype.StructuralVariantRecord) {
	fmt.Fprintln(w, "#CHROM\tPOS\tID\tEND\tCHR2\tSVTYPE\tPRECISE\tPESUPPORT\tSRSUPPORT\tCONSENSUS")
	for _, sv := range srSVs {
		writeCallRow(w, sv)
	}
	for _, sv := range peSVs {
		writeCallRow(w, sv)
	}
}

func writeCallRow(w *bufio.Writer, sv svtype.StructuralVariantRecord) {
	fmt.Fprintf(w, "%s\t%d\tSV%d\t%d\t%s\t%s\t%v\t%d\t%d\t%s\n",
		sv.Chr1Name, sv.Start+1, sv.ID, sv.End, sv.Chr2Name, sv.Svt, sv.Precise, sv.PESupport, sv.SRSupport, sv.Consensus)
}
