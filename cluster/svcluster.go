package cluster

import "github.com/heymanitshayden/delly/svtype"

// ClusterSR clusters one svt's split-read breakpoint records, mutating each
// absorbed record's Svid in place and returning one precise
// StructuralVariantRecord per accepted component. maxReadSep is the
// tolerance D spec.md names for SR records.
func ClusterSR(records []svtype.SRBamRecord, svt svtype.Svt, maxReadSep int32, minSupport int, nextID *int32) []svtype.StructuralVariantRecord {
	members := make([]Member, len(records))
	for i, r := range records {
		members[i] = Member{Chr1: r.Chr1, Pos1: r.Pos1, IdentityHash: r.ReadID, Index: i}
	}
	groups := Cluster(members, maxReadSep, minSupport, func(idx int) (int32, int32) {
		return records[idx].Chr2, records[idx].Pos2
	})

	out := make([]svtype.StructuralVariantRecord, 0, len(groups))
	for _, g := range groups {
		id := *nextID
		*nextID++
		for _, idx := range g.Members {
			records[idx].Svid = id
		}
		out = append(out, svtype.StructuralVariantRecord{
			ID:        id,
			Svt:       svt,
			Chr1:      g.Chr1,
			Start:     g.Start,
			Chr2:      g.Chr2,
			End:       g.End,
			SRSupport: int32(len(g.Members)),
			Precise:   true,
		})
	}
	return out
}

// ClusterPE clusters one svt's paired-end evidence records into imprecise
// StructuralVariantRecords, deriving each SV's confidence interval from the
// population of contributing samples' insert-size variability (varisize),
// per spec.md's clusterer tolerance rule for PE records.
func ClusterPE(records []svtype.BamAlignRecord, svt svtype.Svt, minSupport int, nextID *int32) []svtype.StructuralVariantRecord {
	members := make([]Member, len(records))
	for i, r := range records {
		members[i] = Member{Chr1: r.Chr1, Pos1: r.Pos1, IdentityHash: uint64(i), Index: i}
	}

	out := make([]svtype.StructuralVariantRecord, 0)
	// varisize varies by record (it depends on each member's own library
	// stats), but Cluster takes a single scalar tolerance: it is computed
	// once, before the sweep, as the maximum varisize over all records of
	// this svt; see varisize below.
	tolerance := maxVarisize(records)

	groups := Cluster(members, tolerance, minSupport, func(idx int) (int32, int32) {
		return records[idx].Chr2, records[idx].Pos2
	})

	for _, g := range groups {
		id := *nextID
		*nextID++
		out = append(out, svtype.StructuralVariantRecord{
			ID:        id,
			Svt:       svt,
			Chr1:      g.Chr1,
			Start:     g.Start,
			Chr2:      g.Chr2,
			End:       g.End,
			PESupport: int32(len(g.Members)),
			Precise:   false,
			PECI:      peConfidenceInterval(records, g.Members),
		})
	}
	return out
}

// varisize is a single member's insert-size variability, the width of one
// MAD around the library's median insert size. The largest varisize among a
// svt's records is the clustering tolerance for all of them.
func varisize(r svtype.BamAlignRecord) int32 {
	return int32(r.Mad)
}

func maxVarisize(records []svtype.BamAlignRecord) int32 {
	var max int32
	for _, r := range records {
		if v := varisize(r); v > max {
			max = v
		}
	}
	if max == 0 {
		return 1
	}
	return max
}

// peConfidenceInterval derives a symmetric confidence interval across the
// cluster's, possibly heterogeneous, contributing libraries: within each
// sample it takes that sample's own tightest (minimum-MAD) observation, then
// combines samples by weighting each one's tightest MAD by how many of the
// cluster's members it contributed. A cluster dominated by reads from a
// tight-insert-size library ends up with a correspondingly tighter interval
// than one where a single tight-library read is outnumbered by reads from
// looser libraries.
func peConfidenceInterval(records []svtype.BamAlignRecord, members []int) svtype.ConfidenceInterval {
	type sampleStats struct {
		tightest int32
		count    int32
	}
	bySample := make(map[int]*sampleStats)
	for _, idx := range members {
		r := records[idx]
		mad := int32(r.Mad)
		s, ok := bySample[r.SampleIdx]
		if !ok {
			bySample[r.SampleIdx] = &sampleStats{tightest: mad, count: 1}
			continue
		}
		if mad < s.tightest {
			s.tightest = mad
		}
		s.count++
	}

	var weightedSum, totalWeight int64
	for _, s := range bySample {
		weightedSum += int64(s.tightest) * int64(s.count)
		totalWeight += int64(s.count)
	}
	if totalWeight == 0 {
		return svtype.ConfidenceInterval{}
	}
	ci := int32(weightedSum / totalWeight)
	return svtype.ConfidenceInterval{CILow: -ci, CIHigh: ci}
}
