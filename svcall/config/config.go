// Package config holds the "Parameters" external contract from spec.md
// section 6: the tunables every component of a discovery run shares, plus
// the svt allow-list.
package config

import "github.com/heymanitshayden/delly/svtype"

// Params bundles every threshold spec.md section 6 names. DefaultParams
// mirrors the values shortpe.h's caller struct c uses (c.minMapQual,
// c.minTraQual, c.minClip, c.minRefSep, c.maxReadSep).
type Params struct {
	MinMapQual   int
	MinTraQual   int
	MinClip      int32
	MinRefSep    int32
	MaxReadSep   int32
	MaxReadPerSV int
	MinSRSupport int
	MinPESupport int

	// SvtAllowList restricts discovery to a subset of svt values. A nil map
	// means every svt is allowed, matching shortpe.h's "c.svtcmd" flag being
	// unset.
	SvtAllowList map[svtype.Svt]bool

	// MergeNearDuplicates gates the optional post-clustering merge step
	// spec.md's design notes describe as an open question: the source's
	// mergeSort routine is commented out entirely, so this defaults to off
	// rather than inferring the source's original intent.
	MergeNearDuplicates       bool
	MergeNearDuplicatesWindow int32
}

// DefaultParams matches Delly's own defaults for a first discovery pass.
var DefaultParams = Params{
	MinMapQual:                1,
	MinTraQual:                20,
	MinClip:                   25,
	MinRefSep:                 25,
	MaxReadSep:                40,
	MaxReadPerSV:              20,
	MinSRSupport:              2,
	MinPESupport:              3,
	MergeNearDuplicates:       false,
	MergeNearDuplicatesWindow: 10,
}

// Allows reports whether svt passes the allow-list filter.
func (p Params) Allows(svt svtype.Svt) bool {
	if p.SvtAllowList == nil {
		return true
	}
	return p.SvtAllowList[svt]
}
