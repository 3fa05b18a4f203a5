package consensus

// MinAlignQuality is the fraction of matching bases a consensus-to-reference
// alignment must clear for an assembled breakpoint to be reported as
// precise. Below this, assembly falls back to the paired-end estimate.
const MinAlignQuality = 0.85

// AlignToReference anchors consensus somewhere inside refWindow using a
// semi-global alignment: refWindow's ends are free (the window is expected
// to be wider than the consensus so no penalty accrues for not consuming its
// edges), but every base of consensus must be accounted for. This is the
// glocal variant of the same edit-distance dynamic program alignPairwise
// uses for MSA, with the first column's initial costs left at zero so an
// alignment can start partway through the reference at no cost.
//
// Returns the 0-based reference offset (relative to refWindow's start) the
// consensus's first base anchors to, the offset one past its last base, the
// fraction of matching columns, and whether that fraction clears
// MinAlignQuality.
func AlignToReference(refWindow, consensus string) (start, end int, quality float64, ok bool) {
	n, m := len(refWindow), len(consensus)
	if m == 0 || n == 0 {
		return 0, 0, 0, false
	}

	score := make([][]int32, n+1)
	for i := range score {
		score[i] = make([]int32, m+1)
	}
	// Free ref prefix: score[i][0] stays zero, so entering row i at column 0
	// costs nothing and the alignment can start anywhere along refWindow.
	// Row 0 charges a gap per consensus base skipped.
	for j := 0; j <= m; j++ {
		score[0][j] = int32(j) * gapScore
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			sub := score[i-1][j-1] + subScore(refWindow[i-1], consensus[j-1])
			del := score[i-1][j] + gapScore
			ins := score[i][j-1] + gapScore
			best := sub
			if del > best {
				best = del
			}
			if ins > best {
				best = ins
			}
			score[i][j] = best
		}
	}

	// Free ref suffix: the best anchor is the highest score anywhere in the
	// consensus-complete column, not necessarily at row n.
	bestRow := 0
	var bestScore int32 = -1 << 30
	for i := 0; i <= n; i++ {
		if score[i][m] > bestScore {
			bestScore = score[i][m]
			bestRow = i
		}
	}

	matches := 0
	i, j := bestRow, m
	for j > 0 {
		switch {
		case i > 0 && score[i][j] == score[i-1][j-1]+subScore(refWindow[i-1], consensus[j-1]):
			if refWindow[i-1] == consensus[j-1] {
				matches++
			}
			i--
			j--
		case i > 0 && score[i][j] == score[i-1][j]+gapScore:
			i--
		default:
			j--
		}
	}

	quality = float64(matches) / float64(m)
	return i, bestRow, quality, quality >= MinAlignQuality
}
