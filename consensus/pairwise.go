package consensus

// alignOp is one step of a global-alignment traceback. Kind is 'M' for a
// column that consumes one base of each sequence (match or substitution),
// 'I' for a base present only in b (insertion relative to a), or 'D' for a
// base present only in a (deletion relative to a, b advances nowhere).
type alignOp struct {
	Kind byte
	AIdx int
	BIdx int
}

const (
	matchScore    = 1
	mismatchScore = -1
	gapScore      = -2
)

// alignPairwise computes a global (Needleman-Wunsch) alignment of b against
// a and returns it as an ordered list of column operations. This is the same
// dynamic-program shape grailbio/bio/util.Levenshtein's matrix uses, extended
// to score matches separately from mismatches (Levenshtein counts both as a
// single substitution cost) since MSA voting needs to prefer real matches
// when reconstructing a consensus column.
func alignPairwise(a, b string) []alignOp {
	n, m := len(a), len(b)
	score := make([][]int32, n+1)
	for i := range score {
		score[i] = make([]int32, m+1)
	}
	for i := 0; i <= n; i++ {
		score[i][0] = int32(i) * gapScore
	}
	for j := 0; j <= m; j++ {
		score[0][j] = int32(j) * gapScore
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			sub := score[i-1][j-1] + subScore(a[i-1], b[j-1])
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

	var ops []alignOp
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && score[i][j] == score[i-1][j-1]+subScore(a[i-1], b[j-1]):
			ops = append(ops, alignOp{Kind: 'M', AIdx: i - 1, BIdx: j - 1})
			i--
			j--
		case i > 0 && score[i][j] == score[i-1][j]+gapScore:
			ops = append(ops, alignOp{Kind: 'D', AIdx: i - 1})
			i--
		default:
			ops = append(ops, alignOp{Kind: 'I', AIdx: i, BIdx: j - 1})
			j--
		}
	}
	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
	return ops
}

func subScore(x, y byte) int32 {
	if x == y {
		return matchScore
	}
	return mismatchScore
}

// gapVote is the vote a sequence casts in a center column it has no base
// aligned to.
const gapVote = '-'

// applyToColumns folds one sequence's alignment against the center into
// columns, indexed by center position with one extra trailing slot for
// insertions past the center's last base.
func applyToColumns(ops []alignOp, b string, columns [][]byte) {
	for _, op := range ops {
		switch op.Kind {
		case 'M':
			columns[op.AIdx] = append(columns[op.AIdx], b[op.BIdx])
		case 'I':
			idx := op.AIdx
			if idx >= len(columns) {
				idx = len(columns) - 1
			}
			columns[idx] = append(columns[idx], b[op.BIdx])
		case 'D':
			// center has a base with nothing corresponding in b; b votes gap.
			columns[op.AIdx] = append(columns[op.AIdx], gapVote)
		}
	}
}
