// Package cluster implements the clusterer (component F): groups
// pair-evidence or SR-breakpoint records of one svt into SV candidates by
// proximity.
//
// Per spec.md's design notes, this is a union-find over records sorted by
// (chr, pos) with a single right-sweep joining records within tolerance D,
// rather than an explicit adjacency list: cheaper to build, and the sweep
// only compares each record with the sorted predecessors that lie within
// tolerance of it.
package cluster

import "sort"

// Member is the minimal shape a clusterable record needs: an ordering
// coordinate and a read/pair identity used only to break position ties
// deterministically.
type Member struct {
	Chr1, Pos1 int32
	IdentityHash uint64
	Index        int // original index into the caller's record slice.
}

// Result is one connected component that met the support threshold.
type Result struct {
	Chr1, Start, Chr2, End int32
	Members                []int // original indices of the member records.
}

// unionFind is a standard path-compressed, union-by-size disjoint set.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), size: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}

// Cluster groups members whose first breakpoints agree within tolerance and
// whose second breakpoints (chr2, pos2, from the caller-provided accessor —
// SR and PE records disagree on which field carries it, so cluster stays
// agnostic about the record shape) agree too, and returns the connected
// components that reach minSupport members. Requiring both endpoints to
// agree keeps, e.g., a translocation and a duplication that happen to share
// a chr1 breakpoint from merging into one nonsensical SV.
func Cluster(members []Member, tolerance int32, minSupport int, chr2Pos2 func(idx int) (int32, int32)) []Result {
	n := len(members)
	if n == 0 {
		return nil
	}
	chr2 := make([]int32, n)
	pos2 := make([]int32, n)
	for i := 0; i < n; i++ {
		chr2[i], pos2[i] = chr2Pos2(i)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := members[order[i]], members[order[j]]
		if a.Chr1 != b.Chr1 {
			return a.Chr1 < b.Chr1
		}
		if a.Pos1 != b.Pos1 {
			return a.Pos1 < b.Pos1
		}
		return a.IdentityHash < b.IdentityHash
	})

	uf := newUnionFind(n)
	// Right-sweep: each sorted member only needs to look backward at
	// already-placed members within tolerance on the same chromosome, since
	// the sort guarantees anything further back is even further away. The
	// chr1/pos1 proximity check still bounds how far back the inner loop
	// looks; chr2/pos2 agreement is a second, independent gate on top of it
	// that does not itself terminate the sweep, since a member can be close
	// on chr1/pos1 to several others with differing second breakpoints.
	for i := 1; i < n; i++ {
		cur := members[order[i]]
		for j := i - 1; j >= 0; j-- {
			prev := members[order[j]]
			if prev.Chr1 != cur.Chr1 || cur.Pos1-prev.Pos1 > tolerance {
				break
			}
			if chr2[order[i]] != chr2[order[j]] {
				continue
			}
			pos2Diff := pos2[order[i]] - pos2[order[j]]
			if pos2Diff < 0 {
				pos2Diff = -pos2Diff
			}
			if pos2Diff > tolerance {
				continue
			}
			uf.union(order[i], order[j])
		}
	}

	groups := make(map[int][]int)
	for _, idx := range order {
		root := uf.find(idx)
		groups[root] = append(groups[root], idx)
	}

	rootOrder := make([]int, 0, len(groups))
	for root := range groups {
		rootOrder = append(rootOrder, root)
	}
	sort.Slice(rootOrder, func(i, j int) bool {
		return members[rootOrder[i]].Pos1 < members[rootOrder[j]].Pos1 ||
			(members[rootOrder[i]].Pos1 == members[rootOrder[j]].Pos1 && rootOrder[i] < rootOrder[j])
	})

	var results []Result
	for _, root := range rootOrder {
		idxs := groups[root]
		if len(idxs) < minSupport {
			continue
		}
		sort.Ints(idxs)

		// Every member of idxs was joined only across matching chr2, so the
		// component shares one chr2 value; chr2[idxs[0]] speaks for all of
		// them.
		res := Result{
			Chr1:  members[idxs[0]].Chr1,
			Start: members[idxs[0]].Pos1,
			Chr2:  chr2[idxs[0]],
			End:   members[idxs[0]].Pos1,
		}
		for _, idx := range idxs {
			m := members[idx]
			if m.Pos1 < res.Start {
				res.Start = m.Pos1
			}
			if m.Pos1 > res.End {
				res.End = m.Pos1
			}
			if pos2[idx] > res.End {
				res.End = pos2[idx]
			}
		}
		res.Members = idxs
		results = append(results, res)
	}
	return results
}
