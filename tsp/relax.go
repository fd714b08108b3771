package tsp

// Merge collapses a set of states into a single relaxed state that
// over-approximates all of them (§4.F): the merged current set is the
// union of all current sets, the merged must_visit is the intersection
// (only what every path still owes), and might_visit absorbs anything
// that was mandatory somewhere but not everywhere.
func Merge(states []State) State {
	var depth int
	var current, might Bitset
	must := full(64)

	for _, s := range states {
		if s.Depth > depth {
			depth = s.Depth
		}
		current = current.Union(s.Current)
		must = must.Intersect(s.MustVisit)
		might = might.Union(s.MightVisit)
		might = might.Union(s.MustVisit)
	}

	return State{
		Depth:      depth,
		Current:    current,
		MustVisit:  must,
		MightVisit: might.Diff(must),
	}
}

// Rank is the total order used to prioritize states within a layer
// during restricted/relaxed compilation (§4.F): more outstanding work
// ranks first, so nodes further from termination are explored/kept
// before nodes closer to it.
type Rank struct {
	MustVisit  int
	MightVisit int
	Current    int
}

// RankOf computes the ranking key for s.
func RankOf(s State) Rank {
	return Rank{
		MustVisit:  s.MustVisit.Len(),
		MightVisit: s.MightVisit.Len(),
		Current:    s.Current.Len(),
	}
}

// Less reports whether a should be ordered ahead of b: descending on
// MustVisit, then MightVisit, then Current.
func (a Rank) Less(b Rank) bool {
	if a.MustVisit != b.MustVisit {
		return a.MustVisit > b.MustVisit
	}
	if a.MightVisit != b.MightVisit {
		return a.MightVisit > b.MightVisit
	}
	return a.Current > b.Current
}
