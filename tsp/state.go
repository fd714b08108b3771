// Package tsp implements the TSP state model and relaxation (§4.E, §4.F):
// a partial tour is represented as a bitset-based state over at most 64
// cities, transitions extend it by one visit, and a merge operator
// collapses several states into one conservative over-approximation for
// use by the generic decision-diagram engine in package dd.
package tsp

import "math/bits"

// Bitset is a set of city indices in [0, 64), used for the three sets
// that make up a TspState.
type Bitset uint64

// Has reports whether city is a member of b.
func (b Bitset) Has(city int) bool {
	return b&(1<<uint(city)) != 0
}

// Add returns b with city inserted.
func (b Bitset) Add(city int) Bitset {
	return b | (1 << uint(city))
}

// Remove returns b with city removed.
func (b Bitset) Remove(city int) Bitset {
	return b &^ (1 << uint(city))
}

// Union returns the union of a and b.
func (a Bitset) Union(b Bitset) Bitset {
	return a | b
}

// Intersect returns the intersection of a and b.
func (a Bitset) Intersect(b Bitset) Bitset {
	return a & b
}

// Diff returns the elements of a that are not in b.
func (a Bitset) Diff(b Bitset) Bitset {
	return a &^ b
}

// Len returns the number of members of b.
func (b Bitset) Len() int {
	return bits.OnesCount64(uint64(b))
}

// Members returns the sorted list of city indices in b.
func (b Bitset) Members() []int {
	members := make([]int, 0, b.Len())
	for c := 0; c < 64; c++ {
		if b.Has(c) {
			members = append(members, c)
		}
	}
	return members
}

// full returns the bitset containing cities [0, n).
func full(n int) Bitset {
	if n >= 64 {
		return Bitset(^uint64(0))
	}
	return Bitset((uint64(1) << uint(n)) - 1)
}

// State is a search node (§3, TspState): depth tracks how many of the n
// decisions have been taken, current is the set of possible "last
// visited" cities (a singleton in an exact node), must_visit is what
// every merged path still owes, might_visit is what some merged path
// still owes.
type State struct {
	Depth      int
	Current    Bitset
	MustVisit  Bitset
	MightVisit Bitset
}

// Root returns the initial state for a tour over n cities: depth 0,
// parked at city 0, owing every city including the return to 0.
func Root(n int) State {
	return State{
		Depth:      0,
		Current:    Bitset(1),
		MustVisit:  full(n),
		MightVisit: 0,
	}
}

// IsExact reports whether s has a single possible "last visited" city.
// Every state reached by transitions alone has one; a merge of states
// that all share the same current city also has one.
func (s State) IsExact() bool {
	return s.Current.Len() == 1
}

// Dest returns the set of cities a tour reaching s might still need to
// visit: the union of must_visit and might_visit (§4.E).
func (s State) Dest() Bitset {
	return s.MustVisit.Union(s.MightVisit)
}

// Domain returns the candidate next cities at s. When only the start
// remains (the forced closing edge), the sole candidate is city 0;
// otherwise every member of Dest() except 0 is a candidate, since 0 may
// only be visited as the final, tour-closing move (§4.E).
func (s State) Domain() []int {
	dest := s.Dest()
	if dest.Len() == 1 {
		return []int{0}
	}
	candidates := make([]int, 0, dest.Len()-1)
	for _, c := range dest.Members() {
		if c != 0 {
			candidates = append(candidates, c)
		}
	}
	return candidates
}

// Transition returns the state reached from s by visiting city value
// next (§4.E).
func (s State) Transition(value int) State {
	return State{
		Depth:      s.Depth + 1,
		Current:    Bitset(1 << uint(value)),
		MustVisit:  s.MustVisit.Remove(value),
		MightVisit: s.MightVisit.Remove(value),
	}
}
