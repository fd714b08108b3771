package dd

import "sort"

// Subproblem is a unit of work on the global frontier (§4.G): a state
// reached after some prefix of decisions, the accumulated value of that
// prefix, the prefix itself (to reconstruct a full solution later), and
// the best-known upper bound on what remains achievable from here.
type Subproblem[S comparable] struct {
	State      S
	Value      int64
	Prefix     []Decision
	UpperBound int64
}

// node is a decision-diagram node during layer-by-layer compilation.
type node[S comparable] struct {
	state  S
	value  int64
	prefix []Decision
}

// compileMode selects whether exceeding the layer width drops the
// lowest-ranked nodes (restricted, §4.G) or merges them into one
// over-approximating node (relaxed, §4.G).
type compileMode int

const (
	restricted compileMode = iota
	relaxed
)

// compileResult reports what a DD compilation found.
type compileResult[S comparable] struct {
	// BestValue/HasLeaf describe the best value reached by a leaf node
	// (depth == n) anywhere in the compiled DD.
	BestValue int64
	HasLeaf   bool
	BestPath  []Decision
	// Exposed holds every exact node of the first layer where width was
	// exceeded, captured in full before that layer's cut (relaxed mode
	// only): every root-to-terminal path crosses this layer, so it is a
	// complete cutset, and all of it — not just the nodes kept exact
	// after merging — becomes new subproblems (§4.G).
	Exposed []Subproblem[S]
	// Cut reports whether any layer ever needed trimming. When false,
	// BestValue/BestPath describe a genuine leaf of the uncut DD: in
	// restricted mode that is a real path, and in relaxed mode it is
	// provably equal to the restricted result, since no relaxation ever
	// applied.
	Cut bool
}

// compile builds one decision diagram layer by layer, starting from
// root, under the given width bound and compilation mode.
func compile[S comparable](problem Problem[S], root node[S], width int, mode compileMode) compileResult[S] {
	layer := []node[S]{root}
	result := compileResult[S]{BestValue: minInt64}
	cutCaptured := false

	for len(layer) > 0 {
		// A layer is homogeneous in depth: every state in it shares the
		// same next variable, or all are leaves.
		if problem.IsLeaf(layer[0].state) {
			for _, nd := range layer {
				if nd.value > result.BestValue {
					result.BestValue = nd.value
					result.BestPath = nd.prefix
					result.HasLeaf = true
				}
			}
			return result
		}

		variable := problem.NextVariable(layer[0].state)

		next := expand(problem, layer, variable)
		next = dedupe(next)

		if len(next) > width {
			result.Cut = true
			sort.Slice(next, func(i, j int) bool {
				return problem.Less(next[i].state, next[j].state)
			})

			switch mode {
			case restricted:
				next = next[:width]
			case relaxed:
				if !cutCaptured {
					cutCaptured = true
					// next here is still the complete, unmerged layer:
					// every root-to-terminal path crosses it, so all of
					// it, not just the nodes the merge below keeps
					// exact, is a valid exact cutset (§4.G).
					result.Exposed = make([]Subproblem[S], len(next))
					for i, nd := range next {
						result.Exposed[i] = Subproblem[S]{
							State:  nd.state,
							Value:  nd.value,
							Prefix: nd.prefix,
						}
					}
				}
				next = mergeTail(problem, next, width)
			}
		}

		layer = next
	}

	return result
}

// expand applies every domain value of variable to every node in layer.
func expand[S comparable](problem Problem[S], layer []node[S], variable int) []node[S] {
	next := make([]node[S], 0, len(layer))
	for _, nd := range layer {
		for _, value := range problem.Domain(nd.state, variable) {
			cost := problem.TransitionCost(nd.state, variable, value)
			childState := problem.Transition(nd.state, variable, value)
			decision := Decision{Variable: variable, Value: value}

			prefix := make([]Decision, len(nd.prefix)+1)
			copy(prefix, nd.prefix)
			prefix[len(nd.prefix)] = decision

			next = append(next, node[S]{
				state:  childState,
				value:  nd.value + cost,
				prefix: prefix,
			})
		}
	}
	return next
}

// dedupe collapses nodes that share the same state, keeping the highest
// value (and its path) for each distinct state, since the engine
// maximizes.
func dedupe[S comparable](layer []node[S]) []node[S] {
	best := make(map[S]int, len(layer))
	out := make([]node[S], 0, len(layer))
	for _, nd := range layer {
		if idx, ok := best[nd.state]; ok {
			if nd.value > out[idx].value {
				out[idx] = nd
			}
			continue
		}
		best[nd.state] = len(out)
		out = append(out, nd)
	}
	return out
}

// mergeTail keeps the top (width-1) ranked nodes exact and merges the
// remainder into a single relaxed node (§4.G, §4.F).
func mergeTail[S comparable](problem Problem[S], sorted []node[S], width int) []node[S] {
	kept := sorted[:width-1]
	tail := sorted[width-1:]

	states := make([]S, len(tail))
	var tailBest int64 = minInt64
	for i, nd := range tail {
		states[i] = nd.state
		if nd.value > tailBest {
			tailBest = nd.value
		}
	}
	merged := problem.Merge(states)

	out := make([]node[S], 0, len(kept)+1)
	out = append(out, kept...)
	out = append(out, node[S]{state: merged, value: tailBest, prefix: nil})
	return out
}

const minInt64 = -1 << 63
