package dd_test

import (
	"context"
	"math/bits"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/geotsp/ddtsp/dd"
)

// layeredPathState is a minimal Problem[S] inhabitant used to exercise
// the engine without any TSP-specific machinery (§9, "Polymorphism over
// problems"): a state is a layer index and a bitset of nodes the path
// might currently be standing on. An exact state's bitset is a
// singleton; a relaxed (merged) state's bitset may hold several.
type layeredPathState struct {
	layer int
	from  uint32
}

// layeredPathProblem is shortest-path-in-a-DAG, expressed as a
// maximization over negated edge weights so it fits dd.Problem's
// maximize-only contract.
type layeredPathProblem struct {
	layers  int
	nodes   int
	weights [][][]int64 // weights[layer][from][to]
}

func (p *layeredPathProblem) Root() layeredPathState {
	return layeredPathState{layer: 0, from: 1}
}

func (p *layeredPathProblem) NbVariables() int { return p.layers }

func (p *layeredPathProblem) IsLeaf(s layeredPathState) bool { return s.layer == p.layers }

func (p *layeredPathProblem) NextVariable(s layeredPathState) int { return s.layer }

func (p *layeredPathProblem) Domain(s layeredPathState, variable int) []int {
	domain := make([]int, p.nodes)
	for i := range domain {
		domain[i] = i
	}
	return domain
}

func (p *layeredPathProblem) Transition(s layeredPathState, variable, value int) layeredPathState {
	return layeredPathState{layer: s.layer + 1, from: 1 << uint(value)}
}

// TransitionCost returns the best (least-negative magnitude, i.e. most
// optimistic) negated weight over every node the state might currently
// occupy: for an exact state that is simply the true edge weight,
// negated; for a relaxed state it is an admissible over-estimate of
// what any underlying exact path could achieve.
func (p *layeredPathProblem) TransitionCost(s layeredPathState, variable, value int) int64 {
	var best int64 = minInt64
	for from := 0; from < p.nodes; from++ {
		if s.from&(1<<uint(from)) == 0 {
			continue
		}
		cost := -p.weights[variable][from][value]
		if cost > best {
			best = cost
		}
	}
	return best
}

func (p *layeredPathProblem) Merge(states []layeredPathState) layeredPathState {
	var merged layeredPathState
	merged.layer = states[0].layer
	for _, s := range states {
		merged.from |= s.from
	}
	return merged
}

func (p *layeredPathProblem) Less(a, b layeredPathState) bool {
	return bits.OnesCount32(a.from) < bits.OnesCount32(b.from)
}

const minInt64 = -1 << 63

// bruteForceShortestPath computes the true minimum total weight over
// every root-to-leaf path, by plain dynamic programming, independent
// of the engine under test.
func bruteForceShortestPath(p *layeredPathProblem) int64 {
	const inf = int64(1) << 40
	dist := make([]int64, p.nodes)
	for i := range dist {
		if i == 0 {
			dist[i] = 0
		} else {
			dist[i] = inf
		}
	}
	for layer := 0; layer < p.layers; layer++ {
		next := make([]int64, p.nodes)
		for i := range next {
			next[i] = inf
		}
		for from := 0; from < p.nodes; from++ {
			if dist[from] >= inf {
				continue
			}
			for to := 0; to < p.nodes; to++ {
				candidate := dist[from] + p.weights[layer][from][to]
				if candidate < next[to] {
					next[to] = candidate
				}
			}
		}
		dist = next
	}
	best := inf
	for _, d := range dist {
		if d < best {
			best = d
		}
	}
	return best
}

func smallGraph() *layeredPathProblem {
	return &layeredPathProblem{
		layers: 3,
		nodes:  3,
		weights: [][][]int64{
			{{5, 9, 1}, {2, 6, 8}, {7, 3, 4}},
			{{4, 4, 4}, {1, 9, 2}, {6, 2, 5}},
			{{3, 1, 8}, {5, 5, 0}, {2, 7, 1}},
		},
	}
}

func TestSolveFindsOptimalWithUnboundedWidth(t *testing.T) {
	problem := smallGraph()
	want := bruteForceShortestPath(problem)

	completion, decisions, err := dd.Solve[layeredPathState](context.Background(), problem, 64, 4)
	require.NoError(t, err)
	require.NotNil(t, completion.BestValue)
	require.True(t, completion.IsExact)
	require.Equal(t, -want, *completion.BestValue)
	require.Len(t, decisions, problem.layers)
}

func TestSolveWithNarrowWidthStillReturnsAdmissibleBound(t *testing.T) {
	problem := smallGraph()
	want := bruteForceShortestPath(problem)

	completion, _, err := dd.Solve[layeredPathState](context.Background(), problem, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, completion.BestValue)
	// Any reported value corresponds to a real feasible path (found by a
	// restricted compilation), so it can never beat the true optimum.
	require.LessOrEqual(t, *completion.BestValue, -want)
}

// TestSolveProvesOptimalDespiteNarrowRelaxedWidth guards the exact
// cutset: width 2 is narrower than this graph's 3-node layers, so every
// relaxed compilation cuts at least once, yet the full pre-merge layer
// exposed at that cut must still let the search cover every branch and
// converge on the true optimum.
func TestSolveProvesOptimalDespiteNarrowRelaxedWidth(t *testing.T) {
	problem := smallGraph()
	want := bruteForceShortestPath(problem)

	completion, decisions, err := dd.Solve[layeredPathState](context.Background(), problem, 2, 4)
	require.NoError(t, err)
	require.NotNil(t, completion.BestValue)
	require.True(t, completion.IsExact)
	require.Equal(t, -want, *completion.BestValue)
	require.Len(t, decisions, problem.layers)
}

func TestSolveIsDeterministicAcrossWorkerCounts(t *testing.T) {
	problem := smallGraph()

	single, _, err := dd.Solve[layeredPathState](context.Background(), problem, 64, 1)
	require.NoError(t, err)

	parallel, _, err := dd.Solve[layeredPathState](context.Background(), problem, 64, 8)
	require.NoError(t, err)

	require.Equal(t, *single.BestValue, *parallel.BestValue)
	require.True(t, single.IsExact)
	require.True(t, parallel.IsExact)
}

func TestSolveHonorsContextCancellation(t *testing.T) {
	problem := smallGraph()

	// A context already past its deadline must make Solve report its
	// result as a bound rather than a proof, regardless of how much of
	// the search it managed to complete (§3).
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	completion, _, err := dd.Solve[layeredPathState](ctx, problem, 1, 2)
	require.NoError(t, err)
	require.False(t, completion.IsExact)
}
