package tsp

import (
	"math"

	"github.com/geotsp/ddtsp/instance"
)

// scaleFactor converts a floating-point travel cost into the integer
// units the engine searches over (§4.E): dividing a reported best_value
// by -scaleFactor recovers the original metric (metres or seconds).
const scaleFactor = 100000

// Problem adapts an Instance into dd.Problem[State] (§4.E, §9): it
// knows nothing about decision diagrams or branch-and-bound, only how a
// tour visits cities and what that costs.
type Problem struct {
	instance *instance.Instance
}

// NewProblem builds a Problem bound to in, which must outlive it.
func NewProblem(in *instance.Instance) *Problem {
	return &Problem{instance: in}
}

// Root returns the initial state: parked at city 0, owing every other
// city plus the return to 0.
func (p *Problem) Root() State {
	return Root(p.instance.NbCities())
}

// NbVariables returns one decision per city, including the forced
// final return to city 0.
func (p *Problem) NbVariables() int {
	return p.instance.NbCities()
}

// IsLeaf reports whether s has taken every decision.
func (p *Problem) IsLeaf(s State) bool {
	return s.Depth == p.instance.NbCities()
}

// NextVariable returns the layer a non-leaf state belongs to, which for
// this model is simply its depth.
func (p *Problem) NextVariable(s State) int {
	return s.Depth
}

// Domain returns the candidate next cities at s (§4.E).
func (p *Problem) Domain(s State, variable int) []int {
	return s.Domain()
}

// Transition returns the state reached by visiting city value next.
func (p *Problem) Transition(s State, variable, value int) State {
	return s.Transition(value)
}

// TransitionCost returns the scaled, negated, optimistic edge cost of
// visiting value from s (§4.E): the minimum real distance over every
// city s.Current might represent, so a merged (relaxed) state still
// yields an admissible upper bound on tour value.
func (p *Problem) TransitionCost(s State, variable, value int) int64 {
	best := math.Inf(1)
	for _, from := range s.Current.Members() {
		d := float64(p.instance.Distances[from][value])
		if d < best {
			best = d
		}
	}
	scaled := math.Round(best * scaleFactor)
	return -int64(scaled)
}

// Merge collapses states into one conservative over-approximation
// (§4.F).
func (p *Problem) Merge(states []State) State {
	return Merge(states)
}

// Less reports whether a should be kept exact ahead of b when a layer
// must be restricted or relaxed (§4.F).
func (p *Problem) Less(a, b State) bool {
	return RankOf(a).Less(RankOf(b))
}

// ScaleFactor exposes the integer-to-metric conversion constant so
// callers can recover the real-world tour cost from a reported
// best_value (§4.E, Testable Property #7).
func ScaleFactor() int64 {
	return scaleFactor
}
