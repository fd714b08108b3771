package dd

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Solve runs the parallel best-first branch-and-bound search (§4.G):
// numWorkers goroutines repeatedly claim the most promising open
// subproblem, compile a restricted DD from it (a feasible lower bound,
// and a candidate incumbent) and a relaxed DD (an upper bound), close
// the subproblem if the two agree, and otherwise push the relaxed
// compilation's exposed exact nodes back onto the frontier as new
// subproblems with that upper bound.
//
// width bounds every layer of every compiled DD. numWorkers must be at
// least 1. Solve returns once the frontier is exhausted, ctx is
// cancelled, or an unrecoverable error occurs.
func Solve[S comparable](ctx context.Context, problem Problem[S], width int, numWorkers int) (Completion, []Decision, error) {
	if numWorkers < 1 {
		numWorkers = 1
	}

	root := Subproblem[S]{
		State:      problem.Root(),
		Value:      0,
		Prefix:     nil,
		UpperBound: maxInt64,
	}
	frontier := NewFrontier[S](root)

	group, gctx := errgroup.WithContext(ctx)
	for i := 0; i < numWorkers; i++ {
		group.Go(func() error {
			return worker(gctx, problem, frontier, width)
		})
	}

	// A cancelled ctx must wake goroutines parked in Frontier.Claim,
	// which only polls its own stop flag, not gctx directly.
	done := make(chan struct{})
	go func() {
		select {
		case <-gctx.Done():
			frontier.Wake()
		case <-done:
		}
	}()

	err := group.Wait()
	close(done)
	if err != nil {
		return Completion{}, nil, err
	}

	best, path, hasBest, exact := frontier.Result()
	if ctx.Err() != nil {
		exact = false
	}
	if !hasBest {
		return Completion{IsExact: exact}, nil, nil
	}
	value := best
	return Completion{BestValue: &value, IsExact: exact}, path, nil
}

// worker runs one goroutine's share of the best-first search loop.
func worker[S comparable](ctx context.Context, problem Problem[S], frontier *Frontier[S], width int) error {
	for {
		sub, ok := frontier.Claim(func() bool {
			return ctx.Err() != nil || frontier.stopped()
		})
		if !ok {
			if ctx.Err() != nil {
				frontier.MarkInexact()
			}
			return nil
		}

		processSubproblem(problem, frontier, width, sub)
		frontier.Done()

		if ctx.Err() != nil {
			frontier.MarkInexact()
			return nil
		}
	}
}

// processSubproblem compiles the restricted and relaxed DDs rooted at
// sub and updates the frontier accordingly (§4.G).
func processSubproblem[S comparable](problem Problem[S], frontier *Frontier[S], width int, sub Subproblem[S]) {
	root := node[S]{state: sub.State, value: sub.Value, prefix: sub.Prefix}

	restrictedResult := compile(problem, root, width, restricted)
	if restrictedResult.HasLeaf {
		frontier.ReportIncumbent(restrictedResult.BestValue, restrictedResult.BestPath)
	}

	best, _, _, _ := frontier.Result()

	relaxedResult := compile(problem, root, width, relaxed)

	if !relaxedResult.Cut {
		// No layer ever needed trimming: restricted and relaxed compiled
		// the exact same DD, so this subproblem is fully explored and
		// closes without expanding further.
		if relaxedResult.HasLeaf && relaxedResult.BestValue > best {
			frontier.ReportIncumbent(relaxedResult.BestValue, relaxedResult.BestPath)
		}
		return
	}

	// Cut is true, so Exposed was captured from the complete first-cut
	// layer (§4.G) and is never empty: it always has more than width
	// nodes, and width is at least 1.
	upperBound := relaxedResult.BestValue
	newSubs := make([]Subproblem[S], len(relaxedResult.Exposed))
	for i, exposed := range relaxedResult.Exposed {
		newSubs[i] = Subproblem[S]{
			State:      exposed.State,
			Value:      exposed.Value,
			Prefix:     exposed.Prefix,
			UpperBound: upperBound,
		}
	}
	frontier.Push(newSubs...)
}

const maxInt64 = 1<<63 - 1
