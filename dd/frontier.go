package dd

import (
	"container/heap"
	"sync"
)

// frontierItem is the element type stored in the heap; it wraps a
// Subproblem and carries no heap index.
type frontierItem[S comparable] struct {
	sub Subproblem[S]
}

// subproblemHeap is a max-heap on UpperBound (best-first, MaxUB policy,
// §4.G): the subproblem least proven-closed is explored first.
type subproblemHeap[S comparable] []frontierItem[S]

func (h subproblemHeap[S]) Len() int { return len(h) }
func (h subproblemHeap[S]) Less(i, j int) bool {
	return h[i].sub.UpperBound > h[j].sub.UpperBound
}
func (h subproblemHeap[S]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *subproblemHeap[S]) Push(x any)   { *h = append(*h, x.(frontierItem[S])) }
func (h *subproblemHeap[S]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Frontier is the shared pool of open subproblems that a pool of workers
// draws from and feeds back into (§4.G). It tracks how many workers are
// currently holding a claimed subproblem so that a worker finding the
// heap empty can tell "no work left, ever" apart from "no work right
// now, but a sibling worker might still push more".
type Frontier[S comparable] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	heap   subproblemHeap[S]
	active int
	closed bool

	// best tracks the best proven-feasible (restricted) value found so
	// far across all workers, used to prune subproblems whose upper
	// bound can no longer beat it.
	best    int64
	hasBest bool
	// bestPath is the decision sequence that achieved best.
	bestPath []Decision
	// exact is cleared when a worker stops because the context was
	// cancelled (timeout or a cancelled claim), so the final answer is
	// reported as a bound rather than a proof (§3). Width-bounded
	// compilation does not clear it: the subproblems it exposes are
	// pushed back onto the frontier and explored later.
	exact bool
}

// NewFrontier builds a Frontier seeded with one root subproblem.
func NewFrontier[S comparable](root Subproblem[S]) *Frontier[S] {
	f := &Frontier[S]{exact: true}
	f.cond = sync.NewCond(&f.mu)
	f.heap = subproblemHeap[S]{{sub: root}}
	heap.Init(&f.heap)
	return f
}

// Claim blocks until a subproblem is available, the frontier is
// permanently empty with no active workers, or stop reports done.
// ok is false in the latter two cases.
func (f *Frontier[S]) Claim(stop func() bool) (Subproblem[S], bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for {
		if stop != nil && stop() {
			return Subproblem[S]{}, false
		}
		if len(f.heap) > 0 {
			item := heap.Pop(&f.heap).(frontierItem[S])
			if f.hasBest && item.sub.UpperBound <= f.best {
				// Dominated by an incumbent found while this subproblem
				// waited on the frontier; drop it without consuming a
				// worker slot.
				continue
			}
			f.active++
			return item.sub, true
		}
		if f.active == 0 {
			// Nothing queued, nobody working: the search is over.
			f.cond.Broadcast()
			return Subproblem[S]{}, false
		}
		f.cond.Wait()
	}
}

// Push adds newly discovered subproblems to the frontier, pruning any
// already dominated by the current incumbent.
func (f *Frontier[S]) Push(subs ...Subproblem[S]) {
	if len(subs) == 0 {
		return
	}
	f.mu.Lock()
	for _, sub := range subs {
		if f.hasBest && sub.UpperBound <= f.best {
			continue
		}
		heap.Push(&f.heap, frontierItem[S]{sub: sub})
	}
	f.mu.Unlock()
	f.cond.Broadcast()
}

// ReportIncumbent records a proven-feasible value reached by some
// worker, updating the shared best if it improves on it.
func (f *Frontier[S]) ReportIncumbent(value int64, path []Decision) {
	f.mu.Lock()
	if !f.hasBest || value > f.best {
		f.hasBest = true
		f.best = value
		f.bestPath = path
	}
	f.mu.Unlock()
	f.cond.Broadcast()
}

// MarkInexact records that some subproblem was not fully explored, so
// the eventual result cannot be certified optimal.
func (f *Frontier[S]) MarkInexact() {
	f.mu.Lock()
	f.exact = false
	f.mu.Unlock()
}

// Done releases the active-worker slot a prior Claim acquired, waking
// any workers blocked waiting for new work or for the search to end.
func (f *Frontier[S]) Done() {
	f.mu.Lock()
	f.active--
	f.mu.Unlock()
	f.cond.Broadcast()
}

// Result reads out the best incumbent found and whether the search
// proved it optimal.
func (f *Frontier[S]) Result() (int64, []Decision, bool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.best, f.bestPath, f.hasBest, f.exact
}

// Wake forces every blocked Claim to re-check its stop condition,
// used when an external context is cancelled.
func (f *Frontier[S]) Wake() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.cond.Broadcast()
}

// stopped reports whether Wake has been called. The caller must hold
// f.mu: it is only consulted from the stop callback that Claim runs with
// the lock held.
func (f *Frontier[S]) stopped() bool {
	return f.closed
}
