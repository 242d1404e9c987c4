package speller

import (
	"container/heap"
	"math"

	"hfstspell/internal/symbols"
)

// Result is a single scored output string: a correction, a suggestion, or
// an analysis.
type Result struct {
	Text   string
	Weight symbols.Weight
}

// SymbolResult is Result for AnalyseSymbols, whose output is a sequence of
// individual symbol strings rather than a concatenated word.
type SymbolResult struct {
	Symbols []string
	Weight  symbols.Weight
}

// resultHeap is a min-heap of Result ordered by ascending weight, backing
// both CorrectionQueue and AnalysisQueue: lower weight is a better match
// and should come out of the queue first.
type resultHeap []Result

func (h resultHeap) Len() int            { return len(h) }
func (h resultHeap) Less(i, j int) bool  { return h[i].Weight < h[j].Weight }
func (h resultHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *resultHeap) Push(x interface{}) { *h = append(*h, x.(Result)) }
func (h *resultHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// ResultQueue is a min-heap of scored results, used for both corrections
// (CorrectionQueue) and single-string analyses (AnalysisQueue) — the two
// are identical in shape, so one generic type serves both.
type ResultQueue struct {
	h resultHeap
}

// NewResultQueue returns an empty queue ready for use.
func NewResultQueue() *ResultQueue {
	q := &ResultQueue{}
	heap.Init(&q.h)
	return q
}

func (q *ResultQueue) Push(r Result) { heap.Push(&q.h, r) }
func (q *ResultQueue) Len() int      { return q.h.Len() }

// Pop removes and returns the lowest-weight result. It panics if the
// queue is empty; callers must check Len first.
func (q *ResultQueue) Pop() Result {
	return heap.Pop(&q.h).(Result)
}

// Top returns the lowest-weight result without removing it.
func (q *ResultQueue) Top() Result {
	return q.h[0]
}

// ToSlice drains the queue into a slice ordered from best (lowest weight)
// to worst.
func (q *ResultQueue) ToSlice() []Result {
	out := make([]Result, 0, q.Len())
	for q.Len() > 0 {
		out = append(out, q.Pop())
	}
	return out
}

// symbolResultHeap backs AnalysisSymbolsQueue.
type symbolResultHeap []SymbolResult

func (h symbolResultHeap) Len() int            { return len(h) }
func (h symbolResultHeap) Less(i, j int) bool  { return h[i].Weight < h[j].Weight }
func (h symbolResultHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *symbolResultHeap) Push(x interface{}) { *h = append(*h, x.(SymbolResult)) }
func (h *symbolResultHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// SymbolResultQueue is the AnalysisSymbolsQueue equivalent.
type SymbolResultQueue struct {
	h symbolResultHeap
}

func NewSymbolResultQueue() *SymbolResultQueue {
	q := &SymbolResultQueue{}
	heap.Init(&q.h)
	return q
}

func (q *SymbolResultQueue) Push(r SymbolResult) { heap.Push(&q.h, r) }
func (q *SymbolResultQueue) Len() int            { return q.h.Len() }
func (q *SymbolResultQueue) Pop() SymbolResult   { return heap.Pop(&q.h).(SymbolResult) }

func (q *SymbolResultQueue) ToSlice() []SymbolResult {
	out := make([]SymbolResult, 0, q.Len())
	for q.Len() > 0 {
		out = append(out, q.Pop())
	}
	return out
}

// weightQueue is a sorted list of the best nbest weights seen so far,
// bounded to size nbest by the caller after every push. It mirrors the
// original's std::list-based WeightQueue exactly rather than reaching for
// container/heap, since its access pattern (push in sorted position, pop
// the worst, read both ends) doesn't fit a heap's shape.
type weightQueue struct {
	weights []symbols.Weight
}

// push inserts w keeping the list sorted ascending.
func (q *weightQueue) push(w symbols.Weight) {
	i := 0
	for i < len(q.weights) && q.weights[i] <= w {
		i++
	}
	q.weights = append(q.weights, 0)
	copy(q.weights[i+1:], q.weights[i:])
	q.weights[i] = w
}

// pop removes the worst (highest) weight, mirroring nbest_queue's bound
// enforcement after every push.
func (q *weightQueue) pop() {
	if len(q.weights) == 0 {
		return
	}
	q.weights = q.weights[:len(q.weights)-1]
}

func (q *weightQueue) size() int { return len(q.weights) }

func (q *weightQueue) getLowest() symbols.Weight {
	if len(q.weights) == 0 {
		return symbols.Weight(math.MaxFloat32)
	}
	return q.weights[0]
}

func (q *weightQueue) getHighest() symbols.Weight {
	if len(q.weights) == 0 {
		return symbols.Weight(math.MaxFloat32)
	}
	return q.weights[len(q.weights)-1]
}
