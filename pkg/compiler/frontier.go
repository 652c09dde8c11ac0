package compiler

import (
	"github.com/gitrdm/qsearch/pkg/circuits"
)

// node is a frontier entry. Immutable once pushed.
type node struct {
	heuristic  float64
	depth      int
	distance   float64
	tiebreaker int64
	params     []float64
	circuit    circuits.Product
}

// frontier is a min-heap of nodes ordered by (heuristic, depth, distance,
// tiebreaker) ascending. The tiebreaker is assigned monotonically at push
// time, which makes the pop order a deterministic total order.
type frontier []*node

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	a, b := f[i], f[j]
	if a.heuristic != b.heuristic {
		return a.heuristic < b.heuristic
	}
	if a.depth != b.depth {
		return a.depth < b.depth
	}
	if a.distance != b.distance {
		return a.distance < b.distance
	}
	return a.tiebreaker < b.tiebreaker
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(*node)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}
