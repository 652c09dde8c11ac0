// Package compiler implements the best-first search over circuit
// topologies. Starting from a single row of parameterized single-qudit
// gates, the search repeatedly pops the most promising frontier nodes,
// extends each with every candidate layer from the gate set, optimizes
// every child with an inner solver in parallel, and pushes the children
// back on the frontier. The search stops when a circuit reaches the
// distance threshold, when the frontier empties, or when the depth bound
// cuts off all extensions.
//
// Within one expansion step children are evaluated on a worker pool;
// every worker owns its solver instance and RNG, and the frontier is
// touched only between steps, so a run is deterministic for a fixed seed.
package compiler

import (
	"container/heap"
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gitrdm/qsearch/internal/parallel"
	"github.com/gitrdm/qsearch/pkg/circuits"
	"github.com/gitrdm/qsearch/pkg/gatesets"
	"github.com/gitrdm/qsearch/pkg/solvers"
	"github.com/gitrdm/qsearch/pkg/squaremat"
	"github.com/gitrdm/qsearch/pkg/unitaries"
)

// Result is the outcome of a synthesis run: the best circuit found, its
// parameters, the unitary it produces, and its depth and distance.
type Result struct {
	Matrix   *squaremat.Matrix
	Circuit  circuits.Product
	Params   []float64
	Depth    int
	Distance float64
}

// SolverFactory builds a fresh solver instance seeded for one worker.
type SolverFactory func(seed int64) solvers.Solver

// Compiler turns a target unitary into a circuit. maxDepth bounds the
// number of appended search layers; 0 returns the initial layer alone and
// a negative value leaves the depth unbounded.
type Compiler interface {
	Compile(u *squaremat.Matrix, maxDepth int) (*Result, error)
}

// SearchCompiler is the A*-style synthesis engine.
//
// The zero values of the optional fields select the defaults: Beams 0
// derives the beam factor from the CPU count, NewSolver nil uses the
// least-squares backend with the search tolerances, and Logger's zero
// value stays silent.
type SearchCompiler struct {
	// Threshold is the squared-distance acceptance bound.
	Threshold float64

	// GateSet supplies the initial layer and the search layers.
	GateSet gatesets.GateSet

	// Beams is the number of frontier nodes expanded per step.
	Beams int

	// Seed fixes the RNG used for initial parameter sampling. Two runs
	// with the same seed and thread count produce identical results.
	Seed int64

	// Logger receives search progress.
	Logger zerolog.Logger

	// NewSolver builds the per-worker inner solver.
	NewSolver SolverFactory
}

// NewSearchCompiler returns a search compiler with default beams, seed,
// solver and a silent logger.
func NewSearchCompiler(threshold float64, gateSet gatesets.GateSet) *SearchCompiler {
	return &SearchCompiler{
		Threshold: threshold,
		GateSet:   gateSet,
		Logger:    zerolog.Nop(),
	}
}

func (c *SearchCompiler) newSolver(seed int64) solvers.Solver {
	if c.NewSolver != nil {
		return c.NewSolver(seed)
	}
	return solvers.NewLeastSquares(1e-6, 1e-10, seed)
}

// childResult carries one parallel evaluation back to the search loop.
type childResult struct {
	matrix *squaremat.Matrix
	params []float64
	err    error
}

// Compile synthesizes a circuit for u. It validates the target dimension
// against the gate-set radix before any search begins.
func (c *SearchCompiler) Compile(u *squaremat.Matrix, maxDepth int) (*Result, error) {
	dits, err := unitaries.Dits(u.Size(), c.GateSet.D())
	if err != nil {
		return nil, err
	}
	consts := c.GateSet.ConstantGates()
	searchLayers := c.GateSet.SearchLayers(dits)

	cpus := runtime.NumCPU()
	beams := c.Beams
	if beams <= 0 {
		beams = 1
		if len(searchLayers) > 0 && cpus/len(searchLayers) > 1 {
			beams = cpus / len(searchLayers)
		}
	}
	poolSize := len(searchLayers) * beams
	if poolSize > cpus {
		poolSize = cpus
	}
	if poolSize < 1 {
		poolSize = 1
	}
	c.Logger.Debug().
		Int("cpus", cpus).
		Int("branching", len(searchLayers)).
		Int("beams", beams).
		Int("workers", poolSize).
		Msg("starting search")
	start := time.Now()

	var seedCounter int64
	nextSeed := func() int64 {
		seedCounter++
		return c.Seed + seedCounter
	}

	root := circuits.NewProduct(c.GateSet.InitialLayer(dits))
	rootSolver := c.newSolver(nextSeed())
	rootMat, rootParams, err := rootSolver.SolveForUnitary(root, consts, u, nil)
	if err != nil {
		return nil, fmt.Errorf("compiler: root optimization failed: %w", err)
	}
	best := &Result{
		Matrix:   rootMat,
		Circuit:  root,
		Params:   rootParams,
		Depth:    0,
		Distance: solvers.MatrixDistanceSquared(u, rootMat),
	}
	bestDepth := 0
	c.Logger.Info().Float64("distance", best.Distance).Int("depth", 0).Msg("new best")
	if maxDepth == 0 {
		return best, nil
	}

	queue := &frontier{}
	heap.Init(queue)
	var tiebreaker int64
	push := func(n *node) {
		n.tiebreaker = tiebreaker
		tiebreaker++
		heap.Push(queue, n)
	}
	push(&node{
		heuristic: Astar(best.Distance, 0),
		depth:     0,
		distance:  best.Distance,
		params:    rootParams,
		circuit:   root,
	})

	pool := parallel.NewWorkerPool(poolSize)
	defer pool.Shutdown()
	ctx := context.Background()

	for queue.Len() > 0 {
		if best.Distance < c.Threshold {
			break
		}

		popped := make([]*node, 0, beams)
		for i := 0; i < beams && queue.Len() > 0; i++ {
			n := heap.Pop(queue).(*node)
			c.Logger.Debug().
				Float64("distance", n.distance).
				Int("depth", n.depth).
				Msg("popped node")
			popped = append(popped, n)
		}
		stepStart := time.Now()

		type child struct {
			circuit circuits.Product
			depth   int // parent depth
			seed    int64
		}
		children := make([]child, 0, len(popped)*len(searchLayers))
		for _, n := range popped {
			for _, layer := range searchLayers {
				children = append(children, child{
					circuit: n.circuit.Append(layer.Gate),
					depth:   n.depth,
					seed:    nextSeed(),
				})
			}
		}

		results := make([]childResult, len(children))
		var wg sync.WaitGroup
		for i := range children {
			i := i
			ch := children[i]
			wg.Add(1)
			if err := pool.Submit(ctx, func() {
				defer wg.Done()
				solv := c.newSolver(ch.seed)
				m, params, err := solv.SolveForUnitary(ch.circuit, consts, u, nil)
				results[i] = childResult{matrix: m, params: params, err: err}
			}); err != nil {
				wg.Done()
				return nil, fmt.Errorf("compiler: submitting child evaluation: %w", err)
			}
		}
		wg.Wait()

		for i, res := range results {
			if res.err != nil {
				return nil, fmt.Errorf("compiler: child optimization failed: %w", res.err)
			}
			ch := children[i]
			dist := solvers.MatrixDistanceSquared(u, res.matrix)
			if (dist < best.Distance && (best.Distance >= c.Threshold || ch.depth < bestDepth)) ||
				(dist < c.Threshold && ch.depth+1 < bestDepth) {
				best = &Result{
					Matrix:   res.matrix,
					Circuit:  ch.circuit,
					Params:   res.params,
					Depth:    ch.depth + 1,
					Distance: dist,
				}
				bestDepth = ch.depth + 1
				c.Logger.Info().
					Float64("distance", dist).
					Int("depth", bestDepth).
					Msg("new best")
			}
			if maxDepth < 0 || ch.depth+1 < maxDepth {
				push(&node{
					heuristic: Astar(dist, ch.depth+1),
					depth:     ch.depth + 1,
					distance:  dist,
					params:    res.params,
					circuit:   ch.circuit,
				})
			}
		}
		c.Logger.Debug().
			Dur("elapsed", time.Since(stepStart)).
			Int("frontier", queue.Len()).
			Msg("layer completed")
	}

	*queue = (*queue)[:0]
	c.Logger.Info().
		Int("depth", best.Depth).
		Float64("distance", best.Distance).
		Dur("elapsed", time.Since(start)).
		Msg("finished compilation")
	return best, nil
}
