package solvers

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/optimize"

	"github.com/gitrdm/qsearch/pkg/circuits"
	"github.com/gitrdm/qsearch/pkg/squaremat"
)

// BFGSSolver minimizes MatrixDistanceSquared with gonum's limited-memory
// BFGS using the analytic gradient. Parameters are unbounded raw radians.
type BFGSSolver struct {
	// Store is the limited-memory history length.
	Store int
	// MaxEval caps the number of objective evaluations.
	MaxEval int
	// StopValue terminates the minimization once the objective falls
	// below it.
	StopValue float64

	rng *rand.Rand
}

// NewBFGS returns a BFGS solver with the default history length (10),
// evaluation cap (15000) and stop value (1e-16), drawing initial points
// from the given seed.
func NewBFGS(seed int64) *BFGSSolver {
	return &BFGSSolver{
		Store:     10,
		MaxEval:   15000,
		StopValue: 1e-16,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// stopValueConverger terminates once the objective drops below value,
// standing in for an nlopt-style stopval setting.
type stopValueConverger struct {
	value float64
}

func (c stopValueConverger) Init(dim int) {}

func (c stopValueConverger) Converged(loc *optimize.Location) optimize.Status {
	if loc.F < c.value {
		return optimize.FunctionThreshold
	}
	return optimize.NotTerminated
}

// SolveForUnitary implements Solver.
func (s *BFGSSolver) SolveForUnitary(circ circuits.Gate, consts []*squaremat.Matrix, u *squaremat.Matrix, x0 []float64) (*squaremat.Matrix, []float64, error) {
	n := circ.Inputs()
	x := initialPoint(n, x0, s.rng)
	if n == 0 {
		return circ.Mat(x, consts), x, nil
	}

	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			return MatrixDistanceSquared(u, circ.Mat(p, consts))
		},
		Grad: func(grad, p []float64) {
			m, jacs := circ.MatJac(p, consts)
			_, g := MatrixDistanceSquaredJac(u, m, jacs)
			copy(grad, g)
		},
	}
	settings := &optimize.Settings{
		Converger:       stopValueConverger{value: s.StopValue},
		FuncEvaluations: s.MaxEval,
	}
	method := &optimize.LBFGS{Store: s.Store}

	result, err := optimize.Minimize(problem, x, settings, method)
	if err != nil && !errors.Is(err, optimize.ErrLinesearcherFailure) && !errors.Is(err, optimize.ErrNoProgress) {
		// Roundoff-limited line searches and stalled iterates still carry
		// the best point found; anything else is a hard failure.
		return nil, nil, fmt.Errorf("solvers: bfgs minimization failed: %w", err)
	}
	if result != nil {
		copy(x, result.X)
	}
	return circ.Mat(x, consts), x, nil
}
