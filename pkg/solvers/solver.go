package solvers

import (
	"math/rand"

	"github.com/gitrdm/qsearch/pkg/circuits"
	"github.com/gitrdm/qsearch/pkg/squaremat"
)

// Solver finds parameters bringing a fixed circuit topology as close as
// possible to a target unitary.
//
// SolveForUnitary returns the circuit's matrix at the solution and the
// solution itself. When x0 is nil the starting point is drawn uniformly
// from [0, 1) per parameter using the solver's own RNG; solver instances
// are therefore not safe for concurrent use — the search engine gives
// each worker its own instance.
type Solver interface {
	SolveForUnitary(circ circuits.Gate, consts []*squaremat.Matrix, u *squaremat.Matrix, x0 []float64) (*squaremat.Matrix, []float64, error)
}

// initialPoint copies x0 when present, otherwise samples uniformly from
// [0, 1) per parameter.
func initialPoint(n int, x0 []float64, rng *rand.Rand) []float64 {
	x := make([]float64, n)
	if x0 != nil {
		copy(x, x0)
		return x
	}
	for i := range x {
		x[i] = rng.Float64()
	}
	return x
}
