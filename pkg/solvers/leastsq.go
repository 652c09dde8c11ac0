package solvers

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/gitrdm/qsearch/pkg/circuits"
	"github.com/gitrdm/qsearch/pkg/squaremat"
)

// Default least-squares tolerances.
const (
	DefaultFTol = 5e-16
	DefaultGTol = 1e-15
)

// LeastSquaresSolver minimizes the 2d² matrix residuals with a damped
// (Levenberg–Marquardt) Gauss–Newton iteration. Each step solves the
// damped normal equations through a dense QR factorization of the
// Jacobian augmented with the scaled damping rows; the analytic residual
// Jacobian comes from the gate algebra. Progress reporting is silent.
type LeastSquaresSolver struct {
	// FTol stops the iteration when the relative cost decrease of an
	// accepted step falls below it.
	FTol float64
	// GTol stops the iteration when the infinity norm of the residual
	// gradient Jᵀr falls below it.
	GTol float64

	rng *rand.Rand
}

// NewLeastSquares returns a least-squares solver with the given
// tolerances, drawing initial points from the given seed. The iteration
// cap is 100·p for p parameters.
func NewLeastSquares(ftol, gtol float64, seed int64) *LeastSquaresSolver {
	return &LeastSquaresSolver{
		FTol: ftol,
		GTol: gtol,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// SolveForUnitary implements Solver.
func (s *LeastSquaresSolver) SolveForUnitary(circ circuits.Gate, consts []*squaremat.Matrix, u *squaremat.Matrix, x0 []float64) (*squaremat.Matrix, []float64, error) {
	p := circ.Inputs()
	x := initialPoint(p, x0, s.rng)
	if p == 0 {
		return circ.Mat(x, consts), x, nil
	}

	d := u.Size()
	nres := 2 * d * d
	eye := identity(d)
	maxIter := 100 * p

	m, jacs := circ.MatJac(x, consts)
	r := MatrixResiduals(u, m, eye)
	jac := MatrixResidualsJac(u, m, jacs)
	cost := 0.5 * floats.Dot(r, r)

	lambda := 1e-3
	aug := mat.NewDense(nres+p, p, nil)
	rhs := mat.NewVecDense(nres+p, nil)
	step := mat.NewVecDense(p, nil)
	grad := mat.NewVecDense(p, nil)
	col := make([]float64, nres)
	xTrial := make([]float64, p)

	for iter := 0; iter < maxIter; iter++ {
		grad.MulVec(jac.T(), mat.NewVecDense(nres, r))
		if mat.Norm(grad, math.Inf(1)) <= s.GTol {
			break
		}

		// Augmented system: [J; √λ·D]·δ = [−r; 0] with D the column-norm
		// scaling of J (Marquardt's scaling keeps the damping meaningful
		// when parameters enter at very different magnitudes).
		aug.Zero()
		for j := 0; j < p; j++ {
			mat.Col(col, j, jac)
			for i := 0; i < nres; i++ {
				aug.Set(i, j, col[i])
			}
			scale := floats.Norm(col, 2)
			if scale == 0 {
				scale = 1
			}
			aug.Set(nres+j, j, math.Sqrt(lambda)*scale)
		}
		for i := 0; i < nres; i++ {
			rhs.SetVec(i, -r[i])
		}

		var qr mat.QR
		qr.Factorize(aug)
		if err := qr.SolveVecTo(step, false, rhs); err != nil {
			// A rank-deficient Jacobian at this iterate: raise the
			// damping and try again.
			lambda *= 10
			if lambda > 1e12 {
				break
			}
			continue
		}

		floats.AddTo(xTrial, x, step.RawVector().Data)
		mTrial, jacsTrial := circ.MatJac(xTrial, consts)
		rTrial := MatrixResiduals(u, mTrial, eye)
		costTrial := 0.5 * floats.Dot(rTrial, rTrial)

		if costTrial < cost {
			accepted := cost - costTrial
			copy(x, xTrial)
			r = rTrial
			jac = MatrixResidualsJac(u, mTrial, jacsTrial)
			converged := accepted <= s.FTol*math.Max(cost, 1e-300)
			cost = costTrial
			lambda = math.Max(lambda*0.3, 1e-14)
			if converged || cost == 0 {
				break
			}
		} else {
			lambda *= 10
			if lambda > 1e12 {
				break
			}
		}
	}
	return circ.Mat(x, consts), x, nil
}

func identity(n int) *mat.Dense {
	e := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		e.Set(i, i, 1)
	}
	return e
}
