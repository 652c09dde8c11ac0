// Package solvers provides the numerical core of synthesis: the
// Hilbert–Schmidt distance and residual kernels with their analytic
// derivatives, and the inner solvers that minimize them for a fixed
// circuit topology.
//
// Two interchangeable solver back-ends implement the Solver interface: a
// limited-memory quasi-Newton minimizer over the scalar distance (BFGS),
// and a Levenberg–Marquardt minimizer over the matrix residual vector
// (LeastSquares). Both consume the exact Jacobians produced by the gate
// algebra; no finite differencing happens anywhere in this package.
package solvers

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/gitrdm/qsearch/pkg/squaremat"
)

// MatrixDistanceSquared returns 1 − |tr(A·B†)|²/d². The trace of the
// product with the conjugate transpose is computed as the sum of the
// element-wise product with the conjugate, which avoids the matmul.
// The result is invariant under a global phase of either operand; it is
// zero iff the operands agree up to global phase.
func MatrixDistanceSquared(a, b *squaremat.Matrix) float64 {
	sum := a.ElemMul(b.Conj()).Sum()
	norm := cmplx.Abs(sum) / float64(a.Size())
	return 1 - norm*norm
}

// MatrixDistance returns sqrt(MatrixDistanceSquared(a, b)).
func MatrixDistance(a, b *squaremat.Matrix) float64 {
	return math.Sqrt(math.Abs(MatrixDistanceSquared(a, b)))
}

// MatrixDistanceSquaredJac returns the distance and its gradient with
// respect to the parameters whose matrix partials are jacs. When
// tr(U·M†) is exactly zero the objective is locally degenerate: every
// gradient component is reported as +Inf so the outer solver rejects the
// step and continues from another iterate.
func MatrixDistanceSquaredJac(u, m *squaremat.Matrix, jacs []*squaremat.Matrix) (float64, []float64) {
	d := float64(u.Size())
	s := u.ElemMul(m.Conj()).Sum()
	norm := cmplx.Abs(s) / d
	dsq := 1 - norm*norm
	grad := make([]float64, len(jacs))
	if s == 0 {
		for i := range grad {
			grad[i] = math.Inf(1)
		}
		return dsq, grad
	}
	for i, j := range jacs {
		ju := u.ElemMul(j.Conj()).Sum()
		grad[i] = -2 * (real(ju)*real(s) + imag(ju)*imag(s)) / (d * d)
	}
	return dsq, grad
}

// MatrixResiduals returns the real residual vector of length 2d²: the
// real parts of M·U† − I followed by the imaginary parts. It is
// identically zero iff M equals U.
func MatrixResiduals(u, m *squaremat.Matrix, eye *mat.Dense) []float64 {
	prod := m.Mul(u.H())
	re, im := prod.SplitComplex()
	n := prod.Size()
	out := make([]float64, 0, 2*n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out = append(out, re[i*n+j]-eye.At(i, j))
		}
	}
	return append(out, im...)
}

// MatrixResidualsJac returns the 2d²×p Jacobian of MatrixResiduals:
// column k stacks the real and imaginary parts of Jₖ·U†.
func MatrixResidualsJac(u, m *squaremat.Matrix, jacs []*squaremat.Matrix) *mat.Dense {
	n := u.Size()
	uh := u.H()
	out := mat.NewDense(2*n*n, len(jacs), nil)
	for k, j := range jacs {
		re, im := j.Mul(uh).SplitComplex()
		for i := 0; i < n*n; i++ {
			out.Set(i, k, re[i])
			out.Set(n*n+i, k, im[i])
		}
	}
	return out
}
