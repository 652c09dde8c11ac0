package solvers

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/gitrdm/qsearch/pkg/circuits"
	"github.com/gitrdm/qsearch/pkg/squaremat"
	"github.com/gitrdm/qsearch/pkg/unitaries"
)

func paramVec(rng *rand.Rand, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = (rng.Float64()*2 - 1) * math.Pi
	}
	return v
}

// twoQubitLayer builds the parameterized circuit used as a distance test
// bed: a U3 row followed by a CNOT block.
func twoQubitLayer() (circuits.Gate, []*squaremat.Matrix) {
	consts := []*squaremat.Matrix{unitaries.CNOT(), unitaries.SqrtX()}
	circ := circuits.NewProduct(
		circuits.NewKronecker(circuits.NewU3(), circuits.NewU3()),
		circuits.NewProduct(
			circuits.NewCNOT(0),
			circuits.NewKronecker(circuits.NewXZXZ(1), circuits.NewU3()),
		),
	)
	return circ, consts
}

// TestDistanceZeroOnSelf verifies the distance vanishes for a matrix
// against itself, and stays zero under a global phase.
func TestDistanceZeroOnSelf(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	circ, consts := twoQubitLayer()
	m := circ.Mat(paramVec(rng, circ.Inputs()), consts)
	if d := MatrixDistanceSquared(m, m); d > 1e-14 {
		t.Errorf("distance to self = %g", d)
	}
	phased := m.Clone().Scale(cmplx.Exp(complex(0, 0.7)))
	if d := MatrixDistanceSquared(m, phased); d > 1e-14 {
		t.Errorf("distance is not phase invariant: %g", d)
	}
}

// TestDistancePositive verifies distinct unitaries are separated.
func TestDistancePositive(t *testing.T) {
	u := unitaries.CNOT()
	m := squaremat.Eye(4)
	d := MatrixDistanceSquared(u, m)
	if d < 0.1 {
		t.Errorf("distance CNOT vs I = %g, want well away from zero", d)
	}
	if MatrixDistance(u, m) != math.Sqrt(math.Abs(d)) {
		t.Errorf("MatrixDistance is not the square root of the squared distance")
	}
}

// TestDistanceGradientMatchesDifference verifies the analytic gradient
// from MatrixDistanceSquaredJac against a central difference over the
// circuit parameters, per component within 1e-6.
func TestDistanceGradientMatchesDifference(t *testing.T) {
	const h = 1e-7
	rng := rand.New(rand.NewSource(5))
	circ, consts := twoQubitLayer()
	u := circ.Mat(paramVec(rng, circ.Inputs()), consts)

	for trial := 0; trial < 5; trial++ {
		v := paramVec(rng, circ.Inputs())
		m, jacs := circ.MatJac(v, consts)
		_, grad := MatrixDistanceSquaredJac(u, m, jacs)
		for k := range v {
			plus := make([]float64, len(v))
			minus := make([]float64, len(v))
			copy(plus, v)
			copy(minus, v)
			plus[k] += h
			minus[k] -= h
			dPlus := MatrixDistanceSquared(u, circ.Mat(plus, consts))
			dMinus := MatrixDistanceSquared(u, circ.Mat(minus, consts))
			num := (dPlus - dMinus) / (2 * h)
			if math.Abs(grad[k]-num) > 1e-6 {
				t.Errorf("trial %d: gradient[%d] = %g, numeric %g", trial, k, grad[k], num)
			}
		}
	}
}

// TestDistanceDegenerateGradient verifies the +Inf sentinel when
// tr(U·M†) is exactly zero.
func TestDistanceDegenerateGradient(t *testing.T) {
	u := squaremat.Eye(2)
	// Pauli X has an exactly zero diagonal, so the elementwise trace
	// against the identity vanishes exactly. (RotX(π) would not do: its
	// diagonal is cos(π/2) ≈ 6e-17, not zero.)
	m := squaremat.New([]complex128{0, 1, 1, 0}, 2)
	jacs := []*squaremat.Matrix{squaremat.Eye(2), unitaries.RotZ(0.3)}
	_, grad := MatrixDistanceSquaredJac(u, m, jacs)
	for k, g := range grad {
		if !math.IsInf(g, 1) {
			t.Errorf("gradient[%d] = %g, want +Inf", k, g)
		}
	}
}

// TestResidualsZeroWhenEqual verifies the residual vector is identically
// zero iff M equals U.
func TestResidualsZeroWhenEqual(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	circ, consts := twoQubitLayer()
	u := circ.Mat(paramVec(rng, circ.Inputs()), consts)
	eye := identity(u.Size())

	r := MatrixResiduals(u, u, eye)
	if len(r) != 2*u.Size()*u.Size() {
		t.Fatalf("residual length = %d, want %d", len(r), 2*u.Size()*u.Size())
	}
	for i, ri := range r {
		if math.Abs(ri) > 1e-12 {
			t.Fatalf("residual[%d] = %g for M = U", i, ri)
		}
	}

	other := circ.Mat(paramVec(rng, circ.Inputs()), consts)
	var norm float64
	for _, ri := range MatrixResiduals(u, other, eye) {
		norm += ri * ri
	}
	if norm < 1e-8 {
		t.Errorf("residuals vanish for distinct matrices")
	}
}

// TestResidualNormIdentity verifies ‖r‖² = 2d − 2·Re tr(M·U†), the
// Frobenius identity tying the residual vector to the unnormalized
// phase-sensitive distance.
func TestResidualNormIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	circ, consts := twoQubitLayer()
	u := circ.Mat(paramVec(rng, circ.Inputs()), consts)
	m := circ.Mat(paramVec(rng, circ.Inputs()), consts)
	eye := identity(u.Size())

	var normSq float64
	for _, ri := range MatrixResiduals(u, m, eye) {
		normSq += ri * ri
	}
	tr := m.Mul(u.H())
	var diag complex128
	for i := 0; i < tr.Size(); i++ {
		diag += tr.At(i, i)
	}
	want := 2*float64(u.Size()) - 2*real(diag)
	if math.Abs(normSq-want) > 1e-12 {
		t.Errorf("‖r‖² = %g, want %g", normSq, want)
	}
}

// TestResidualsJacMatchesDifference verifies each Jacobian column
// against a central difference of the residual vector.
func TestResidualsJacMatchesDifference(t *testing.T) {
	const h = 1e-7
	rng := rand.New(rand.NewSource(13))
	circ, consts := twoQubitLayer()
	u := circ.Mat(paramVec(rng, circ.Inputs()), consts)
	eye := identity(u.Size())

	v := paramVec(rng, circ.Inputs())
	m, jacs := circ.MatJac(v, consts)
	jac := MatrixResidualsJac(u, m, jacs)
	rows, cols := jac.Dims()
	if rows != 2*u.Size()*u.Size() || cols != circ.Inputs() {
		t.Fatalf("Jacobian dims = %d×%d, want %d×%d",
			rows, cols, 2*u.Size()*u.Size(), circ.Inputs())
	}
	for k := 0; k < cols; k++ {
		plus := make([]float64, len(v))
		minus := make([]float64, len(v))
		copy(plus, v)
		copy(minus, v)
		plus[k] += h
		minus[k] -= h
		rPlus := MatrixResiduals(u, circ.Mat(plus, consts), eye)
		rMinus := MatrixResiduals(u, circ.Mat(minus, consts), eye)
		for i := 0; i < rows; i++ {
			num := (rPlus[i] - rMinus[i]) / (2 * h)
			if math.Abs(jac.At(i, k)-num) > 1e-5 {
				t.Fatalf("residual Jacobian[%d,%d] = %g, numeric %g",
					i, k, jac.At(i, k), num)
			}
		}
	}
}
