package unitaries

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/gitrdm/qsearch/pkg/squaremat"
)

// isUnitary reports whether M·M† is the identity within tol.
func isUnitary(m *squaremat.Matrix, tol float64) bool {
	prod := m.Mul(m.H())
	n := m.Size()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := complex128(0)
			if i == j {
				want = 1
			}
			if cmplx.Abs(prod.At(i, j)-want) > tol {
				return false
			}
		}
	}
	return true
}

// TestDits verifies radix/size validation for valid powers.
func TestDits(t *testing.T) {
	cases := []struct {
		size, radix, want int
	}{
		{2, 2, 1},
		{4, 2, 2},
		{8, 2, 3},
		{16, 2, 4},
		{3, 3, 1},
		{9, 3, 2},
		{27, 3, 3},
	}
	for _, c := range cases {
		got, err := Dits(c.size, c.radix)
		if err != nil {
			t.Errorf("Dits(%d, %d) error: %v", c.size, c.radix, err)
			continue
		}
		if got != c.want {
			t.Errorf("Dits(%d, %d) = %d, want %d", c.size, c.radix, got, c.want)
		}
	}
}

// TestDitsBadDimension verifies the precondition failure for sizes that
// are not powers of the radix, including the 5×5 case.
func TestDitsBadDimension(t *testing.T) {
	for _, c := range []struct{ size, radix int }{
		{5, 2}, {6, 2}, {1, 2}, {12, 2}, {8, 3}, {4, 3},
	} {
		if _, err := Dits(c.size, c.radix); !errors.Is(err, ErrBadDimension) {
			t.Errorf("Dits(%d, %d) = %v, want ErrBadDimension", c.size, c.radix, err)
		}
	}
}

// TestRotationsAreUnitary checks unitarity across a sweep of angles.
func TestRotationsAreUnitary(t *testing.T) {
	for _, theta := range []float64{0, 0.1, 1.0, math.Pi, -2.5, 6.9} {
		for name, m := range map[string]*squaremat.Matrix{
			"RotX": RotX(theta),
			"RotY": RotY(theta),
			"RotZ": RotZ(theta),
		} {
			if !isUnitary(m, 1e-14) {
				t.Errorf("%s(%v) is not unitary", name, theta)
			}
		}
	}
}

// TestRotZAtPi verifies the Z rotation's diagonal at θ = π.
func TestRotZAtPi(t *testing.T) {
	m := RotZ(math.Pi)
	if cmplx.Abs(m.At(0, 0)-complex(0, -1)) > 1e-15 {
		t.Errorf("RotZ(π)[0,0] = %v, want -i", m.At(0, 0))
	}
	if cmplx.Abs(m.At(1, 1)-complex(0, 1)) > 1e-15 {
		t.Errorf("RotZ(π)[1,1] = %v, want i", m.At(1, 1))
	}
}

// TestSqrtX verifies √X squares to X up to global phase.
func TestSqrtX(t *testing.T) {
	x90 := SqrtX()
	sq := x90.Mul(x90)
	// RotX(π) = -i·X, a global phase away from Pauli X.
	if cmplx.Abs(sq.At(0, 1)-complex(0, -1)) > 1e-14 || cmplx.Abs(sq.At(0, 0)) > 1e-14 {
		t.Errorf("SqrtX² = %v, want -iX", sq)
	}
}

// TestCNOT verifies the permutation structure.
func TestCNOT(t *testing.T) {
	c := CNOT()
	if !isUnitary(c, 0) {
		t.Fatalf("CNOT is not unitary")
	}
	if c.At(2, 3) != 1 || c.At(3, 2) != 1 || c.At(2, 2) != 0 {
		t.Errorf("CNOT permutation wrong: %v", c)
	}
}

// TestCSUM verifies the qutrit controlled-sum maps |i,j⟩ to |i,(i+j)%3⟩
// and is a permutation unitary.
func TestCSUM(t *testing.T) {
	m := CSUM()
	if !isUnitary(m, 0) {
		t.Fatalf("CSUM is not unitary")
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			in := i*3 + j
			out := i*3 + (i+j)%3
			if m.At(out, in) != 1 {
				t.Errorf("CSUM[%d,%d] = %v, want 1", out, in, m.At(out, in))
			}
		}
	}
}

// TestToffoli verifies the doubly-controlled NOT structure.
func TestToffoli(t *testing.T) {
	m := Toffoli()
	if !isUnitary(m, 0) {
		t.Fatalf("Toffoli is not unitary")
	}
	if m.At(6, 7) != 1 || m.At(7, 6) != 1 || m.At(5, 5) != 1 {
		t.Errorf("Toffoli permutation wrong")
	}
}

// TestQFT verifies unitarity and the flat first row.
func TestQFT(t *testing.T) {
	for _, n := range []int{2, 4, 8} {
		m := QFT(n)
		if !isUnitary(m, 1e-13) {
			t.Errorf("QFT(%d) is not unitary", n)
		}
		want := complex(1/math.Sqrt(float64(n)), 0)
		for j := 0; j < n; j++ {
			if cmplx.Abs(m.At(0, j)-want) > 1e-14 {
				t.Errorf("QFT(%d)[0,%d] = %v, want %v", n, j, m.At(0, j), want)
			}
		}
	}
}

// TestRotZJacMatchesDifference cross-checks the closed-form derivative
// against a central difference.
func TestRotZJacMatchesDifference(t *testing.T) {
	const h = 1e-7
	theta := 0.83
	jac := RotZJac(theta, 1)
	num := RotZ(theta + h).Sub(RotZ(theta - h)).Scale(complex(1/(2*h), 0))
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if cmplx.Abs(jac.At(i, j)-num.At(i, j)) > 1e-6 {
				t.Errorf("RotZJac[%d,%d] = %v, numeric %v", i, j, jac.At(i, j), num.At(i, j))
			}
		}
	}
}
