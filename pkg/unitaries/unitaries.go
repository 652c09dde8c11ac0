// Package unitaries provides the constant unitary matrices and rotation
// generators used to populate gate-set tables and to build synthesis
// targets: Pauli rotations, the √X gate, CNOT, the qutrit controlled-sum,
// the quantum Fourier transform, and common benchmark targets.
package unitaries

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/gitrdm/qsearch/pkg/squaremat"
)

// ErrBadDimension reports a target whose side length is not a power of the
// gate-set radix.
var ErrBadDimension = errors.New("unitaries: matrix size is not a power of the radix")

// Dits returns k such that radix^k equals size, or ErrBadDimension when no
// such k exists. It is the precondition check run before any search
// begins.
func Dits(size, radix int) (int, error) {
	if size < radix || radix < 2 {
		return 0, fmt.Errorf("%w: size %d, radix %d", ErrBadDimension, size, radix)
	}
	k := 0
	for n := 1; n < size; n *= radix {
		k++
		if n*radix == size {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: size %d, radix %d", ErrBadDimension, size, radix)
}

// RotX returns the single-qubit X rotation exp(-iθX/2).
func RotX(theta float64) *squaremat.Matrix {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return squaremat.New([]complex128{
		c, s,
		s, c,
	}, 2)
}

// RotY returns the single-qubit Y rotation exp(-iθY/2).
func RotY(theta float64) *squaremat.Matrix {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return squaremat.New([]complex128{
		c, -s,
		s, c,
	}, 2)
}

// RotZ returns the single-qubit Z rotation exp(-iθZ/2).
func RotZ(theta float64) *squaremat.Matrix {
	return squaremat.New([]complex128{
		cmplx.Exp(complex(0, -theta/2)), 0,
		0, cmplx.Exp(complex(0, theta/2)),
	}, 2)
}

// RotZJac returns d/dθ RotZ(θ) scaled by mult. Pass mult = 1 for a raw
// derivative; composite gates whose parameters enter the angle with a
// constant factor fold that factor in here.
func RotZJac(theta float64, mult float64) *squaremat.Matrix {
	h := theta / 2
	m := complex(mult*0.5, 0)
	return squaremat.New([]complex128{
		m * complex(-math.Sin(h), -math.Cos(h)), 0,
		0, m * complex(-math.Sin(h), math.Cos(h)),
	}, 2)
}

// SqrtX returns the √X gate, RotX(π/2).
func SqrtX() *squaremat.Matrix {
	return RotX(math.Pi / 2)
}

// CNOT returns the two-qubit controlled-NOT.
func CNOT() *squaremat.Matrix {
	return squaremat.New([]complex128{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
	}, 4)
}

// Swap returns the two-qubit SWAP.
func Swap() *squaremat.Matrix {
	return squaremat.New([]complex128{
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	}, 4)
}

// Toffoli returns the three-qubit doubly-controlled NOT.
func Toffoli() *squaremat.Matrix {
	m := squaremat.Eye(8)
	m.Set(6, 6, 0)
	m.Set(7, 7, 0)
	m.Set(6, 7, 1)
	m.Set(7, 6, 1)
	return m
}

// CSUM returns the two-qutrit controlled-sum entangler
// |i,j⟩ → |i,(i+j) mod 3⟩.
func CSUM() *squaremat.Matrix {
	m := squaremat.Zeros(9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i*3+(i+j)%3, i*3+j, 1)
		}
	}
	return m
}

// QFT returns the n×n quantum Fourier transform matrix.
func QFT(n int) *squaremat.Matrix {
	root := cmplx.Exp(complex(0, 2*math.Pi/float64(n)))
	scale := complex(1/math.Sqrt(float64(n)), 0)
	return squaremat.FromFn(n, func(row, col int) complex128 {
		return scale * cmplx.Pow(root, complex(float64(row*col), 0))
	})
}
