// Package squaremat provides fixed-size dense complex square matrices for
// circuit assembly. Matrices are stored row-major in a contiguous buffer
// and the heavy operations (matrix multiply, conjugated dot product,
// scaling) are delegated to a BLAS implementation through gonum's cblas128
// interface.
//
// Operations return new matrices unless documented otherwise. Correctness,
// not throughput, is the contract: the matrices involved in synthesis are
// small (at most a few hundred rows), so a pure-Go BLAS backend is
// sufficient.
//
// Dimension mismatches panic. A mismatch always indicates a caller bug —
// gate trees produce matrices of statically known size — so it is handled
// the way gonum's blas packages handle malformed arguments.
package squaremat

import (
	"fmt"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
)

// Matrix is an n×n complex matrix stored row-major in a contiguous buffer.
// The zero value is not usable; construct with New, Zeros, Eye or FromFn.
type Matrix struct {
	n    int
	data []complex128
}

// New wraps the given row-major buffer as an n×n matrix. The buffer is
// used directly, not copied. Panics if len(data) != n*n.
func New(data []complex128, n int) *Matrix {
	if len(data) != n*n {
		panic(fmt.Sprintf("squaremat: buffer length %d does not match size %d", len(data), n))
	}
	return &Matrix{n: n, data: data}
}

// Zeros returns a new n×n zero matrix.
func Zeros(n int) *Matrix {
	return &Matrix{n: n, data: make([]complex128, n*n)}
}

// Eye returns a new n×n identity matrix.
func Eye(n int) *Matrix {
	m := Zeros(n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// FromFn builds an n×n matrix by evaluating f at every (row, col).
func FromFn(n int, f func(row, col int) complex128) *Matrix {
	m := Zeros(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.data[i*n+j] = f(i, j)
		}
	}
	return m
}

// Size returns the side length n.
func (m *Matrix) Size() int { return m.n }

// Data returns the underlying row-major buffer. Mutating it mutates the
// matrix.
func (m *Matrix) Data() []complex128 { return m.data }

// At returns the element at (row, col).
func (m *Matrix) At(row, col int) complex128 { return m.data[row*m.n+col] }

// Set assigns the element at (row, col) in place.
func (m *Matrix) Set(row, col int, v complex128) { m.data[row*m.n+col] = v }

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	data := make([]complex128, len(m.data))
	copy(data, m.data)
	return &Matrix{n: m.n, data: data}
}

func (m *Matrix) general() cblas128.General {
	return cblas128.General{Rows: m.n, Cols: m.n, Stride: m.n, Data: m.data}
}

func (m *Matrix) vector() cblas128.Vector {
	return cblas128.Vector{N: m.n * m.n, Inc: 1, Data: m.data}
}

func (m *Matrix) sameSize(other *Matrix, op string) {
	if m.n != other.n {
		panic(fmt.Sprintf("squaremat: %s size mismatch %d vs %d", op, m.n, other.n))
	}
}

// Mul returns the matrix product m·other via zgemm.
func (m *Matrix) Mul(other *Matrix) *Matrix {
	m.sameSize(other, "mul")
	out := Zeros(m.n)
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, m.general(), other.general(), 0, out.general())
	return out
}

// Kron returns the Kronecker product m ⊗ other. BLAS has no Kronecker
// primitive, so the blocks are filled directly.
func (m *Matrix) Kron(other *Matrix) *Matrix {
	na, nb := m.n, other.n
	out := Zeros(na * nb)
	no := na * nb
	for i := 0; i < na; i++ {
		for j := 0; j < na; j++ {
			a := m.data[i*na+j]
			if a == 0 {
				continue
			}
			rowStart := i * nb
			colStart := j * nb
			for k := 0; k < nb; k++ {
				for l := 0; l < nb; l++ {
					out.data[(rowStart+k)*no+colStart+l] = a * other.data[k*nb+l]
				}
			}
		}
	}
	return out
}

// Dot returns Σ conj(mᵢ)·otherᵢ over the flattened buffers (zdotc).
func (m *Matrix) Dot(other *Matrix) complex128 {
	m.sameSize(other, "dot")
	return cblas128.Dotc(m.vector(), other.vector())
}

// Sum returns the sum of all elements.
func (m *Matrix) Sum() complex128 {
	var s complex128
	for _, v := range m.data {
		s += v
	}
	return s
}

// ElemMul returns the element-wise (Hadamard) product.
func (m *Matrix) ElemMul(other *Matrix) *Matrix {
	m.sameSize(other, "elemmul")
	out := Zeros(m.n)
	for i, v := range m.data {
		out.data[i] = v * other.data[i]
	}
	return out
}

// Conj returns the element-wise complex conjugate.
func (m *Matrix) Conj() *Matrix {
	out := Zeros(m.n)
	for i, v := range m.data {
		out.data[i] = cmplx.Conj(v)
	}
	return out
}

// T returns the transpose.
func (m *Matrix) T() *Matrix {
	out := Zeros(m.n)
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			out.data[j*m.n+i] = m.data[i*m.n+j]
		}
	}
	return out
}

// H returns the conjugate transpose.
func (m *Matrix) H() *Matrix {
	out := Zeros(m.n)
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			out.data[j*m.n+i] = cmplx.Conj(m.data[i*m.n+j])
		}
	}
	return out
}

// Sub returns m − other.
func (m *Matrix) Sub(other *Matrix) *Matrix {
	m.sameSize(other, "sub")
	out := Zeros(m.n)
	for i, v := range m.data {
		out.data[i] = v - other.data[i]
	}
	return out
}

// Scale multiplies every element by alpha in place (zscal) and returns the
// receiver for chaining.
func (m *Matrix) Scale(alpha complex128) *Matrix {
	cblas128.Scal(alpha, m.vector())
	return m
}

// SplitComplex returns the real and imaginary parts as two row-major
// float buffers of length n².
func (m *Matrix) SplitComplex() (re, im []float64) {
	re = make([]float64, len(m.data))
	im = make([]float64, len(m.data))
	for i, v := range m.data {
		re[i] = real(v)
		im[i] = imag(v)
	}
	return re, im
}

// Equal reports whether the sizes match and every element compares equal
// with ==. This is value equality, not a bit-pattern comparison: +0 and
// −0 compare equal, and a NaN element never does.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.n != other.n {
		return false
	}
	for i, v := range m.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// String renders the matrix for debugging.
func (m *Matrix) String() string {
	var b strings.Builder
	b.WriteString("[ ")
	for i := 0; i < m.n; i++ {
		if i > 0 {
			b.WriteString("\n  ")
		}
		for j := 0; j < m.n; j++ {
			v := m.data[i*m.n+j]
			switch {
			case imag(v) == 0:
				fmt.Fprintf(&b, "%g, ", real(v))
			case real(v) == 0:
				fmt.Fprintf(&b, "%gi, ", imag(v))
			default:
				fmt.Fprintf(&b, "%g+%gi, ", real(v), imag(v))
			}
		}
	}
	b.WriteString("]")
	return b.String()
}
