package circuits

import (
	"math"
	"math/cmplx"

	"github.com/gitrdm/qsearch/pkg/squaremat"
)

// SingleQutrit is the general single-qutrit unitary in an 8-parameter
// chart: three mixing angles (θ₁, θ₂, θ₃) and five phases (φ₁..φ₅).
type SingleQutrit struct{ gateData }

// NewSingleQutrit returns an eight-parameter single-qutrit gate.
func NewSingleQutrit() SingleQutrit {
	return SingleQutrit{gateData{dits: 1, inputs: 8}}
}

type qutritParts struct {
	s1, c1, s2, c2, s3, c3 complex128
	p1, m1, p2, m2, p3, m3 complex128
	p4, m4, p5, m5         complex128
}

func qutritSplit(v []float64) qutritParts {
	var q qutritParts
	q.s1 = complex(math.Sin(v[0]), 0)
	q.c1 = complex(math.Cos(v[0]), 0)
	q.s2 = complex(math.Sin(v[1]), 0)
	q.c2 = complex(math.Cos(v[1]), 0)
	q.s3 = complex(math.Sin(v[2]), 0)
	q.c3 = complex(math.Cos(v[2]), 0)
	q.p1 = cmplx.Exp(complex(0, v[3]))
	q.m1 = cmplx.Conj(q.p1)
	q.p2 = cmplx.Exp(complex(0, v[4]))
	q.m2 = cmplx.Conj(q.p2)
	q.p3 = cmplx.Exp(complex(0, v[5]))
	q.m3 = cmplx.Conj(q.p3)
	q.p4 = cmplx.Exp(complex(0, v[6]))
	q.m4 = cmplx.Conj(q.p4)
	q.p5 = cmplx.Exp(complex(0, v[7]))
	q.m5 = cmplx.Conj(q.p5)
	return q
}

func (q qutritParts) matrix() *squaremat.Matrix {
	return squaremat.New([]complex128{
		q.c1 * q.c2 * q.p1,
		q.s1 * q.p3,
		q.c1 * q.s2 * q.p4,
		q.s2*q.s3*q.m4*q.m5 - q.s1*q.c2*q.c3*q.p1*q.p2*q.m3,
		q.c1 * q.c3 * q.p2,
		-q.c2*q.s3*q.m1*q.m5 - q.s1*q.s2*q.c3*q.p2*q.m3*q.p4,
		-q.s1*q.c2*q.s3*q.p1*q.m3*q.p5 - q.s2*q.c3*q.m2*q.m4,
		q.c1 * q.s3 * q.p5,
		q.c2*q.c3*q.m1*q.m2 - q.s1*q.s2*q.s3*q.m3*q.p4*q.p5,
	}, 3)
}

func (g SingleQutrit) Mat(v []float64, _ []*squaremat.Matrix) *squaremat.Matrix {
	return qutritSplit(v).matrix()
}

func (g SingleQutrit) MatJac(v []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix) {
	q := qutritSplit(v)
	i := complex(0, 1)
	u := q.matrix()

	jt1 := squaremat.New([]complex128{
		-q.s1 * q.c2 * q.p1,
		q.c1 * q.p3,
		-q.s1 * q.s2 * q.p4,
		-q.c1 * q.c2 * q.c3 * q.p1 * q.p2 * q.m3,
		-q.s1 * q.c3 * q.p2,
		-q.c1 * q.s2 * q.c3 * q.p2 * q.m3 * q.p4,
		-q.c1 * q.c2 * q.s3 * q.p1 * q.m3 * q.p5,
		-q.s1 * q.s3 * q.p5,
		-q.c1 * q.s2 * q.s3 * q.m3 * q.p4 * q.p5,
	}, 3)

	jt2 := squaremat.New([]complex128{
		-q.c1 * q.s2 * q.p1,
		0,
		q.c1 * q.c2 * q.p4,
		q.c2*q.s3*q.m4*q.m5 + q.s1*q.s2*q.c3*q.p1*q.p2*q.m3,
		0,
		q.s2*q.s3*q.m1*q.m5 - q.s1*q.c2*q.c3*q.p2*q.m3*q.p4,
		q.s1*q.s2*q.s3*q.p1*q.m3*q.p5 - q.c2*q.c3*q.m2*q.m4,
		0,
		-q.s2*q.c3*q.m1*q.m2 - q.s1*q.c2*q.s3*q.m3*q.p4*q.p5,
	}, 3)

	jt3 := squaremat.New([]complex128{
		0,
		0,
		0,
		q.s2*q.c3*q.m4*q.m5 + q.s1*q.c2*q.s3*q.p1*q.p2*q.m3,
		-q.c1 * q.s3 * q.p2,
		-q.c2*q.c3*q.m1*q.m5 + q.s1*q.s2*q.s3*q.p2*q.m3*q.p4,
		-q.s1*q.c2*q.c3*q.p1*q.m3*q.p5 + q.s2*q.s3*q.m2*q.m4,
		q.c1 * q.c3 * q.p5,
		-q.c2*q.s3*q.m1*q.m2 - q.s1*q.s2*q.c3*q.m3*q.p4*q.p5,
	}, 3)

	je1 := squaremat.New([]complex128{
		i * q.c1 * q.c2 * q.p1,
		0,
		0,
		-i * q.s1 * q.c2 * q.c3 * q.p1 * q.p2 * q.m3,
		0,
		i * q.c2 * q.s3 * q.m1 * q.m5,
		-i * q.s1 * q.c2 * q.s3 * q.p1 * q.m3 * q.p5,
		0,
		-i * q.c2 * q.c3 * q.m1 * q.m2,
	}, 3)

	je2 := squaremat.New([]complex128{
		0,
		0,
		0,
		-i * q.s1 * q.c2 * q.c3 * q.p1 * q.p2 * q.m3,
		i * q.c1 * q.c3 * q.p2,
		-i * q.s1 * q.s2 * q.c3 * q.p2 * q.m3 * q.p4,
		i * q.s2 * q.c3 * q.m2 * q.m4,
		0,
		-i * q.c2 * q.c3 * q.m1 * q.m2,
	}, 3)

	je3 := squaremat.New([]complex128{
		0,
		i * q.s1 * q.p3,
		0,
		i * q.s1 * q.c2 * q.c3 * q.p1 * q.p2 * q.m3,
		0,
		i * q.s1 * q.s2 * q.c3 * q.p2 * q.m3 * q.p4,
		i * q.s1 * q.c2 * q.s3 * q.p1 * q.m3 * q.p5,
		0,
		i * q.s1 * q.s2 * q.s3 * q.m3 * q.p4 * q.p5,
	}, 3)

	je4 := squaremat.New([]complex128{
		0,
		0,
		i * q.c1 * q.s2 * q.p4,
		-i * q.s2 * q.s3 * q.m4 * q.m5,
		0,
		-i * q.s1 * q.s2 * q.c3 * q.p2 * q.m3 * q.p4,
		i * q.s2 * q.c3 * q.m2 * q.m4,
		0,
		-i * q.s1 * q.s2 * q.s3 * q.m3 * q.p4 * q.p5,
	}, 3)

	je5 := squaremat.New([]complex128{
		0,
		0,
		0,
		-i * q.s2 * q.s3 * q.m4 * q.m5,
		0,
		i * q.c2 * q.s3 * q.m1 * q.m5,
		-i * q.s1 * q.c2 * q.s3 * q.p1 * q.m3 * q.p5,
		i * q.c1 * q.s3 * q.p5,
		-i * q.s1 * q.s2 * q.s3 * q.m3 * q.p4 * q.p5,
	}, 3)

	return u, []*squaremat.Matrix{jt1, jt2, jt3, je1, je2, je3, je4, je5}
}
