package circuits

import (
	"math"
	"math/cmplx"

	"github.com/gitrdm/qsearch/pkg/squaremat"
)

// RXX is the two-qubit rotation exp(-iθ/2 X⊗X).
type RXX struct{ gateData }

// NewRXX returns a one-parameter XX rotation.
func NewRXX() RXX { return RXX{gateData{dits: 2, inputs: 1}} }

func (g RXX) Mat(v []float64, _ []*squaremat.Matrix) *squaremat.Matrix {
	c := complex(math.Cos(v[0]/2), 0)
	s := complex(0, -math.Sin(v[0]/2))
	return squaremat.New([]complex128{
		c, 0, 0, s,
		0, c, s, 0,
		0, s, c, 0,
		s, 0, 0, c,
	}, 4)
}

func (g RXX) MatJac(v []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix) {
	dc := complex(-math.Sin(v[0]/2)/2, 0)
	ds := complex(0, -math.Cos(v[0]/2)/2)
	j := squaremat.New([]complex128{
		dc, 0, 0, ds,
		0, dc, ds, 0,
		0, ds, dc, 0,
		ds, 0, 0, dc,
	}, 4)
	return g.Mat(v, consts), []*squaremat.Matrix{j}
}

// RYY is the two-qubit rotation exp(-iθ/2 Y⊗Y).
type RYY struct{ gateData }

// NewRYY returns a one-parameter YY rotation.
func NewRYY() RYY { return RYY{gateData{dits: 2, inputs: 1}} }

func (g RYY) Mat(v []float64, _ []*squaremat.Matrix) *squaremat.Matrix {
	c := complex(math.Cos(v[0]/2), 0)
	s := complex(0, math.Sin(v[0]/2))
	return squaremat.New([]complex128{
		c, 0, 0, s,
		0, c, -s, 0,
		0, -s, c, 0,
		s, 0, 0, c,
	}, 4)
}

func (g RYY) MatJac(v []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix) {
	dc := complex(-math.Sin(v[0]/2)/2, 0)
	ds := complex(0, math.Cos(v[0]/2)/2)
	j := squaremat.New([]complex128{
		dc, 0, 0, ds,
		0, dc, -ds, 0,
		0, -ds, dc, 0,
		ds, 0, 0, dc,
	}, 4)
	return g.Mat(v, consts), []*squaremat.Matrix{j}
}

// RZZ is the two-qubit rotation exp(-iθ/2 Z⊗Z).
type RZZ struct{ gateData }

// NewRZZ returns a one-parameter ZZ rotation.
func NewRZZ() RZZ { return RZZ{gateData{dits: 2, inputs: 1}} }

func (g RZZ) Mat(v []float64, _ []*squaremat.Matrix) *squaremat.Matrix {
	em := cmplx.Exp(complex(0, -v[0]/2))
	ep := cmplx.Exp(complex(0, v[0]/2))
	return squaremat.New([]complex128{
		em, 0, 0, 0,
		0, ep, 0, 0,
		0, 0, ep, 0,
		0, 0, 0, em,
	}, 4)
}

func (g RZZ) MatJac(v []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix) {
	i := complex(0, 1)
	em := cmplx.Exp(complex(0, -v[0]/2))
	ep := cmplx.Exp(complex(0, v[0]/2))
	j := squaremat.New([]complex128{
		-i / 2 * em, 0, 0, 0,
		0, i / 2 * ep, 0, 0,
		0, 0, i / 2 * ep, 0,
		0, 0, 0, -i / 2 * em,
	}, 4)
	return g.Mat(v, consts), []*squaremat.Matrix{j}
}
