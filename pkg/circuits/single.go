package circuits

import (
	"math"
	"math/cmplx"

	"github.com/gitrdm/qsearch/pkg/squaremat"
	"github.com/gitrdm/qsearch/pkg/unitaries"
)

// U1 is the single-qubit phase gate diag(1, e^{iλ}): a Z rotation times a
// global phase.
type U1 struct{ gateData }

// NewU1 returns a one-parameter phase gate.
func NewU1() U1 { return U1{gateData{dits: 1, inputs: 1}} }

func (g U1) Mat(v []float64, _ []*squaremat.Matrix) *squaremat.Matrix {
	return squaremat.New([]complex128{
		1, 0,
		0, cmplx.Exp(complex(0, v[0])),
	}, 2)
}

func (g U1) MatJac(v []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix) {
	e := cmplx.Exp(complex(0, v[0]))
	u := squaremat.New([]complex128{
		1, 0,
		0, e,
	}, 2)
	j := squaremat.New([]complex128{
		0, 0,
		0, complex(0, 1) * e,
	}, 2)
	return u, []*squaremat.Matrix{j}
}

// U2 is the single-qubit gate (1/√2)[[1, −e^{iλ}],[e^{iφ}, e^{i(φ+λ)}]]
// with parameters (φ, λ).
type U2 struct{ gateData }

// NewU2 returns a two-parameter U2 gate.
func NewU2() U2 { return U2{gateData{dits: 1, inputs: 2}} }

func (g U2) Mat(v []float64, _ []*squaremat.Matrix) *squaremat.Matrix {
	s := complex(1/math.Sqrt2, 0)
	ephi := cmplx.Exp(complex(0, v[0]))
	elam := cmplx.Exp(complex(0, v[1]))
	return squaremat.New([]complex128{
		s, -s * elam,
		s * ephi, s * ephi * elam,
	}, 2)
}

func (g U2) MatJac(v []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix) {
	s := complex(1/math.Sqrt2, 0)
	i := complex(0, 1)
	ephi := cmplx.Exp(complex(0, v[0]))
	elam := cmplx.Exp(complex(0, v[1]))
	u := squaremat.New([]complex128{
		s, -s * elam,
		s * ephi, s * ephi * elam,
	}, 2)
	jphi := squaremat.New([]complex128{
		0, 0,
		i * s * ephi, i * s * ephi * elam,
	}, 2)
	jlam := squaremat.New([]complex128{
		0, -i * s * elam,
		0, i * s * ephi * elam,
	}, 2)
	return u, []*squaremat.Matrix{jphi, jlam}
}

// U3 is the general single-qubit gate with parameters (θ, φ, λ).
type U3 struct{ gateData }

// NewU3 returns a three-parameter single-qubit gate.
func NewU3() U3 { return U3{gateData{dits: 1, inputs: 3}} }

func u3Parts(v []float64) (ct, st, ephi, elam complex128) {
	ct = complex(math.Cos(v[0]/2), 0)
	st = complex(math.Sin(v[0]/2), 0)
	ephi = cmplx.Exp(complex(0, v[1]))
	elam = cmplx.Exp(complex(0, v[2]))
	return
}

func (g U3) Mat(v []float64, _ []*squaremat.Matrix) *squaremat.Matrix {
	ct, st, ephi, elam := u3Parts(v)
	return squaremat.New([]complex128{
		ct, -elam * st,
		ephi * st, ephi * elam * ct,
	}, 2)
}

func (g U3) MatJac(v []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix) {
	ct, st, ephi, elam := u3Parts(v)
	i := complex(0, 1)
	u := squaremat.New([]complex128{
		ct, -elam * st,
		ephi * st, ephi * elam * ct,
	}, 2)
	jtheta := squaremat.New([]complex128{
		-st / 2, -elam * ct / 2,
		ephi * ct / 2, -ephi * elam * st / 2,
	}, 2)
	jphi := squaremat.New([]complex128{
		0, 0,
		i * ephi * st, i * ephi * elam * ct,
	}, 2)
	jlam := squaremat.New([]complex128{
		0, -i * elam * st,
		0, i * ephi * elam * ct,
	}, 2)
	return u, []*squaremat.Matrix{jtheta, jphi, jlam}
}

// X is the single-qubit rotation exp(-iθX/2).
type X struct{ gateData }

// NewX returns a one-parameter X rotation.
func NewX() X { return X{gateData{dits: 1, inputs: 1}} }

func (g X) Mat(v []float64, _ []*squaremat.Matrix) *squaremat.Matrix {
	return unitaries.RotX(v[0])
}

func (g X) MatJac(v []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix) {
	ct := math.Cos(v[0] / 2)
	st := math.Sin(v[0] / 2)
	j := squaremat.New([]complex128{
		complex(-st/2, 0), complex(0, -ct/2),
		complex(0, -ct/2), complex(-st/2, 0),
	}, 2)
	return unitaries.RotX(v[0]), []*squaremat.Matrix{j}
}

// Y is the single-qubit rotation exp(-iθY/2).
type Y struct{ gateData }

// NewY returns a one-parameter Y rotation.
func NewY() Y { return Y{gateData{dits: 1, inputs: 1}} }

func (g Y) Mat(v []float64, _ []*squaremat.Matrix) *squaremat.Matrix {
	return unitaries.RotY(v[0])
}

func (g Y) MatJac(v []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix) {
	ct := math.Cos(v[0] / 2)
	st := math.Sin(v[0] / 2)
	j := squaremat.New([]complex128{
		complex(-st/2, 0), complex(-ct/2, 0),
		complex(ct/2, 0), complex(-st/2, 0),
	}, 2)
	return unitaries.RotY(v[0]), []*squaremat.Matrix{j}
}

// Z is the single-qubit rotation exp(-iθZ/2).
type Z struct{ gateData }

// NewZ returns a one-parameter Z rotation.
func NewZ() Z { return Z{gateData{dits: 1, inputs: 1}} }

func (g Z) Mat(v []float64, _ []*squaremat.Matrix) *squaremat.Matrix {
	return unitaries.RotZ(v[0])
}

func (g Z) MatJac(v []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix) {
	return unitaries.RotZ(v[0]), []*squaremat.Matrix{unitaries.RotZJac(v[0], 1)}
}

// XZXZ is the product Rz(θ₁−π)·√X·Rz(θ₀+π)·√X, with the parameter-free √X
// stored in the constant-gate table.
type XZXZ struct {
	gateData
	X90Index int
}

// NewXZXZ returns a two-parameter XZXZ gate whose √X operand resolves to
// consts[x90Index].
func NewXZXZ(x90Index int) XZXZ {
	return XZXZ{gateData: gateData{dits: 1, inputs: 2}, X90Index: x90Index}
}

func (g XZXZ) Mat(v []float64, consts []*squaremat.Matrix) *squaremat.Matrix {
	x90 := consts[g.X90Index]
	inner := x90.Mul(unitaries.RotZ(v[0] + math.Pi).Mul(x90))
	return unitaries.RotZ(v[1] - math.Pi).Mul(inner)
}

func (g XZXZ) MatJac(v []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix) {
	x90 := consts[g.X90Index]
	innerJac := x90.Mul(unitaries.RotZJac(v[0]+math.Pi, 1).Mul(x90))
	j0 := unitaries.RotZ(v[1] - math.Pi).Mul(innerJac)

	inner := x90.Mul(unitaries.RotZ(v[0] + math.Pi).Mul(x90))
	j1 := unitaries.RotZJac(v[1]-math.Pi, 1).Mul(inner)

	u := unitaries.RotZ(v[1] - math.Pi).Mul(inner)
	return u, []*squaremat.Matrix{j0, j1}
}

// ZXZXZ is the product Rz(θ₂−π)·√X·Rz(θ₁+π)·√X·Rz(θ₀), the three-rotation
// decomposition of an arbitrary single-qubit unitary over √X.
type ZXZXZ struct {
	gateData
	X90Index int
}

// NewZXZXZ returns a three-parameter ZXZXZ gate whose √X operand resolves
// to consts[x90Index].
func NewZXZXZ(x90Index int) ZXZXZ {
	return ZXZXZ{gateData: gateData{dits: 1, inputs: 3}, X90Index: x90Index}
}

func (g ZXZXZ) Mat(v []float64, consts []*squaremat.Matrix) *squaremat.Matrix {
	x90 := consts[g.X90Index]
	m := x90.Mul(unitaries.RotZ(v[0]))
	m = unitaries.RotZ(v[1] + math.Pi).Mul(m)
	m = x90.Mul(m)
	return unitaries.RotZ(v[2] - math.Pi).Mul(m)
}

func (g ZXZXZ) MatJac(v []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix) {
	x90 := consts[g.X90Index]
	// right and mid are the partial products √X·Rz(θ₀) and
	// √X·Rz(θ₁+π)·√X·Rz(θ₀) shared between the matrix and the partials.
	right := x90.Mul(unitaries.RotZ(v[0]))
	mid := x90.Mul(unitaries.RotZ(v[1] + math.Pi).Mul(right))

	j0 := unitaries.RotZ(v[2] - math.Pi).Mul(x90.Mul(unitaries.RotZ(v[1] + math.Pi).Mul(x90.Mul(unitaries.RotZJac(v[0], 1)))))
	j1 := unitaries.RotZ(v[2] - math.Pi).Mul(x90.Mul(unitaries.RotZJac(v[1]+math.Pi, 1).Mul(right)))
	j2 := unitaries.RotZJac(v[2]-math.Pi, 1).Mul(mid)

	u := unitaries.RotZ(v[2] - math.Pi).Mul(mid)
	return u, []*squaremat.Matrix{j0, j1, j2}
}
