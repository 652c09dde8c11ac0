package circuits

import (
	"github.com/gitrdm/qsearch/pkg/squaremat"
)

// Kronecker is the tensor product of its children. Its qudit and
// parameter counts are the sums of the children's; the parameter vector
// is sliced across children in order.
type Kronecker struct {
	gateData
	Substeps []Gate
}

// NewKronecker builds a tensor-product gate over the given children.
func NewKronecker(substeps ...Gate) Kronecker {
	d := gateData{}
	for _, g := range substeps {
		d.dits += g.Dits()
		d.inputs += g.Inputs()
	}
	return Kronecker{gateData: d, Substeps: substeps}
}

func (g Kronecker) Mat(v []float64, consts []*squaremat.Matrix) *squaremat.Matrix {
	if len(g.Substeps) < 2 {
		return g.Substeps[0].Mat(v, consts)
	}
	index := 0
	var u *squaremat.Matrix
	for _, step := range g.Substeps {
		m := step.Mat(v[index:index+step.Inputs()], consts)
		index += step.Inputs()
		if u == nil {
			u = m
		} else {
			u = u.Kron(m)
		}
	}
	return u
}

func (g Kronecker) MatJac(v []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix) {
	if len(g.Substeps) < 2 {
		return g.Substeps[0].MatJac(v, consts)
	}
	// The partial for a parameter in child i is
	// (⊗_{k<i} M_k) ⊗ J ⊗ (⊗_{k>i} M_k). The left prefix accumulates in
	// u; already-emitted partials pick up each later child by one kron.
	var u *squaremat.Matrix
	jacs := make([]*squaremat.Matrix, 0, g.inputs)
	index := 0
	for _, step := range g.Substeps {
		m, js := step.MatJac(v[index:index+step.Inputs()], consts)
		index += step.Inputs()
		for k, jac := range jacs {
			jacs[k] = jac.Kron(m)
		}
		for _, j := range js {
			if u == nil {
				jacs = append(jacs, j)
			} else {
				jacs = append(jacs, u.Kron(j))
			}
		}
		if u == nil {
			u = m
		} else {
			u = u.Kron(m)
		}
	}
	return u, jacs
}

// Product is the matrix product of its children in reverse traversal
// order: Product(A, B).Mat equals B·A, so the first listed child is the
// first applied to the state. The search engine grows circuits by
// appending layers, which keeps this convention left to right.
type Product struct {
	gateData
	Substeps []Gate
}

// NewProduct builds a product gate over the given children. The qudit
// count is the first child's.
func NewProduct(substeps ...Gate) Product {
	d := gateData{dits: substeps[0].Dits()}
	for _, g := range substeps {
		d.inputs += g.Inputs()
	}
	return Product{gateData: d, Substeps: substeps}
}

// Append returns a new Product with gate as its last step. The receiver
// is not modified; search nodes share unexpanded prefixes.
func (g Product) Append(gate Gate) Product {
	steps := make([]Gate, len(g.Substeps), len(g.Substeps)+1)
	copy(steps, g.Substeps)
	steps = append(steps, gate)
	return Product{
		gateData: gateData{dits: g.dits, inputs: g.inputs + gate.Inputs()},
		Substeps: steps,
	}
}

func (g Product) Mat(v []float64, consts []*squaremat.Matrix) *squaremat.Matrix {
	if len(g.Substeps) < 2 {
		return g.Substeps[0].Mat(v, consts)
	}
	index := 0
	var u *squaremat.Matrix
	for _, step := range g.Substeps {
		m := step.Mat(v[index:index+step.Inputs()], consts)
		index += step.Inputs()
		if u == nil {
			u = m
		} else {
			u = m.Mul(u)
		}
	}
	return u
}

func (g Product) MatJac(v []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix) {
	if len(g.Substeps) < 2 {
		return g.Substeps[0].MatJac(v, consts)
	}
	index := 0
	submats := make([]*squaremat.Matrix, 0, len(g.Substeps))
	subjacs := make([][]*squaremat.Matrix, 0, len(g.Substeps))
	for _, step := range g.Substeps {
		m, js := step.MatJac(v[index:index+step.Inputs()], consts)
		index += step.Inputs()
		submats = append(submats, m)
		subjacs = append(subjacs, js)
	}

	// The partial for a parameter in child i is
	// (M_{n-1}·…·M_{i+1}) · J · (M_{i-1}·…·M_0). B accumulates the right
	// factor one matmul per child; the left factor A starts as the full
	// product and sheds M_i by multiplying its conjugate transpose
	// (children are unitary), again one matmul per child.
	a := submats[0]
	for _, m := range submats[1:] {
		a = m.Mul(a)
	}
	b := squaremat.Eye(submats[0].Size())
	jacs := make([]*squaremat.Matrix, 0, g.inputs)
	for i, js := range subjacs {
		a = a.Mul(submats[i].H())
		for _, j := range js {
			jacs = append(jacs, a.Mul(j.Mul(b)))
		}
		b = submats[i].Mul(b)
	}
	return b, jacs
}
