// Package circuits implements the parameterized gate algebra used by the
// synthesis engine. A circuit is a tree of Gate nodes; every node can
// produce its unitary matrix for a given real parameter vector, and the
// exact partial derivative of that matrix with respect to each parameter.
//
// Gate nodes are immutable and cheap to clone. Parameter-free operands
// (identities, CNOT, √X, imported unitaries) are not embedded in the
// nodes; they live once in a constant-gate table shared by the whole tree,
// and nodes reference entries by index. Search-time expansion clones gate
// trees constantly, so the nodes must stay integer-sized.
//
// All gate parameters are angles in radians. No internal rescaling is
// applied.
package circuits

import (
	"github.com/gitrdm/qsearch/pkg/squaremat"
)

// Gate is a node of a parameterized circuit.
//
// Mat returns the unitary for parameter slice v, resolving parameter-free
// operands through the constant-gate table consts. MatJac additionally
// returns the partial derivative of the matrix with respect to each
// parameter, in parameter order; parameter-free gates return an empty
// Jacobian list. Inputs is the number of real parameters the gate
// consumes, and Dits the number of qudits it acts on.
type Gate interface {
	Mat(v []float64, consts []*squaremat.Matrix) *squaremat.Matrix
	MatJac(v []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix)
	Inputs() int
	Dits() int
}

// gateData carries the shape every variant shares.
type gateData struct {
	dits   int
	inputs int
}

func (d gateData) Inputs() int { return d.inputs }
func (d gateData) Dits() int   { return d.dits }

// Identity is a constant identity stored in the constant-gate table.
type Identity struct {
	gateData
	Index int
}

// NewIdentity returns an identity gate resolving to consts[index].
func NewIdentity(index int) Identity {
	return Identity{gateData: gateData{dits: 1, inputs: 0}, Index: index}
}

func (g Identity) Mat(_ []float64, consts []*squaremat.Matrix) *squaremat.Matrix {
	return consts[g.Index].Clone()
}

func (g Identity) MatJac(_ []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix) {
	return consts[g.Index].Clone(), nil
}

// ConstantUnitary is any fixed unitary stored in the constant-gate table.
type ConstantUnitary struct {
	gateData
	Index int
}

// NewConstantUnitary returns a parameter-free gate over dits qudits
// resolving to consts[index].
func NewConstantUnitary(index, dits int) ConstantUnitary {
	return ConstantUnitary{gateData: gateData{dits: dits, inputs: 0}, Index: index}
}

func (g ConstantUnitary) Mat(_ []float64, consts []*squaremat.Matrix) *squaremat.Matrix {
	return consts[g.Index].Clone()
}

func (g ConstantUnitary) MatJac(_ []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix) {
	return consts[g.Index].Clone(), nil
}

// CNOT is the two-qubit controlled-NOT, stored in the constant-gate table.
type CNOT struct {
	gateData
	Index int
}

// NewCNOT returns a CNOT gate resolving to consts[index].
func NewCNOT(index int) CNOT {
	return CNOT{gateData: gateData{dits: 2, inputs: 0}, Index: index}
}

func (g CNOT) Mat(_ []float64, consts []*squaremat.Matrix) *squaremat.Matrix {
	return consts[g.Index].Clone()
}

func (g CNOT) MatJac(_ []float64, consts []*squaremat.Matrix) (*squaremat.Matrix, []*squaremat.Matrix) {
	return consts[g.Index].Clone(), nil
}
