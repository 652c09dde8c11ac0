// Package gatesets defines the gate-set policies that drive the search:
// which parameterized layer a synthesis run starts from, and which
// candidate extension layers the search may append at each depth.
//
// A search layer places one entangler plus a pair of single-qudit
// rotations at one position of the coupling topology, with identities
// everywhere else; its weight is the entangler cost of the layer. The
// compiler's heuristic (10·distance + depth) does not read the weight.
package gatesets

import (
	"github.com/gitrdm/qsearch/pkg/circuits"
	"github.com/gitrdm/qsearch/pkg/squaremat"
	"github.com/gitrdm/qsearch/pkg/unitaries"
)

// Layer is one candidate extension block with its integer cost.
type Layer struct {
	Gate   circuits.Gate
	Weight int
}

// GateSet produces the layers to compile a circuit of a given width with.
type GateSet interface {
	// InitialLayer is the first layer of a compilation, generally a row
	// of parameterized single-qudit gates.
	InitialLayer(dits int) circuits.Gate

	// SearchLayers is the set of candidate extensions, one per coupling
	// position.
	SearchLayers(dits int) []Layer

	// D is the qudit radix: 2 for qubits, 3 for qutrits.
	D() int

	// ConstantGates is the table backing the gates this set builds.
	ConstantGates() []*squaremat.Matrix
}

// fillRow tensors dits copies of step.
func fillRow(step circuits.Gate, dits int) circuits.Gate {
	steps := make([]circuits.Gate, dits)
	for i := range steps {
		steps[i] = step
	}
	return circuits.NewKronecker(steps...)
}

// linearTopology builds one search layer per adjacent pair on a line:
// position i holds Product(double, Kronecker(single, singleAlt)) and
// every other slot an identity.
func linearTopology(double, single, singleAlt, id circuits.Gate, dits, doubleWeight, singleWeight int) []Layer {
	weight := doubleWeight + 2*singleWeight
	layers := make([]Layer, 0, dits-1)
	for i := 0; i < dits-1; i++ {
		slots := make([]circuits.Gate, 0, dits-1)
		for j := 0; j < dits-2; j++ {
			slots = append(slots, id)
		}
		singles := circuits.NewKronecker(single, singleAlt)
		block := circuits.NewProduct(double, singles)
		slots = append(slots[:i], append([]circuits.Gate{block}, slots[i:]...)...)
		layers = append(layers, Layer{Gate: circuits.NewKronecker(slots...), Weight: weight})
	}
	return layers
}

// LinearCNOT is the qubit gate set for a linear coupling topology: CNOT
// entanglers with an (XZXZ, U3) pair of single-qubit gates, U3 rows as
// the initial layer.
type LinearCNOT struct {
	doubleStep    circuits.Gate
	singleStep    circuits.Gate
	singleAltStep circuits.Gate
	id            circuits.Gate
	consts        []*squaremat.Matrix
}

// NewLinearCNOT returns the linear-topology CNOT gate set. Its constant
// table holds the CNOT, the √X used by XZXZ, and the single-qubit
// identity, in that order.
func NewLinearCNOT() *LinearCNOT {
	return &LinearCNOT{
		doubleStep:    circuits.NewCNOT(0),
		singleStep:    circuits.NewU3(),
		singleAltStep: circuits.NewXZXZ(1),
		id:            circuits.NewIdentity(2),
		consts: []*squaremat.Matrix{
			unitaries.CNOT(),
			unitaries.SqrtX(),
			squaremat.Eye(2),
		},
	}
}

func (g *LinearCNOT) InitialLayer(dits int) circuits.Gate {
	return fillRow(g.singleStep, dits)
}

func (g *LinearCNOT) SearchLayers(dits int) []Layer {
	return linearTopology(g.doubleStep, g.singleAltStep, g.singleStep, g.id, dits, 1, 0)
}

func (g *LinearCNOT) D() int { return 2 }

func (g *LinearCNOT) ConstantGates() []*squaremat.Matrix { return g.consts }

// LinearQutrit is the qutrit gate set for a linear topology: CSUM
// entanglers with pairs of general single-qutrit rotations.
type LinearQutrit struct {
	doubleStep circuits.Gate
	singleStep circuits.Gate
	id         circuits.Gate
	consts     []*squaremat.Matrix
}

// NewLinearQutrit returns the linear-topology qutrit gate set. Its
// constant table holds the CSUM entangler and the single-qutrit identity.
func NewLinearQutrit() *LinearQutrit {
	return &LinearQutrit{
		doubleStep: circuits.NewConstantUnitary(0, 2),
		singleStep: circuits.NewSingleQutrit(),
		id:         circuits.NewIdentity(1),
		consts: []*squaremat.Matrix{
			unitaries.CSUM(),
			squaremat.Eye(3),
		},
	}
}

func (g *LinearQutrit) InitialLayer(dits int) circuits.Gate {
	return fillRow(g.singleStep, dits)
}

func (g *LinearQutrit) SearchLayers(dits int) []Layer {
	return linearTopology(g.doubleStep, g.singleStep, g.singleStep, g.id, dits, 1, 0)
}

func (g *LinearQutrit) D() int { return 3 }

func (g *LinearQutrit) ConstantGates() []*squaremat.Matrix { return g.consts }
