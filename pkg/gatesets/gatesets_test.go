package gatesets

import (
	"math/cmplx"
	"testing"

	"github.com/gitrdm/qsearch/pkg/squaremat"
)

// TestLinearCNOTInitialLayer verifies the initial layer is a U3 row: one
// single-qubit gate per qubit, three parameters each.
func TestLinearCNOTInitialLayer(t *testing.T) {
	gs := NewLinearCNOT()
	for _, n := range []int{1, 2, 3, 4} {
		layer := gs.InitialLayer(n)
		if layer.Dits() != n {
			t.Errorf("initial layer dits = %d, want %d", layer.Dits(), n)
		}
		if layer.Inputs() != 3*n {
			t.Errorf("initial layer inputs = %d, want %d", layer.Inputs(), 3*n)
		}
		m := layer.Mat(make([]float64, layer.Inputs()), gs.ConstantGates())
		size := 1 << n
		if m.Size() != size {
			t.Errorf("initial layer size = %d, want %d", m.Size(), size)
		}
		// U3 at zero parameters is the identity, so the whole row is.
		if !m.Equal(squaremat.Eye(size)) {
			t.Errorf("initial layer at zero parameters is not the identity")
		}
	}
}

// TestLinearCNOTSearchLayers verifies one layer per coupling position
// with entangler weight 1 and the (XZXZ, U3) parameter count.
func TestLinearCNOTSearchLayers(t *testing.T) {
	gs := NewLinearCNOT()
	for _, n := range []int{2, 3, 4} {
		layers := gs.SearchLayers(n)
		if len(layers) != n-1 {
			t.Fatalf("%d qubits: %d search layers, want %d", n, len(layers), n-1)
		}
		for i, l := range layers {
			if l.Weight != 1 {
				t.Errorf("layer %d weight = %d, want 1", i, l.Weight)
			}
			if l.Gate.Dits() != n {
				t.Errorf("layer %d dits = %d, want %d", i, l.Gate.Dits(), n)
			}
			// One CNOT block: XZXZ (2) + U3 (3).
			if l.Gate.Inputs() != 5 {
				t.Errorf("layer %d inputs = %d, want 5", i, l.Gate.Inputs())
			}
			m := l.Gate.Mat(make([]float64, l.Gate.Inputs()), gs.ConstantGates())
			if m.Size() != 1<<n {
				t.Errorf("layer %d matrix size = %d, want %d", i, m.Size(), 1<<n)
			}
		}
	}
}

// TestLinearCNOTLayersAreUnitary evaluates each search layer at nonzero
// parameters and checks unitarity.
func TestLinearCNOTLayersAreUnitary(t *testing.T) {
	gs := NewLinearCNOT()
	layers := gs.SearchLayers(3)
	params := []float64{0.3, -1.2, 0.8, 2.1, -0.5}
	for i, l := range layers {
		m := l.Gate.Mat(params, gs.ConstantGates())
		prod := m.Mul(m.H())
		for r := 0; r < m.Size(); r++ {
			for c := 0; c < m.Size(); c++ {
				want := complex128(0)
				if r == c {
					want = 1
				}
				if cmplx.Abs(prod.At(r, c)-want) > 1e-12 {
					t.Fatalf("layer %d is not unitary", i)
				}
			}
		}
	}
}

// TestLinearCNOTConstantTable verifies the table layout the gate indices
// rely on: CNOT, √X, single-qubit identity.
func TestLinearCNOTConstantTable(t *testing.T) {
	gs := NewLinearCNOT()
	consts := gs.ConstantGates()
	if len(consts) != 3 {
		t.Fatalf("constant table has %d entries, want 3", len(consts))
	}
	if consts[0].Size() != 4 || consts[1].Size() != 2 || consts[2].Size() != 2 {
		t.Errorf("constant table sizes wrong")
	}
	if !consts[2].Equal(squaremat.Eye(2)) {
		t.Errorf("constant table entry 2 is not the identity")
	}
	if gs.D() != 2 {
		t.Errorf("D() = %d, want 2", gs.D())
	}
}

// TestLinearQutrit verifies the qutrit set's radix, layer shapes and
// parameter counts.
func TestLinearQutrit(t *testing.T) {
	gs := NewLinearQutrit()
	if gs.D() != 3 {
		t.Fatalf("D() = %d, want 3", gs.D())
	}
	layer := gs.InitialLayer(2)
	if layer.Inputs() != 16 {
		t.Errorf("qutrit initial layer inputs = %d, want 16", layer.Inputs())
	}
	m := layer.Mat(make([]float64, layer.Inputs()), gs.ConstantGates())
	if m.Size() != 9 {
		t.Errorf("qutrit initial layer size = %d, want 9", m.Size())
	}
	search := gs.SearchLayers(3)
	if len(search) != 2 {
		t.Fatalf("qutrit search layers = %d, want 2", len(search))
	}
	for i, l := range search {
		if l.Gate.Inputs() != 16 {
			t.Errorf("qutrit layer %d inputs = %d, want 16", i, l.Gate.Inputs())
		}
		mm := l.Gate.Mat(make([]float64, l.Gate.Inputs()), gs.ConstantGates())
		if mm.Size() != 27 {
			t.Errorf("qutrit layer %d size = %d, want 27", i, mm.Size())
		}
	}
}
