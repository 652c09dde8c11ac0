package circuits

import (
	"math/rand"
	"testing"

	"github.com/gitrdm/qsearch/pkg/squaremat"
	"github.com/gitrdm/qsearch/pkg/unitaries"
)

// TestKroneckerFactorization verifies Kronecker([G1, G2]).Mat(θ1||θ2)
// equals kron(G1.Mat(θ1), G2.Mat(θ2)) exactly.
func TestKroneckerFactorization(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	g1 := NewU3()
	g2 := NewU2()
	v := paramVec(rng, 5)
	got := NewKronecker(g1, g2).Mat(v, nil)
	want := g1.Mat(v[:3], nil).Kron(g2.Mat(v[3:], nil))
	if !got.Equal(want) {
		t.Errorf("Kronecker factorization mismatch:\ngot  %v\nwant %v", got, want)
	}
}

// TestProductOrdering verifies Product([A, B]).Mat(θA||θB) equals
// B.Mat(θB)·A.Mat(θA) exactly: the first listed child is applied first to
// the state.
func TestProductOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	a := NewU3()
	b := NewU2()
	v := paramVec(rng, 5)
	got := NewProduct(a, b).Mat(v, nil)
	want := b.Mat(v[3:], nil).Mul(a.Mat(v[:3], nil))
	if !got.Equal(want) {
		t.Errorf("Product ordering mismatch:\ngot  %v\nwant %v", got, want)
	}
}

// TestSingleChildShortCircuit verifies composites with one child delegate
// both paths to the child.
func TestSingleChildShortCircuit(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	v := paramVec(rng, 3)
	child := NewU3()
	for name, g := range map[string]Gate{
		"Kronecker": NewKronecker(child),
		"Product":   NewProduct(child),
	} {
		if !g.Mat(v, nil).Equal(child.Mat(v, nil)) {
			t.Errorf("%s single-child Mat does not delegate", name)
		}
		u, jacs := g.MatJac(v, nil)
		cu, cjacs := child.MatJac(v, nil)
		if !u.Equal(cu) || len(jacs) != len(cjacs) {
			t.Errorf("%s single-child MatJac does not delegate", name)
		}
	}
}

// TestCompositeCounts verifies input and dit accounting across trees.
func TestCompositeCounts(t *testing.T) {
	kron := NewKronecker(NewU3(), NewXZXZ(1), NewSingleQutrit())
	if kron.Inputs() != 3+2+8 {
		t.Errorf("Kronecker inputs = %d, want 13", kron.Inputs())
	}
	if kron.Dits() != 3 {
		t.Errorf("Kronecker dits = %d, want 3", kron.Dits())
	}
	prod := NewProduct(NewKronecker(NewU3(), NewU3()), NewCNOT(0))
	if prod.Inputs() != 6 {
		t.Errorf("Product inputs = %d, want 6", prod.Inputs())
	}
	if prod.Dits() != 2 {
		t.Errorf("Product dits = %d, want 2", prod.Dits())
	}
}

// TestProductAppend verifies Append grows a copy and leaves the receiver
// untouched, the invariant the search frontier relies on.
func TestProductAppend(t *testing.T) {
	base := NewProduct(NewKronecker(NewU3(), NewU3()))
	grown := base.Append(NewCNOT(0))
	if len(base.Substeps) != 1 {
		t.Errorf("Append mutated the receiver: %d substeps", len(base.Substeps))
	}
	if len(grown.Substeps) != 2 {
		t.Errorf("Append result has %d substeps, want 2", len(grown.Substeps))
	}
	if grown.Inputs() != base.Inputs() {
		t.Errorf("appending a parameter-free gate changed inputs: %d vs %d",
			grown.Inputs(), base.Inputs())
	}
	grown2 := base.Append(NewKronecker(NewU3(), NewU3()))
	if grown2.Inputs() != base.Inputs()+6 {
		t.Errorf("Append input accounting wrong: %d", grown2.Inputs())
	}
}

// TestConstantGatesResolveThroughTable verifies index-based resolution
// and that clones of table entries are returned.
func TestConstantGatesResolveThroughTable(t *testing.T) {
	consts := []*squaremat.Matrix{unitaries.CNOT(), squaremat.Eye(2)}
	g := NewCNOT(0)
	m := g.Mat(nil, consts)
	if !m.Equal(unitaries.CNOT()) {
		t.Fatalf("CNOT did not resolve through the table")
	}
	m.Set(0, 0, 9)
	if consts[0].At(0, 0) == 9 {
		t.Errorf("gate returned the table entry itself, not a copy")
	}
	id := NewIdentity(1)
	if !id.Mat(nil, consts).Equal(squaremat.Eye(2)) {
		t.Errorf("Identity did not resolve through the table")
	}
}
