package circuits

import (
	"errors"
	"fmt"

	"github.com/gitrdm/qsearch/pkg/squaremat"
	"github.com/gitrdm/qsearch/pkg/unitaries"
)

// ErrUnsupportedGate reports an external gate description with no matching
// variant and a non-zero parameter count. The caller can remap and retry;
// the search engine is not aborted.
var ErrUnsupportedGate = errors.New("circuits: unsupported gate")

// Description is an externally supplied gate description. Kind names a
// known variant; unknown kinds are accepted only when parameter-free and
// accompanied by their matrix.
type Description struct {
	Kind   string
	Qudits int
	Params int
	Matrix *squaremat.Matrix
}

// FromDescription converts a Description into a Gate, appending any
// constant operand it needs to the table. Externally supplied
// parameter-free matrices are transposed once here to adapt the supplier's
// layout convention.
func FromDescription(d Description, consts *[]*squaremat.Matrix) (Gate, error) {
	switch d.Kind {
	case "CNOT":
		index := len(*consts)
		*consts = append(*consts, unitaries.CNOT())
		return NewCNOT(index), nil
	case "Identity":
		index := len(*consts)
		n := 1
		for i := 0; i < d.Qudits; i++ {
			n *= 2
		}
		*consts = append(*consts, squaremat.Eye(n))
		id := NewIdentity(index)
		id.dits = d.Qudits
		return id, nil
	case "U3":
		return NewU3(), nil
	case "U2":
		return NewU2(), nil
	case "U1":
		return NewU1(), nil
	case "X":
		return NewX(), nil
	case "Y":
		return NewY(), nil
	case "Z":
		return NewZ(), nil
	case "RXX":
		return NewRXX(), nil
	case "RYY":
		return NewRYY(), nil
	case "RZZ":
		return NewRZZ(), nil
	case "XZXZ":
		index := len(*consts)
		*consts = append(*consts, unitaries.SqrtX().T())
		return NewXZXZ(index), nil
	case "ZXZXZ":
		index := len(*consts)
		*consts = append(*consts, unitaries.SqrtX().T())
		return NewZXZXZ(index), nil
	case "SingleQutrit":
		return NewSingleQutrit(), nil
	default:
		if d.Params == 0 && d.Matrix != nil {
			index := len(*consts)
			*consts = append(*consts, d.Matrix.T())
			return NewConstantUnitary(index, d.Qudits), nil
		}
		return nil, fmt.Errorf("%w: %q with %d parameters", ErrUnsupportedGate, d.Kind, d.Params)
	}
}
