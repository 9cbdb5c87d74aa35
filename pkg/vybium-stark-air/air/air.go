package air

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/polynomial"

	"github.com/vybium/vybium-stark-air/internal/vybium-stark-air/utils"
)

// Air is the contract every computation definition implements. One concrete
// type per computation: its constructor builds the AirContext from the
// trace shape, public inputs and proof options, and the methods below
// expose the context, the transition rules, the assertions and any periodic
// columns to the prover and verifier.
type Air interface {
	// Context returns the computation context built at construction. It is
	// read-only and shared by all workers.
	Context() *AirContext

	// EvaluateTransition evaluates all transition constraints over the
	// given frame and writes one result per constraint into result. For a
	// frame taken from a valid trace every result must be zero; for an
	// invalid row pair at least one result must be non-zero. Only field
	// additions, subtractions and multiplications may be used.
	EvaluateTransition(frame *EvaluationFrame, periodicValues []field.Element, result []field.Element)

	// GetAssertions returns the assertions binding this computation
	// instance to its public inputs. The returned list must not be empty
	// and must be the same for every call.
	GetAssertions() []Assertion

	// GetPeriodicColumnValues returns one cycle of values per periodic
	// column; each cycle length must be a power of two dividing the trace
	// length. Computations without periodic columns return nil.
	GetPeriodicColumnValues() [][]field.Element
}

// PeriodicColumnPolys interpolates every periodic column of the computation
// over the domain of its own cycle. To evaluate a column at an
// out-of-domain point x of the trace domain, evaluate the returned
// polynomial at x^(trace_length / cycle_length).
func PeriodicColumnPolys(a Air) ([]*polynomial.Polynomial, error) {
	columns := a.GetPeriodicColumnValues()
	if len(columns) == 0 {
		return nil, nil
	}

	traceLength := a.Context().TraceLength()
	polys := make([]*polynomial.Polynomial, len(columns))
	for i, column := range columns {
		if err := validatePeriodicColumn(i, column, traceLength); err != nil {
			return nil, err
		}

		generator := field.PrimitiveRootOfUnity(uint64(len(column)))
		points := make([][2]field.Element, len(column))
		x := field.One
		for j, value := range column {
			points[j] = [2]field.Element{x, value}
			x = x.Mul(generator)
		}
		polys[i] = polynomial.Interpolate(points)
	}

	return polys, nil
}

// PeriodicValuesAt returns the value of every periodic column at the given
// trace step, in column order; the result is what EvaluateTransition
// expects as periodicValues on the prover side
func PeriodicValuesAt(a Air, step int) ([]field.Element, error) {
	columns := a.GetPeriodicColumnValues()
	if len(columns) == 0 {
		return nil, nil
	}

	traceLength := a.Context().TraceLength()
	values := make([]field.Element, len(columns))
	for i, column := range columns {
		if err := validatePeriodicColumn(i, column, traceLength); err != nil {
			return nil, err
		}
		values[i] = column[step%len(column)]
	}

	return values, nil
}

func validatePeriodicColumn(index int, column []field.Element, traceLength int) error {
	if len(column) < 2 || !utils.IsPowerOfTwo(len(column)) ||
		len(column) > traceLength || traceLength%len(column) != 0 {
		return newError(ErrInvalidPeriodicColumn,
			"periodic column %d has cycle length %d, which is not a power of 2 dividing trace length %d",
			index, len(column), traceLength)
	}
	return nil
}
