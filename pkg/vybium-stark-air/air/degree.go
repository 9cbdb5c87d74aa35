package air

import (
	"github.com/vybium/vybium-stark-air/internal/vybium-stark-air/utils"
)

// TransitionConstraintDegree describes the algebraic degree of one
// transition constraint.
//
// All trace registers have degree 1, and multiplying registers together
// adds their degrees, so a constraint multiplying two registers has base
// degree 2. When a constraint also multiplies in periodic columns, each
// column contributes slightly less than a full degree: a column with cycle
// length c interpolates to a polynomial of degree n - n/c over a trace of
// length n.
type TransitionConstraintDegree struct {
	base   int
	cycles []int
}

// NewTransitionConstraintDegree creates a degree descriptor for a constraint
// involving only multiplications of trace registers
func NewTransitionConstraintDegree(base int) (TransitionConstraintDegree, error) {
	if base < 1 {
		return TransitionConstraintDegree{}, newError(ErrInvalidConstraintDegree,
			"transition constraint degree must be at least 1, got %d", base)
	}
	return TransitionConstraintDegree{base: base}, nil
}

// NewTransitionConstraintDegreeWithCycles creates a degree descriptor for a
// constraint which multiplies trace registers with periodic columns; cycles
// lists the cycle length of every periodic column involved
func NewTransitionConstraintDegreeWithCycles(base int, cycles []int) (TransitionConstraintDegree, error) {
	if base < 1 {
		return TransitionConstraintDegree{}, newError(ErrInvalidConstraintDegree,
			"transition constraint degree must be at least 1, got %d", base)
	}
	for _, cycle := range cycles {
		if cycle < 2 || !utils.IsPowerOfTwo(cycle) {
			return TransitionConstraintDegree{}, newError(ErrInvalidConstraintDegree,
				"periodic column cycle length must be a power of 2 greater than 1, got %d", cycle)
		}
	}

	d := TransitionConstraintDegree{base: base, cycles: make([]int, len(cycles))}
	copy(d.cycles, cycles)
	return d, nil
}

// Base returns the degree contributed by trace register multiplications
func (d TransitionConstraintDegree) Base() int {
	return d.base
}

// Cycles returns the cycle lengths of the periodic columns multiplied into
// the constraint
func (d TransitionConstraintDegree) Cycles() []int {
	cycles := make([]int, len(d.cycles))
	copy(cycles, d.cycles)
	return cycles
}

// ConstraintDegree returns the scalar degree of the constraint relative to
// degree-1 trace registers; every periodic column counts as one full degree
func (d TransitionConstraintDegree) ConstraintDegree() int {
	return d.base + len(d.cycles)
}

// EvaluationDegree returns the exact degree of the constraint evaluation as
// a polynomial in the trace domain variable, for a trace of the given
// length: base * (n - 1) plus n - n/c for each periodic column
func (d TransitionConstraintDegree) EvaluationDegree(traceLength int) int {
	result := d.base * (traceLength - 1)
	for _, cycle := range d.cycles {
		result += traceLength - traceLength/cycle
	}
	return result
}

// MinBlowupFactor returns the smallest power of two large enough for the
// constraint evaluation domain of this constraint
func (d TransitionConstraintDegree) MinBlowupFactor() int {
	return utils.NextPowerOfTwo(d.ConstraintDegree())
}
