package air

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-air/internal/vybium-stark-air/utils"
)

// AssertionKind identifies the shape of an assertion
type AssertionKind int

const (
	// AssertionSingle asserts the value of one trace cell
	AssertionSingle AssertionKind = iota

	// AssertionPeriodic asserts the same value at regular intervals in one
	// register
	AssertionPeriodic

	// AssertionSequence asserts a sequence of values at regular intervals
	// in one register
	AssertionSequence
)

// Assertion is a declarative claim that specific cells of a valid execution
// trace must contain specific values. Assertions are the sole bridge
// between public inputs and the trace: they are collected once per
// computation instance and lowered into boundary constraint groups.
//
// Assertions form a closed set of three shapes (single, periodic,
// sequence) and are immutable once created.
type Assertion struct {
	kind      AssertionKind
	register  int
	firstStep int
	stride    int
	values    []field.Element
}

// NewSingleAssertion creates an assertion that the given register holds the
// given value at one specific step
func NewSingleAssertion(register, step int, value field.Element) Assertion {
	return Assertion{
		kind:      AssertionSingle,
		register:  register,
		firstStep: step,
		values:    []field.Element{value},
	}
}

// NewPeriodicAssertion creates an assertion that the given register holds
// the given value at steps firstStep, firstStep+stride, firstStep+2*stride
// and so on
func NewPeriodicAssertion(register, firstStep, stride int, value field.Element) Assertion {
	return Assertion{
		kind:      AssertionPeriodic,
		register:  register,
		firstStep: firstStep,
		stride:    stride,
		values:    []field.Element{value},
	}
}

// NewSequenceAssertion creates an assertion that the given register holds
// values[i] at step firstStep + i*stride; the number of values must equal
// trace_length / stride
func NewSequenceAssertion(register, firstStep, stride int, values []field.Element) Assertion {
	a := Assertion{
		kind:      AssertionSequence,
		register:  register,
		firstStep: firstStep,
		stride:    stride,
		values:    make([]field.Element, len(values)),
	}
	copy(a.values, values)
	return a
}

// Kind returns the shape of the assertion
func (a Assertion) Kind() AssertionKind {
	return a.kind
}

// Register returns the index of the asserted register
func (a Assertion) Register() int {
	return a.register
}

// FirstStep returns the first asserted step
func (a Assertion) FirstStep() int {
	return a.firstStep
}

// Stride returns the interval between asserted steps; it is zero for single
// assertions
func (a Assertion) Stride() int {
	return a.stride
}

// Values returns the asserted values, one per asserted step for sequence
// assertions and exactly one otherwise
func (a Assertion) Values() []field.Element {
	values := make([]field.Element, len(a.values))
	copy(values, a.values)
	return values
}

// String returns a human-readable description of the assertion
func (a Assertion) String() string {
	switch a.kind {
	case AssertionSingle:
		return fmt.Sprintf("trace[%d, %d] == %v", a.register, a.firstStep, a.values[0])
	case AssertionPeriodic:
		return fmt.Sprintf("trace[%d, %d::%d] == %v", a.register, a.firstStep, a.stride, a.values[0])
	default:
		return fmt.Sprintf("trace[%d, %d::%d] == %v ...", a.register, a.firstStep, a.stride, a.values[0])
	}
}

// validate checks the assertion against the trace bounds of the given
// context
func (a Assertion) validate(ctx *AirContext) error {
	if a.register < 0 || a.register >= ctx.TraceWidth() {
		return newError(ErrInvalidAssertion,
			"assertion register %d is outside trace width %d", a.register, ctx.TraceWidth())
	}

	traceLength := ctx.TraceLength()
	switch a.kind {
	case AssertionSingle:
		if a.firstStep < 0 || a.firstStep >= traceLength {
			return newError(ErrInvalidAssertion,
				"assertion step %d is outside trace length %d", a.firstStep, traceLength)
		}

	case AssertionPeriodic, AssertionSequence:
		if a.stride < 1 || a.stride > traceLength ||
			!utils.IsPowerOfTwo(a.stride) || traceLength%a.stride != 0 {
			return newError(ErrInvalidAssertion,
				"assertion stride %d must be a power of 2 dividing trace length %d", a.stride, traceLength)
		}
		if a.firstStep < 0 || a.firstStep >= a.stride {
			return newError(ErrInvalidAssertion,
				"assertion first step %d must be smaller than stride %d", a.firstStep, a.stride)
		}
		if a.kind == AssertionSequence && len(a.values) != traceLength/a.stride {
			return newError(ErrInvalidAssertion,
				"sequence assertion must provide %d values for stride %d, got %d",
				traceLength/a.stride, a.stride, len(a.values))
		}
	}

	return nil
}

// steps returns the expanded list of asserted steps for a trace of the
// given length
func (a Assertion) steps(traceLength int) []int {
	if a.kind == AssertionSingle {
		return []int{a.firstStep}
	}

	steps := make([]int, 0, traceLength/a.stride)
	for step := a.firstStep; step < traceLength; step += a.stride {
		steps = append(steps, step)
	}
	return steps
}

// valueAt returns the asserted value for the i-th asserted step
func (a Assertion) valueAt(i int) field.Element {
	if a.kind == AssertionSequence {
		return a.values[i]
	}
	return a.values[0]
}

// equals reports whether two assertions are structurally identical
func (a Assertion) equals(other Assertion) bool {
	if a.kind != other.kind || a.register != other.register ||
		a.firstStep != other.firstStep || a.stride != other.stride ||
		len(a.values) != len(other.values) {
		return false
	}
	for i := range a.values {
		if !a.values[i].Equal(other.values[i]) {
			return false
		}
	}
	return true
}
