package air

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// DivisorKind identifies the class of constraint a divisor belongs to
type DivisorKind int

const (
	// DivisorTransition is the divisor shared by all transition constraints
	DivisorTransition DivisorKind = iota

	// DivisorBoundary is a divisor vanishing exactly at a set of assertion
	// points
	DivisorBoundary
)

// ConstraintDivisor is the algebraic denominator a constraint evaluation
// must vanish against.
//
// The transition divisor vanishes at every trace step except the last one:
// (X^n - 1) / (X - g^{n-1}), where g generates the trace domain and n is
// the trace length. The final step is excluded because there is no next row
// to validate a transition against.
//
// A boundary divisor for assertion points sharing a (firstStep, stride)
// pattern vanishes exactly at those points. The product over the coset
// collapses to the sparse form X^{n/stride} - g^{firstStep * n/stride},
// which is what EvaluateAt computes.
//
// Divisors are compared structurally, so two independently constructed
// divisors with the same vanishing set share one constraint group.
type ConstraintDivisor struct {
	kind        DivisorKind
	traceLength int
	firstStep   int
	stride      int
	generator   field.Element
}

// divisorKey is the structural identity of a divisor, used for grouping
type divisorKey struct {
	kind      DivisorKind
	firstStep int
	stride    int
}

// NewTransitionDivisor creates the divisor shared by all transition
// constraints of the computation
func NewTransitionDivisor(ctx *AirContext) ConstraintDivisor {
	return ConstraintDivisor{
		kind:        DivisorTransition,
		traceLength: ctx.TraceLength(),
		generator:   ctx.TraceDomainGenerator(),
	}
}

// NewBoundaryDivisor creates a divisor vanishing at steps firstStep,
// firstStep+stride, firstStep+2*stride and so on; a stride equal to the
// trace length degenerates to a single vanishing point of degree 1
func NewBoundaryDivisor(ctx *AirContext, firstStep, stride int) ConstraintDivisor {
	return ConstraintDivisor{
		kind:        DivisorBoundary,
		traceLength: ctx.TraceLength(),
		firstStep:   firstStep,
		stride:      stride,
		generator:   ctx.TraceDomainGenerator(),
	}
}

// Kind returns the class of the divisor
func (d ConstraintDivisor) Kind() DivisorKind {
	return d.kind
}

// Degree returns the degree of the divisor polynomial
func (d ConstraintDivisor) Degree() int {
	if d.kind == DivisorTransition {
		return d.traceLength - 1
	}
	return d.traceLength / d.stride
}

// ExclusionPoints returns the trace positions at which the divisor does not
// vanish even though its numerator does
func (d ConstraintDivisor) ExclusionPoints() []field.Element {
	if d.kind == DivisorTransition {
		return []field.Element{pow(d.generator, uint64(d.traceLength-1))}
	}
	return nil
}

// EvaluateAt computes the divisor at the given point. The point must not be
// an exclusion point; callers only ever evaluate divisors over extended or
// out-of-domain points, where neither numerator nor exclusion terms vanish.
func (d ConstraintDivisor) EvaluateAt(x field.Element) field.Element {
	if d.kind == DivisorTransition {
		numerator := pow(x, uint64(d.traceLength)).Sub(field.One)
		lastStep := pow(d.generator, uint64(d.traceLength-1))
		return numerator.Mul(x.Sub(lastStep).Inverse())
	}

	numSteps := uint64(d.traceLength / d.stride)
	offset := pow(d.generator, uint64(d.firstStep)*numSteps%uint64(d.traceLength))
	return pow(x, numSteps).Sub(offset)
}

// key returns the structural identity used to group constraints by divisor
func (d ConstraintDivisor) key() divisorKey {
	return divisorKey{kind: d.kind, firstStep: d.firstStep, stride: d.stride}
}

// Equal reports whether two divisors have the same vanishing set
func (d ConstraintDivisor) Equal(other ConstraintDivisor) bool {
	return d.traceLength == other.traceLength && d.key() == other.key()
}

// String returns a human-readable description of the divisor
func (d ConstraintDivisor) String() string {
	if d.kind == DivisorTransition {
		return fmt.Sprintf("(X^%d - 1) / (X - g^%d)", d.traceLength, d.traceLength-1)
	}
	numSteps := d.traceLength / d.stride
	return fmt.Sprintf("X^%d - g^%d", numSteps, d.firstStep*numSteps%d.traceLength)
}

// pow computes base^exp by square and multiply
func pow(base field.Element, exp uint64) field.Element {
	result := field.One
	for b := base; exp > 0; exp >>= 1 {
		if exp&1 == 1 {
			result = result.Mul(b)
		}
		b = b.Mul(b)
	}
	return result
}
