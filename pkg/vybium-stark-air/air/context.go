package air

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-air/internal/vybium-stark-air/utils"
)

// AirContext aggregates the trace shape, the transition constraint degrees,
// the proof options and the assertion count of one computation, and derives
// every domain and degree quantity the prover and verifier need downstream.
//
// The context is immutable after construction; all other components of this
// package borrow it read-only, which is what makes per-step transition
// evaluation safe to run concurrently.
type AirContext struct {
	traceInfo     TraceInfo
	options       ProofOptions
	degrees       []TransitionConstraintDegree
	numAssertions int

	// Derived at construction
	maxConstraintDegree int
	ceBlowupFactor      int
	generator           field.Element
}

// NewAirContext creates the computation context for a trace of the given
// shape, the given transition constraint degrees and proof options, and the
// number of assertions the computation will declare.
//
// Construction fails when the declared constraint degrees require a larger
// evaluation domain than the chosen blowup factor provides, when any
// periodic cycle length does not divide the trace length, or when the
// computation declares no assertions at all.
func NewAirContext(traceInfo TraceInfo, degrees []TransitionConstraintDegree,
	options ProofOptions, numAssertions int,
) (*AirContext, error) {
	if len(degrees) == 0 {
		return nil, newError(ErrInvalidConstraintDegree,
			"at least one transition constraint degree is required")
	}
	if numAssertions <= 0 {
		return nil, newError(ErrNoAssertions,
			"a computation must declare at least one assertion")
	}

	traceLength := traceInfo.Length()
	maxDegree := 0
	for i, degree := range degrees {
		for _, cycle := range degree.Cycles() {
			if cycle > traceLength || traceLength%cycle != 0 {
				return nil, newError(ErrInvalidConstraintDegree,
					"cycle length %d of constraint %d does not divide trace length %d",
					cycle, i, traceLength)
			}
		}
		if d := degree.ConstraintDegree(); d > maxDegree {
			maxDegree = d
		}
	}

	// The constraint evaluation domain must be large enough to hold the
	// highest-degree constraint evaluation
	ceBlowupFactor := utils.NextPowerOfTwo(maxDegree)
	if ceBlowupFactor > options.BlowupFactor() {
		return nil, newError(ErrDegreeOverflow,
			"constraint degree %d requires a blowup factor of at least %d, but proof options specify %d",
			maxDegree, ceBlowupFactor, options.BlowupFactor())
	}

	ctx := &AirContext{
		traceInfo:           traceInfo,
		options:             options,
		degrees:             make([]TransitionConstraintDegree, len(degrees)),
		numAssertions:       numAssertions,
		maxConstraintDegree: maxDegree,
		ceBlowupFactor:      ceBlowupFactor,
		generator:           field.PrimitiveRootOfUnity(uint64(traceLength)),
	}
	copy(ctx.degrees, degrees)

	return ctx, nil
}

// TraceInfo returns the shape of the execution trace
func (ctx *AirContext) TraceInfo() TraceInfo {
	return ctx.traceInfo
}

// TraceLength returns the number of steps in the execution trace
func (ctx *AirContext) TraceLength() int {
	return ctx.traceInfo.Length()
}

// TraceWidth returns the number of registers in the execution trace
func (ctx *AirContext) TraceWidth() int {
	return ctx.traceInfo.Width()
}

// Options returns the proof options for this computation
func (ctx *AirContext) Options() ProofOptions {
	return ctx.options
}

// TransitionConstraintDegrees returns the degree descriptors of all
// transition constraints, in constraint order
func (ctx *AirContext) TransitionConstraintDegrees() []TransitionConstraintDegree {
	degrees := make([]TransitionConstraintDegree, len(ctx.degrees))
	copy(degrees, ctx.degrees)
	return degrees
}

// NumTransitionConstraints returns the number of transition constraints
func (ctx *AirContext) NumTransitionConstraints() int {
	return len(ctx.degrees)
}

// NumAssertions returns the number of assertions declared by the computation
func (ctx *AirContext) NumAssertions() int {
	return ctx.numAssertions
}

// MaxConstraintDegree returns the highest scalar degree among all
// transition constraints
func (ctx *AirContext) MaxConstraintDegree() int {
	return ctx.maxConstraintDegree
}

// TracePolyDegree returns the degree of trace register polynomials
func (ctx *AirContext) TracePolyDegree() int {
	return ctx.traceInfo.Length() - 1
}

// CeBlowupFactor returns the blowup factor of the constraint evaluation
// domain: the smallest power of two at least as large as the maximum
// constraint degree
func (ctx *AirContext) CeBlowupFactor() int {
	return ctx.ceBlowupFactor
}

// CeDomainSize returns the size of the constraint evaluation domain
func (ctx *AirContext) CeDomainSize() int {
	return ctx.traceInfo.Length() * ctx.ceBlowupFactor
}

// CompositionDegree returns the target degree every term of the composition
// polynomial is normalized to before summation
func (ctx *AirContext) CompositionDegree() int {
	return ctx.CeDomainSize() - 1
}

// NumCompositionColumns returns the number of degree trace_length - 1
// columns the composition polynomial decomposes into
func (ctx *AirContext) NumCompositionColumns() int {
	return ctx.ceBlowupFactor
}

// LdeDomainSize returns the size of the low-degree-extension domain
func (ctx *AirContext) LdeDomainSize() int {
	return ctx.traceInfo.Length() * ctx.options.BlowupFactor()
}

// TraceDomainGenerator returns the generator of the trace domain: a
// primitive root of unity of order equal to the trace length
func (ctx *AirContext) TraceDomainGenerator() field.Element {
	return ctx.generator
}

// LdeDomainGenerator returns the generator of the low-degree-extension
// domain
func (ctx *AirContext) LdeDomainGenerator() field.Element {
	return field.PrimitiveRootOfUnity(uint64(ctx.LdeDomainSize()))
}
