package air

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// CoefficientSource yields a stream of pseudo-random field elements. Both
// prover and verifier derive their coefficients from a source seeded with
// the same public transcript, so the draw order below is part of the
// protocol.
type CoefficientSource interface {
	Draw() (field.Element, error)
}

// ConstraintCompositionCoefficients holds the (alpha, beta) pairs used to
// merge constraint evaluations into the composition polynomial: one pair
// per transition constraint followed by one pair per assertion.
type ConstraintCompositionCoefficients struct {
	Transition [][2]field.Element
	Boundary   [][2]field.Element
}

// NewConstraintCompositionCoefficients draws the constraint composition
// coefficients from the source. Draw order is fixed: transition pairs in
// declaration order, then boundary pairs in assertion order, each pair
// alpha before beta.
func NewConstraintCompositionCoefficients(src CoefficientSource, numTransition, numAssertions int) (ConstraintCompositionCoefficients, error) {
	var coefficients ConstraintCompositionCoefficients
	var err error

	coefficients.Transition, err = drawPairs(src, numTransition)
	if err != nil {
		return ConstraintCompositionCoefficients{}, err
	}
	coefficients.Boundary, err = drawPairs(src, numAssertions)
	if err != nil {
		return ConstraintCompositionCoefficients{}, err
	}
	return coefficients, nil
}

// DeepCompositionCoefficients holds the coefficient pairs used to build the
// DEEP composition polynomial: one pair per trace register, one pair per
// constraint composition column, and one final pair for the degree
// adjustment of the DEEP polynomial itself.
type DeepCompositionCoefficients struct {
	Trace       [][2]field.Element
	Constraints [][2]field.Element
	Degree      [2]field.Element
}

// NewDeepCompositionCoefficients draws the DEEP composition coefficients
// from the source. Draw order is fixed: trace pairs by register, then
// constraint column pairs, then the degree pair, each pair alpha before
// beta.
func NewDeepCompositionCoefficients(src CoefficientSource, ctx *AirContext) (DeepCompositionCoefficients, error) {
	var coefficients DeepCompositionCoefficients
	var err error

	coefficients.Trace, err = drawPairs(src, ctx.TraceWidth())
	if err != nil {
		return DeepCompositionCoefficients{}, err
	}
	coefficients.Constraints, err = drawPairs(src, ctx.NumCompositionColumns())
	if err != nil {
		return DeepCompositionCoefficients{}, err
	}

	degree, err := drawPairs(src, 1)
	if err != nil {
		return DeepCompositionCoefficients{}, err
	}
	coefficients.Degree = degree[0]
	return coefficients, nil
}

func drawPairs(src CoefficientSource, count int) ([][2]field.Element, error) {
	pairs := make([][2]field.Element, count)
	for i := range pairs {
		alpha, err := src.Draw()
		if err != nil {
			return nil, err
		}
		beta, err := src.Draw()
		if err != nil {
			return nil, err
		}
		pairs[i] = [2]field.Element{alpha, beta}
	}
	return pairs, nil
}
