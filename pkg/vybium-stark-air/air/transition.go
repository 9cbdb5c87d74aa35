package air

import (
	"sort"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// TransitionConstraintGroup collects the transition constraints whose
// evaluations have the same degree, so that one degree adjustment serves
// all of them when they are merged into the composition polynomial.
type TransitionConstraintGroup struct {
	degree           int
	degreeAdjustment uint64
	indices          []int
	coefficients     [][2]field.Element
}

// Degree returns the evaluation degree shared by all constraints in the
// group
func (g *TransitionConstraintGroup) Degree() int {
	return g.degree
}

// DegreeAdjustment returns the exponent raising the group's quotient terms
// to the composition degree
func (g *TransitionConstraintGroup) DegreeAdjustment() uint64 {
	return g.degreeAdjustment
}

// Indices returns the positions of the group's constraints within the full
// constraint evaluation vector
func (g *TransitionConstraintGroup) Indices() []int {
	indices := make([]int, len(g.indices))
	copy(indices, g.indices)
	return indices
}

// MergeEvaluations folds the group's slice of the constraint evaluation
// vector into one value at the given point: sum over constraints of
// (alpha + beta * x^adjustment) * evaluation
func (g *TransitionConstraintGroup) MergeEvaluations(evaluations []field.Element, x field.Element) field.Element {
	xp := pow(x, g.degreeAdjustment)

	result := field.Zero
	for i, index := range g.indices {
		weight := g.coefficients[i][0].Add(g.coefficients[i][1].Mul(xp))
		result = result.Add(weight.Mul(evaluations[index]))
	}
	return result
}

// NewTransitionConstraintGroups buckets the transition constraints of the
// context by evaluation degree and attaches one (alpha, beta) coefficient
// pair per constraint, in declaration order.
//
// Groups are returned sorted by increasing degree and constraints keep
// their declaration order within each group, so prover and verifier always
// agree on composition order. len(coefficients) must equal the number of
// transition constraints.
func NewTransitionConstraintGroups(ctx *AirContext, coefficients [][2]field.Element) ([]*TransitionConstraintGroup, error) {
	degrees := ctx.TransitionConstraintDegrees()
	if len(coefficients) != len(degrees) {
		return nil, newError(ErrInvalidCoefficients,
			"expected %d transition coefficient pairs, got %d", len(degrees), len(coefficients))
	}

	var (
		traceLength    = ctx.TraceLength()
		divisorDegree  = NewTransitionDivisor(ctx).Degree()
		groups         = make(map[int]*TransitionConstraintGroup)
		groupedDegrees []int
	)

	for i, degree := range degrees {
		evaluationDegree := degree.EvaluationDegree(traceLength)
		group, ok := groups[evaluationDegree]
		if !ok {
			quotientDegree := evaluationDegree - divisorDegree
			group = &TransitionConstraintGroup{
				degree:           evaluationDegree,
				degreeAdjustment: uint64(ctx.CompositionDegree() - quotientDegree),
			}
			groups[evaluationDegree] = group
			groupedDegrees = append(groupedDegrees, evaluationDegree)
		}
		group.indices = append(group.indices, i)
		group.coefficients = append(group.coefficients, coefficients[i])
	}

	sort.Ints(groupedDegrees)
	result := make([]*TransitionConstraintGroup, len(groupedDegrees))
	for i, degree := range groupedDegrees {
		result[i] = groups[degree]
	}
	return result, nil
}

// MergeEvaluations folds a full transition constraint evaluation vector
// into one value at the given point by merging every group and summing the
// results. Dividing the result by the transition divisor yields the
// transition part of the composition value.
func MergeEvaluations(groups []*TransitionConstraintGroup, evaluations []field.Element, x field.Element) field.Element {
	result := field.Zero
	for _, group := range groups {
		result = result.Add(group.MergeEvaluations(evaluations, x))
	}
	return result
}
