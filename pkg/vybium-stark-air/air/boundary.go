package air

import (
	"sort"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/polynomial"
)

// BoundaryConstraint is one lowered assertion: the requirement that the
// trace polynomial of a register agrees with a value polynomial over the
// vanishing set of the enclosing group's divisor. For single and periodic
// assertions the value polynomial is a constant; for sequence assertions it
// interpolates the asserted values over the asserted steps.
type BoundaryConstraint struct {
	register     int
	poly         *polynomial.Polynomial
	steps        []int
	coefficients [2]field.Element
}

// Register returns the index of the constrained register
func (c *BoundaryConstraint) Register() int {
	return c.register
}

// Steps returns the trace steps the constraint applies to
func (c *BoundaryConstraint) Steps() []int {
	steps := make([]int, len(c.steps))
	copy(steps, c.steps)
	return steps
}

// Coefficients returns the (alpha, beta) pair weighting this constraint in
// the composition polynomial
func (c *BoundaryConstraint) Coefficients() [2]field.Element {
	return c.coefficients
}

// EvaluateValuePoly computes the value polynomial at the given point
func (c *BoundaryConstraint) EvaluateValuePoly(x field.Element) field.Element {
	return c.poly.Evaluate(x)
}

// EvaluateAt computes the constraint numerator at the given point:
// the trace value minus the asserted value polynomial
func (c *BoundaryConstraint) EvaluateAt(x, traceValue field.Element) field.Element {
	return traceValue.Sub(c.poly.Evaluate(x))
}

// BoundaryConstraintGroup collects all boundary constraints sharing one
// divisor, so that their combined numerator is divided by the divisor once
// rather than constraint by constraint.
type BoundaryConstraintGroup struct {
	divisor          ConstraintDivisor
	degreeAdjustment uint64
	constraints      []*BoundaryConstraint
}

// Divisor returns the divisor shared by all constraints in the group
func (g *BoundaryConstraintGroup) Divisor() ConstraintDivisor {
	return g.divisor
}

// DegreeAdjustment returns the exponent raising the group's quotient terms
// to the composition degree
func (g *BoundaryConstraintGroup) DegreeAdjustment() uint64 {
	return g.degreeAdjustment
}

// Constraints returns the constraints in the group, ordered by register
func (g *BoundaryConstraintGroup) Constraints() []*BoundaryConstraint {
	constraints := make([]*BoundaryConstraint, len(g.constraints))
	copy(constraints, g.constraints)
	return constraints
}

// EvaluateAt folds all constraints of the group into one numerator value at
// the given point: sum over constraints of (alpha + beta * x^adjustment) *
// (trace value - value polynomial). Dividing the result by the group
// divisor yields the group's contribution to the composition value.
func (g *BoundaryConstraintGroup) EvaluateAt(x field.Element, state []field.Element) field.Element {
	xp := pow(x, g.degreeAdjustment)

	result := field.Zero
	for _, c := range g.constraints {
		evaluation := c.EvaluateAt(x, state[c.register])
		weight := c.coefficients[0].Add(c.coefficients[1].Mul(xp))
		result = result.Add(weight.Mul(evaluation))
	}
	return result
}

// NewBoundaryConstraints lowers the assertions of a computation into
// boundary constraint groups.
//
// Every assertion is validated against the trace bounds, conflicting
// assertions (two different required values in the same cell) fail
// construction, and structurally identical duplicates are collapsed into
// one constraint. Constraints are grouped by divisor, and the groups are
// returned in deterministic order - increasing divisor degree, then
// register, then first step - so prover and verifier always agree on
// composition order.
//
// One (alpha, beta) coefficient pair is consumed per assertion, in
// GetAssertions order; len(coefficients) must equal the assertion count.
func NewBoundaryConstraints(a Air, coefficients [][2]field.Element) ([]*BoundaryConstraintGroup, error) {
	ctx := a.Context()
	assertions := a.GetAssertions()
	if len(assertions) == 0 {
		return nil, newError(ErrNoAssertions,
			"a computation must declare at least one assertion")
	}
	if len(coefficients) != len(assertions) {
		return nil, newError(ErrInvalidCoefficients,
			"expected %d boundary coefficient pairs, got %d", len(assertions), len(coefficients))
	}

	var (
		traceLength = ctx.TraceLength()
		generator   = ctx.TraceDomainGenerator()
		groups      = make(map[divisorKey]*BoundaryConstraintGroup)
		order       []divisorKey
	)

	type cell struct {
		register int
		step     int
	}
	seen := make(map[cell]field.Element)

	for i, assertion := range assertions {
		if err := assertion.validate(ctx); err != nil {
			return nil, err
		}

		// Check every asserted cell against previously asserted values
		steps := assertion.steps(traceLength)
		for j, step := range steps {
			key := cell{register: assertion.register, step: step}
			value := assertion.valueAt(j)
			if prev, ok := seen[key]; ok {
				if !prev.Equal(value) {
					return nil, newError(ErrConflictingAssertion,
						"two assertions require different values in trace cell (%d, %d)",
						assertion.register, step)
				}
			} else {
				seen[key] = value
			}
		}

		// Structurally identical duplicates are idempotent: they consume
		// their coefficient pair but produce no second constraint
		if isDuplicate(assertion, assertions[:i]) {
			continue
		}

		firstStep, stride := assertion.firstStep, assertion.stride
		if assertion.kind == AssertionSingle {
			stride = traceLength
		}
		divisor := NewBoundaryDivisor(ctx, firstStep, stride)

		group, ok := groups[divisor.key()]
		if !ok {
			quotientDegree := ctx.TracePolyDegree() - divisor.Degree()
			group = &BoundaryConstraintGroup{
				divisor:          divisor,
				degreeAdjustment: uint64(ctx.CompositionDegree() - quotientDegree),
			}
			groups[divisor.key()] = group
			order = append(order, divisor.key())
		}

		group.constraints = append(group.constraints, &BoundaryConstraint{
			register:     assertion.register,
			poly:         valuePoly(assertion, steps, generator),
			steps:        steps,
			coefficients: coefficients[i],
		})
	}

	result := make([]*BoundaryConstraintGroup, 0, len(order))
	for _, key := range order {
		group := groups[key]
		sort.SliceStable(group.constraints, func(i, j int) bool {
			return group.constraints[i].register < group.constraints[j].register
		})
		result = append(result, group)
	}
	sort.SliceStable(result, func(i, j int) bool {
		gi, gj := result[i], result[j]
		if gi.divisor.Degree() != gj.divisor.Degree() {
			return gi.divisor.Degree() < gj.divisor.Degree()
		}
		if gi.constraints[0].register != gj.constraints[0].register {
			return gi.constraints[0].register < gj.constraints[0].register
		}
		return gi.divisor.firstStep < gj.divisor.firstStep
	})

	return result, nil
}

// valuePoly builds the polynomial the trace must agree with over the
// assertion's vanishing set
func valuePoly(assertion Assertion, steps []int, generator field.Element) *polynomial.Polynomial {
	if assertion.kind != AssertionSequence {
		return polynomial.New([]field.Element{assertion.values[0]})
	}

	points := make([][2]field.Element, len(steps))
	for i, step := range steps {
		points[i] = [2]field.Element{pow(generator, uint64(step)), assertion.values[i]}
	}
	return polynomial.Interpolate(points)
}

func isDuplicate(assertion Assertion, previous []Assertion) bool {
	for _, prev := range previous {
		if assertion.equals(prev) {
			return true
		}
	}
	return false
}
