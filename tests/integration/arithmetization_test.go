package integration_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-stark-air/pkg/vybium-stark-air/air"
	"github.com/vybium/vybium-stark-air/pkg/vybium-stark-air/coin"
)

const fibTraceLength = 16

// fibAir is a two-register Fibonacci computation: on every step (a, b)
// becomes (b, a+b). It exercises multiple transition constraints and
// assertions on both trace edges.
type fibAir struct {
	ctx    *air.AirContext
	result field.Element
}

func newFibAir(t *testing.T, result field.Element) *fibAir {
	t.Helper()

	traceInfo, err := air.NewTraceInfo(2, fibTraceLength)
	require.NoError(t, err, "Failed to create trace info")

	degree, err := air.NewTransitionConstraintDegree(1)
	require.NoError(t, err, "Failed to create constraint degree")

	ctx, err := air.NewAirContext(traceInfo,
		[]air.TransitionConstraintDegree{degree, degree}, air.DefaultProofOptions(), 3)
	require.NoError(t, err, "Failed to create context")

	return &fibAir{ctx: ctx, result: result}
}

func (a *fibAir) Context() *air.AirContext {
	return a.ctx
}

func (a *fibAir) EvaluateTransition(frame *air.EvaluationFrame, _ []field.Element, result []field.Element) {
	current, next := frame.Current(), frame.Next()
	result[0] = next[0].Sub(current[1])
	result[1] = next[1].Sub(current[0]).Sub(current[1])
}

func (a *fibAir) GetAssertions() []air.Assertion {
	return []air.Assertion{
		air.NewSingleAssertion(0, 0, field.One),
		air.NewSingleAssertion(1, 0, field.One),
		air.NewSingleAssertion(0, fibTraceLength-1, a.result),
	}
}

func (a *fibAir) GetPeriodicColumnValues() [][]field.Element {
	return nil
}

func fibTrace() [][]field.Element {
	trace := make([][]field.Element, fibTraceLength)
	a, b := field.One, field.One
	for i := range trace {
		trace[i] = []field.Element{a, b}
		a, b = b, a.Add(b)
	}
	return trace
}

// arithmetize runs the full pipeline one party executes after the trace
// commitment: seed a coin, draw coefficients, build both constraint group
// families
func arithmetize(t *testing.T, a *fibAir, seed []byte) ([]*air.TransitionConstraintGroup, []*air.BoundaryConstraintGroup) {
	t.Helper()
	ctx := a.Context()

	hash, err := ctx.Options().Hash().New()
	require.NoError(t, err, "Failed to create hash")

	numDraws := 2 * (ctx.NumTransitionConstraints() + ctx.NumAssertions())
	randomCoin, err := coin.New(hash, seed, numDraws)
	require.NoError(t, err, "Failed to create random coin")

	coefficients, err := air.NewConstraintCompositionCoefficients(randomCoin,
		ctx.NumTransitionConstraints(), ctx.NumAssertions())
	require.NoError(t, err, "Failed to draw coefficients")
	require.Equal(t, 0, randomCoin.Remaining(), "Coin draws left over")

	transitionGroups, err := air.NewTransitionConstraintGroups(ctx, coefficients.Transition)
	require.NoError(t, err, "Failed to build transition groups")

	boundaryGroups, err := air.NewBoundaryConstraints(a, coefficients.Boundary)
	require.NoError(t, err, "Failed to build boundary constraints")

	return transitionGroups, boundaryGroups
}

// TestArithmetizationPipeline tests the full flow:
// 1. Define the Fibonacci AIR
// 2. Check its trace against the transition constraints
// 3. Derive coefficients from the public coin
// 4. Fold constraint evaluations into composition values
func TestArithmetizationPipeline(t *testing.T) {
	trace := fibTrace()
	result := trace[fibTraceLength-1][0]
	a := newFibAir(t, result)
	ctx := a.Context()

	t.Log("Step 1: Checking transitions over the valid trace...")
	frame := air.NewEvaluationFrame(ctx.TraceWidth())
	evaluations := make([]field.Element, ctx.NumTransitionConstraints())
	for step := 0; step < fibTraceLength-1; step++ {
		frame.ReadFrom(trace, step)
		a.EvaluateTransition(frame, nil, evaluations)
		for i, e := range evaluations {
			require.True(t, e.IsZero(), "Transition constraint %d violated at step %d", i, step)
		}
	}

	t.Log("Step 2: Building constraint groups from the public coin...")
	transitionGroups, boundaryGroups := arithmetize(t, a, []byte("integration seed"))
	require.Len(t, transitionGroups, 1, "Both linear constraints share one degree bucket")

	// One group pins both registers at step 0, one pins the result at the
	// last step
	require.Len(t, boundaryGroups, 2)
	require.Len(t, boundaryGroups[0].Constraints(), 2)
	require.Len(t, boundaryGroups[1].Constraints(), 1)

	t.Log("Step 3: Folding boundary constraints over the trace domain...")
	g := ctx.TraceDomainGenerator()
	first := boundaryGroups[0]
	zero := first.EvaluateAt(field.One, trace[0])
	require.True(t, zero.IsZero(), "Boundary group numerator non-zero at asserted step")

	// A trace with the wrong result must be caught by the last-step group
	last := boundaryGroups[1]
	x := pow(g, fibTraceLength-1)
	good := last.EvaluateAt(x, trace[fibTraceLength-1])
	require.True(t, good.IsZero(), "Boundary group rejects the correct result")
	bad := last.EvaluateAt(x, []field.Element{field.New(7), trace[fibTraceLength-1][1]})
	require.False(t, bad.IsZero(), "Boundary group accepts a wrong result")
}

// TestArithmetizationDeterminism verifies two parties deriving from the
// same seed agree on every coefficient, and that different seeds diverge
func TestArithmetizationDeterminism(t *testing.T) {
	result := fibTrace()[fibTraceLength-1][0]
	seed := []byte("shared transcript")

	proverT, proverB := arithmetize(t, newFibAir(t, result), seed)
	verifierT, verifierB := arithmetize(t, newFibAir(t, result), seed)

	x := field.New(12345)
	evaluations := []field.Element{field.New(3), field.New(4)}
	require.Equal(t,
		air.MergeEvaluations(proverT, evaluations, x),
		air.MergeEvaluations(verifierT, evaluations, x),
		"Transition composition differs between parties")

	state := []field.Element{field.New(5), field.New(6)}
	for i := range proverB {
		require.Equal(t,
			proverB[i].EvaluateAt(x, state),
			verifierB[i].EvaluateAt(x, state),
			"Boundary composition differs between parties in group %d", i)
	}

	otherT, _ := arithmetize(t, newFibAir(t, result), []byte("different transcript"))
	require.NotEqual(t,
		air.MergeEvaluations(proverT, evaluations, x),
		air.MergeEvaluations(otherT, evaluations, x),
		"Different seeds produced identical composition values")
}

// TestDivisorConsistency verifies the divisor degrees accounted for by the
// groups line up with the composition degree target
func TestDivisorConsistency(t *testing.T) {
	a := newFibAir(t, fibTrace()[fibTraceLength-1][0])
	ctx := a.Context()
	transitionGroups, boundaryGroups := arithmetize(t, a, []byte("divisor seed"))

	for _, group := range transitionGroups {
		quotient := group.Degree() - air.NewTransitionDivisor(ctx).Degree()
		require.Equal(t, ctx.CompositionDegree(),
			quotient+int(group.DegreeAdjustment()),
			"Adjusted transition quotient misses the composition degree")
	}
	for _, group := range boundaryGroups {
		quotient := ctx.TracePolyDegree() - group.Divisor().Degree()
		require.Equal(t, ctx.CompositionDegree(),
			quotient+int(group.DegreeAdjustment()),
			"Adjusted boundary quotient misses the composition degree")
	}
}

func pow(base field.Element, exp int) field.Element {
	result := field.One
	for i := 0; i < exp; i++ {
		result = result.Mul(base)
	}
	return result
}
