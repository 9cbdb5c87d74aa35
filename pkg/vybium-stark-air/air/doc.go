// Package air implements the arithmetization layer of the Vybium STARK
// proving stack: the machinery that turns an execution trace plus a set of
// algebraic rules into the bookkeeping both prover and verifier need to
// build and check a single low-degree composition polynomial.
//
// A computation is described by implementing the Air interface:
//
//  1. Construct an AirContext from the trace shape, the degrees of all
//     transition constraints, the ProofOptions, and the assertion count.
//  2. Implement EvaluateTransition, which writes one evaluation per
//     transition constraint for a pair of consecutive trace rows. For every
//     valid step the results must all be zero; for an invalid step at least
//     one result must be non-zero. Only field additions, subtractions and
//     multiplications may be used, so that the results stay low-degree
//     polynomials in the trace registers.
//  3. Implement GetAssertions, returning at least one assertion tying trace
//     cells to public values. Assertions are lowered into boundary
//     constraint groups by NewBoundaryConstraints.
//  4. Optionally implement GetPeriodicColumnValues for columns of repeating
//     values; each cycle length must be a power of two dividing the trace
//     length.
//
// Everything in this package is immutable after construction. Transition
// evaluations at different steps are independent and may run concurrently,
// each worker holding its own EvaluationFrame and result buffer while
// sharing one read-only AirContext.
//
// Randomness never originates here: the composition and DEEP coefficients
// are drawn from a caller-supplied CoefficientSource (see the coin package)
// so that prover and verifier derive identical values from the public seed.
package air
