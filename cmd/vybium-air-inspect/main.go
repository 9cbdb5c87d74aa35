package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-stark-air/pkg/vybium-stark-air/air"
	"github.com/vybium/vybium-stark-air/pkg/vybium-stark-air/coin"
)

// counterAir is the built-in computation the inspector arithmetizes: one
// register starting at 1 and incrementing by 1 on every step
type counterAir struct {
	ctx *air.AirContext
}

func (a *counterAir) Context() *air.AirContext {
	return a.ctx
}

func (a *counterAir) EvaluateTransition(frame *air.EvaluationFrame, _ []field.Element, result []field.Element) {
	result[0] = frame.Next()[0].Sub(frame.Current()[0]).Sub(field.One)
}

func (a *counterAir) GetAssertions() []air.Assertion {
	n := a.ctx.TraceLength()
	return []air.Assertion{
		air.NewSingleAssertion(0, 0, field.One),
		air.NewSingleAssertion(0, n-1, field.New(uint64(n))),
	}
}

func (a *counterAir) GetPeriodicColumnValues() [][]field.Element {
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "vybium-air-inspect",
	Short: "Inspect STARK arithmetization parameters.",
	Long: "Builds the arithmetization of a counter computation for the given trace shape " +
		"and proof options, and reports the derived domains, divisors and constraint groups.",
	Run: func(cmd *cobra.Command, _ []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(log.DebugLevel)
		}

		traceLength, _ := cmd.Flags().GetInt("trace-length")
		blowup, _ := cmd.Flags().GetInt("blowup")
		queries, _ := cmd.Flags().GetInt("queries")
		grinding, _ := cmd.Flags().GetInt("grinding")
		seed, _ := cmd.Flags().GetString("seed")

		options, err := air.NewProofOptions(blowup, queries, grinding, air.ExtensionNone, air.HashBlake2b256)
		if err != nil {
			log.Fatalf("invalid proof options: %v", err)
		}
		if err := inspect(traceLength, options, []byte(seed)); err != nil {
			log.Fatalf("inspection failed: %v", err)
		}
	},
}

func inspect(traceLength int, options air.ProofOptions, seed []byte) error {
	traceInfo, err := air.NewTraceInfo(1, traceLength)
	if err != nil {
		return err
	}
	degree, err := air.NewTransitionConstraintDegree(1)
	if err != nil {
		return err
	}
	ctx, err := air.NewAirContext(traceInfo, []air.TransitionConstraintDegree{degree}, options, 2)
	if err != nil {
		return err
	}
	a := &counterAir{ctx: ctx}

	fmt.Printf("Trace:              %d registers x %d steps\n", ctx.TraceWidth(), ctx.TraceLength())
	fmt.Printf("Security level:     %d bits (%s)\n", options.SecurityLevel(), options.Hash())
	fmt.Printf("LDE domain:         %d (blowup %d)\n", ctx.LdeDomainSize(), options.BlowupFactor())
	fmt.Printf("CE domain:          %d (blowup %d)\n", ctx.CeDomainSize(), ctx.CeBlowupFactor())
	fmt.Printf("Composition degree: %d in %d columns\n", ctx.CompositionDegree(), ctx.NumCompositionColumns())

	log.Debugf("drawing composition coefficients from seed %q", seed)
	hash, err := options.Hash().New()
	if err != nil {
		return err
	}
	numDraws := 2 * (ctx.NumTransitionConstraints() + ctx.NumAssertions())
	randomCoin, err := coin.New(hash, seed, numDraws)
	if err != nil {
		return err
	}
	coefficients, err := air.NewConstraintCompositionCoefficients(randomCoin,
		ctx.NumTransitionConstraints(), ctx.NumAssertions())
	if err != nil {
		return err
	}

	transitionGroups, err := air.NewTransitionConstraintGroups(ctx, coefficients.Transition)
	if err != nil {
		return err
	}
	boundaryGroups, err := air.NewBoundaryConstraints(a, coefficients.Boundary)
	if err != nil {
		return err
	}

	fmt.Printf("\nTransition divisor: %s\n", air.NewTransitionDivisor(ctx))
	for _, group := range transitionGroups {
		fmt.Printf("  group: evaluation degree %d, %d constraints, adjustment %d\n",
			group.Degree(), len(group.Indices()), group.DegreeAdjustment())
	}
	fmt.Println("\nBoundary groups:")
	for _, group := range boundaryGroups {
		fmt.Printf("  divisor %s: %d constraints, adjustment %d\n",
			group.Divisor(), len(group.Constraints()), group.DegreeAdjustment())
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Int("trace-length", 64, "trace length (power of 2, at least 8)")
	rootCmd.Flags().Int("blowup", 8, "low-degree-extension blowup factor")
	rootCmd.Flags().Int("queries", 28, "number of queries")
	rootCmd.Flags().Int("grinding", 16, "grinding bits")
	rootCmd.Flags().String("seed", "vybium-air-inspect", "public coin seed")
	rootCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
}
