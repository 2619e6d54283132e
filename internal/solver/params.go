package solver

import (
	"errors"
	"fmt"
)

// Weights blend the remaining-candidate statistics of a guess into one
// score. Lower scores are better.
type Weights struct {
	Mean         float64 // mean remaining candidates
	MeanSquared  float64 // mean of squared remaining candidates
	Max          float64 // worst-case remaining candidates
	NonCandidate float64 // flat penalty when the guess cannot be the secret
}

// Params configures guess selection. The zero value is not usable; start
// from DefaultParams.
type Params struct {
	// RecursionMaxCandidates is the candidate count at or below which exact
	// game-tree search is attempted.
	RecursionMaxCandidates int
	// RecursionPadGuesses is how many of the best non-candidate words are
	// added to the guesses tried at each recursion level. Never more than
	// the number of candidates at that level.
	RecursionPadGuesses int
	// RecursionMinimaxDepth is the recursion depth from which the worst
	// case is minimized instead of the average.
	RecursionMinimaxDepth int
	// RecursionMaxDepth is the hard recursion limit.
	RecursionMaxDepth int

	// ComplexityLimit bounds the guess x candidate x candidate comparisons
	// of the exhaustive evaluator.
	ComplexityLimit int
	// TargetGuessRatio is the wanted ratio of examined guesses to sampled
	// candidates; below it the candidate lists are subsampled.
	TargetGuessRatio float64
	// MaxCandidateDivisor caps subsampling: at most every Nth candidate is
	// dropped down to 1/N.
	MaxCandidateDivisor int
	// DivisorStep is how many candidates each step of subsampling requires,
	// so small candidate lists are subsampled less or not at all.
	DivisorStep int

	// PositionalScoring adds per-position letter frequency to the
	// heuristic.
	PositionalScoring bool

	Weights Weights
}

// DefaultParams favours the average case near the root and the worst case
// deeper in the recursive search.
func DefaultParams() Params {
	return Params{
		RecursionMaxCandidates: 30,
		RecursionPadGuesses:    20,
		RecursionMinimaxDepth:  1,
		RecursionMaxDepth:      5,

		ComplexityLimit:     20_000_000,
		TargetGuessRatio:    1.0,
		MaxCandidateDivisor: 4,
		DivisorStep:         250,

		PositionalScoring: true,

		Weights: Weights{
			Mean:         1.0,
			MeanSquared:  0.01,
			Max:          0.1,
			NonCandidate: 0.05,
		},
	}
}

var errInvalidParams = errors.New("invalid solver params")

// Validate rejects settings the search cannot run with.
func (p Params) Validate() error {
	switch {
	case p.RecursionMaxCandidates < 0:
		return fmt.Errorf("%w: negative recursion threshold", errInvalidParams)
	case p.RecursionPadGuesses < 0:
		return fmt.Errorf("%w: negative recursion pad", errInvalidParams)
	case p.RecursionMinimaxDepth < 0:
		return fmt.Errorf("%w: negative minimax depth", errInvalidParams)
	case p.RecursionMaxDepth < 1:
		return fmt.Errorf("%w: recursion depth must be at least 1", errInvalidParams)
	case p.ComplexityLimit < 1:
		return fmt.Errorf("%w: complexity limit must be positive", errInvalidParams)
	case p.TargetGuessRatio <= 0:
		return fmt.Errorf("%w: target guess ratio must be positive", errInvalidParams)
	case p.MaxCandidateDivisor < 1:
		return fmt.Errorf("%w: max candidate divisor must be at least 1", errInvalidParams)
	case p.DivisorStep < 1:
		return fmt.Errorf("%w: divisor step must be positive", errInvalidParams)
	case p.Weights.Mean < 0 || p.Weights.MeanSquared < 0 || p.Weights.Max < 0 || p.Weights.NonCandidate < 0:
		return fmt.Errorf("%w: negative weight", errInvalidParams)
	}
	return nil
}
