package solver

import "github.com/Joeltronics/wordlebot/internal/words"

// Plan is how much of the search space the exhaustive evaluator may touch.
type Plan struct {
	Guesses          int // how many top-ranked guesses to examine
	PossibleDivisor  int // subsampling of "which secret is it" candidates
	RemainingDivisor int // subsampling of "what would still match" candidates
	PossibleSize     int
	RemainingSize    int
}

// Cost is the upper bound of comparisons the plan performs.
func (p Plan) Cost() int { return p.Guesses * p.PossibleSize * p.RemainingSize }

// SampleSize is the largest subsample Subsample can return for n items.
func SampleSize(n, divisor int) int { return (n + divisor - 1) / divisor }

// divisorCap limits subsampling by candidate count: smaller lists may be
// thinned less, never below 1/MaxCandidateDivisor.
func divisorCap(numCandidates int, p Params) int {
	return max(1, min(numCandidates/p.DivisorStep, p.MaxCandidateDivisor))
}

// Budget fits the evaluation of numGuesses guesses against numCandidates
// candidates into limit comparisons. When the full search is too large the
// candidate lists are subsampled, alternating starting with the remaining
// list, until enough guesses fit or the divisors reach their cap. The guess
// count is whatever the limit then allows, at least one.
func Budget(numGuesses, numCandidates, limit int, p Params) Plan {
	if numGuesses < 1 || numCandidates < 1 || limit < 1 {
		panic("budget: guesses, candidates and limit must be positive")
	}

	guessesFor := func(dp, dr int) int {
		return max(1, limit/(SampleSize(numCandidates, dp)*SampleSize(numCandidates, dr)))
	}
	wanted := func(dp int) int {
		return min(numGuesses, max(1, int(p.TargetGuessRatio*float64(SampleSize(numCandidates, dp)))))
	}

	limitDiv := divisorCap(numCandidates, p)
	dp, dr := 1, 1
grow:
	for guessesFor(dp, dr) < wanted(dp) {
		switch {
		case dr <= dp && dr < limitDiv:
			dr++
		case dp < limitDiv:
			dp++
		case dr < limitDiv:
			dr++
		default:
			break grow
		}
	}
	return Plan{
		Guesses:          min(numGuesses, guessesFor(dp, dr)),
		PossibleDivisor:  dp,
		RemainingDivisor: dr,
		PossibleSize:     SampleSize(numCandidates, dp),
		RemainingSize:    SampleSize(numCandidates, dr),
	}
}

// Subsample keeps every divisor-th word starting at offset.
func Subsample(ws []words.Word, divisor, offset int) []words.Word {
	if divisor <= 1 || len(ws) == 0 {
		return ws
	}
	offset %= divisor
	out := make([]words.Word, 0, SampleSize(len(ws), divisor))
	for i := offset; i < len(ws); i += divisor {
		out = append(out, ws[i])
	}
	if len(out) == 0 {
		out = append(out, ws[0])
	}
	return out
}
