package solver

import (
	"fmt"
	"math"

	"github.com/Joeltronics/wordlebot/internal/candidates"
	"github.com/Joeltronics/wordlebot/internal/game"
	"github.com/Joeltronics/wordlebot/internal/match"
	"github.com/Joeltronics/wordlebot/internal/words"
)

// Evaluation is the exhaustive evaluator's verdict on one guess.
type Evaluation struct {
	Guess       words.Word
	Score       float64
	Mean        float64
	MeanSquared float64
	Max         int
	Candidate   bool
	// Decisive is set when the guess is a candidate that leaves at most one
	// candidate for every outcome over the full candidate set.
	Decisive bool
}

// Evaluator simulates guesses against candidate subsamples.
type Evaluator struct {
	oracle  match.Oracle
	weights Weights

	// Comparisons counts (guess, possible, remaining) triples examined.
	Comparisons int64
}

// NewEvaluator returns an evaluator scoring with w.
func NewEvaluator(o match.Oracle, w Weights) *Evaluator {
	return &Evaluator{oracle: o, weights: w}
}

// Best evaluates guesses in order and returns the lowest-scoring one; ties
// keep the earlier guess. For each secret in possible it counts how many of
// remaining would still match. The scan stops early at a decisive guess,
// which cannot be beaten.
func (e *Evaluator) Best(guesses, possible, remaining []words.Word, full *candidates.Set) Evaluation {
	if len(guesses) == 0 || len(possible) == 0 || len(remaining) == 0 {
		panic(fmt.Sprintf("evaluator: empty input (guesses %d, possible %d, remaining %d)",
			len(guesses), len(possible), len(remaining)))
	}

	best := Evaluation{Score: math.Inf(1)}
	row := make([]game.Code, len(remaining))
	counts := make([]int, len(possible))

	for _, g := range guesses {
		for j, r := range remaining {
			row[j] = e.oracle.Feedback(g, r)
		}
		for i, p := range possible {
			code := e.oracle.Feedback(g, p)
			n := 0
			for _, rc := range row {
				if rc == code {
					n++
				}
			}
			counts[i] = n
		}
		e.Comparisons += int64(len(possible) * len(remaining))

		sum := summarize(counts)
		ev := Evaluation{
			Guess:       g,
			Mean:        sum.mean,
			MeanSquared: sum.meanSq,
			Max:         int(sum.max),
			Candidate:   full.Contains(g),
		}
		ev.Score = e.weights.Mean*sum.mean + e.weights.MeanSquared*sum.meanSq + e.weights.Max*sum.max
		if !ev.Candidate {
			ev.Score += e.weights.NonCandidate
		}

		if ev.Candidate && ev.Max <= 1 && e.splitsCompletely(g, full) {
			ev.Decisive = true
			return ev
		}
		if ev.Score < best.Score {
			best = ev
		}
	}
	return best
}

// splitsCompletely reports whether every outcome of g leaves at most one
// candidate of full.
func (e *Evaluator) splitsCompletely(g words.Word, full *candidates.Set) bool {
	var seen [game.NumCodes]bool
	for _, c := range full.Words() {
		code := e.oracle.Feedback(g, c)
		if seen[code] {
			return false
		}
		seen[code] = true
	}
	return true
}
