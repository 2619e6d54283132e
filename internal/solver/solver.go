// Package solver chooses the next guess.
//
// Strategy by remaining candidate count:
//   - 1: the candidate itself.
//   - 2: the alphabetically first; nothing can tell them apart sooner.
//   - no feedback yet: the top heuristic word, since per-candidate search
//     over the whole catalog is infeasible.
//   - 3..RecursionMaxCandidates: exact recursive search, falling back to
//     the exhaustive evaluator when it is inconclusive.
//   - more: the exhaustive evaluator over a budgeted, heuristic-pruned
//     guess list.
//
// A Solver is single-threaded; run one per session.
package solver

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Joeltronics/wordlebot/internal/candidates"
	"github.com/Joeltronics/wordlebot/internal/game"
	"github.com/Joeltronics/wordlebot/internal/match"
	"github.com/Joeltronics/wordlebot/internal/words"
)

var (
	// ErrNoGuessFound means every search path came up empty.
	ErrNoGuessFound = errors.New("no guess found")

	errSearchInconclusive = errors.New("recursive search inconclusive")
)

// Strategy names how a guess was chosen.
type Strategy string

const (
	StrategyNone       Strategy = ""
	StrategySingle     Strategy = "single"
	StrategyPair       Strategy = "pair"
	StrategyOpening    Strategy = "opening"
	StrategyRecursive  Strategy = "recursive"
	StrategyExhaustive Strategy = "exhaustive"
)

// Stats describes the last BestGuess call.
type Stats struct {
	Strategy    Strategy
	Candidates  int
	Score       float64
	Perfect     bool  // every outcome leaves at most one candidate
	Nodes       int   // recursive search nodes visited
	Comparisons int64 // exhaustive evaluator triples examined
	Plan        Plan
	Elapsed     time.Duration
}

// Solver tracks one session's candidates and picks guesses for it.
type Solver struct {
	cat     *words.Catalog
	oracle  match.Oracle
	params  Params
	tracker *candidates.Tracker
	last    Stats
}

// New starts a session over cat.
func New(cat *words.Catalog, oracle match.Oracle, params Params) (*Solver, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Solver{
		cat:     cat,
		oracle:  oracle,
		params:  params,
		tracker: candidates.NewTracker(cat, oracle),
	}, nil
}

// AddGuess records a guess and the feedback it received. It fails with a
// *candidates.ContradictionError when no candidate fits.
func (s *Solver) AddGuess(guess words.Word, result game.Pattern) error {
	return s.tracker.ApplyGuess(guess, result)
}

// CandidateCount is the number of remaining candidates.
func (s *Solver) CandidateCount() int { return s.tracker.Count() }

// Candidates returns the remaining candidates alphabetically.
func (s *Solver) Candidates() []words.Word { return s.tracker.Words() }

// Record returns the guesses so far.
func (s *Solver) Record() game.Record { return s.tracker.Record() }

// UnsolvedLetterFrequencies counts candidate letters outside solved
// positions.
func (s *Solver) UnsolvedLetterFrequencies(perPosition bool) candidates.LetterCounts {
	return candidates.CountLetters(s.tracker.Words(), s.tracker.Solved(), perPosition)
}

// LastStats describes the most recent BestGuess call.
func (s *Solver) LastStats() Stats { return s.last }

// BestGuess chooses the next guess.
func (s *Solver) BestGuess() (words.Word, error) {
	start := time.Now()
	cands := s.tracker.Words()
	s.last = Stats{Candidates: len(cands)}
	defer func() {
		s.last.Elapsed = time.Since(start)
		log.Debug().
			Str("strategy", string(s.last.Strategy)).
			Int("candidates", s.last.Candidates).
			Int("nodes", s.last.Nodes).
			Int64("comparisons", s.last.Comparisons).
			Dur("took", s.last.Elapsed).
			Msg("best guess")
	}()

	switch {
	case len(cands) == 0:
		return words.Word{}, candidates.ErrContradiction
	case len(cands) == 1:
		s.last.Strategy = StrategySingle
		return cands[0], nil
	case len(cands) == 2:
		s.last.Strategy = StrategyPair
		return cands[0], nil
	case len(s.tracker.Record()) == 0:
		return s.opening(cands)
	}

	if len(cands) <= s.params.RecursionMaxCandidates {
		w, err := s.recursive(cands)
		if err == nil {
			return w, nil
		}
		log.Debug().Err(err).Int("candidates", len(cands)).Msg("falling back to exhaustive evaluation")
	}
	return s.exhaustive(cands)
}

func (s *Solver) opening(cands []words.Word) (words.Word, error) {
	s.last.Strategy = StrategyOpening
	top := NewScorer(cands, s.tracker.Solved(), s.params.PositionalScoring).Top(s.cat.Allowed(), 1, nil)
	if len(top) == 0 {
		return words.Word{}, ErrNoGuessFound
	}
	return top[0], nil
}

func (s *Solver) recursive(cands []words.Word) (words.Word, error) {
	r := newRecursive(s.oracle, s.cat.Allowed(), s.params)
	res, ok := r.Solve(cands)
	s.last.Nodes = r.nodes
	if !ok {
		return words.Word{}, fmt.Errorf("%d candidates: %w", len(cands), errSearchInconclusive)
	}
	s.last.Strategy = StrategyRecursive
	s.last.Score = res.Score
	s.last.Perfect = res.Perfect
	return res.Guess, nil
}

func (s *Solver) exhaustive(cands []words.Word) (words.Word, error) {
	allowed := s.cat.Allowed()
	if len(allowed) == 0 {
		return words.Word{}, ErrNoGuessFound
	}
	scorer := NewScorer(cands, s.tracker.Solved(), s.params.PositionalScoring)
	plan := Budget(len(allowed), len(cands), s.params.ComplexityLimit, s.params)

	ranked := scorer.Top(allowed, plan.Guesses, nil)
	possible := Subsample(cands, plan.PossibleDivisor, 0)
	remaining := Subsample(cands, plan.RemainingDivisor, plan.RemainingDivisor/2)

	log.Debug().
		Int("guesses", plan.Guesses).
		Int("possibleDivisor", plan.PossibleDivisor).
		Int("remainingDivisor", plan.RemainingDivisor).
		Msg("exhaustive budget")

	e := NewEvaluator(s.oracle, s.params.Weights)
	ev := e.Best(ranked, possible, remaining, s.tracker.Set())
	s.last.Strategy = StrategyExhaustive
	s.last.Plan = plan
	s.last.Comparisons = e.Comparisons
	s.last.Score = ev.Score
	s.last.Perfect = ev.Decisive
	return ev.Guess, nil
}
