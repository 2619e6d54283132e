package solver

import (
	"math"

	"golang.org/x/exp/slices"

	"github.com/Joeltronics/wordlebot/internal/candidates"
	"github.com/Joeltronics/wordlebot/internal/game"
	"github.com/Joeltronics/wordlebot/internal/match"
	"github.com/Joeltronics/wordlebot/internal/words"
)

// Result is the outcome of an exact search.
type Result struct {
	Guess words.Word
	// Score is the number of further guesses needed after Guess: the worst
	// case under minimax, the expectation under the average objective. A
	// minimax score of 1 means every outcome leaves at most one candidate;
	// an average score of 1 does not.
	Score float64
	// Perfect is set when every outcome of Guess leaves at most one
	// candidate.
	Perfect bool
}

// recursive is a game-tree search over a candidate list. Each call works on
// its own partition slices, so sibling branches never share state.
type recursive struct {
	oracle  match.Oracle
	allowed []words.Word
	params  Params
	nodes   int
}

func newRecursive(o match.Oracle, allowed []words.Word, p Params) *recursive {
	return &recursive{oracle: o, allowed: allowed, params: p}
}

// partition is the candidates sharing one feedback code.
type partition struct {
	code  game.Code
	words []words.Word
}

// Solve searches for the best guess for cands (sorted, at least 3). ok is
// false when every branch exceeded the depth limit.
func (r *recursive) Solve(cands []words.Word) (Result, bool) {
	return r.solve(cands, 0, r.params.RecursionMaxDepth)
}

// solve returns the best guess for cands whose score does not exceed limit.
func (r *recursive) solve(cands []words.Word, depth int, limit int) (Result, bool) {
	if depth < 0 {
		panic("recursive solve: negative depth")
	}
	r.nodes++
	if depth >= r.params.RecursionMaxDepth || limit < 1 {
		return Result{}, false
	}
	minimax := depth >= r.params.RecursionMinimaxDepth
	n := float64(len(cands))

	best := Result{Score: math.Inf(1)}
	found := false

guesses:
	for _, g := range r.guessList(cands) {
		allowed := float64(limit)
		if minimax && found {
			allowed = min(allowed, best.Score-1)
		}
		if allowed < 1 {
			break
		}

		parts := r.partition(g, cands)
		score, worst := 0.0, 0.0
		perfect := true
		for _, p := range parts {
			if p.code.Solved() {
				continue
			}
			var s float64
			switch size := len(p.words); size {
			case 1:
				s = 1
			case 2:
				perfect = false
				s = 2
				if !minimax {
					s = 1.5
				}
			default:
				perfect = false
				// a split plus at least one more guess
				if allowed < 2 {
					continue guesses
				}
				sub, ok := r.solve(p.words, depth+1, int(allowed)-1)
				if !ok {
					continue guesses
				}
				s = 1 + sub.Score
			}
			if s > allowed {
				continue guesses
			}
			worst = max(worst, s)
			if minimax {
				score = worst
			} else {
				score += s * float64(len(p.words)) / n
				if found && score >= best.Score {
					continue guesses
				}
			}
		}

		if !found || score < best.Score {
			best = Result{Guess: g, Score: score, Perfect: perfect}
			found = true
		}
		if perfect {
			break
		}
	}
	return best, found
}

// guessList is every candidate followed by the best-scoring non-candidates,
// never more of those than there are candidates.
func (r *recursive) guessList(cands []words.Word) []words.Word {
	pad := min(r.params.RecursionPadGuesses, len(cands))
	out := make([]words.Word, 0, len(cands)+pad)
	out = append(out, cands...)
	if pad == 0 {
		return out
	}
	isCand := make(map[int]bool, len(cands))
	for _, c := range cands {
		isCand[c.ID()] = true
	}
	scorer := NewScorer(cands, candidates.MaskFromWords(cands), r.params.PositionalScoring)
	extra := scorer.Top(r.allowed, pad, func(w words.Word) bool { return isCand[w.ID()] })
	return append(out, extra...)
}

// partition groups cands by the feedback g would receive, largest group
// first so hopeless guesses are abandoned early.
func (r *recursive) partition(g words.Word, cands []words.Word) []partition {
	byCode := make(map[game.Code][]words.Word)
	for _, c := range cands {
		code := r.oracle.Feedback(g, c)
		byCode[code] = append(byCode[code], c)
	}
	parts := make([]partition, 0, len(byCode))
	for code, ws := range byCode {
		parts = append(parts, partition{code: code, words: ws})
	}
	slices.SortFunc(parts, func(a, b partition) int {
		if len(a.words) != len(b.words) {
			return len(b.words) - len(a.words)
		}
		return int(a.code) - int(b.code)
	})
	return parts
}
