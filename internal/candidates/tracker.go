package candidates

import (
	"errors"
	"fmt"

	"github.com/Joeltronics/wordlebot/internal/game"
	"github.com/Joeltronics/wordlebot/internal/match"
	"github.com/Joeltronics/wordlebot/internal/words"
)

// ErrContradiction means a guess and its feedback leave no candidates.
var ErrContradiction = errors.New("feedback contradicts every remaining candidate")

// ContradictionError carries the guess whose feedback emptied the set.
type ContradictionError struct {
	Guess  words.Word
	Result game.Pattern
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Guess, e.Result, ErrContradiction)
}

func (e *ContradictionError) Unwrap() error { return ErrContradiction }

// SolvedMask holds the letter pinned by a hit at each position, or 0.
type SolvedMask [words.Length]byte

// IsSolved reports whether position i is pinned.
func (m SolvedMask) IsSolved(i int) bool { return m[i] != 0 }

// MaskFromWords pins every position where all of ws share a letter.
func MaskFromWords(ws []words.Word) SolvedMask {
	var m SolvedMask
	if len(ws) == 0 {
		return m
	}
	for i := range m {
		c := ws[0].At(i)
		same := true
		for _, w := range ws[1:] {
			if w.At(i) != c {
				same = false
				break
			}
		}
		if same {
			m[i] = c
		}
	}
	return m
}

// Tracker owns the live candidate set for one session. It is not safe for
// concurrent use.
type Tracker struct {
	oracle match.Oracle
	live   *Set
	record game.Record
	solved SolvedMask
}

// NewTracker starts with every solution in cat as a candidate.
func NewTracker(cat *words.Catalog, oracle match.Oracle) *Tracker {
	return &Tracker{oracle: oracle, live: All(cat)}
}

// ApplyGuess narrows the candidates to those consistent with guess having
// received result. On contradiction the tracker is left unchanged.
func (t *Tracker) ApplyGuess(guess words.Word, result game.Pattern) error {
	filtered := t.live.Filter(t.oracle, guess, result.Pack())
	if filtered.Len() == 0 {
		return &ContradictionError{Guess: guess, Result: result}
	}
	t.live = t.live.Intersect(filtered)
	t.record = append(t.record, game.Guess{Word: guess, Result: result})
	for i, m := range result {
		if m == game.MarkHit {
			t.solved[i] = guess.At(i)
		}
	}
	return nil
}

// Count is the number of remaining candidates.
func (t *Tracker) Count() int { return t.live.Len() }

// Words returns the remaining candidates in alphabetical order.
func (t *Tracker) Words() []words.Word { return t.live.Words() }

// Set returns the live candidate set.
func (t *Tracker) Set() *Set { return t.live }

// Solved returns the letters pinned by hits so far.
func (t *Tracker) Solved() SolvedMask { return t.solved }

// Record returns a copy of the guesses applied so far.
func (t *Tracker) Record() game.Record {
	return append(game.Record(nil), t.record...)
}
