// internal/game/types.go
//
// Core feedback types.
// Defines:
//   - Mark: per-letter outcome of a guess.
//   - Pattern: the five marks for one guess against one secret.
//   - Code: a Pattern packed into 2 bits per position.
//   - Guess / Record: the append-only history of a session.

package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Joeltronics/wordlebot/internal/words"
)

// Mark is the evaluation of a single letter. The ordering matters: a larger
// mark carries more information, which the keyboard display relies on.
type Mark uint8

const (
	MarkUnknown Mark = iota // no information yet
	MarkMiss                // letter not in the secret (or all copies used)
	MarkPresent             // letter in the secret at another position
	MarkHit                 // letter correct at this position
)

// ErrInvalidPattern reports a feedback string that cannot be parsed.
var ErrInvalidPattern = errors.New("invalid feedback pattern")

func (m Mark) String() string {
	switch m {
	case MarkMiss:
		return "miss"
	case MarkPresent:
		return "present"
	case MarkHit:
		return "hit"
	default:
		return "unknown"
	}
}

// MarshalText encodes a Mark by name for JSON payloads.
func (m Mark) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// symbol is the single-character form used in pattern strings.
func (m Mark) symbol() byte {
	switch m {
	case MarkMiss:
		return '-'
	case MarkPresent:
		return 'Y'
	case MarkHit:
		return 'G'
	default:
		return '?'
	}
}

// Pattern is the ordered feedback for a guess.
type Pattern [words.Length]Mark

// AllHit is the pattern of a solved puzzle.
var AllHit = Pattern{MarkHit, MarkHit, MarkHit, MarkHit, MarkHit}

// Code is a Pattern packed into 10 bits, position 0 in the lowest bits.
type Code uint16

// NumCodes is the number of distinct packed values, unknown marks included.
const NumCodes = 1 << (2 * words.Length)

// Pack encodes p. Marks above MarkHit are a programming error.
func (p Pattern) Pack() Code {
	var c Code
	for i, m := range p {
		if m > MarkHit {
			panic(fmt.Sprintf("pack: mark %d out of range at position %d", m, i))
		}
		c |= Code(m) << (2 * i)
	}
	return c
}

// Unpack decodes c.
func (c Code) Unpack() Pattern {
	var p Pattern
	for i := range p {
		p[i] = Mark((c >> (2 * i)) & 3)
	}
	return p
}

// Solved reports whether the code is all hits.
func (c Code) Solved() bool { return c == AllHit.Pack() }

func (c Code) String() string { return c.Unpack().String() }

// Solved reports whether every position is a hit.
func (p Pattern) Solved() bool { return p == AllHit }

// String renders p as G (hit), Y (present), - (miss), ? (unknown).
func (p Pattern) String() string {
	b := make([]byte, len(p))
	for i, m := range p {
		b[i] = m.symbol()
	}
	return string(b)
}

// ParsePattern reads a feedback string. Accepted symbols, case-insensitive:
//
//	hit:     G C 2 +
//	present: Y W 1
//	miss:    - . _ X B 0
func ParsePattern(s string) (Pattern, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	var p Pattern
	if len(s) != len(p) {
		return p, fmt.Errorf("%w: %q must have %d symbols", ErrInvalidPattern, s, len(p))
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'G', 'C', '2', '+':
			p[i] = MarkHit
		case 'Y', 'W', '1':
			p[i] = MarkPresent
		case '-', '.', '_', 'X', 'B', '0':
			p[i] = MarkMiss
		default:
			return p, fmt.Errorf("%w: unexpected %q at position %d", ErrInvalidPattern, s[i], i+1)
		}
	}
	return p, nil
}

// Guess is one guessed word and the feedback it received.
type Guess struct {
	Word   words.Word
	Result Pattern
}

func (g Guess) String() string { return g.Word.String() + " " + g.Result.String() }

// Record is the ordered history of guesses in a session.
type Record []Guess

// State is a coarse game state.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)
