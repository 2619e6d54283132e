// Package match answers "what feedback would this guess get against this
// secret", either by computing it or from a precomputed dense table.
package match

import (
	"github.com/Joeltronics/wordlebot/internal/game"
	"github.com/Joeltronics/wordlebot/internal/words"
)

// Oracle computes packed feedback for a guess against a secret. It must be
// pure and safe for concurrent use.
type Oracle interface {
	Feedback(guess, secret words.Word) game.Code
}

// Direct computes feedback with the two-pass algorithm on every call.
type Direct struct{}

func (Direct) Feedback(guess, secret words.Word) game.Code {
	return game.Compute(guess.String(), secret.String()).Pack()
}

// Matches reports whether secret is consistent with guess having received
// code.
func Matches(o Oracle, guess, secret words.Word, code game.Code) bool {
	return o.Feedback(guess, secret) == code
}
