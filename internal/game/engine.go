// internal/game/engine.go
//
// Feedback computation and the play session.
// Responsibilities:
//   - Score guesses using the classic two-pass algorithm.
//   - Track a game against a known secret: playing -> won/lost.
//
// Notes:
//   - Words are upper-case A-Z, validated by the words package.
//   - Endless games keep accepting guesses after the row limit.
package game

import (
	"errors"

	"github.com/Joeltronics/wordlebot/internal/words"
)

// DefaultRows is the usual number of guesses before a game is lost.
const DefaultRows = 6

// ErrGameFinished is returned when guessing after the game has ended.
var ErrGameFinished = errors.New("game finished")

// Compute returns the feedback for guess against secret.
//
// Pass 1:
//   - Mark exact matches as hits.
//   - Count the remaining (non-hit) secret letters.
//
// Pass 2:
//   - For each non-hit guess letter: if an unconsumed copy remains, mark it
//     present and consume it; otherwise mark it a miss.
//
// Repeated letters therefore never earn more present/hit marks than the
// secret has copies.
func Compute(guess, secret string) Pattern {
	var res Pattern
	var counts [26]int

	for i := 0; i < words.Length; i++ {
		if guess[i] == secret[i] {
			res[i] = MarkHit
		} else {
			counts[idx(secret[i])]++
		}
	}

	for i := 0; i < words.Length; i++ {
		if res[i] == MarkHit {
			continue
		}
		j := idx(guess[i])
		if counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkMiss
		}
	}
	return res
}

// idx maps an upper-case ASCII letter to 0..25.
func idx(b byte) int { return int(b - 'A') }

// Game holds the state of one game against a known secret.
type Game struct {
	Secret   words.Word
	Rows     int    // guesses allowed before the game is lost
	Endless  bool   // keep playing past Rows
	Guesses  Record // guesses so far
	Finished bool
	Won      bool
}

// New starts a game with DefaultRows.
func New(secret words.Word, endless bool) *Game {
	return &Game{Secret: secret, Rows: DefaultRows, Endless: endless}
}

// ApplyGuess scores a guess and updates the game.
//
// State transitions:
//   - all hits: Finished, Won.
//   - row limit reached and not endless: Finished (loss).
func (g *Game) ApplyGuess(w words.Word) (Pattern, State, error) {
	if g.Finished {
		return Pattern{}, g.State(), ErrGameFinished
	}
	p := Compute(w.String(), g.Secret.String())
	g.Guesses = append(g.Guesses, Guess{Word: w, Result: p})

	if p.Solved() {
		g.Finished, g.Won = true, true
	} else if !g.Endless && len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return p, g.State(), nil
}

// State reports the current game state.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}
