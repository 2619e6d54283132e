// Package cli implements the terminal modes: playing against a secret,
// assisting with an external puzzle, and benchmarking the solver.
package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/Joeltronics/wordlebot/internal/game"
	"github.com/Joeltronics/wordlebot/internal/match"
	"github.com/Joeltronics/wordlebot/internal/solver"
	"github.com/Joeltronics/wordlebot/internal/words"
)

// Env is what every mode needs.
type Env struct {
	Cat    *words.Catalog
	Oracle match.Oracle
	Params solver.Params
	In     io.Reader
	Out    io.Writer
}

// PlayOptions configures Play.
type PlayOptions struct {
	Secret  words.Word   // zero value picks a random solution
	Auto    bool         // let the solver make every guess
	Endless bool         // keep going after the last row
	Cheat   bool         // print the secret up front
	Guesses []words.Word // forced opening guesses
}

// Play runs one game and returns the number of guesses it took, or 0 if
// the game was lost. Quitting returns ErrQuit.
func Play(env Env, opts PlayOptions) (int, error) {
	secret := opts.Secret
	if secret.IsZero() {
		sols := env.Cat.Solutions()
		secret = sols[rand.IntN(len(sols))]
		if opts.Cheat {
			fmt.Fprintf(env.Out, "\nCHEAT MODE: solution is %s\n", secret)
		}
	}

	// a secret outside the solution list can contradict the solver, which
	// then sits out the rest of the game
	offList := !env.Cat.IsSolution(secret)
	if offList {
		fmt.Fprintf(env.Out, "%s is not a possible solution; proceeding with game anyway\n", secret)
	}

	sv, err := solver.New(env.Cat, env.Oracle, env.Params)
	if err != nil {
		return 0, err
	}
	tracking := true
	g := game.New(secret, opts.Endless)
	var kb game.Keyboard
	p := newPrompter(env.In, env.Out, env.Cat)

	cmds := commands(env.Out, sv)
	cmds["cheat"] = command{"Show solution", func() { fmt.Fprintf(env.Out, "Solution is %s\n", secret) }}

	fmt.Fprintln(env.Out)
	for turn := 1; ; turn++ {
		printKeyboard(env.Out, &kb)
		fmt.Fprintln(env.Out)

		var guess words.Word
		switch {
		case turn <= len(opts.Guesses):
			guess = opts.Guesses[turn-1]
			fmt.Fprintf(env.Out, "Using specified guess: %s\n", guess)
		case opts.Auto && !tracking:
			return 0, fmt.Errorf("%s is not a possible solution: %w", secret, solver.ErrNoGuessFound)
		case opts.Auto:
			printCandidates(env.Out, sv.Candidates(), 100)
			printLetters(env.Out, sv.CandidateCount(), sv.UnsolvedLetterFrequencies(true))
			if guess, err = sv.BestGuess(); err != nil {
				return 0, err
			}
			fmt.Fprintf(env.Out, "\nUsing guess from solver: %s\n", guess)
		default:
			if guess, err = p.askWord(turn, cmds); err != nil {
				return 0, err
			}
		}

		pat, state, err := g.ApplyGuess(guess)
		if err != nil {
			return 0, err
		}
		kb.Add(game.Guess{Word: guess, Result: pat})
		if tracking && state != game.StateWon {
			if err := sv.AddGuess(guess, pat); err != nil {
				if !offList {
					// feedback came from a real solution, so this is a catalog bug
					return 0, fmt.Errorf("solver rejected true feedback: %w", err)
				}
				tracking = false
				disableSolver(env.Out, cmds)
				fmt.Fprintln(env.Out, "No possible solutions left; solver commands disabled")
			}
		}
		printRecord(env.Out, g.Guesses)

		switch state {
		case game.StateWon:
			fmt.Fprintln(env.Out, "Success!")
			return turn, nil
		case game.StateLost:
			fmt.Fprintf(env.Out, "Failed, the solution was %s\n", secret)
			return 0, nil
		}
		if turn == g.Rows && opts.Endless {
			fmt.Fprintf(env.Out, "Playing in endless mode - continuing after %d guesses\n\n", g.Rows)
		}
	}
}

// commands are the prompt commands shared by play and assist.
func commands(out io.Writer, sv *solver.Solver) map[string]command {
	return map[string]command{
		"num": {"Show number of possible solutions", func() {
			fmt.Fprintf(out, "%d possible solution(s)\n", sv.CandidateCount())
		}},
		"list": {"List possible solutions", func() {
			printCandidates(out, sv.Candidates(), 0)
		}},
		"stats": {"List most common unsolved letters", func() {
			printLetters(out, sv.CandidateCount(), sv.UnsolvedLetterFrequencies(true))
		}},
		"combos": {"Print all letter combos", func() {
			printCombos(out, sv.Record())
		}},
		"solve": {"Get guess from solver", func() {
			w, err := sv.BestGuess()
			if err != nil {
				fmt.Fprintf(out, "Solver failed: %v\n", err)
				return
			}
			fmt.Fprintf(out, "Solver's best guess is %s\n", w)
		}},
	}
}

// disableSolver replaces the commands that need a consistent solver.
func disableSolver(out io.Writer, cmds map[string]command) {
	for _, name := range []string{"num", "list", "stats", "combos", "solve"} {
		c := cmds[name]
		c.run = func() { fmt.Fprintln(out, "Solver disabled: no possible solutions match") }
		cmds[name] = c
	}
}

// IsQuit reports whether err means the user quit.
func IsQuit(err error) bool { return errors.Is(err, ErrQuit) }
