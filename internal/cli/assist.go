package cli

import (
	"errors"
	"fmt"

	"github.com/Joeltronics/wordlebot/internal/candidates"
	"github.com/Joeltronics/wordlebot/internal/game"
	"github.com/Joeltronics/wordlebot/internal/solver"
	"github.com/Joeltronics/wordlebot/internal/words"
)

// Assist helps with a puzzle whose secret is unknown: the user types each
// guess and the feedback the real game showed. It returns when the user
// enters an all-hit result, runs out of rows (unless endless), or quits.
func Assist(env Env, endless bool) error {
	sv, err := solver.New(env.Cat, env.Oracle, env.Params)
	if err != nil {
		return err
	}
	var kb game.Keyboard
	p := newPrompter(env.In, env.Out, env.Cat)
	cmds := commands(env.Out, sv)

	fmt.Fprintln(env.Out)
	for turn := 1; ; turn++ {
		var g game.Guess
		for {
			printKeyboard(env.Out, &kb)
			fmt.Fprintln(env.Out)

			w, err := p.askWord(turn, cmds)
			if err != nil {
				return err
			}
			pat, err := p.askResult()
			if err != nil {
				return err
			}
			g = game.Guess{Word: w, Result: pat}
			if err := sv.AddGuess(w, pat); err != nil {
				var ce *candidates.ContradictionError
				if errors.As(err, &ce) {
					fmt.Fprintf(env.Out, "Invalid word or result: %v\n", err)
					continue
				}
				return err
			}
			break
		}
		kb.Add(g)
		printRecord(env.Out, sv.Record())

		if g.Result.Solved() {
			fmt.Fprintln(env.Out, "Success!")
			return nil
		}
		if turn == game.DefaultRows {
			if !endless {
				fmt.Fprintln(env.Out, "Failed")
				printCandidates(env.Out, sv.Candidates(), 100)
				return nil
			}
			fmt.Fprintf(env.Out, "Playing in endless mode - continuing after %d guesses\n\n", game.DefaultRows)
		}
	}
}

// ParseGuesses parses forced opening guesses given on the command line.
func ParseGuesses(cat *words.Catalog, in []string) ([]words.Word, error) {
	out := make([]words.Word, 0, len(in))
	for _, s := range in {
		w, err := cat.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}
