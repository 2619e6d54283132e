// internal/cli/render.go
//
// Terminal rendering: coloured feedback tiles, the keyboard, candidate
// lists and letter statistics.

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/TwiN/go-color"

	"github.com/Joeltronics/wordlebot/internal/candidates"
	"github.com/Joeltronics/wordlebot/internal/game"
	"github.com/Joeltronics/wordlebot/internal/words"
)

var keyboardRows = [...]string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

// tileColor maps a mark to its terminal colour.
func tileColor(m game.Mark) string {
	switch m {
	case game.MarkHit:
		return color.Bold + color.Green
	case game.MarkPresent:
		return color.Bold + color.Yellow
	case game.MarkMiss:
		return color.Gray
	default:
		return color.White
	}
}

// formatGuess renders a guess as coloured letters followed by its pattern.
func formatGuess(g game.Guess) string {
	var b strings.Builder
	for i := 0; i < words.Length; i++ {
		b.WriteString(color.Ize(tileColor(g.Result[i]), string(g.Word.At(i))))
	}
	b.WriteString("  ")
	b.WriteString(g.Result.String())
	return b.String()
}

func printRecord(w io.Writer, rec game.Record) {
	fmt.Fprintln(w)
	for i, g := range rec {
		fmt.Fprintf(w, "%d: %s\n", i+1, formatGuess(g))
	}
	fmt.Fprintln(w)
}

func printKeyboard(w io.Writer, kb *game.Keyboard) {
	for _, row := range keyboardRows {
		var b strings.Builder
		for i := 0; i < len(row); i++ {
			b.WriteString(color.Ize(tileColor(kb.Status(row[i])), string(row[i])))
		}
		fmt.Fprintln(w, b.String())
	}
}

// printCandidates lists candidates, ten per line. Above max only the count
// is shown; limit <= 0 means no limit.
func printCandidates(w io.Writer, ws []words.Word, limit int) {
	n := len(ws)
	switch {
	case n == 0:
		fmt.Fprintln(w, "No possible solutions")
	case n == 1:
		fmt.Fprintf(w, "Only 1 possible solution: %s\n", ws[0])
	case limit > 0 && n > limit:
		fmt.Fprintf(w, "%d possible solutions\n", n)
	case n <= 10:
		fmt.Fprintf(w, "%d possible solutions: %s\n", n, joinWords(ws))
	default:
		fmt.Fprintf(w, "%d possible solutions:\n", n)
		for i := 0; i < n; i += 10 {
			fmt.Fprintf(w, "  %s\n", joinWords(ws[i:min(i+10, n)]))
		}
	}
}

func joinWords(ws []words.Word) string {
	s := make([]string, len(ws))
	for i, w := range ws {
		s[i] = w.String()
	}
	return strings.Join(s, ", ")
}

// printLetters shows unsolved letters by frequency, overall and per
// unsolved position. With two or fewer candidates it prints nothing.
func printLetters(w io.Writer, n int, lc candidates.LetterCounts) {
	if n <= 2 {
		return
	}
	fmt.Fprintf(w, "Order of most common unsolved letters: %s\n", letters(lc.MostCommon()))
	for i := 0; i < words.Length; i++ {
		if ranked := lc.MostCommonAt(i); ranked != nil {
			fmt.Fprintf(w, "Order of most common position %d letters: %s\n", i+1, letters(ranked))
		}
	}
}

func letters(ranked []candidates.LetterCount) string {
	b := make([]byte, len(ranked))
	for i, lc := range ranked {
		b[i] = lc.Letter
	}
	return string(b)
}

func printCombos(w io.Writer, rec game.Record) {
	for _, c := range candidates.LetterCombos(rec) {
		fmt.Fprintln(w, c)
	}
}
