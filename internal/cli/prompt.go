// internal/cli/prompt.go
//
// Line-oriented prompting shared by play and assist modes.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Joeltronics/wordlebot/internal/game"
	"github.com/Joeltronics/wordlebot/internal/words"
)

// ErrQuit is returned when the user quits or input ends.
var ErrQuit = errors.New("quit")

var exitWords = map[string]bool{"q": true, "x": true, "quit": true, "exit": true}

// command is an extra prompt command such as "list".
type command struct {
	help string
	run  func()
}

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
	cat *words.Catalog
}

func newPrompter(in io.Reader, out io.Writer, cat *words.Catalog) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out, cat: cat}
}

// line reads one trimmed, lower-cased line.
func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", ErrQuit
	}
	s := strings.ToLower(strings.TrimSpace(p.in.Text()))
	if exitWords[s] {
		return "", ErrQuit
	}
	return s, nil
}

// askWord prompts until the user enters a catalog word. Extra commands run
// in place and re-prompt.
func (p *prompter) askWord(turn int, cmds map[string]command) (words.Word, error) {
	for {
		s, err := p.line(fmt.Sprintf("Enter guess %d/%d (or 'q' to quit, 'help' for commands): ", turn, game.DefaultRows))
		if err != nil {
			return words.Word{}, err
		}
		if s == "" {
			continue
		}
		if s == "help" {
			p.help(cmds)
			continue
		}
		if c, ok := cmds[s]; ok {
			c.run()
			continue
		}
		if len(s) != words.Length {
			fmt.Fprintf(p.out, "Guess must be length %d\n", words.Length)
			continue
		}
		w, err := p.cat.Parse(s)
		if err != nil {
			fmt.Fprintf(p.out, "Invalid word: %s\n", strings.ToUpper(s))
			continue
		}
		return w, nil
	}
}

// askResult prompts until the user enters a valid feedback pattern.
func (p *prompter) askResult() (game.Pattern, error) {
	for {
		s, err := p.line("Enter result (G = hit, Y = present, - = miss): ")
		if err != nil {
			return game.Pattern{}, err
		}
		pat, err := game.ParsePattern(s)
		if err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		return pat, nil
	}
}

func (p *prompter) help(cmds map[string]command) {
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(p.out, "  %-8s %s\n", name, cmds[name].help)
	}
	fmt.Fprintf(p.out, "  %-8s %s\n", "q", "Quit")
}
