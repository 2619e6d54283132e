package candidates

import (
	"sort"

	"github.com/Joeltronics/wordlebot/internal/game"
	"github.com/Joeltronics/wordlebot/internal/words"
)

// LetterCombos lists every way the known letters can be placed: hits fixed
// at their positions, and each present letter that is not already accounted
// for by a hit placed in an unsolved position where it has not been marked
// present. Unknown positions are rendered as '-'.
func LetterCombos(record game.Record) []string {
	var green [words.Length]byte
	for _, g := range record {
		for i, m := range g.Result {
			if m == game.MarkHit {
				green[i] = g.Word.At(i)
			}
		}
	}

	yellow := make(map[byte]map[int]bool)
	for _, g := range record {
		seen := make(map[byte]bool)
		for i := 0; i < words.Length; i++ {
			letter := g.Word.At(i)
			if seen[letter] {
				continue
			}
			seen[letter] = true

			var yellowPos []int
			greenThis, greenAny := 0, 0
			for j := 0; j < words.Length; j++ {
				if g.Word.At(j) == letter {
					switch g.Result[j] {
					case game.MarkPresent:
						yellowPos = append(yellowPos, j)
					case game.MarkHit:
						greenThis++
					}
				}
				if green[j] == letter {
					greenAny++
				}
			}
			if greenThis+len(yellowPos)-greenAny <= 0 {
				continue
			}
			if yellow[letter] == nil {
				yellow[letter] = make(map[int]bool)
			}
			for _, p := range yellowPos {
				yellow[letter][p] = true
			}
		}
	}

	letters := make([]byte, 0, len(yellow))
	for l := range yellow {
		letters = append(letters, l)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })

	combos := [][words.Length]byte{green}
	for _, letter := range letters {
		var next [][words.Length]byte
		for _, combo := range combos {
			for p := 0; p < words.Length; p++ {
				if combo[p] == 0 && green[p] == 0 && !yellow[letter][p] {
					c := combo
					c[p] = letter
					next = append(next, c)
				}
			}
		}
		combos = next
	}

	set := make(map[string]struct{}, len(combos))
	for _, c := range combos {
		b := make([]byte, words.Length)
		for i, l := range c {
			if l == 0 {
				b[i] = '-'
			} else {
				b[i] = l
			}
		}
		set[string(b)] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
