package candidates

import (
	"sort"

	"github.com/Joeltronics/wordlebot/internal/words"
)

// LetterCounts are letter frequencies among candidates, ignoring letters
// already pinned at their solved position.
type LetterCounts struct {
	Overall [26]int
	// Positional[i] is nil when position i is solved or positional counts
	// were not requested.
	Positional [words.Length]*[26]int
}

// LetterCount is one entry of a frequency ranking.
type LetterCount struct {
	Letter byte
	Count  int
}

// CountLetters counts letter occurrences over cands.
func CountLetters(cands []words.Word, solved SolvedMask, perPosition bool) LetterCounts {
	var lc LetterCounts
	if perPosition {
		for i := range lc.Positional {
			if !solved.IsSolved(i) {
				lc.Positional[i] = new([26]int)
			}
		}
	}
	for _, w := range cands {
		for i := 0; i < words.Length; i++ {
			c := w.At(i)
			if solved[i] == c {
				continue
			}
			lc.Overall[c-'A']++
			if p := lc.Positional[i]; p != nil {
				p[c-'A']++
			}
		}
	}
	return lc
}

// MostCommon ranks the overall counts.
func (lc LetterCounts) MostCommon() []LetterCount { return rank(&lc.Overall) }

// MostCommonAt ranks the counts at position i, or returns nil when that
// position is solved.
func (lc LetterCounts) MostCommonAt(i int) []LetterCount {
	if lc.Positional[i] == nil {
		return nil
	}
	return rank(lc.Positional[i])
}

// rank orders non-zero counts by count descending, then letter.
func rank(counts *[26]int) []LetterCount {
	var out []LetterCount
	for i, n := range counts {
		if n > 0 {
			out = append(out, LetterCount{Letter: byte('A' + i), Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Letter < out[j].Letter
	})
	return out
}
