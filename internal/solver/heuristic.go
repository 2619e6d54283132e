package solver

import (
	"golang.org/x/exp/slices"

	"github.com/Joeltronics/wordlebot/internal/candidates"
	"github.com/Joeltronics/wordlebot/internal/words"
)

// Scorer ranks guesses by how common their letters are among the
// candidates. Letters already pinned by hits are not counted.
type Scorer struct {
	counts     candidates.LetterCounts
	positional bool
}

// Ranked is a guess and its heuristic score.
type Ranked struct {
	Word  words.Word
	Score int
}

// NewScorer counts letters over cands.
func NewScorer(cands []words.Word, solved candidates.SolvedMask, positional bool) *Scorer {
	return &Scorer{
		counts:     candidates.CountLetters(cands, solved, positional),
		positional: positional,
	}
}

// Score sums the frequency of each distinct letter of w, plus the frequency
// of each letter at its own position when positional scoring is on.
func (s *Scorer) Score(w words.Word) int {
	var seen uint32
	total := 0
	for i := 0; i < words.Length; i++ {
		c := w.At(i) - 'A'
		if bit := uint32(1) << c; seen&bit == 0 {
			seen |= bit
			total += s.counts.Overall[c]
		}
		if s.positional {
			if p := s.counts.Positional[i]; p != nil {
				total += p[c]
			}
		}
	}
	return total
}

// Rank scores ws and sorts them best first. Equal scores are ordered
// alphabetically.
func (s *Scorer) Rank(ws []words.Word) []Ranked {
	out := make([]Ranked, len(ws))
	for i, w := range ws {
		out[i] = Ranked{Word: w, Score: s.Score(w)}
	}
	slices.SortFunc(out, func(a, b Ranked) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return words.Compare(a.Word, b.Word)
	})
	return out
}

// Top returns the n best words of ws, skipping any for which exclude
// returns true. exclude may be nil.
func (s *Scorer) Top(ws []words.Word, n int, exclude func(words.Word) bool) []words.Word {
	out := make([]words.Word, 0, n)
	for _, r := range s.Rank(ws) {
		if len(out) >= n {
			break
		}
		if exclude != nil && exclude(r.Word) {
			continue
		}
		out = append(out, r.Word)
	}
	return out
}
