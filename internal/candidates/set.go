// Package candidates tracks which secrets are still consistent with the
// feedback seen so far.
package candidates

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/Joeltronics/wordlebot/internal/game"
	"github.com/Joeltronics/wordlebot/internal/match"
	"github.com/Joeltronics/wordlebot/internal/words"
)

// Set is an immutable set of solution words, stored as a bitset over word
// ids.
type Set struct {
	cat  *words.Catalog
	bits *bitset.BitSet
}

// All returns every solution in cat.
func All(cat *words.Catalog) *Set {
	n := uint(cat.NumSolutions())
	b := bitset.New(n)
	b.FlipRange(0, n)
	return &Set{cat: cat, bits: b}
}

// FromWords builds a set from ws. Words that are not solutions are ignored.
func FromWords(cat *words.Catalog, ws []words.Word) *Set {
	b := bitset.New(uint(cat.NumSolutions()))
	for _, w := range ws {
		if cat.IsSolution(w) {
			b.Set(uint(w.ID()))
		}
	}
	return &Set{cat: cat, bits: b}
}

// Len is the number of candidates.
func (s *Set) Len() int { return int(s.bits.Count()) }

// Contains reports whether w is a candidate.
func (s *Set) Contains(w words.Word) bool { return s.bits.Test(uint(w.ID())) }

// Words returns the candidates in id order, which for solutions is also
// alphabetical order.
func (s *Set) Words() []words.Word {
	out := make([]words.Word, 0, s.Len())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		out = append(out, s.cat.ByID(int(i)))
	}
	return out
}

// Filter returns the candidates c for which guess would have received code
// if c were the secret.
func (s *Set) Filter(o match.Oracle, guess words.Word, code game.Code) *Set {
	b := bitset.New(s.bits.Len())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		if match.Matches(o, guess, s.cat.ByID(int(i)), code) {
			b.Set(i)
		}
	}
	return &Set{cat: s.cat, bits: b}
}

// Intersect returns the candidates in both s and other.
func (s *Set) Intersect(other *Set) *Set {
	return &Set{cat: s.cat, bits: s.bits.Intersection(other.bits)}
}
