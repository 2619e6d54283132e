// internal/words/words.go
//
// Word catalog for the solver.
//
// Responsibilities:
//   - Normalize and validate 5-letter words.
//   - Assign every word a dense integer identity, solutions first.
//   - Expose the allowed-guess universe and the secret-candidate universe.
//
// Identity layout:
//   - ids 0..S-1 are solution words, sorted alphabetically.
//   - ids S..G-1 are extra allowed guesses, sorted alphabetically.
//
// A Catalog is immutable once built and safe to share between goroutines.

package words

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Length is the number of letters in every word.
const Length = 5

var (
	ErrInvalidWord   = errors.New("invalid word")
	ErrDuplicateWord = errors.New("duplicate word")
	ErrEmptyList     = errors.New("word list is empty")
)

// Word is a catalog entry. Two words from the same catalog are equal iff
// their ids are equal.
type Word struct {
	id   int
	text string
}

// ID returns the dense identity assigned at build time.
func (w Word) ID() int { return w.id }

// String returns the upper-case letters of the word.
func (w Word) String() string { return w.text }

// At returns the letter at position i.
func (w Word) At(i int) byte { return w.text[i] }

// IsZero reports whether w is the zero Word (not from any catalog).
func (w Word) IsZero() bool { return w.text == "" }

// Compare orders words lexicographically by their letters.
func Compare(a, b Word) int { return strings.Compare(a.text, b.text) }

// Normalize trims and upper-cases s, and checks it is exactly Length
// letters A-Z.
func Normalize(s string) (string, error) {
	w := strings.ToUpper(strings.TrimSpace(s))
	if len(w) != Length {
		return "", fmt.Errorf("%w: %q must have %d letters", ErrInvalidWord, s, Length)
	}
	if !isAlpha(w) {
		return "", fmt.Errorf("%w: %q has non-alphabetic characters", ErrInvalidWord, s)
	}
	return w, nil
}

// isAlpha reports whether s is all upper-case ASCII letters.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// Builder collects word lists and produces an immutable Catalog.
type Builder struct {
	solutions []string
	extras    []string
	err       error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// AddSolutions adds words that may be the secret. A duplicate inside the
// solution list is an error.
func (b *Builder) AddSolutions(list ...string) *Builder {
	b.solutions = b.add(b.solutions, list)
	return b
}

// AddExtras adds words accepted only as guesses. Duplicates among the
// extras are an error.
func (b *Builder) AddExtras(list ...string) *Builder {
	b.extras = b.add(b.extras, list)
	return b
}

func (b *Builder) add(dst, list []string) []string {
	if b.err != nil {
		return dst
	}
	seen := make(map[string]struct{}, len(dst)+len(list))
	for _, w := range dst {
		seen[w] = struct{}{}
	}
	for _, raw := range list {
		w, err := Normalize(raw)
		if err != nil {
			b.err = err
			return dst
		}
		if _, ok := seen[w]; ok {
			b.err = fmt.Errorf("%w: %s", ErrDuplicateWord, w)
			return dst
		}
		seen[w] = struct{}{}
		dst = append(dst, w)
	}
	return dst
}

// Build assigns identities and returns the catalog. Extras that are also
// solutions are folded into the solution range.
func (b *Builder) Build() (*Catalog, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.solutions) == 0 {
		return nil, fmt.Errorf("solutions: %w", ErrEmptyList)
	}

	sols := append([]string(nil), b.solutions...)
	sort.Strings(sols)

	index := make(map[string]int, len(sols)+len(b.extras))
	for _, w := range sols {
		index[w] = len(index)
	}
	var extras []string
	for _, w := range b.extras {
		if _, ok := index[w]; !ok {
			extras = append(extras, w)
		}
	}
	sort.Strings(extras)
	for _, w := range extras {
		index[w] = len(index)
	}

	all := make([]Word, 0, len(index))
	for _, w := range sols {
		all = append(all, Word{id: len(all), text: w})
	}
	for _, w := range extras {
		all = append(all, Word{id: len(all), text: w})
	}

	c := &Catalog{words: all, numSolutions: len(sols), index: index}
	c.fingerprint = fingerprint(all, len(sols))
	return c, nil
}

// fingerprint hashes the ordered word list so persisted tables can detect a
// changed catalog of the same size.
func fingerprint(all []Word, numSolutions int) string {
	h, _ := blake2b.New256(nil)
	fmt.Fprintf(h, "%d/%d;", numSolutions, len(all))
	for _, w := range all {
		h.Write([]byte(w.text))
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// Catalog is the read-only universe of words.
type Catalog struct {
	words        []Word
	numSolutions int
	index        map[string]int
	fingerprint  string
}

// Len is the number of allowed guesses (solutions included).
func (c *Catalog) Len() int { return len(c.words) }

// NumSolutions is the number of possible secrets.
func (c *Catalog) NumSolutions() int { return c.numSolutions }

// Allowed returns every allowed guess in id order. The slice must not be
// modified.
func (c *Catalog) Allowed() []Word { return c.words }

// Solutions returns the possible secrets in id order. The slice must not be
// modified.
func (c *Catalog) Solutions() []Word { return c.words[:c.numSolutions] }

// ByID returns the word with the given identity.
func (c *Catalog) ByID(id int) Word { return c.words[id] }

// IsSolution reports whether w may be the secret.
func (c *Catalog) IsSolution(w Word) bool { return w.id < c.numSolutions }

// Fingerprint identifies the catalog contents and ordering.
func (c *Catalog) Fingerprint() string { return c.fingerprint }

// Lookup finds a word by its letters, case-insensitively.
func (c *Catalog) Lookup(s string) (Word, bool) {
	id, ok := c.index[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return Word{}, false
	}
	return c.words[id], true
}

// Parse normalizes s and looks it up, returning ErrInvalidWord when it is
// malformed or not in the catalog.
func (c *Catalog) Parse(s string) (Word, error) {
	n, err := Normalize(s)
	if err != nil {
		return Word{}, err
	}
	w, ok := c.Lookup(n)
	if !ok {
		return Word{}, fmt.Errorf("%w: %s is not in the word list", ErrInvalidWord, n)
	}
	return w, nil
}
