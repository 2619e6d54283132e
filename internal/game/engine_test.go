package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joeltronics/wordlebot/internal/words"
)

func TestCompute(t *testing.T) {
	cases := []struct {
		guess, secret, want string
	}{
		{"BROOK", "BOOKS", "G-GYY"},
		{"BOOKS", "BROOK", "GYGY-"},
		{"BROOK", "MOUNT", "--Y--"},
		{"ACXYZ", "ABCDE", "GY---"},
		{"MOUNT", "BOOKS", "-G---"},
		{"SPEED", "ABIDE", "--Y-Y"},
		{"CRANE", "CRANE", "GGGGG"},
		{"EERIE", "THREE", "Y-G-G"},
	}
	for _, tc := range cases {
		t.Run(tc.guess+"/"+tc.secret, func(t *testing.T) {
			assert.Equal(t, tc.want, Compute(tc.guess, tc.secret).String())
		})
	}
}

func TestComputeNeverOvercountsRepeats(t *testing.T) {
	// three E's guessed, one E in the secret
	p := Compute("EEEXX", "ABCDE")
	n := 0
	for _, m := range p {
		if m == MarkPresent || m == MarkHit {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestPackRoundTrip(t *testing.T) {
	seen := make(map[Code]bool)
	var p Pattern
	var walk func(i int)
	walk = func(i int) {
		if i == len(p) {
			c := p.Pack()
			require.Less(t, int(c), NumCodes)
			assert.Equal(t, p, c.Unpack())
			assert.False(t, seen[c], "duplicate code %d", c)
			seen[c] = true
			return
		}
		for m := MarkUnknown; m <= MarkHit; m++ {
			p[i] = m
			walk(i + 1)
		}
	}
	walk(0)
	assert.Len(t, seen, NumCodes)
	assert.True(t, AllHit.Pack().Solved())
}

func TestPackPanicsOnBadMark(t *testing.T) {
	assert.Panics(t, func() { Pattern{MarkHit, 7}.Pack() })
}

func TestParsePattern(t *testing.T) {
	p, err := ParsePattern("g-y--")
	require.NoError(t, err)
	assert.Equal(t, Pattern{MarkHit, MarkMiss, MarkPresent, MarkMiss, MarkMiss}, p)

	alias, err := ParsePattern("20100")
	require.NoError(t, err)
	assert.Equal(t, p, alias)

	_, err = ParsePattern("GGGG")
	assert.ErrorIs(t, err, ErrInvalidPattern)
	_, err = ParsePattern("GGGGZ")
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func testCatalog(t *testing.T, sols ...string) *words.Catalog {
	t.Helper()
	cat, err := words.NewBuilder().AddSolutions(sols...).Build()
	require.NoError(t, err)
	return cat
}

func TestGameWin(t *testing.T) {
	cat := testCatalog(t, "CRANE", "SLATE", "BOOKS")
	crane, _ := cat.Lookup("crane")
	slate, _ := cat.Lookup("slate")

	g := New(crane, false)
	p, st, err := g.ApplyGuess(slate)
	require.NoError(t, err)
	assert.Equal(t, "--G-G", p.String())
	assert.Equal(t, StatePlaying, st)

	_, st, err = g.ApplyGuess(crane)
	require.NoError(t, err)
	assert.Equal(t, StateWon, st)
	assert.Len(t, g.Guesses, 2)

	_, _, err = g.ApplyGuess(crane)
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestGameLossAndEndless(t *testing.T) {
	cat := testCatalog(t, "CRANE", "BOOKS")
	crane, _ := cat.Lookup("CRANE")
	books, _ := cat.Lookup("BOOKS")

	g := New(crane, false)
	var st State
	for i := 0; i < DefaultRows; i++ {
		_, st, _ = g.ApplyGuess(books)
	}
	assert.Equal(t, StateLost, st)

	e := New(crane, true)
	for i := 0; i < DefaultRows+2; i++ {
		_, st, _ = e.ApplyGuess(books)
	}
	assert.Equal(t, StatePlaying, st)
	_, st, _ = e.ApplyGuess(crane)
	assert.Equal(t, StateWon, st)
}

func TestKeyboardKeepsBestMark(t *testing.T) {
	cat := testCatalog(t, "ABCDE", "AXXXX", "XAXXX")
	ax, _ := cat.Lookup("AXXXX")
	xa, _ := cat.Lookup("XAXXX")

	var kb Keyboard
	kb.Add(Guess{Word: ax, Result: Pattern{MarkHit, MarkMiss, MarkMiss, MarkMiss, MarkMiss}})
	kb.Add(Guess{Word: xa, Result: Pattern{MarkMiss, MarkPresent, MarkMiss, MarkMiss, MarkMiss}})
	assert.Equal(t, MarkHit, kb.Status('A'))
	assert.Equal(t, MarkMiss, kb.Status('X'))
	assert.Equal(t, MarkUnknown, kb.Status('Q'))
}
