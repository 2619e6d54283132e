package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joeltronics/wordlebot/internal/candidates"
	"github.com/Joeltronics/wordlebot/internal/game"
	"github.com/Joeltronics/wordlebot/internal/match"
	"github.com/Joeltronics/wordlebot/internal/words"
)

func testCatalog(t *testing.T) *words.Catalog {
	t.Helper()
	cat, err := words.NewBuilder().
		AddSolutions("CRANE", "CRATE", "CRAZE", "SLATE", "BOOKS", "BROOK", "MOUNT").
		AddExtras("TANZY", "ZZZZZ", "NNNNN").
		Build()
	require.NoError(t, err)
	return cat
}

func lookup(t *testing.T, cat *words.Catalog, ss ...string) []words.Word {
	t.Helper()
	out := make([]words.Word, len(ss))
	for i, s := range ss {
		w, ok := cat.Lookup(s)
		require.True(t, ok, s)
		out[i] = w
	}
	return out
}

func TestScorer(t *testing.T) {
	cat := testCatalog(t)
	cands := lookup(t, cat, "CRANE", "SLATE")
	s := NewScorer(cands, candidates.MaskFromWords(cands), true)

	assert.Equal(t, 6, s.Score(cands[0]))
	assert.Equal(t, 6, s.Score(cands[1]))
	assert.Equal(t, 2, s.Score(lookup(t, cat, "TANZY")[0]))
	assert.Equal(t, 0, s.Score(lookup(t, cat, "ZZZZZ")[0]))
	// N counted once overall, once at the unsolved position 3
	assert.Equal(t, 2, s.Score(lookup(t, cat, "NNNNN")[0]))

	flat := NewScorer(cands, candidates.MaskFromWords(cands), false)
	assert.Equal(t, 1, flat.Score(lookup(t, cat, "NNNNN")[0]))

	ranked := s.Rank(lookup(t, cat, "ZZZZZ", "TANZY", "SLATE", "CRANE"))
	got := make([]string, len(ranked))
	for i, r := range ranked {
		got[i] = r.Word.String()
	}
	assert.Equal(t, []string{"CRANE", "SLATE", "TANZY", "ZZZZZ"}, got)

	isCand := func(w words.Word) bool { return w.ID() == cands[0].ID() || w.ID() == cands[1].ID() }
	top := s.Top(cat.Allowed(), 2, isCand)
	require.Len(t, top, 2)
	assert.Equal(t, "CRATE", top[0].String())
	assert.Equal(t, "CRAZE", top[1].String())
}

func TestSummarize(t *testing.T) {
	s := summarize([]int{1, 2, 3})
	assert.InDelta(t, 2.0, s.mean, 1e-9)
	assert.InDelta(t, 14.0/3, s.meanSq, 1e-9)
	assert.Equal(t, 3.0, s.max)
	assert.Equal(t, summary{}, summarize([]float64(nil)))
}

func TestEvaluatorPrefersFullSplit(t *testing.T) {
	cat := testCatalog(t)
	cands := lookup(t, cat, "CRANE", "CRATE", "CRAZE")
	full := candidates.FromWords(cat, cands)

	e := NewEvaluator(match.Direct{}, DefaultParams().Weights)
	ev := e.Best(lookup(t, cat, "CRANE", "TANZY"), cands, cands, full)

	assert.Equal(t, "TANZY", ev.Guess.String())
	assert.False(t, ev.Candidate)
	assert.Equal(t, 1, ev.Max)
	assert.InDelta(t, 1.16, ev.Score, 1e-9)
	assert.Equal(t, int64(2*3*3), e.Comparisons)
}

func TestEvaluatorStopsAtDecisiveCandidate(t *testing.T) {
	cat := testCatalog(t)
	cands := lookup(t, cat, "CRANE", "SLATE")
	full := candidates.FromWords(cat, cands)

	e := NewEvaluator(match.Direct{}, DefaultParams().Weights)
	ev := e.Best(lookup(t, cat, "CRANE", "TANZY"), cands, cands, full)

	assert.Equal(t, "CRANE", ev.Guess.String())
	assert.True(t, ev.Decisive)
	assert.Equal(t, int64(1*2*2), e.Comparisons)
}

func TestEvaluatorPanicsOnEmptyInput(t *testing.T) {
	cat := testCatalog(t)
	e := NewEvaluator(match.Direct{}, DefaultParams().Weights)
	assert.Panics(t, func() { e.Best(nil, cat.Solutions(), cat.Solutions(), candidates.All(cat)) })
}

func TestRecursiveMinimaxFindsPerfectSplit(t *testing.T) {
	cat := testCatalog(t)
	p := DefaultParams()
	p.RecursionMinimaxDepth = 0

	r := newRecursive(match.Direct{}, cat.Allowed(), p)
	res, ok := r.Solve(lookup(t, cat, "CRANE", "CRATE", "CRAZE"))
	require.True(t, ok)
	assert.Equal(t, "TANZY", res.Guess.String())
	assert.True(t, res.Perfect)
	assert.Equal(t, 1.0, res.Score)
	assert.Greater(t, r.nodes, 0)
}

func TestRecursiveAverage(t *testing.T) {
	cat := testCatalog(t)
	r := newRecursive(match.Direct{}, cat.Allowed(), DefaultParams())
	res, ok := r.Solve(lookup(t, cat, "CRANE", "CRATE", "CRAZE"))
	require.True(t, ok)
	// a candidate guess: right one time in three, else a coin flip
	assert.Equal(t, "CRANE", res.Guess.String())
	assert.InDelta(t, 1.0, res.Score, 1e-9)
	assert.False(t, res.Perfect)
}

// rhymeCatalog returns n words that differ only in the first letter, so no
// guess tells more than one of them apart.
func rhymeCatalog(t *testing.T, n int) *words.Catalog {
	t.Helper()
	all := []string{"BATCH", "CATCH", "HATCH", "LATCH", "MATCH", "PATCH", "WATCH"}
	cat, err := words.NewBuilder().
		AddSolutions(all[:n]...).
		AddExtras("ZZZZZ").
		Build()
	require.NoError(t, err)
	return cat
}

func TestRecursiveInconclusiveAtDepthLimit(t *testing.T) {
	cat := rhymeCatalog(t, 7)
	p := DefaultParams()
	p.RecursionMaxDepth = 1

	r := newRecursive(match.Direct{}, cat.Allowed(), p)
	_, ok := r.Solve(cat.Solutions())
	assert.False(t, ok)
}

func TestRecursiveDeepChain(t *testing.T) {
	cat := rhymeCatalog(t, 5)
	p := DefaultParams()
	p.RecursionMinimaxDepth = 0

	r := newRecursive(match.Direct{}, cat.Allowed(), p)
	res, ok := r.Solve(cat.Solutions())
	require.True(t, ok)
	// any candidate only ever eliminates itself
	assert.Equal(t, 4.0, res.Score)
	assert.Equal(t, "BATCH", res.Guess.String())

	// seven of them need more guesses than the depth limit allows
	cat7 := rhymeCatalog(t, 7)
	r = newRecursive(match.Direct{}, cat7.Allowed(), p)
	_, ok = r.Solve(cat7.Solutions())
	assert.False(t, ok)
}

// assertSplitsApart checks that every feedback g can receive over cands
// leaves at most one of them.
func assertSplitsApart(t *testing.T, g words.Word, cands []words.Word) {
	t.Helper()
	seen := make(map[game.Code]string, len(cands))
	for _, c := range cands {
		code := match.Direct{}.Feedback(g, c)
		if prev, ok := seen[code]; ok {
			t.Errorf("%s answers %s and %s alike (%s)", g, prev, c, code)
		}
		seen[code] = c.String()
	}
}

// subsets returns every subset of ws with at least min words, in order.
func subsets(ws []words.Word, min int) [][]words.Word {
	var out [][]words.Word
	for mask := 1; mask < 1<<len(ws); mask++ {
		var sub []words.Word
		for i, w := range ws {
			if mask&(1<<i) != 0 {
				sub = append(sub, w)
			}
		}
		if len(sub) >= min {
			out = append(out, sub)
		}
	}
	return out
}

func TestRecursiveScoreOfOneSplitsEveryOutcome(t *testing.T) {
	sets := subsets(testCatalog(t).Solutions(), 3)
	catalogs := []*words.Catalog{testCatalog(t)}
	for n := 3; n <= 5; n++ {
		cat := rhymeCatalog(t, n)
		catalogs = append(catalogs, cat)
	}

	for _, minimaxDepth := range []int{0, 1} {
		p := DefaultParams()
		p.RecursionMinimaxDepth = minimaxDepth
		checked := 0
		for ci, cat := range catalogs {
			cases := [][]words.Word{cat.Solutions()}
			if ci == 0 {
				cases = sets
			}
			for _, cands := range cases {
				r := newRecursive(match.Direct{}, cat.Allowed(), p)
				res, ok := r.Solve(cands)
				if !ok {
					continue
				}
				if res.Perfect || (minimaxDepth == 0 && res.Score == 1) {
					assertSplitsApart(t, res.Guess, cands)
					checked++
				}
			}
		}
		assert.Positive(t, checked, "minimax depth %d", minimaxDepth)
	}
}
