package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joeltronics/wordlebot/internal/game"
	"github.com/Joeltronics/wordlebot/internal/store"
	"github.com/Joeltronics/wordlebot/internal/words"
)

func testCatalog(t *testing.T) *words.Catalog {
	t.Helper()
	cat, err := words.NewBuilder().
		AddSolutions("BOOKS", "BROOK", "MOUNT", "ABCDE", "CRANE", "SLATE").
		AddExtras("ACXYZ", "EERIE", "ZZZZZ").
		Build()
	require.NoError(t, err)
	return cat
}

func TestTableMatchesDirect(t *testing.T) {
	cat := testCatalog(t)
	tbl, err := BuildTable(context.Background(), cat, false)
	require.NoError(t, err)

	rows, cols := tbl.Shape()
	assert.Equal(t, cat.Len(), rows)
	assert.Equal(t, cat.NumSolutions(), cols)

	for _, g := range cat.Allowed() {
		for _, s := range cat.Allowed() {
			assert.Equal(t, Direct{}.Feedback(g, s), tbl.Feedback(g, s), "%s/%s", g, s)
		}
	}
}

func TestDirectFeedback(t *testing.T) {
	cat := testCatalog(t)
	books, _ := cat.Lookup("BOOKS")
	brook, _ := cat.Lookup("BROOK")
	code := Direct{}.Feedback(books, brook)
	assert.Equal(t, "GYGY-", code.String())
	assert.True(t, Matches(Direct{}, books, brook, code))
	assert.False(t, Matches(Direct{}, books, books, code))
}

func TestFromStoredMismatch(t *testing.T) {
	cat := testCatalog(t)
	tbl, err := BuildTable(context.Background(), cat, false)
	require.NoError(t, err)

	st := tbl.Stored()
	_, err = FromStored(cat, st)
	require.NoError(t, err)

	bad := *st
	bad.Fingerprint = "stale"
	_, err = FromStored(cat, &bad)
	assert.ErrorIs(t, err, ErrCacheMismatch)

	bad = *st
	bad.Rows--
	_, err = FromStored(cat, &bad)
	assert.ErrorIs(t, err, ErrCacheMismatch)

	bad = *st
	bad.Cells = bad.Cells[:len(bad.Cells)-1]
	_, err = FromStored(cat, &bad)
	assert.ErrorIs(t, err, ErrCacheMismatch)
}

func TestLoadOrBuild(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog(t)
	tables := store.NewMemoryTables()

	first, err := LoadOrBuild(ctx, cat, tables, false)
	require.NoError(t, err)
	saved, err := tables.LoadTable(ctx, TableName)
	require.NoError(t, err)
	assert.Equal(t, cat.Fingerprint(), saved.Fingerprint)

	second, err := LoadOrBuild(ctx, cat, tables, false)
	require.NoError(t, err)
	assert.Equal(t, first.cells, second.cells)
}

func TestLoadOrBuildRegeneratesStaleTable(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog(t)
	tables := store.NewMemoryTables()

	stale := &store.Table{
		Name:        TableName,
		Rows:        cat.Len(),
		Cols:        cat.NumSolutions(),
		Fingerprint: "from-another-catalog",
		Cells:       make([]game.Code, cat.Len()*cat.NumSolutions()),
	}
	require.NoError(t, tables.SaveTable(ctx, stale))

	tbl, err := LoadOrBuild(ctx, cat, tables, false)
	require.NoError(t, err)

	books, _ := cat.Lookup("BOOKS")
	brook, _ := cat.Lookup("BROOK")
	assert.Equal(t, "GYGY-", tbl.Feedback(books, brook).String())

	saved, err := tables.LoadTable(ctx, TableName)
	require.NoError(t, err)
	assert.Equal(t, cat.Fingerprint(), saved.Fingerprint)
}

func TestBuildTableCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BuildTable(ctx, testCatalog(t), false)
	assert.ErrorIs(t, err, context.Canceled)
}
