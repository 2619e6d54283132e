package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joeltronics/wordlebot/internal/game"
)

func sampleTable() *Table {
	return &Table{
		Name:        "guess-major",
		Rows:        2,
		Cols:        3,
		Fingerprint: "abc123",
		Cells:       []game.Code{0, 1, 2, 341, 682, 1023},
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestSQLiteTablesRoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "tables.db")

	st, err := OpenSQLiteTables(dsn)
	require.NoError(t, err)

	_, err = st.LoadTable(ctx, "guess-major")
	assert.ErrorIs(t, err, ErrNotFound)

	want := sampleTable()
	require.NoError(t, st.SaveTable(ctx, want))
	require.NoError(t, st.Close())

	// reopening must not re-run migrations destructively
	st, err = OpenSQLiteTables(dsn)
	require.NoError(t, err)
	defer st.Close()

	got, err := st.LoadTable(ctx, "guess-major")
	require.NoError(t, err)
	assert.Equal(t, want.Rows, got.Rows)
	assert.Equal(t, want.Cols, got.Cols)
	assert.Equal(t, want.Fingerprint, got.Fingerprint)
	assert.Equal(t, want.Cells, got.Cells)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))

	want.Fingerprint = "def456"
	require.NoError(t, st.SaveTable(ctx, want))
	got, err = st.LoadTable(ctx, "guess-major")
	require.NoError(t, err)
	assert.Equal(t, "def456", got.Fingerprint)
}

func TestMemoryTables(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryTables()
	_, err := m.LoadTable(ctx, "guess-major")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.SaveTable(ctx, sampleTable()))
	got, err := m.LoadTable(ctx, "guess-major")
	require.NoError(t, err)
	assert.Equal(t, 6, len(got.Cells))
	assert.NoError(t, m.Close())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemory[int]()

	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, "a", 1))
	require.NoError(t, s.Save(ctx, "a", 2))
	v, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "missing"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDeleteFunc(t *testing.T) {
	ctx := context.Background()
	s := NewMemory[int]()
	for i, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, s.Save(ctx, id, i))
	}

	n, err := s.DeleteFunc(ctx, func(id string, v int) bool { return v%2 == 0 })
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	v, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}
