// internal/match/table.go
//
// Dense guess x secret feedback table.
//
// Layout:
//   - rows: every allowed guess, indexed by word id.
//   - cols: every solution, indexed by word id (solutions hold ids 0..S-1).
//   - cells: row-major packed codes.
//
// Building is O(G x S) and is the most expensive one-time cost, so tables
// are persisted through a store.TableStore and validated against the live
// catalog on load. A mismatch is recovered by rebuilding.

package match

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/Joeltronics/wordlebot/internal/game"
	"github.com/Joeltronics/wordlebot/internal/store"
	"github.com/Joeltronics/wordlebot/internal/words"
)

// TableName is the storage key; the table is guess-major.
const TableName = "guess-major"

// ErrCacheMismatch means a stored table does not fit the live catalog.
var ErrCacheMismatch = errors.New("lookup table does not match catalog")

// Table is a read-only Oracle backed by precomputed codes.
type Table struct {
	rows, cols  int
	fingerprint string
	cells       []game.Code
}

// Feedback looks up the code, computing it directly for pairs outside the
// table so the oracle stays total.
func (t *Table) Feedback(guess, secret words.Word) game.Code {
	g, s := guess.ID(), secret.ID()
	if g < t.rows && s < t.cols {
		return t.cells[g*t.cols+s]
	}
	return Direct{}.Feedback(guess, secret)
}

// Shape returns the number of rows (guesses) and columns (secrets).
func (t *Table) Shape() (rows, cols int) { return t.rows, t.cols }

// BuildTable computes the full table for cat, one goroutine per row.
func BuildTable(ctx context.Context, cat *words.Catalog, showProgress bool) (*Table, error) {
	start := time.Now()
	t := &Table{
		rows:        cat.Len(),
		cols:        cat.NumSolutions(),
		fingerprint: cat.Fingerprint(),
	}
	t.cells = make([]game.Code, t.rows*t.cols)

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.Default(int64(t.rows), "building lookup table")
	} else {
		bar = progressbar.DefaultSilent(int64(t.rows))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	secrets := cat.Solutions()
	for _, guess := range cat.Allowed() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := t.cells[guess.ID()*t.cols : (guess.ID()+1)*t.cols]
			for _, secret := range secrets {
				row[secret.ID()] = Direct{}.Feedback(guess, secret)
			}
			return bar.Add(1)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	_ = bar.Finish()

	log.Debug().
		Int("rows", t.rows).
		Int("cols", t.cols).
		Dur("took", time.Since(start)).
		Msg("lookup table built")
	return t, nil
}

// FromStored validates a stored table against cat.
func FromStored(cat *words.Catalog, st *store.Table) (*Table, error) {
	switch {
	case st.Rows != cat.Len() || st.Cols != cat.NumSolutions():
		return nil, fmt.Errorf("%w: stored %dx%d, catalog %dx%d",
			ErrCacheMismatch, st.Rows, st.Cols, cat.Len(), cat.NumSolutions())
	case len(st.Cells) != st.Rows*st.Cols:
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrCacheMismatch, len(st.Cells), st.Rows, st.Cols)
	case st.Fingerprint != cat.Fingerprint():
		return nil, fmt.Errorf("%w: fingerprint %s, catalog %s", ErrCacheMismatch, st.Fingerprint, cat.Fingerprint())
	}
	return &Table{rows: st.Rows, cols: st.Cols, fingerprint: st.Fingerprint, cells: st.Cells}, nil
}

// Stored converts t for persistence.
func (t *Table) Stored() *store.Table {
	return &store.Table{
		Name:        TableName,
		Rows:        t.rows,
		Cols:        t.cols,
		Fingerprint: t.fingerprint,
		Cells:       t.cells,
		CreatedAt:   time.Now().UTC(),
	}
}

// LoadOrBuild returns the stored table for cat when it fits, otherwise builds
// a new one and saves it. Failing to save is logged, not returned.
func LoadOrBuild(ctx context.Context, cat *words.Catalog, tables store.TableStore, showProgress bool) (*Table, error) {
	start := time.Now()
	st, err := tables.LoadTable(ctx, TableName)
	switch {
	case err == nil:
		t, verr := FromStored(cat, st)
		if verr == nil {
			log.Debug().Dur("took", time.Since(start)).Msg("lookup table loaded")
			return t, nil
		}
		log.Warn().Err(verr).Msg("stored lookup table rejected, regenerating")
	case errors.Is(err, store.ErrNotFound):
		log.Info().Msg("no stored lookup table, building")
	default:
		log.Warn().Err(err).Msg("loading lookup table failed, regenerating")
	}

	t, err := BuildTable(ctx, cat, showProgress)
	if err != nil {
		return nil, err
	}
	if err := tables.SaveTable(ctx, t.Stored()); err != nil {
		log.Warn().Err(err).Msg("saving lookup table failed")
	}
	return t, nil
}
