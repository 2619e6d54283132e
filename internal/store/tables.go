package store

import (
	"context"
	"time"

	"github.com/Joeltronics/wordlebot/internal/game"
)

// Table is a persisted dense feedback table. Cells are row-major,
// Rows x Cols packed codes.
type Table struct {
	Name        string
	Rows        int
	Cols        int
	Fingerprint string
	Cells       []game.Code
	CreatedAt   time.Time
}

// TableStore persists lookup tables by name. Callers validate the shape of
// what they load.
type TableStore interface {
	LoadTable(ctx context.Context, name string) (*Table, error)
	SaveTable(ctx context.Context, t *Table) error
	Close() error
}
