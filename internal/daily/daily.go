// Package daily picks the secret word for a calendar day.
//
// The pick is a keyed hash of the date, so every process sharing a salt
// agrees on the day's word without any shared state.
package daily

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/Joeltronics/wordlebot/internal/words"
)

// epoch is the day of puzzle number 0.
var epoch = time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Number returns the puzzle number for t, counted in whole UTC days since
// the first puzzle. Dates before it are negative.
func Number(t time.Time) int {
	y, m, d := t.UTC().Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(day.Sub(epoch).Hours() / 24)
}

// WordIndex maps a date into [0, n) by a blake2b MAC of the date key.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	key := blake2b.Sum256([]byte(salt))
	h, err := blake2b.New256(key[:])
	if err != nil {
		// a 32 byte key is always accepted
		panic(err)
	}
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Secret returns the day's solution word from cat.
func Secret(cat *words.Catalog, date time.Time, salt string) words.Word {
	sols := cat.Solutions()
	return sols[WordIndex(date, salt, len(sols))]
}
