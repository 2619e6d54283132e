package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Joeltronics/wordlebot/internal/solver"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "TABLE_CACHE_DSN", "PORT", "SESSION_TTL_HOURS", "SOLVER_COMPLEXITY_LIMIT", "COOKIE_SECURE"} {
		t.Setenv(k, "")
	}
	c := Load()
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "./data/tables.db", c.TableCacheDSN)
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, 24*time.Hour, c.SessionTTL)
	assert.False(t, c.CookieSecure)
	assert.Equal(t, solver.DefaultParams(), c.Solver)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TABLE_CACHE_DSN", TableCacheOff)
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("SOLVER_COMPLEXITY_LIMIT", "1000")
	t.Setenv("SOLVER_RECURSION_MAX", "12")
	t.Setenv("SOLVER_NON_CANDIDATE_PENALTY", "0.5")
	t.Setenv("SOLVER_MINIMAX_DEPTH", "two")

	c := Load()
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, TableCacheOff, c.TableCacheDSN)
	assert.Equal(t, 2*time.Hour, c.SessionTTL)
	assert.True(t, c.CookieSecure)
	assert.Equal(t, 1000, c.Solver.ComplexityLimit)
	assert.Equal(t, 12, c.Solver.RecursionMaxCandidates)
	assert.Equal(t, 0.5, c.Solver.Weights.NonCandidate)
	// unparsable values fall back to the default
	assert.Equal(t, solver.DefaultParams().RecursionMinimaxDepth, c.Solver.RecursionMinimaxDepth)
}

func TestLoadBadBool(t *testing.T) {
	t.Setenv("COOKIE_SECURE", "sometimes")
	assert.False(t, Load().CookieSecure)
}
