// internal/config/config.go
//
// Environment-driven configuration.
//
// Load reads an optional .env file (godotenv) and then the process
// environment. Every setting has a default so the binary runs with no
// configuration at all.
//
// Environment variables:
//   LOG_LEVEL                  zerolog level (default info)
//   WORDS_ANSWERS_FILE         solution list file
//   WORDS_ALLOWED_FILE         extra guess list file
//   TABLE_CACHE_DSN            SQLite path for lookup tables, "memory" or "off"
//   SOLVER_COMPLEXITY_LIMIT    exhaustive evaluator comparison budget
//   SOLVER_RECURSION_MAX       candidate count for exact search
//   SOLVER_RECURSION_PAD       non-candidate guesses per recursion level
//   SOLVER_MINIMAX_DEPTH       recursion depth where minimax takes over
//   SOLVER_NON_CANDIDATE_PENALTY  score penalty for guesses that cannot win
//   PORT                       HTTP port for serve mode
//   SESSION_SECRET             HS256 secret for session tokens
//   SESSION_TTL_HOURS          session token lifetime
//   COOKIE_SECURE              "true" marks the session cookie HTTPS-only
//   DAILY_SALT                 salt for the daily puzzle

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Joeltronics/wordlebot/internal/solver"
)

// Table cache modes besides a file path.
const (
	TableCacheMemory = "memory"
	TableCacheOff    = "off"
)

// Config is the resolved configuration.
type Config struct {
	LogLevel      string
	AnswersFile   string
	AllowedFile   string
	TableCacheDSN string
	Solver        solver.Params
	Port          string
	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool
	DailySalt     string
}

// Load resolves the configuration. A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()

	p := solver.DefaultParams()
	p.ComplexityLimit = envInt("SOLVER_COMPLEXITY_LIMIT", p.ComplexityLimit)
	p.RecursionMaxCandidates = envInt("SOLVER_RECURSION_MAX", p.RecursionMaxCandidates)
	p.RecursionPadGuesses = envInt("SOLVER_RECURSION_PAD", p.RecursionPadGuesses)
	p.RecursionMinimaxDepth = envInt("SOLVER_MINIMAX_DEPTH", p.RecursionMinimaxDepth)
	p.Weights.NonCandidate = envFloat("SOLVER_NON_CANDIDATE_PENALTY", p.Weights.NonCandidate)

	return Config{
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AnswersFile:   os.Getenv("WORDS_ANSWERS_FILE"),
		AllowedFile:   os.Getenv("WORDS_ALLOWED_FILE"),
		TableCacheDSN: getEnv("TABLE_CACHE_DSN", "./data/tables.db"),
		Solver:        p,
		Port:          getEnv("PORT", "5175"),
		SessionSecret: getEnv("SESSION_SECRET", "dev_secret_change_me"),
		SessionTTL:    time.Duration(envInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		CookieSecure:  envBool("COOKIE_SECURE", false),
		DailySalt:     getEnv("DAILY_SALT", "local_dev_salt"),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-integer setting")
		return def
	}
	return n
}

func envBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-boolean setting")
		return def
	}
	return b
}

func envFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-numeric setting")
		return def
	}
	return f
}
