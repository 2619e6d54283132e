// internal/httpserver/server.go
//
// HTTP server wiring for the assist API.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Session endpoints: POST /session opens a solver session and returns a
//     signed token; /session/* (require token) feed observed feedback and
//     ask for hints.
//   - Stateless POST /solve: replay a full guess record and get a hint.
//   - Daily endpoints: mounted under /daily.
//
// Notes:
//   - Sessions live in memory only; a restart forgets them. Opening a
//     session first drops those whose tokens have expired.
//   - A session's solver is single-threaded, so each session carries a
//     mutex and requests against one session are serialized.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Joeltronics/wordlebot/internal/candidates"
	"github.com/Joeltronics/wordlebot/internal/game"
	"github.com/Joeltronics/wordlebot/internal/match"
	"github.com/Joeltronics/wordlebot/internal/solver"
	"github.com/Joeltronics/wordlebot/internal/store"
	"github.com/Joeltronics/wordlebot/internal/words"
)

// Options configures a Server.
type Options struct {
	Params     solver.Params
	Secret     string        // HS256 key for session tokens
	SessionTTL time.Duration // token lifetime
	DailySalt  string
	Timeout    time.Duration // per-request handler bound; 0 means 30s

	// CookieSecure marks the session cookie Secure (HTTPS only).
	CookieSecure bool
}

// Server bundles router, catalog, oracle and the session store.
type Server struct {
	r        *chi.Mux
	cat      *words.Catalog
	oracle   match.Oracle
	opts     Options
	sessions store.Store[*session]
}

// session is one assist session.
type session struct {
	mu      sync.Mutex // guards solver
	solver  *solver.Solver
	created time.Time
	expires time.Time // when its token stops being accepted
}

// New constructs a Server, installs middleware, and registers routes.
func New(cat *words.Catalog, oracle match.Oracle, opts Options) *Server {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.SessionTTL == 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	s := &Server{
		r:        chi.NewRouter(),
		cat:      cat,
		oracle:   oracle,
		opts:     opts,
		sessions: store.NewMemory[*session](),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(chimw.Timeout(opts.Timeout)) // bound handler time
	s.r.Use(jsonContentType)             // default JSON responses
	s.r.Use(corsFromEnv)                 // CORS for a browser client

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordlebot","endpoints":["/health","POST /session","POST /solve","/daily"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"answers":     s.cat.NumSolutions(),
			"allowed":     s.cat.Len(),
			"fingerprint": s.cat.Fingerprint(),
		})
	})

	// Sessions
	s.r.Route("/session", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Group(func(r chi.Router) {
			r.Use(s.requireSession())
			r.Delete("/", s.handleEndSession)
			r.Post("/guess", s.handleGuess)
			r.Get("/hint", s.handleHint)
			r.Get("/candidates", s.handleCandidates)
			r.Get("/letters", s.handleLetters)
		})
	})

	s.r.Post("/solve", s.handleSolve)

	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ----------------------------- payloads ------------------------------------

type guessReq struct {
	Word   string `json:"word"`
	Result string `json:"result"` // e.g. "G-Y--"
}

type newSessionRes struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type guessRes struct {
	Candidates int  `json:"candidates"`
	Solved     bool `json:"solved"`
}

type hintRes struct {
	Guess      string  `json:"guess"`
	Strategy   string  `json:"strategy"`
	Candidates int     `json:"candidates"`
	Score      float64 `json:"score,omitempty"`
}

type letterCount struct {
	Letter string `json:"letter"`
	Count  int    `json:"count"`
}

type lettersRes struct {
	Overall   []letterCount   `json:"overall"`
	Positions [][]letterCount `json:"positions,omitempty"` // nil entries are solved
}

// ------------------------------ SESSIONS -----------------------------------

// handleNewSession opens a solver session and returns its token.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sv, err := solver.New(s.cat, s.oracle, s.opts.Params)
	if err != nil {
		log.Error().Err(err).Msg("new solver")
		http.Error(w, `{"error":"solver_config"}`, http.StatusInternalServerError)
		return
	}
	id := uuid.NewString()
	tok, exp, err := s.signSession(id)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.purgeExpired(r.Context(), now())
	if err := s.sessions.Save(r.Context(), id, &session{solver: sv, created: now(), expires: exp}); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	setSessionCookie(w, tok, exp, s.opts.CookieSecure)
	log.Debug().Str("session", id).Msg("session opened")
	_ = json.NewEncoder(w).Encode(newSessionRes{SessionID: id, Token: tok, ExpiresAt: exp})
}

// purgeExpired drops sessions whose tokens expired before t.
func (s *Server) purgeExpired(ctx context.Context, t time.Time) int {
	n, err := s.sessions.DeleteFunc(ctx, func(_ string, sess *session) bool {
		return !sess.expires.After(t)
	})
	if err != nil {
		log.Error().Err(err).Msg("purge sessions")
	}
	if n > 0 {
		log.Debug().Int("sessions", n).Msg("purged expired sessions")
	}
	return n
}

// handleEndSession forgets the session.
func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	id, _ := currentSession(r)
	_ = s.sessions.Delete(r.Context(), id)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleGuess records an externally observed guess and feedback.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	_, sess := currentSession(r)
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	g, err := s.parseGuess(req)
	if err != nil {
		writeError(w, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.solver.AddGuess(g.Word, g.Result); err != nil {
		writeError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(guessRes{
		Candidates: sess.solver.CandidateCount(),
		Solved:     g.Result.Solved(),
	})
}

// handleHint runs the solver for the session's next guess.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	_, sess := currentSession(r)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.writeHint(w, sess.solver)
}

// handleCandidates lists the remaining candidates.
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	_, sess := currentSession(r)
	sess.mu.Lock()
	ws := sess.solver.Candidates()
	sess.mu.Unlock()

	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"count": len(out), "words": out})
}

// handleLetters reports letter frequencies among the remaining candidates.
func (s *Server) handleLetters(w http.ResponseWriter, r *http.Request) {
	_, sess := currentSession(r)
	perPosition := r.URL.Query().Get("perPosition") == "true"

	sess.mu.Lock()
	lc := sess.solver.UnsolvedLetterFrequencies(perPosition)
	sess.mu.Unlock()

	res := lettersRes{Overall: toLetterCounts(lc.MostCommon())}
	if perPosition {
		res.Positions = make([][]letterCount, words.Length)
		for i := range res.Positions {
			if lc.Positional[i] != nil {
				res.Positions[i] = toLetterCounts(lc.MostCommonAt(i))
			}
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

// ------------------------------ STATELESS ----------------------------------

// handleSolve replays a guess record in a throwaway solver.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Guesses []guessReq `json:"guesses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sv, err := solver.New(s.cat, s.oracle, s.opts.Params)
	if err != nil {
		http.Error(w, `{"error":"solver_config"}`, http.StatusInternalServerError)
		return
	}
	for _, gr := range req.Guesses {
		g, err := s.parseGuess(gr)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := sv.AddGuess(g.Word, g.Result); err != nil {
			writeError(w, err)
			return
		}
	}
	s.writeHint(w, sv)
}

// ------------------------------- helpers -----------------------------------

func (s *Server) parseGuess(req guessReq) (game.Guess, error) {
	word, err := s.cat.Parse(req.Word)
	if err != nil {
		return game.Guess{}, err
	}
	p, err := game.ParsePattern(req.Result)
	if err != nil {
		return game.Guess{}, err
	}
	return game.Guess{Word: word, Result: p}, nil
}

func (s *Server) writeHint(w http.ResponseWriter, sv *solver.Solver) {
	guess, err := sv.BestGuess()
	if err != nil {
		writeError(w, err)
		return
	}
	st := sv.LastStats()
	_ = json.NewEncoder(w).Encode(hintRes{
		Guess:      guess.String(),
		Strategy:   string(st.Strategy),
		Candidates: st.Candidates,
		Score:      st.Score,
	})
}

// writeError maps engine errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	var status int
	var code string
	switch {
	case errors.Is(err, candidates.ErrContradiction):
		status, code = http.StatusConflict, "contradiction"
	case errors.Is(err, words.ErrInvalidWord):
		status, code = http.StatusBadRequest, "invalid_word"
	case errors.Is(err, game.ErrInvalidPattern):
		status, code = http.StatusBadRequest, "invalid_pattern"
	default:
		log.Error().Err(err).Msg("request failed")
		status, code = http.StatusInternalServerError, "internal"
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "detail": err.Error()})
}

func toLetterCounts(in []candidates.LetterCount) []letterCount {
	out := make([]letterCount, len(in))
	for i, lc := range in {
		out[i] = letterCount{Letter: string(lc.Letter), Count: lc.Count}
	}
	return out
}
