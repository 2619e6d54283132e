// internal/httpserver/routes_daily.go
//
// HTTP routes for today's puzzle.
//   - GET  /daily        → date and puzzle number
//   - POST /daily/check  → feedback for a guess against today's secret
//
// Nothing is stored: the secret is derived from the date and DAILY_SALT,
// and the client keeps its own guess history.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Joeltronics/wordlebot/internal/daily"
	"github.com/Joeltronics/wordlebot/internal/game"
	"github.com/Joeltronics/wordlebot/internal/words"
)

// dailyInfo is returned by GET /daily.
type dailyInfo struct {
	Date   string `json:"date"`
	Number int    `json:"number"`
}

// checkReq/Res payloads for POST /daily/check.
type checkReq struct {
	Word string `json:"word"`
}
type checkRes struct {
	Result string      `json:"result"`
	Marks  []game.Mark `json:"marks"`
	Solved bool        `json:"solved"`
}

// now is replaced in tests.
var now = time.Now

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDailyInfo)
		r.Post("/check", s.handleDailyCheck)
	})
}

func (s *Server) handleDailyInfo(w http.ResponseWriter, r *http.Request) {
	t := now()
	_ = json.NewEncoder(w).Encode(dailyInfo{Date: daily.DateKey(t), Number: daily.Number(t)})
}

// handleDailyCheck scores a guess against today's secret. Guesses must be
// in the catalog, as in the real game.
func (s *Server) handleDailyCheck(w http.ResponseWriter, r *http.Request) {
	var req checkReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	guess, err := s.cat.Parse(req.Word)
	if err != nil {
		writeError(w, err)
		return
	}
	secret := daily.Secret(s.cat, now(), s.opts.DailySalt)
	p := s.oracle.Feedback(guess, secret).Unpack()

	marks := make([]game.Mark, words.Length)
	copy(marks, p[:])
	_ = json.NewEncoder(w).Encode(checkRes{Result: p.String(), Marks: marks, Solved: p.Solved()})
}
