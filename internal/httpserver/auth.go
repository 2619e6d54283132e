// internal/httpserver/auth.go
//
// Session tokens.
//
// A token is an HS256 JWT whose subject is the session ID. It proves the
// caller opened the session; the session itself stays server-side.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Joeltronics/wordlebot/internal/store"
)

const sessionCookieName = "wordlebot_session"

// ctxSessionKey is the context key type for the resolved session.
type ctxSessionKey struct{}

type sessionRef struct {
	id   string
	sess *session
}

// signSession creates a token for session id, valid for SessionTTL.
func (s *Server) signSession(id string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(s.opts.Secret))
	return ss, exp, err
}

// parseSession validates a token and returns its session ID.
func (s *Server) parseSession(tok string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !t.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

// setSessionCookie stores the token for browser clients.
func setSessionCookie(w http.ResponseWriter, token string, exp time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/session",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or session cookie.
func bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// requireSession enforces a valid token for a live session and injects the
// session into the request context.
func (s *Server) requireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerOrCookie(r)
			if tokenStr == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			id, err := s.parseSession(tokenStr)
			if err != nil {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			sess, err := s.sessions.Get(r.Context(), id)
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, `{"error":"session_not_found"}`, http.StatusNotFound)
				return
			} else if err != nil {
				http.Error(w, `{"error":"session_lookup"}`, http.StatusInternalServerError)
				return
			}
			ctx := context.WithValue(r.Context(), ctxSessionKey{}, sessionRef{id: id, sess: sess})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// currentSession returns the session resolved by requireSession.
func currentSession(r *http.Request) (string, *session) {
	ref, _ := r.Context().Value(ctxSessionKey{}).(sessionRef)
	return ref.id, ref.sess
}
