package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/citymarble/internal/session"
)

type ctxKey int

const ctxKeySession ctxKey = iota

func sessionMiddleware(sessions *session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := sessions.Get(chi.URLParam(r, "gameID"))
			if err != nil {
				writeError(w, http.StatusNotFound, "game not found")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeySession, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func gameSession(r *http.Request) *session.Session {
	return r.Context().Value(ctxKeySession).(*session.Session)
}
