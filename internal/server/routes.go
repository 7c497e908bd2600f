package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/citymarble/internal/session"
)

func addRoutes(r chi.Router, logger *slog.Logger, sessions *session.Registry, spaDir string) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("City Marble API", "/openapi.json", "/docs"))

	r.Get("/api/board", handleBoard(sessions))
	r.Post("/api/games", handleCreateGame(sessions))

	// Game routes — {gameID} resolved by sessionMiddleware.
	r.Route("/api/games/{gameID}", func(r chi.Router) {
		r.Use(sessionMiddleware(sessions))
		r.Get("/", handleGetGame())
		r.Delete("/", handleDeleteGame(sessions))
		r.Get("/scores", handleScores())
		r.Post("/roll", handleIntent(session.IntentRoll))
		r.Post("/decision", handleDecision())
		r.Post("/quiz", handleQuiz())
		r.Post("/travel", handleTravel())
		r.Post("/end-turn", handleIntent(session.IntentEndTurn))
		r.Get("/events", handleEvents())
		r.Get("/ws", handleWS(logger))
	})

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}
