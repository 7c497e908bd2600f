package server

import (
	"net/http"

	"github.com/playperu/citymarble/internal/game"
	"github.com/playperu/citymarble/internal/session"
)

type BoardResponse struct {
	Tiles []game.Tile `json:"tiles"`
}

type CreateGameRequest struct {
	Players   []game.PlayerSetup `json:"players"`
	MaxRounds int                `json:"maxRounds,omitempty"`
}

// GameResponse is a snapshot plus the decisions currently on offer.
type GameResponse struct {
	ID string `json:"id"`
	game.State
	CanBuy     bool `json:"canBuy"`
	CanUpgrade bool `json:"canUpgrade"`
}

type ScoresResponse struct {
	Status game.Status  `json:"status"`
	Round  int          `json:"round"`
	Scores []game.Score `json:"scores"`
}

func newGameResponse(id string, v session.View) GameResponse {
	return GameResponse{
		ID:         id,
		State:      v.State,
		CanBuy:     v.CanBuy,
		CanUpgrade: v.CanUpgrade,
	}
}

func handleBoard(sessions *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, BoardResponse{Tiles: sessions.Content().Tiles})
	}
}

func handleCreateGame(sessions *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.MaxRounds < 0 {
			writeError(w, http.StatusBadRequest, "maxRounds must not be negative")
			return
		}

		s, err := sessions.Create(req.Players, req.MaxRounds)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, newGameResponse(s.ID, s.View()))
	}
}

func handleGetGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := gameSession(r)
		writeJSON(w, http.StatusOK, newGameResponse(s.ID, s.View()))
	}
}

func handleDeleteGame(sessions *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.Delete(gameSession(r).ID); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleScores() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := gameSession(r)
		st := s.Snapshot()
		writeJSON(w, http.StatusOK, ScoresResponse{
			Status: st.Status,
			Round:  st.Round,
			Scores: s.Scores(),
		})
	}
}
