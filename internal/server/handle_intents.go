package server

import (
	"net/http"

	"github.com/playperu/citymarble/internal/session"
)

type DecisionRequest struct {
	Choice string `json:"choice" enum:"buy,upgrade,pass"`
}

type QuizRequest struct {
	Option *int `json:"option" required:"true"`
}

type TravelRequest struct {
	TileID *int `json:"tileId" required:"true"`
}

// handleIntent serves intents that carry no body.
func handleIntent(typ session.IntentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apply(w, r, session.Intent{Type: typ})
	}
}

func handleDecision() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DecisionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var typ session.IntentType
		switch req.Choice {
		case "buy":
			typ = session.IntentBuy
		case "upgrade":
			typ = session.IntentUpgrade
		case "pass":
			typ = session.IntentPass
		default:
			writeError(w, http.StatusBadRequest, "choice must be buy, upgrade or pass")
			return
		}
		apply(w, r, session.Intent{Type: typ})
	}
}

func handleQuiz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req QuizRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Option == nil {
			writeError(w, http.StatusBadRequest, "option is required")
			return
		}
		apply(w, r, session.Intent{Type: session.IntentAnswer, Option: req.Option})
	}
}

func handleTravel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TravelRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.TileID == nil {
			writeError(w, http.StatusBadRequest, "tileId is required")
			return
		}
		apply(w, r, session.Intent{Type: session.IntentTravel, TileID: req.TileID})
	}
}

func apply(w http.ResponseWriter, r *http.Request, in session.Intent) {
	s := gameSession(r)
	v, err := s.Apply(in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newGameResponse(s.ID, v))
}
