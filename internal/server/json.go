package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/playperu/citymarble/internal/game"
	"github.com/playperu/citymarble/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// errorStatus maps engine and session errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrWrongPhase),
		errors.Is(err, game.ErrBusy),
		errors.Is(err, game.ErrNotPlaying),
		errors.Is(err, game.ErrInvalidDecision):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidTile),
		errors.Is(err, game.ErrInvalidOption),
		errors.Is(err, game.ErrPlayerCount),
		errors.Is(err, session.ErrUnknownIntent),
		errors.Is(err, session.ErrMissingArgument):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeErr(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
