package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/playperu/citymarble/internal/game"
	"github.com/playperu/citymarble/internal/session"
)

func marshalSnapshot(st game.State) ([]byte, error) {
	return json.Marshal(st)
}

// handleWS upgrades to a websocket. The client sends intents; every snapshot
// the session publishes is pushed back, and rejected intents get an
// ErrorResponse.
func handleWS(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := gameSession(r)
		log := logger.With("session", s.ID)

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			log.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithTimeout(r.Context(), 4*time.Hour)
		defer cancel()

		ch, unsubscribe := s.Subscribe()
		defer unsubscribe()

		initial, err := marshalSnapshot(s.Snapshot())
		if err != nil {
			log.Error("encoding snapshot", "error", err)
			return
		}
		if err := conn.Write(ctx, websocket.MessageText, initial); err != nil {
			log.Debug("websocket write failed", "error", err)
			return
		}

		go func() {
			defer cancel()
			for {
				select {
				case <-ctx.Done():
					return
				case data, ok := <-ch:
					if !ok {
						conn.Close(websocket.StatusGoingAway, "game closed")
						return
					}
					if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
						log.Debug("websocket write failed", "error", err)
						return
					}
				}
			}
		}()

		for {
			var in session.Intent
			if err := wsjson.Read(ctx, conn, &in); err != nil {
				log.Debug("websocket read ended", "error", err)
				return
			}
			if _, err := s.Apply(in); err != nil {
				if err := wsjson.Write(ctx, conn, ErrorResponse{Error: err.Error()}); err != nil {
					log.Debug("websocket write failed", "error", err)
					return
				}
			}
		}
	}
}
