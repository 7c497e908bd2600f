package server

import (
	"fmt"
	"net/http"
	"time"
)

// handleEvents streams snapshots as server-sent events, starting with the
// current one.
func handleEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := gameSession(r)

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		ch, unsubscribe := s.Subscribe()
		defer unsubscribe()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		initial, err := marshalSnapshot(s.Snapshot())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		fmt.Fprintf(w, "event: state\ndata: %s\n\n", initial)
		flusher.Flush()

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data, ok := <-ch:
				if !ok {
					fmt.Fprintf(w, "event: closed\ndata: {}\n\n")
					flusher.Flush()
					return
				}
				fmt.Fprintf(w, "event: state\ndata: %s\n\n", data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
