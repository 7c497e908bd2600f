package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/citymarble/internal/animation"
	"github.com/playperu/citymarble/internal/game"
	"github.com/playperu/citymarble/internal/messages"
	"github.com/playperu/citymarble/internal/session"
)

// fixedRoller draws the same value every time: every roll is (v+1, v+1).
type fixedRoller int

func (f fixedRoller) IntN(n int) int { return int(f) % n }

func testBoard() game.Content {
	tiles := make([]game.Tile, game.BoardSize)
	for i := range tiles {
		tiles[i] = game.Tile{ID: i, Name: "Park", Kind: game.TilePark}
	}
	tiles[0] = game.Tile{ID: 0, Name: "Start", Kind: game.TileStart}
	tiles[2] = game.Tile{ID: 2, Name: "Quiz", Kind: game.TileQuiz}
	tiles[4] = game.Tile{ID: 4, Name: "Airport", Kind: game.TileAirport}
	tiles[6] = game.Tile{ID: 6, Name: "Busan", Kind: game.TileCity, Price: 800, Rent: 240}
	return game.Content{
		Tiles:   tiles,
		Events:  []game.Event{{ID: "e", Title: "t", Description: "d", Kind: game.EventMoney, Value: 100}},
		Quizzes: []game.Quiz{{Question: "q", Options: []string{"a", "b", "c"}, CorrectIndex: 1}},
	}
}

func newTestRouter(t *testing.T, roll int) (*chi.Mux, *session.Registry) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewRegistry(logger, testBoard(), session.Options{
		Printer:          messages.New("en"),
		Pacing:           animation.Pacing{},
		IdleTTL:          time.Hour,
		DefaultMaxRounds: game.DefaultMaxRounds,
		NewRoller:        func() (game.Roller, error) { return fixedRoller(roll), nil },
	})
	t.Cleanup(sessions.Close)

	r := chi.NewRouter()
	addRoutes(r, logger, sessions, "")
	return r, sessions
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func intp(v int) *int { return &v }

func decodeGame(t *testing.T, rec *httptest.ResponseRecorder) GameResponse {
	t.Helper()
	var resp GameResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding game: %v", err)
	}
	return resp
}

func createGame(t *testing.T, r http.Handler) GameResponse {
	t.Helper()
	rec := do(t, r, http.MethodPost, "/api/games", CreateGameRequest{
		Players: []game.PlayerSetup{{Name: "Ana", Color: "#e11d48"}, {Name: ""}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, want %d; body = %s", rec.Code, http.StatusCreated, rec.Body)
	}
	return decodeGame(t, rec)
}

func TestBoard(t *testing.T) {
	r, _ := newTestRouter(t, 0)
	rec := do(t, r, http.MethodGet, "/api/board", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp BoardResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Tiles) != game.BoardSize || resp.Tiles[6].Price != 800 {
		t.Fatalf("got %d tiles", len(resp.Tiles))
	}
}

func TestCreateGame(t *testing.T) {
	r, _ := newTestRouter(t, 0)
	g := createGame(t, r)

	if g.ID == "" {
		t.Fatal("missing id")
	}
	if g.Status != game.StatusPlaying || g.TurnPhase != game.PhaseRoll || g.Round != 1 {
		t.Errorf("got %s/%s round %d", g.Status, g.TurnPhase, g.Round)
	}
	if len(g.Players) != 2 || g.Players[1].Name != "Player 2" || g.Players[0].Color != "#e11d48" {
		t.Errorf("players = %+v", g.Players)
	}
	if g.MaxRounds != game.DefaultMaxRounds {
		t.Errorf("maxRounds = %d, want %d", g.MaxRounds, game.DefaultMaxRounds)
	}

	rec := do(t, r, http.MethodGet, "/api/games/"+g.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}
	if got := decodeGame(t, rec); got.ID != g.ID {
		t.Errorf("get: id = %q, want %q", got.ID, g.ID)
	}
}

func TestCreateGameBadRequest(t *testing.T) {
	r, _ := newTestRouter(t, 0)

	tests := []struct {
		name string
		body any
	}{
		{"one player", CreateGameRequest{Players: []game.PlayerSetup{{Name: "solo"}}}},
		{"six players", CreateGameRequest{Players: make([]game.PlayerSetup, 6)}},
		{"negative rounds", CreateGameRequest{Players: make([]game.PlayerSetup, 2), MaxRounds: -1}},
		{"not json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, http.MethodPost, "/api/games", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestUnknownGame(t *testing.T) {
	r, _ := newTestRouter(t, 0)
	for _, path := range []string{"/api/games/nope", "/api/games/nope/scores"} {
		if rec := do(t, r, http.MethodGet, path, nil); rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want %d", path, rec.Code, http.StatusNotFound)
		}
	}
	if rec := do(t, r, http.MethodPost, "/api/games/nope/roll", nil); rec.Code != http.StatusNotFound {
		t.Errorf("roll: status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestQuizTurn(t *testing.T) {
	r, _ := newTestRouter(t, 0) // rolls (1,1): tile 2
	g := createGame(t, r)
	base := "/api/games/" + g.ID

	rec := do(t, r, http.MethodPost, base+"/roll", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("roll: status = %d; body = %s", rec.Code, rec.Body)
	}
	st := decodeGame(t, rec)
	if !st.QuizActive || st.CurrentQuiz == nil || st.Players[0].Position != 2 {
		t.Fatalf("after roll: quiz=%v pos=%d", st.QuizActive, st.Players[0].Position)
	}

	if rec := do(t, r, http.MethodPost, base+"/roll", nil); rec.Code != http.StatusConflict {
		t.Errorf("second roll: status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if rec := do(t, r, http.MethodPost, base+"/quiz", QuizRequest{Option: intp(7)}); rec.Code != http.StatusBadRequest {
		t.Errorf("bad option: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if rec := do(t, r, http.MethodPost, base+"/quiz", struct{}{}); rec.Code != http.StatusBadRequest {
		t.Errorf("missing option: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec = do(t, r, http.MethodPost, base+"/quiz", QuizRequest{Option: intp(1)})
	if rec.Code != http.StatusOK {
		t.Fatalf("answer: status = %d; body = %s", rec.Code, rec.Body)
	}
	st = decodeGame(t, rec)
	if st.Players[0].Money != game.StartingMoney+game.QuizBonus || st.TurnPhase != game.PhaseEnd {
		t.Fatalf("after answer: money %d phase %s", st.Players[0].Money, st.TurnPhase)
	}

	// Double: the same player rolls again.
	rec = do(t, r, http.MethodPost, base+"/end-turn", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("end turn: status = %d", rec.Code)
	}
	if st = decodeGame(t, rec); st.CurrentPlayerIndex != 0 || st.TurnPhase != game.PhaseRoll {
		t.Fatalf("after end turn: player %d phase %s", st.CurrentPlayerIndex, st.TurnPhase)
	}
}

func TestDecisionAndTravel(t *testing.T) {
	r, _ := newTestRouter(t, 1) // rolls (2,2): tile 4, the airport
	g := createGame(t, r)
	base := "/api/games/" + g.ID

	st := decodeGame(t, do(t, r, http.MethodPost, base+"/roll", nil))
	if !st.SpaceTravelActive {
		t.Fatalf("airport: travel not active, phase %s", st.TurnPhase)
	}
	if rec := do(t, r, http.MethodPost, base+"/travel", TravelRequest{TileID: intp(20)}); rec.Code != http.StatusBadRequest {
		t.Errorf("travel off board: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if rec := do(t, r, http.MethodPost, base+"/travel", struct{}{}); rec.Code != http.StatusBadRequest {
		t.Errorf("travel without tileId: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if st := decodeGame(t, do(t, r, http.MethodGet, base, nil)); !st.SpaceTravelActive || st.Players[0].Position != 4 {
		t.Fatalf("rejected travel moved the player: travel %v pos %d", st.SpaceTravelActive, st.Players[0].Position)
	}
	if rec := do(t, r, http.MethodPost, base+"/decision", DecisionRequest{Choice: "buy"}); rec.Code != http.StatusConflict {
		t.Errorf("buy while travelling: status = %d, want %d", rec.Code, http.StatusConflict)
	}

	rec := do(t, r, http.MethodPost, base+"/travel", TravelRequest{TileID: intp(6)})
	if rec.Code != http.StatusOK {
		t.Fatalf("travel: status = %d; body = %s", rec.Code, rec.Body)
	}
	st = decodeGame(t, rec)
	if st.Players[0].Position != 6 || st.TurnPhase != game.PhaseAction || !st.CanBuy {
		t.Fatalf("after travel: pos %d phase %s canBuy %v", st.Players[0].Position, st.TurnPhase, st.CanBuy)
	}

	if rec := do(t, r, http.MethodPost, base+"/decision", DecisionRequest{Choice: "steal"}); rec.Code != http.StatusBadRequest {
		t.Errorf("bad choice: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	rec = do(t, r, http.MethodPost, base+"/decision", DecisionRequest{Choice: "buy"})
	if rec.Code != http.StatusOK {
		t.Fatalf("buy: status = %d; body = %s", rec.Code, rec.Body)
	}
	st = decodeGame(t, rec)
	if st.Players[0].Money != game.StartingMoney-800 || !st.Tiles[6].OwnedBy(0) {
		t.Fatalf("after buy: money %d owner %v", st.Players[0].Money, st.Tiles[6].OwnerID)
	}

	var scores ScoresResponse
	rec = do(t, r, http.MethodGet, base+"/scores", nil)
	if err := json.NewDecoder(rec.Body).Decode(&scores); err != nil {
		t.Fatal(err)
	}
	if len(scores.Scores) != 2 || scores.Scores[0].PlayerID != 0 || scores.Scores[0].AssetValue != 800 {
		t.Fatalf("scores = %+v", scores.Scores)
	}
}

func TestDeleteGame(t *testing.T) {
	r, sessions := newTestRouter(t, 0)
	g := createGame(t, r)

	if rec := do(t, r, http.MethodDelete, "/api/games/"+g.ID, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if sessions.Len() != 0 {
		t.Fatalf("sessions = %d, want 0", sessions.Len())
	}
	if rec := do(t, r, http.MethodGet, "/api/games/"+g.ID, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
