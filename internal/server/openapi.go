package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse documents the /healthz body: one entry per checker.
type HealthResponse map[string]struct {
	Status string `json:"status" enum:"ok,error"`
}

// GamePath is the path parameter shared by every game route.
type GamePath struct {
	GameID string `path:"gameID"`
}

type decisionInput struct {
	GamePath
	DecisionRequest
}

type quizInput struct {
	GamePath
	QuizRequest
}

type travelInput struct {
	GamePath
	TravelRequest
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "City Marble API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Turn engine of the city board game: board, live games, intents and snapshots.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/board
	getBoard, _ := r.NewOperationContext(http.MethodGet, "/api/board")
	getBoard.SetSummary("Board")
	getBoard.SetDescription("Returns the 20 tile templates every game starts from.")
	getBoard.AddRespStructure(BoardResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getBoard)

	// POST /api/games
	createGame, _ := r.NewOperationContext(http.MethodPost, "/api/games")
	createGame.SetSummary("Start game")
	createGame.SetDescription("Seats 2 to 5 players and starts round 1. Blank names become placeholders.")
	createGame.AddReqStructure(CreateGameRequest{})
	createGame.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(createGame)

	// GET /api/games/{gameID}
	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}")
	getGame.SetSummary("Get game")
	getGame.SetDescription("Returns the current snapshot.")
	getGame.AddReqStructure(GamePath{})
	getGame.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGame)

	// DELETE /api/games/{gameID}
	deleteGame, _ := r.NewOperationContext(http.MethodDelete, "/api/games/{gameID}")
	deleteGame.SetSummary("Discard game")
	deleteGame.SetDescription("Discards the game. Open streams are closed.")
	deleteGame.AddReqStructure(GamePath{})
	deleteGame.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deleteGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteGame)

	// GET /api/games/{gameID}/scores
	getScores, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/scores")
	getScores.SetSummary("Scores")
	getScores.SetDescription("Ranks players by cash plus asset value. Ties keep seating order.")
	getScores.AddReqStructure(GamePath{})
	getScores.AddRespStructure(ScoresResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getScores.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getScores)

	intents := []struct {
		path        string
		summary     string
		description string
		req         any
	}{
		{"/api/games/{gameID}/roll", "Roll dice", "Allowed in ROLL. Dice, movement and the landing effect follow as published snapshots.", GamePath{}},
		{"/api/games/{gameID}/decision", "Decide", "Buy, upgrade or pass on a CITY tile in ACTION.", decisionInput{}},
		{"/api/games/{gameID}/quiz", "Answer quiz", "Answers the open quiz by option index.", quizInput{}},
		{"/api/games/{gameID}/travel", "Travel", "Picks the space travel destination tile.", travelInput{}},
		{"/api/games/{gameID}/end-turn", "End turn", "Allowed in END. A double keeps the turn.", GamePath{}},
	}
	for _, in := range intents {
		op, _ := r.NewOperationContext(http.MethodPost, in.path)
		op.SetSummary(in.summary)
		op.SetDescription(in.description)
		op.AddReqStructure(in.req)
		op.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
		op.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
		op.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
		op.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
		_ = r.AddOperation(op)
	}

	// GET /api/games/{gameID}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/events")
	getEvents.SetSummary("SSE snapshot stream")
	getEvents.SetDescription("Server-Sent Events stream of snapshots (event: state), including every animation frame.")
	getEvents.AddReqStructure(GamePath{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/games/{gameID}/ws
	getWS, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/ws")
	getWS.SetSummary("WebSocket")
	getWS.SetDescription("Upgrades to a WebSocket. Send intents as JSON, receive snapshots and errors.")
	getWS.AddReqStructure(GamePath{})
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
