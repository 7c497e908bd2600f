// Package game is the turn engine of the city board game: the data model,
// the turn phase state machine, tile effects, player decisions and final
// scoring. It has no I/O; timing lives in package animation.
package game

import "errors"

const (
	BoardSize  = 20
	MinPlayers = 2
	MaxPlayers = 5

	StartingMoney    = 2000
	Salary           = 500
	ParkBonus        = 100
	QuizBonus        = 300
	DefaultFine      = 300
	MaxBuildingLevel = 2
	DefaultMaxRounds = 15

	// FastFlickerFrames of the FlickerFrames cosmetic dice frames run at a
	// constant rate; the rest slow down.
	FastFlickerFrames = 10
	FlickerFrames     = 15
)

// SpecialIsland marks the PARK tile that costs the next turn instead of
// paying the park bonus.
const SpecialIsland = "island"

var (
	ErrWrongPhase      = errors.New("action not allowed in the current phase")
	ErrBusy            = errors.New("an animation is still in progress")
	ErrNotPlaying      = errors.New("game is not in progress")
	ErrPlayerCount     = errors.New("player count must be between 2 and 5")
	ErrInvalidTile     = errors.New("invalid tile id")
	ErrInvalidOption   = errors.New("invalid quiz option")
	ErrInvalidDecision = errors.New("decision not available on this tile")
	ErrNothingPending  = errors.New("no automatic transition pending")
)

type TileKind string

const (
	TileStart    TileKind = "START"
	TileCity     TileKind = "CITY"
	TileQuiz     TileKind = "QUIZ"
	TilePark     TileKind = "PARK"
	TileDonation TileKind = "DONATION"
	TileEvent    TileKind = "EVENT"
	TileAirport  TileKind = "AIRPORT"
)

func (k TileKind) Valid() bool {
	switch k {
	case TileStart, TileCity, TileQuiz, TilePark, TileDonation, TileEvent, TileAirport:
		return true
	}
	return false
}

// Tile is one cell of the ring. Only CITY tiles use OwnerID and
// BuildingLevel. Description and Icon are presentation content the engine
// never reads.
type Tile struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Kind          TileKind `json:"kind"`
	Price         int      `json:"price"`
	Rent          int      `json:"rent"`
	Fine          int      `json:"fine,omitempty"`
	Special       string   `json:"special,omitempty"`
	OwnerID       *int     `json:"ownerId"`
	BuildingLevel int      `json:"buildingLevel"`
	Description   string   `json:"description,omitempty"`
	Icon          string   `json:"icon,omitempty"`
}

func (t Tile) Owned() bool { return t.OwnerID != nil }

func (t Tile) OwnedBy(playerID int) bool {
	return t.OwnerID != nil && *t.OwnerID == playerID
}

// UpgradeCost is half the purchase price, rounded down.
func (t Tile) UpgradeCost() int { return t.Price / 2 }

// RentDue is the base rent scaled by the building level.
func (t Tile) RentDue() int { return t.Rent * (1 + t.BuildingLevel) }

// fine is the DONATION amount; tiles without an explicit fine charge the default.
func (t Tile) fine() int {
	if t.Fine > 0 {
		return t.Fine
	}
	return DefaultFine
}

type Player struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	Money     int    `json:"money"`
	Position  int    `json:"position"`
	IsSkipped bool   `json:"isSkipped"`
	Assets    []int  `json:"assets"`
}

// PlayerSetup is what the setup screen collects per seat. Color is carried
// through untouched for the presentation layer.
type PlayerSetup struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type EventKind string

const (
	EventMoney  EventKind = "MONEY"
	EventMove   EventKind = "MOVE"
	EventSkip   EventKind = "SKIP"
	EventTravel EventKind = "TRAVEL"
)

func (k EventKind) Valid() bool {
	switch k {
	case EventMoney, EventMove, EventSkip, EventTravel:
		return true
	}
	return false
}

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Kind        EventKind `json:"kind"`
	Value       int       `json:"value"`
}

type Quiz struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
	Difficulty   string   `json:"difficulty"`
}

type Status string

const (
	StatusSetup    Status = "SETUP"
	StatusPlaying  Status = "PLAYING"
	StatusGameOver Status = "GAME_OVER"
)

type Phase string

const (
	PhaseRoll    Phase = "ROLL"
	PhaseRolling Phase = "ROLLING"
	PhaseMoving  Phase = "MOVING"
	PhaseAction  Phase = "ACTION"
	PhaseEnd     Phase = "END"
)

// Pending names the automatic transition the engine has scheduled. The
// caller decides how long to wait before calling Advance.
type Pending string

const (
	PendingNone        Pending = ""
	PendingFlicker     Pending = "flicker"
	PendingSettle      Pending = "settle"
	PendingStep        Pending = "step"
	PendingArrive      Pending = "arrive"
	PendingQuizDraw    Pending = "quiz_draw"
	PendingEventReveal Pending = "event_reveal"
	PendingEventApply  Pending = "event_apply"
)

// State is the whole game. Engine methods are its only writer; readers get
// copies from Engine.Snapshot.
type State struct {
	Players            []Player `json:"players"`
	CurrentPlayerIndex int      `json:"currentPlayerIndex"`
	Tiles              []Tile   `json:"tiles"`
	Status             Status   `json:"status"`
	TurnPhase          Phase    `json:"turnPhase"`
	DiceValues         [2]int   `json:"diceValues"`
	IsDouble           bool     `json:"isDouble"`
	QuizActive         bool     `json:"quizActive"`
	CurrentQuiz        *Quiz    `json:"currentQuiz"`
	CurrentEvent       *Event   `json:"currentEvent,omitempty"`
	SpaceTravelActive  bool     `json:"isSpaceTravelActive"`
	Pending            Pending  `json:"pending,omitempty"`
	Message            string   `json:"message"`
	Round              int      `json:"round"`
	MaxRounds          int      `json:"maxRounds"`
}

// CurrentPlayer returns the acting player. It panics before Start.
func (s *State) CurrentPlayer() *Player {
	return &s.Players[s.CurrentPlayerIndex]
}

// CurrentTile is the tile under the acting player.
func (s *State) CurrentTile() *Tile {
	return &s.Tiles[s.CurrentPlayer().Position]
}

func (s State) clone() State {
	out := s
	out.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		p.Assets = append([]int(nil), p.Assets...)
		if p.Assets == nil {
			p.Assets = []int{}
		}
		out.Players[i] = p
	}
	out.Tiles = cloneTiles(s.Tiles)
	if s.CurrentQuiz != nil {
		q := *s.CurrentQuiz
		q.Options = append([]string(nil), q.Options...)
		out.CurrentQuiz = &q
	}
	if s.CurrentEvent != nil {
		ev := *s.CurrentEvent
		out.CurrentEvent = &ev
	}
	return out
}

func cloneTiles(tiles []Tile) []Tile {
	out := make([]Tile, len(tiles))
	for i, t := range tiles {
		if t.OwnerID != nil {
			id := *t.OwnerID
			t.OwnerID = &id
		}
		out[i] = t
	}
	return out
}
