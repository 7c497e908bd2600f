package game

import (
	"fmt"
	"strings"

	"github.com/playperu/citymarble/internal/messages"
)

// Engine owns one game's State and exposes the player intents as methods.
// Intents validate the phase first and leave the state untouched when they
// are rejected. An intent may schedule automatic transitions (dice flicker,
// movement steps, tile effects); Next reports the scheduled one and Advance
// performs it. Engine is not safe for concurrent use.
type Engine struct {
	content Content
	dice    Roller
	flicker Roller
	p       *messages.Printer

	st      State
	frame   int
	steps   int
	stepped int
}

type Option func(*Engine)

// WithRoller sets the source for dice, event and quiz draws. It also feeds
// the cosmetic flicker frames unless WithFlickerRoller is given.
func WithRoller(r Roller) Option {
	return func(e *Engine) { e.dice = r }
}

func WithFlickerRoller(r Roller) Option {
	return func(e *Engine) { e.flicker = r }
}

func WithPrinter(p *messages.Printer) Option {
	return func(e *Engine) { e.p = p }
}

// NewEngine returns an engine in SETUP holding a fresh copy of the board.
// Without WithRoller it uses a seeded NewSeededRoller(1); production code
// passes NewRoller.
func NewEngine(content Content, opts ...Option) *Engine {
	e := &Engine{content: content}
	for _, opt := range opts {
		opt(e)
	}
	if e.dice == nil {
		e.dice = NewSeededRoller(1)
	}
	if e.flicker == nil {
		e.flicker = e.dice
	}
	if e.p == nil {
		e.p = messages.New("en")
	}

	e.st = State{
		Players:    []Player{},
		Tiles:      cloneTiles(content.Tiles),
		Status:     StatusSetup,
		TurnPhase:  PhaseRoll,
		DiceValues: [2]int{1, 1},
		Message:    e.p.Sprintf(messages.SetupPrompt),
		Round:      1,
		MaxRounds:  DefaultMaxRounds,
	}
	return e
}

// Start seats the players and begins round 1. maxRounds <= 0 means
// DefaultMaxRounds.
func (e *Engine) Start(setups []PlayerSetup, maxRounds int) error {
	if e.st.Status != StatusSetup {
		return ErrWrongPhase
	}
	if len(setups) < MinPlayers || len(setups) > MaxPlayers {
		return fmt.Errorf("%w: got %d", ErrPlayerCount, len(setups))
	}
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}

	players := make([]Player, len(setups))
	for i, s := range setups {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			name = e.p.Sprintf(messages.DefaultPlayerName, i+1)
		}
		players[i] = Player{
			ID:     i,
			Name:   name,
			Color:  s.Color,
			Money:  StartingMoney,
			Assets: []int{},
		}
	}

	e.st.Players = players
	e.st.CurrentPlayerIndex = 0
	e.st.Tiles = cloneTiles(e.content.Tiles)
	e.st.Status = StatusPlaying
	e.st.TurnPhase = PhaseRoll
	e.st.Round = 1
	e.st.MaxRounds = maxRounds
	e.st.Message = e.p.Sprintf(messages.FirstTurn, players[0].Name)
	return nil
}

// Snapshot returns a deep copy of the state.
func (e *Engine) Snapshot() State {
	return e.st.clone()
}

// Transition is a scheduled automatic step. Frame counts flicker frames
// already shown and is only meaningful for PendingFlicker.
type Transition struct {
	Kind  Pending
	Frame int
}

func (e *Engine) Next() Transition {
	return Transition{Kind: e.st.Pending, Frame: e.frame}
}

// Advance performs the scheduled automatic transition.
func (e *Engine) Advance() error {
	switch e.st.Pending {
	case PendingFlicker:
		e.showFlickerFrame()
	case PendingSettle:
		e.settleDice()
	case PendingStep:
		e.step()
	case PendingArrive:
		e.arrive()
	case PendingQuizDraw:
		e.drawQuiz()
	case PendingEventReveal:
		e.revealEvent()
	case PendingEventApply:
		e.applyEvent()
	default:
		return ErrNothingPending
	}
	return nil
}

// Drain runs every scheduled transition without delay.
func (e *Engine) Drain() {
	for e.st.Pending != PendingNone {
		_ = e.Advance()
	}
}

// Scores ranks the players by net worth.
func (e *Engine) Scores() []Score {
	return Rank(e.st.Players, e.st.Tiles)
}

func (e *Engine) schedule(p Pending) {
	e.st.Pending = p
}

func (e *Engine) say(key string, args ...any) {
	e.st.Message = e.p.Sprintf(key, args...)
}

// ready rejects intents outside PLAYING, while a transition is scheduled,
// or outside the given phase.
func (e *Engine) ready(phase Phase) error {
	if e.st.Status != StatusPlaying {
		return ErrNotPlaying
	}
	if e.st.Pending != PendingNone {
		return ErrBusy
	}
	if e.st.TurnPhase != phase {
		return ErrWrongPhase
	}
	return nil
}
