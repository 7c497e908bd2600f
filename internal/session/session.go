// Package session keeps the live games of this process. Each Session owns
// one engine, serializes intents against it, publishes a snapshot after
// every change and paces the engine's automatic transitions.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/playperu/citymarble/internal/animation"
	"github.com/playperu/citymarble/internal/game"
)

var (
	ErrUnknownIntent   = errors.New("unknown intent")
	ErrMissingArgument = errors.New("missing intent argument")
)

type IntentType string

const (
	IntentRoll    IntentType = "roll"
	IntentBuy     IntentType = "buy"
	IntentUpgrade IntentType = "upgrade"
	IntentPass    IntentType = "pass"
	IntentAnswer  IntentType = "answer"
	IntentTravel  IntentType = "travel"
	IntentEndTurn IntentType = "end_turn"
)

// Intent is one player action. Option is read for answer, TileID for travel.
type Intent struct {
	Type   IntentType `json:"type"`
	Option *int       `json:"option,omitempty"`
	TileID *int       `json:"tileId,omitempty"`
}

// View is a snapshot together with the decisions on offer, read at one instant.
type View struct {
	game.State
	CanBuy     bool
	CanUpgrade bool
}

type Session struct {
	ID string

	mu         sync.Mutex
	engine     *game.Engine
	lastActive time.Time
	running    bool

	ctx    context.Context
	cancel context.CancelFunc
	pacing animation.Pacing
	broker *Broker
	now    func() time.Time
	logger *slog.Logger
}

// Apply performs an intent and returns the resulting view. Rejected
// intents return the engine's error and publish nothing.
func (s *Session) Apply(in Intent) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.apply(in); err != nil {
		return View{}, err
	}
	s.lastActive = s.now()

	if s.engine.Next().Kind != game.PendingNone {
		if s.pacing.Speed <= 0 {
			s.engine.Drain()
		} else if !s.running {
			s.running = true
			go s.animate()
		}
	}

	v := s.view()
	s.broker.Publish(s.ID, v.State)
	if v.Status == game.StatusGameOver {
		s.logger.Info("game over", "round", v.Round)
	}
	return v, nil
}

func (s *Session) apply(in Intent) error {
	e := s.engine
	switch in.Type {
	case IntentRoll:
		return e.RollDice()
	case IntentBuy:
		return e.Buy()
	case IntentUpgrade:
		return e.Upgrade()
	case IntentPass:
		return e.Pass()
	case IntentAnswer:
		if in.Option == nil {
			return fmt.Errorf("%w: option", ErrMissingArgument)
		}
		return e.AnswerQuiz(*in.Option)
	case IntentTravel:
		if in.TileID == nil {
			return fmt.Errorf("%w: tileId", ErrMissingArgument)
		}
		return e.Travel(*in.TileID)
	case IntentEndTurn:
		return e.EndTurn()
	}
	return fmt.Errorf("%w: %q", ErrUnknownIntent, in.Type)
}

// animate paces scheduled transitions until none are left. It rechecks
// under the lock before exiting so an intent never finds a stale running flag.
func (s *Session) animate() {
	for {
		if err := animation.Run(s.ctx, s, s.pacing); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("animation stopped", "error", err)
		}

		s.mu.Lock()
		if s.ctx.Err() != nil || s.engine.Next().Kind == game.PendingNone {
			s.running = false
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
	}
}

// Next reports the scheduled transition.
func (s *Session) Next() game.Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Next()
}

// Advance performs the scheduled transition and publishes the new snapshot.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.Advance(); err != nil {
		return err
	}
	s.broker.Publish(s.ID, s.engine.Snapshot())
	return nil
}

func (s *Session) Snapshot() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

func (s *Session) Scores() []game.Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Scores()
}

// View tells the presentation the state and which decision buttons apply.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) view() View {
	return View{
		State:      s.engine.Snapshot(),
		CanBuy:     s.engine.CanBuy(),
		CanUpgrade: s.engine.CanUpgrade(),
	}
}

// Subscribe streams snapshots of this session. The returned function ends
// the subscription. The channel is closed when the session is removed;
// subscribing to a removed session yields an already closed channel.
func (s *Session) Subscribe() (<-chan []byte, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		ch := make(chan []byte)
		close(ch)
		return ch, func() {}
	}
	s.lastActive = s.now()
	ch := s.broker.Subscribe(s.ID)
	return ch, func() { s.broker.Unsubscribe(s.ID, ch) }
}

func (s *Session) idleSince(t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive.Before(t)
}
