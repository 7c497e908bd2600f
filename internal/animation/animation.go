// Package animation paces a game's automatic transitions. The engine only
// schedules them; Run waits out each delay and then advances.
package animation

import (
	"context"
	"errors"
	"time"

	"github.com/playperu/citymarble/internal/game"
)

const (
	FlickerFast  = 60 * time.Millisecond
	FlickerSlow  = 100 * time.Millisecond
	FlickerDecay = 60 * time.Millisecond
	Step         = 300 * time.Millisecond
	Arrive       = 500 * time.Millisecond
	QuizDraw     = 600 * time.Millisecond
	EventReveal  = time.Second
	EventApply   = time.Second
)

// Driver is what Run needs from a game. Implementations must be safe to
// call from the Run goroutine while intents arrive on others.
type Driver interface {
	Next() game.Transition
	Advance() error
}

// Pacing scales every delay by Speed. Zero runs transitions back to back.
type Pacing struct {
	Speed float64
}

// Delay is how long to wait before performing t.
func (p Pacing) Delay(t game.Transition) time.Duration {
	if p.Speed <= 0 {
		return 0
	}
	return time.Duration(float64(base(t)) * p.Speed)
}

func base(t game.Transition) time.Duration {
	switch t.Kind {
	case game.PendingFlicker:
		if t.Frame < game.FastFlickerFrames {
			return FlickerFast
		}
		// The dice slow down over the last frames.
		return FlickerSlow + FlickerDecay*time.Duration(t.Frame-game.FastFlickerFrames)
	case game.PendingStep:
		return Step
	case game.PendingArrive:
		return Arrive
	case game.PendingQuizDraw:
		return QuizDraw
	case game.PendingEventReveal:
		return EventReveal
	case game.PendingEventApply:
		return EventApply
	}
	return 0
}

// Run advances d until nothing is pending or ctx is done.
func Run(ctx context.Context, d Driver, p Pacing) error {
	for {
		t := d.Next()
		if t.Kind == game.PendingNone {
			return nil
		}

		if delay := p.Delay(t); delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if err := d.Advance(); err != nil {
			if errors.Is(err, game.ErrNothingPending) {
				return nil
			}
			return err
		}
	}
}
