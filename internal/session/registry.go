package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/playperu/citymarble/internal/animation"
	"github.com/playperu/citymarble/internal/game"
	"github.com/playperu/citymarble/internal/messages"
)

var ErrNotFound = errors.New("session not found")

type Options struct {
	Printer          *messages.Printer
	Pacing           animation.Pacing
	IdleTTL          time.Duration
	DefaultMaxRounds int
	// NewRoller supplies the dice for each new game. Defaults to game.NewRoller.
	NewRoller func() (game.Roller, error)
}

// Registry holds every live session. State is never persisted: a session
// that is deleted or evicted is gone.
type Registry struct {
	content game.Content
	opts    Options
	broker  *Broker
	logger  *slog.Logger
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(logger *slog.Logger, content game.Content, opts Options) *Registry {
	if opts.Printer == nil {
		opts.Printer = messages.New("ko")
	}
	if opts.NewRoller == nil {
		opts.NewRoller = game.NewRoller
	}
	return &Registry{
		content:  content,
		opts:     opts,
		broker:   NewBroker(),
		logger:   logger.With("component", "session"),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Content is the board template every session starts from.
func (r *Registry) Content() game.Content {
	return r.content
}

// Create starts a new game. maxRounds <= 0 uses the configured default.
func (r *Registry) Create(setups []game.PlayerSetup, maxRounds int) (*Session, error) {
	roller, err := r.opts.NewRoller()
	if err != nil {
		return nil, fmt.Errorf("creating roller: %w", err)
	}
	if maxRounds <= 0 {
		maxRounds = r.opts.DefaultMaxRounds
	}

	engine := game.NewEngine(r.content, game.WithRoller(roller), game.WithPrinter(r.opts.Printer))
	if err := engine.Start(setups, maxRounds); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:         id,
		engine:     engine,
		lastActive: r.now(),
		ctx:        ctx,
		cancel:     cancel,
		pacing:     r.opts.Pacing,
		broker:     r.broker,
		now:        r.now,
		logger:     r.logger.With("session", id),
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	s.logger.Info("session created", "players", len(setups), "max_rounds", engine.Snapshot().MaxRounds)
	return s, nil
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete discards a session, stopping its animation and closing its
// subscriptions.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	r.discard(s)
	s.logger.Info("session deleted")
	return nil
}

// discard cancels under the session lock so Subscribe either sees the
// cancellation or registers before the broker entry is closed.
func (r *Registry) discard(s *Session) {
	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()
	r.broker.Close(s.ID)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many
// it removed. A zero TTL disables eviction.
func (r *Registry) Sweep(now time.Time) int {
	if r.opts.IdleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-r.opts.IdleTTL)

	r.mu.Lock()
	var evicted []*Session
	for id, s := range r.sessions {
		if s.idleSince(cutoff) && r.broker.subscribers(id) == 0 {
			evicted = append(evicted, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range evicted {
		r.discard(s)
		s.logger.Info("session evicted", "idle_ttl", r.opts.IdleTTL.String())
	}
	return len(evicted)
}

// Janitor sweeps on every tick until ctx is done.
func (r *Registry) Janitor(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Sweep(r.now())
		}
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close discards every session.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		r.discard(s)
	}
}
