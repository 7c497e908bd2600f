package game

import (
	"errors"
	"fmt"
)

var ErrInvalidContent = errors.New("invalid game content")

// Content is the static board, event deck and quiz pool. The engine treats
// it as a read-only template and copies the board for every game.
type Content struct {
	Tiles   []Tile  `json:"tiles"`
	Events  []Event `json:"events"`
	Quizzes []Quiz  `json:"quizzes"`
}

// Validate checks the invariants the engine relies on: a ring of exactly
// BoardSize tiles in id order with known kinds, and non-empty decks whose
// answers point inside their options.
func (c Content) Validate() error {
	if len(c.Tiles) != BoardSize {
		return fmt.Errorf("%w: board has %d tiles, want %d", ErrInvalidContent, len(c.Tiles), BoardSize)
	}
	for i, t := range c.Tiles {
		if t.ID != i {
			return fmt.Errorf("%w: tile at index %d has id %d", ErrInvalidContent, i, t.ID)
		}
		if !t.Kind.Valid() {
			return fmt.Errorf("%w: tile %d has unknown kind %q", ErrInvalidContent, t.ID, t.Kind)
		}
		if t.Kind == TileCity && (t.Price <= 0 || t.Rent <= 0) {
			return fmt.Errorf("%w: city tile %d needs a price and rent", ErrInvalidContent, t.ID)
		}
		if t.OwnerID != nil || t.BuildingLevel != 0 {
			return fmt.Errorf("%w: template tile %d carries ownership", ErrInvalidContent, t.ID)
		}
	}
	if c.Tiles[0].Kind != TileStart {
		return fmt.Errorf("%w: tile 0 must be START", ErrInvalidContent)
	}

	if len(c.Events) == 0 {
		return fmt.Errorf("%w: event deck is empty", ErrInvalidContent)
	}
	for _, ev := range c.Events {
		if !ev.Kind.Valid() {
			return fmt.Errorf("%w: event %q has unknown kind %q", ErrInvalidContent, ev.ID, ev.Kind)
		}
	}

	if len(c.Quizzes) == 0 {
		return fmt.Errorf("%w: quiz pool is empty", ErrInvalidContent)
	}
	for i, q := range c.Quizzes {
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: quiz %d needs at least two options", ErrInvalidContent, i)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("%w: quiz %d answer %d out of range", ErrInvalidContent, i, q.CorrectIndex)
		}
	}
	return nil
}
