// Package content reads the board, event deck and quiz pool from the
// content database.
package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/playperu/citymarble/internal/game"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load reads and validates the full content set.
func (s *Store) Load(ctx context.Context) (game.Content, error) {
	var c game.Content
	var err error

	if c.Tiles, err = s.tiles(ctx); err != nil {
		return c, fmt.Errorf("loading tiles: %w", err)
	}
	if c.Events, err = s.events(ctx); err != nil {
		return c, fmt.Errorf("loading events: %w", err)
	}
	if c.Quizzes, err = s.quizzes(ctx); err != nil {
		return c, fmt.Errorf("loading quizzes: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Check reports whether the database answers and still holds a full board.
func (s *Store) Check(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tiles`).Scan(&n); err != nil {
		return err
	}
	if n != game.BoardSize {
		return fmt.Errorf("%w: board has %d tiles", game.ErrInvalidContent, n)
	}
	return nil
}

func (s *Store) tiles(ctx context.Context) ([]game.Tile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, kind, price, rent, fine, special, description, icon
		FROM tiles
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiles []game.Tile
	for rows.Next() {
		var t game.Tile
		if err := rows.Scan(&t.ID, &t.Name, &t.Kind, &t.Price, &t.Rent, &t.Fine, &t.Special, &t.Description, &t.Icon); err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}
	return tiles, rows.Err()
}

func (s *Store) events(ctx context.Context) ([]game.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, kind, value
		FROM events
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []game.Event
	for rows.Next() {
		var ev game.Event
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Kind, &ev.Value); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *Store) quizzes(ctx context.Context) ([]game.Quiz, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question, options, correct_index, explanation, difficulty
		FROM quiz_questions
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []game.Quiz
	for rows.Next() {
		var q game.Quiz
		var optionsJSON string
		if err := rows.Scan(&q.Question, &optionsJSON, &q.CorrectIndex, &q.Explanation, &q.Difficulty); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(optionsJSON), &q.Options); err != nil {
			return nil, fmt.Errorf("decoding options of %q: %w", q.Question, err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}
