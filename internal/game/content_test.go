package game

import (
	"errors"
	"testing"
)

func TestContentValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Content)
		ok     bool
	}{
		{"valid", func(c *Content) {}, true},
		{"short board", func(c *Content) { c.Tiles = c.Tiles[:19] }, false},
		{"ids out of order", func(c *Content) { c.Tiles[4].ID = 5 }, false},
		{"unknown kind", func(c *Content) { c.Tiles[2].Kind = "JAIL" }, false},
		{"free city", func(c *Content) { c.Tiles[1].Price = 0 }, false},
		{"owned template", func(c *Content) { c.Tiles[1].OwnerID = intp(0) }, false},
		{"start moved", func(c *Content) { c.Tiles[0].Kind = TilePark }, false},
		{"no events", func(c *Content) { c.Events = nil }, false},
		{"bad event kind", func(c *Content) { c.Events[0].Kind = "TAX" }, false},
		{"no quizzes", func(c *Content) { c.Quizzes = nil }, false},
		{"one option", func(c *Content) { c.Quizzes[0].Options = []string{"a"} }, false},
		{"answer out of range", func(c *Content) { c.Quizzes[1].CorrectIndex = 4 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContent()
			tt.mutate(&c)
			err := c.Validate()
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidContent) {
				t.Fatalf("got %v, want ErrInvalidContent", err)
			}
		})
	}
}
