package repository

import (
	"context"

	"filmshelf/internal/model"
)

// FilmRepository is the record store for films. It only persists and reads; validation happens
// before a film reaches it. There is deliberately no update or delete.
type FilmRepository interface {
	// Insert stores a film and returns the stored form with its assigned ID.
	// The ID on the input is ignored. Concurrent calls never yield duplicate IDs.
	Insert(ctx context.Context, film *model.Film) (*model.Film, error)

	// ListAll returns every stored film ordered by ID (insertion order).
	// An empty store yields an empty, non-nil slice.
	ListAll(ctx context.Context) ([]model.Film, error)

	// PingContext reports whether the backing store is reachable.
	PingContext(ctx context.Context) error
}
