package memory

import (
	"context"
	"sync"

	"filmshelf/internal/model"
	"filmshelf/internal/repository"
)

// FilmMemory keeps films in process memory. Records live as long as the process.
type FilmMemory struct {
	mu     sync.RWMutex
	films  []model.Film
	nextID int64
}

// NewFilmMemory creates an empty in-memory film store.
func NewFilmMemory() *FilmMemory {
	return &FilmMemory{nextID: 1}
}

var _ repository.FilmRepository = (*FilmMemory)(nil)

// Insert assigns the next ID under the write lock and appends the record.
func (s *FilmMemory) Insert(ctx context.Context, film *model.Film) (*model.Film, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.Wrap("insert", err)
	}

	s.mu.Lock()
	stored := *film
	stored.ID = s.nextID
	s.nextID++
	s.films = append(s.films, stored)
	s.mu.Unlock()

	return &stored, nil
}

// ListAll returns a copy of all records in insertion order.
func (s *FilmMemory) ListAll(ctx context.Context) ([]model.Film, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.Wrap("list", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Film, len(s.films))
	copy(out, s.films)
	return out, nil
}

// PingContext always succeeds.
func (s *FilmMemory) PingContext(ctx context.Context) error {
	return nil
}
