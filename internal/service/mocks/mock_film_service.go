package mocks

import (
	"context"

	"filmshelf/internal/model"
	"filmshelf/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockFilmService struct {
	mock.Mock
}

func (m *MockFilmService) Add(ctx context.Context, draft model.FilmDraft) (*model.Film, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Film), args.Error(1)
}

func (m *MockFilmService) List(ctx context.Context) (*service.FilmListResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FilmListResult), args.Error(1)
}
