package mocks

import (
	"context"

	"filmshelf/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockFilmRepository struct {
	mock.Mock
}

func (m *MockFilmRepository) Insert(ctx context.Context, film *model.Film) (*model.Film, error) {
	args := m.Called(ctx, film)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Film), args.Error(1)
}

func (m *MockFilmRepository) ListAll(ctx context.Context) ([]model.Film, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Film), args.Error(1)
}

func (m *MockFilmRepository) PingContext(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
