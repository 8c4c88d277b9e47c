package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"filmshelf/internal/model"
	"filmshelf/internal/repository"
)

// ErrTitleRequired is returned by Add for a draft with a blank title. Handlers validate first,
// so reaching it means a caller skipped form.BindFilm.
var ErrTitleRequired = errors.New("title is required")

const tracerName = "filmshelf/internal/service"

// FilmListResult is the service-level DTO for the film list.
type FilmListResult struct {
	Items []model.Film `json:"data"`
	Total int          `json:"total"`
}

// FilmService defines the use cases for films.
type FilmService interface {
	// Add stores a validated draft, stamping its creation time.
	Add(ctx context.Context, draft model.FilmDraft) (*model.Film, error)

	// List returns every stored film in insertion order.
	List(ctx context.Context) (*FilmListResult, error)
}

type filmService struct {
	repo    repository.FilmRepository
	tracer  trace.Tracer
	created prometheus.Counter
	now     func() time.Time
}

// NewFilmService constructs a FilmService. When reg is non-nil a films_created_total counter is
// registered on it.
func NewFilmService(repo repository.FilmRepository, reg prometheus.Registerer) FilmService {
	s := &filmService{
		repo:   repo,
		tracer: otel.Tracer(tracerName),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "films_created_total",
			Help: "Total number of films stored.",
		}),
		now: func() time.Time { return time.Now().UTC() },
	}
	if reg != nil {
		if err := reg.Register(s.created); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				if c, ok := are.ExistingCollector.(prometheus.Counter); ok {
					s.created = c
				}
			}
		}
	}
	return s
}

func (s *filmService) Add(ctx context.Context, draft model.FilmDraft) (*model.Film, error) {
	ctx, span := s.tracer.Start(ctx, "FilmService.Add")
	defer span.End()

	if strings.TrimSpace(draft.Title) == "" {
		return nil, ErrTitleRequired
	}

	film := draft.Film(0, s.now())
	stored, err := s.repo.Insert(ctx, &film)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return nil, fmt.Errorf("add film: %w", err)
	}

	s.created.Inc()
	span.SetAttributes(attribute.Int64("film.id", stored.ID))
	return stored, nil
}

func (s *filmService) List(ctx context.Context) (*FilmListResult, error) {
	ctx, span := s.tracer.Start(ctx, "FilmService.List")
	defer span.End()

	items, err := s.repo.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list failed")
		return nil, fmt.Errorf("list films: %w", err)
	}

	span.SetAttributes(attribute.Int("film.count", len(items)))
	return &FilmListResult{Items: items, Total: len(items)}, nil
}
