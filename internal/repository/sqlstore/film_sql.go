package sqlstore

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"filmshelf/internal/database"
	"filmshelf/internal/model"
	"filmshelf/internal/repository"
)

var filmColumns = []string{"id", "title", "year", "genre", "created_at"}

// FilmSQL is a database/sql implementation of repository.FilmRepository.
// The same queries serve PostgreSQL and SQLite; only the placeholder format differs.
// IDs come from the database sequence, so concurrent inserts cannot collide.
type FilmSQL struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// NewFilmSQL creates a film repository for the given dialect.
func NewFilmSQL(db *sql.DB, d database.Dialect) *FilmSQL {
	return &FilmSQL{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(d.Placeholder),
	}
}

var _ repository.FilmRepository = (*FilmSQL)(nil)

// Insert writes one row and returns it with the generated ID.
func (r *FilmSQL) Insert(ctx context.Context, film *model.Film) (*model.Film, error) {
	q, args, err := r.sb.
		Insert("films").
		Columns("title", "year", "genre", "created_at").
		Values(film.Title, nullableInt(film.Year), film.Genre, film.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, repository.Wrap("insert", err)
	}

	out := *film
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&out.ID); err != nil {
		return nil, repository.Wrap("insert", err)
	}
	return &out, nil
}

// ListAll reads every row ordered by ID.
func (r *FilmSQL) ListAll(ctx context.Context) ([]model.Film, error) {
	q, args, err := r.sb.
		Select(filmColumns...).
		From("films").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, repository.Wrap("list", err)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, repository.Wrap("list", err)
	}
	defer rows.Close()

	items := make([]model.Film, 0)
	for rows.Next() {
		var (
			f    model.Film
			year sql.NullInt64
		)
		if err := rows.Scan(&f.ID, &f.Title, &year, &f.Genre, &f.CreatedAt); err != nil {
			return nil, repository.Wrap("list", err)
		}
		if year.Valid {
			y := int(year.Int64)
			f.Year = &y
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.Wrap("list", err)
	}
	return items, nil
}

// PingContext checks database connectivity.
func (r *FilmSQL) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func nullableInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}
