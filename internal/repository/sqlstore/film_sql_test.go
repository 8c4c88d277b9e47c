package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"filmshelf/internal/database"
	"filmshelf/internal/model"
	"filmshelf/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilmSQL_Insert(t *testing.T) {
	now := time.Now().UTC()
	year := 2010

	tests := []struct {
		name    string
		dialect database.Dialect
		query   string
	}{
		{
			name:    "postgres",
			dialect: database.Postgres,
			query:   "INSERT INTO films (title,year,genre,created_at) VALUES ($1,$2,$3,$4) RETURNING id",
		},
		{
			name:    "sqlite",
			dialect: database.SQLite,
			query:   "INSERT INTO films (title,year,genre,created_at) VALUES (?,?,?,?) RETURNING id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
			}
			defer db.Close()

			repo := NewFilmSQL(db, tt.dialect)
			film := &model.Film{Title: "Inception", Year: &year, Genre: "Sci-Fi", CreatedAt: now}

			mock.ExpectQuery(regexp.QuoteMeta(tt.query)).
				WithArgs("Inception", sql.NullInt64{Int64: 2010, Valid: true}, "Sci-Fi", now).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

			stored, err := repo.Insert(context.Background(), film)

			require.NoError(t, err)
			assert.Equal(t, int64(7), stored.ID)
			assert.Equal(t, "Inception", stored.Title)
			assert.Equal(t, int64(0), film.ID, "input must not be mutated")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFilmSQL_InsertNullYear(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFilmSQL(db, database.Postgres)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO films").
		WithArgs("Heat", sql.NullInt64{}, "", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	stored, err := repo.Insert(context.Background(), &model.Film{Title: "Heat", CreatedAt: now})

	require.NoError(t, err)
	assert.Nil(t, stored.Year)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilmSQL_InsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFilmSQL(db, database.Postgres)

	mock.ExpectQuery("INSERT INTO films").WillReturnError(errors.New("connection reset"))

	stored, err := repo.Insert(context.Background(), &model.Film{Title: "Heat"})

	assert.Nil(t, stored)
	var serr *repository.StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "insert", serr.Op)
}

func TestFilmSQL_ListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilmSQL(db, database.Postgres)
	ctx := context.Background()
	listQuery := regexp.QuoteMeta("SELECT id, title, year, genre, created_at FROM films ORDER BY id ASC")

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "title", "year", "genre", "created_at"}).
			AddRow(1, "Inception", 2010, "Sci-Fi", time.Now()).
			AddRow(2, "Heat", nil, "", time.Now())

		mock.ExpectQuery(listQuery).WillReturnRows(rows)

		films, err := repo.ListAll(ctx)

		require.NoError(t, err)
		require.Len(t, films, 2)
		assert.Equal(t, "Inception", films[0].Title)
		require.NotNil(t, films[0].Year)
		assert.Equal(t, 2010, *films[0].Year)
		assert.Nil(t, films[1].Year)
	})

	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery(listQuery).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "year", "genre", "created_at"}))

		films, err := repo.ListAll(ctx)

		require.NoError(t, err)
		assert.NotNil(t, films)
		assert.Empty(t, films)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery(listQuery).WillReturnError(errors.New("db down"))

		films, err := repo.ListAll(ctx)

		assert.Nil(t, films)
		var serr *repository.StorageError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "list", serr.Op)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilmSQL_PingContext(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	repo := NewFilmSQL(db, database.SQLite)

	mock.ExpectPing().WillReturnError(errors.New("gone"))

	assert.Error(t, repo.PingContext(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
