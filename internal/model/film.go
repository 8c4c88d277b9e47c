package model

import "time"

// Film is the single persisted entity: a movie entry added through the form.
// It has no persistence tags so it can be shared by every store backend.
type Film struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Year      *int      `json:"year,omitempty"`
	Genre     string    `json:"genre,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FilmDraft holds validated input that has not been stored yet.
type FilmDraft struct {
	Title string
	Year  *int
	Genre string
}

// Film converts the draft into a record with the given identity.
func (d FilmDraft) Film(id int64, createdAt time.Time) Film {
	return Film{
		ID:        id,
		Title:     d.Title,
		Year:      d.Year,
		Genre:     d.Genre,
		CreatedAt: createdAt,
	}
}
