package form

import "filmshelf/internal/model"

// Film field names as submitted by the add form and the JSON API.
const (
	FieldTitle = "title"
	FieldYear  = "year"
	FieldGenre = "genre"
)

// FilmSchema is the schema every stored film satisfies.
var FilmSchema = NewSchema(
	Field{Name: FieldTitle, Label: "Title", Kind: Text, Required: true, MaxLength: 200},
	Field{Name: FieldYear, Label: "Release year", Kind: Integer, Min: 1888, Max: 2100, HasRange: true},
	Field{Name: FieldGenre, Label: "Genre", Kind: Text, MaxLength: 100},
)

// BindFilm validates raw input against FilmSchema.
func BindFilm(raw map[string]string) (model.FilmDraft, error) {
	cleaned, err := FilmSchema.Validate(raw)
	if err != nil {
		return model.FilmDraft{}, err
	}
	return model.FilmDraft{
		Title: cleaned.Text(FieldTitle),
		Year:  cleaned.Int(FieldYear),
		Genre: cleaned.Text(FieldGenre),
	}, nil
}
