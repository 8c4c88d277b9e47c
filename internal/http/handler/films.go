package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"filmshelf/internal/form"
	"filmshelf/internal/service"
)

// ListFilms renders every stored film. Storage failures surface as 500 through the error handler.
func ListFilms(svc service.FilmService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.Render("films/list", fiber.Map{
			"Title": "Films",
			"Films": res.Items,
			"Total": res.Total,
		}, mainLayout)
	}
}

// AddFilmForm renders the empty submission form.
func AddFilmForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderFilmForm(c, form.Unbound(form.FilmSchema))
	}
}

// SubmitFilm validates the posted form. Invalid input re-renders the form with the entered
// values and field messages and writes nothing; valid input is stored and redirected to the list.
func SubmitFilm(svc service.FilmService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// FormValue aliases the request buffer, which fiber reuses; copy before the values outlive the request.
		raw := form.FilmSchema.RawValues(func(name string) string {
			return utils.CopyString(c.FormValue(name))
		})

		draft, err := form.BindFilm(raw)
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			return renderFilmForm(c, form.Bound{Schema: form.FilmSchema, Values: raw, Errors: verr})
		}
		if err != nil {
			return err
		}

		if _, err := svc.Add(c.UserContext(), draft); err != nil {
			return err
		}
		return c.Redirect(filmListPath, fiber.StatusFound)
	}
}

func renderFilmForm(c *fiber.Ctx, f form.Bound) error {
	return c.Status(fiber.StatusOK).Render("films/add", fiber.Map{
		"Title": "Add a film",
		"Form":  f,
	}, mainLayout)
}
