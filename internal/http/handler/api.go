package handler

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"filmshelf/internal/form"
	"filmshelf/internal/service"
)

// filmRequest is the JSON body accepted by POST /api/films. Year takes a number or a numeric string.
type filmRequest struct {
	Title string      `json:"title"`
	Year  json.Number `json:"year"`
	Genre string      `json:"genre"`
}

// ListFilmsAPI godoc
// @Summary List all films
// @Tags films
// @Produce json
// @Success 200 {object} service.FilmListResult
// @Failure 500 {object} errorPayload
// @Router /api/films [get]
func ListFilmsAPI(svc service.FilmService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// CreateFilmAPI godoc
// @Summary Add a film
// @Tags films
// @Accept json
// @Produce json
// @Param film body filmRequest true "Film to add"
// @Success 201 {object} model.Film
// @Failure 400 {object} errorPayload
// @Failure 422 {object} validationPayload
// @Failure 500 {object} errorPayload
// @Router /api/films [post]
func CreateFilmAPI(svc service.FilmService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req filmRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		}

		draft, err := form.BindFilm(map[string]string{
			form.FieldTitle: req.Title,
			form.FieldYear:  req.Year.String(),
			form.FieldGenre: req.Genre,
		})
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(validationPayload{
				RequestID: requestIDFromCtx(c),
				Error: validationEnvelope{
					Code:    "VALIDATION_FAILED",
					Message: "validation failed",
					Fields:  verr.Fields(),
				},
			})
		}
		if err != nil {
			return err
		}

		film, err := svc.Add(c.UserContext(), draft)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(film)
	}
}
