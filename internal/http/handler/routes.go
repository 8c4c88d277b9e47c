package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"filmshelf/internal/service"
)

const filmListPath = "/films/"

type route struct {
	Method  string
	Path    string
	Handler fiber.Handler
}

// routeTable is the full HTTP surface. Paths are matched with an optional trailing slash.
// A path matched under another method answers 405, anything else 404.
func routeTable(filmSvc service.FilmService, pinger Pinger, gatherer prometheus.Gatherer) []route {
	return []route{
		{fiber.MethodGet, "/", RedirectTo(filmListPath)},
		{fiber.MethodGet, filmListPath, ListFilms(filmSvc)},
		{fiber.MethodGet, "/films/add/", AddFilmForm()},
		{fiber.MethodPost, "/films/add/", SubmitFilm(filmSvc)},

		{fiber.MethodGet, "/api/films", ListFilmsAPI(filmSvc)},
		{fiber.MethodPost, "/api/films", CreateFilmAPI(filmSvc)},

		{fiber.MethodGet, "/health", HealthCheck(pinger)},
		{fiber.MethodGet, "/healthz", LivenessProbe()},
		{fiber.MethodGet, "/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))},
	}
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, filmSvc service.FilmService, pinger Pinger, gatherer prometheus.Gatherer) {
	for _, r := range routeTable(filmSvc, pinger, gatherer) {
		// Like app.Get, every GET route answers HEAD too
		if r.Method == fiber.MethodGet {
			app.Add(fiber.MethodHead, r.Path, r.Handler)
		}
		app.Add(r.Method, r.Path, r.Handler)
	}
}

// RedirectTo answers with a 302 pointing at target.
func RedirectTo(target string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Redirect(target, fiber.StatusFound)
	}
}
