package handler

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed views
var viewsFS embed.FS

const mainLayout = "layouts/main"

// NewViews returns the HTML engine for the embedded page templates. Pass it as fiber.Config.Views.
func NewViews() (*html.Engine, error) {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return nil, fmt.Errorf("views: %w", err)
	}
	return html.NewFileSystem(http.FS(sub), ".html"), nil
}
