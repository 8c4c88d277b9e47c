package handler

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"filmshelf/internal/http/middleware"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// validationPayload is the 422 body of the JSON API; fields maps field name to its messages.
type validationPayload struct {
	RequestID string             `json:"request_id"`
	Error     validationEnvelope `json:"error"`
}

type validationEnvelope struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "BAD_REQUEST", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

func classify(status int) (code, message string) {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST", "bad request"
	case fiber.StatusNotFound:
		return "NOT_FOUND", "resource not found"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED", "method not allowed"
	case fiber.StatusUnprocessableEntity:
		return "UNPROCESSABLE_ENTITY", "unprocessable entity"
	case fiber.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE", "dependency unavailable"
	default:
		return "INTERNAL_ERROR", "internal server error"
	}
}

// wantsJSON reports whether the failed request belongs to the machine-facing surface.
func wantsJSON(c *fiber.Ctx) bool {
	p := c.Path()
	return p == "/api" || strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/health")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
// API paths get the JSON envelope, pages get the rendered error template.
// Anything that is not a *fiber.Error is treated as a 500 and logged with its cause.
func ErrorHandler(loc *time.Location) fiber.ErrorHandler {
	if loc == nil {
		loc = time.UTC
	}

	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		if status >= fiber.StatusInternalServerError {
			logRequestError(loc, c, status, err)
		}

		code, message := classify(status)
		if wantsJSON(c) {
			return writeError(c, status, code, message)
		}

		rerr := c.Status(status).Render("errors", fiber.Map{
			"Title":     message,
			"Status":    status,
			"Message":   message,
			"RequestID": requestIDFromCtx(c),
		}, mainLayout)
		if rerr != nil {
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return c.Status(status).SendString(message)
		}
		return nil
	}
}

func logRequestError(loc *time.Location, c *fiber.Ctx, status int, err error) {
	b, merr := json.Marshal(map[string]any{
		"ts":            time.Now().In(loc).Format(time.RFC3339Nano),
		"level":         "error",
		"component":     "http",
		"event":         "request_failed",
		"request_id":    requestIDFromCtx(c),
		"method":        c.Method(),
		"path":          c.Path(),
		"status":        status,
		"error_message": err.Error(),
	})
	if merr != nil {
		log.Printf("failed to marshal error log: %v", merr)
		return
	}
	log.Println(string(b))
}
