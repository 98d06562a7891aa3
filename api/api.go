// Package api exposes the list service over HTTP with fiber.
package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/sicko7947/grocer"
	"github.com/sicko7947/grocer/service"
)

// Version is reported by the health and root endpoints
const Version = "1.0.0"

// Handler serves the HTTP API
type Handler struct {
	svc    *service.Service
	logger zerolog.Logger
}

// NewHandler creates an API handler over svc
func NewHandler(svc *service.Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// NewApp creates a fiber app with every route registered
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "grocer",
		ErrorHandler: h.errorHandler,
	})
	app.Use(recover.New())
	app.Use(h.requestLogger)
	h.Register(app)
	return app
}

// Register registers all HTTP routes
func (h *Handler) Register(app *fiber.App) {
	// Health check endpoint
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "grocer",
			"version": Version,
		})
	})

	// Root endpoint
	app.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "grocer shopping list API",
			"version": Version,
			"endpoints": fiber.Map{
				"health":      "GET /health",
				"listLists":   "GET /api/v1/lists",
				"createList":  "POST /api/v1/lists",
				"joinList":    "POST /api/v1/lists/join",
				"getList":     "GET /api/v1/lists/:id",
				"renameList":  "PATCH /api/v1/lists/:id",
				"deleteList":  "DELETE /api/v1/lists/:id",
				"invite":      "GET /api/v1/lists/:id/invite",
				"listItems":   "GET /api/v1/lists/:id/items?tag=:tagId",
				"addItem":     "POST /api/v1/lists/:id/items",
				"updateItem":  "PUT /api/v1/lists/:id/items/:itemId",
				"deleteItem":  "DELETE /api/v1/lists/:id/items/:itemId",
				"listTags":    "GET /api/v1/lists/:id/tags",
				"recolourTag": "PATCH /api/v1/lists/:id/tags/:tagId",
				"removeTag":   "DELETE /api/v1/lists/:id/tags/:tagId",
			},
		})
	})

	// API v1 routes
	v1 := app.Group("/api/v1")

	lists := v1.Group("/lists")
	lists.Get("/", h.handleListLists)
	lists.Post("/", h.handleCreateList)
	lists.Post("/join", h.handleJoinList)
	lists.Get("/:id", h.handleGetList)
	lists.Patch("/:id", h.handleRenameList)
	lists.Delete("/:id", h.handleDeleteList)
	lists.Get("/:id/invite", h.handleInvite)

	lists.Get("/:id/items", h.handleListItems)
	lists.Post("/:id/items", h.handleAddItem)
	lists.Put("/:id/items/:itemId", h.handleUpdateItem)
	lists.Delete("/:id/items/:itemId", h.handleDeleteItem)

	lists.Get("/:id/tags", h.handleListTags)
	lists.Patch("/:id/tags/:tagId", h.handleRecolourTag)
	lists.Delete("/:id/tags/:tagId", h.handleRemoveTag)
}

// requestLogger logs every request with its status and latency
func (h *Handler) requestLogger(c fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = statusFor(err)
	}

	event := h.logger.Debug()
	if status >= fiber.StatusInternalServerError {
		event = h.logger.Error().Err(err)
	}
	event.
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Msg("Request handled")

	return err
}

// errorHandler renders errors as {"error", "code"} with a status derived from the code
func (h *Handler) errorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  codeForStatus(fe.Code),
		})
	}

	status := statusFor(err)
	message := err.Error()
	var ge *grocer.GrocerError
	if errors.As(err, &ge) {
		message = ge.Message
	}
	if status == fiber.StatusInternalServerError {
		message = "internal error"
	}

	return c.Status(status).JSON(fiber.Map{
		"error": message,
		"code":  grocer.ErrorCode(err),
	})
}

func statusFor(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}

	switch grocer.ErrorCode(err) {
	case grocer.ErrCodeValidation:
		return fiber.StatusBadRequest
	case grocer.ErrCodeNotFound:
		return fiber.StatusNotFound
	case grocer.ErrCodeConflict:
		return fiber.StatusConflict
	case grocer.ErrCodeForbidden:
		return fiber.StatusForbidden
	case grocer.ErrCodeNotImplemented:
		return fiber.StatusNotImplemented
	default:
		return fiber.StatusInternalServerError
	}
}

// codeForStatus maps a fiber status to an error code. Client errors without
// a code of their own are reported as validation errors.
func codeForStatus(status int) string {
	switch {
	case status == fiber.StatusNotFound:
		return grocer.ErrCodeNotFound
	case status == fiber.StatusForbidden:
		return grocer.ErrCodeForbidden
	case status == fiber.StatusConflict:
		return grocer.ErrCodeConflict
	case status == fiber.StatusNotImplemented:
		return grocer.ErrCodeNotImplemented
	case status >= 400 && status < 500:
		return grocer.ErrCodeValidation
	default:
		return grocer.ErrCodeInternalError
	}
}

// intParam reads a positive integer path parameter
func intParam(c fiber.Ctx, name string) (int, error) {
	value, err := strconv.Atoi(c.Params(name))
	if err != nil || value <= 0 {
		return 0, grocer.NewValidationError(name, "must be a positive integer")
	}
	return value, nil
}

// tagQuery collects tag IDs from repeated ?tag= parameters and comma separated values
func tagQuery(c fiber.Ctx) ([]int, error) {
	var ids []int
	for _, raw := range c.Request().URI().QueryArgs().PeekMulti("tag") {
		for _, part := range strings.Split(string(raw), ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				return nil, grocer.NewValidationError("tag", "tag filters must be integer IDs")
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
