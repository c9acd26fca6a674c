package handlers_fiber

import (
	"errors"
	"net/http"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/api"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// writeError maps domain sentinel errors onto HTTP statuses. This is
// the only place status mapping happens.
func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, entities.ErrUnauthorized):
		status = http.StatusForbidden
		msg = "not allowed"
	case errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrBoardNotFound),
		errors.Is(err, entities.ErrRequestNotFound):
		status = http.StatusNotFound
		msg = "resource not found"
	case errors.Is(err, entities.ErrBoardExists):
		status = http.StatusConflict
		msg = "slug already exists"
	case errors.Is(err, entities.ErrEmailExists):
		status = http.StatusConflict
		msg = "email already exists"
	case errors.Is(err, entities.ErrUpstream):
		status = http.StatusBadGateway
		msg = "file storage unavailable"
	default:
		msg = err.Error()
	}

	return c.Status(status).JSON(api.Error{Error: msg})
}

// identity reads the verified caller identity installed by the auth
// middleware.
func identity(c *fiber.Ctx) (entities.Identity, bool) {
	id, ok := c.Locals(middleware.IdentityKey).(entities.Identity)
	return id, ok
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(api.Error{Error: msg})
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(http.StatusUnauthorized).JSON(api.Error{Error: "missing identity"})
}
