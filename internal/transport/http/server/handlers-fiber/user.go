package handlers_fiber

import (
	"net/http"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/api"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// CreateUser registers a new account.
func (h *Handler) CreateUser(c *fiber.Ctx) error {
	actor, ok := identity(c)
	if !ok {
		return unauthenticated(c)
	}

	var body api.CreateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	user, err := h.uc.CreateUser(c.Context(), actor, mapper.FromAPIUser(body))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(struct {
		User api.User `json:"user"`
	}{User: mapper.ToAPIUser(*user)})
}

// ListUsers returns one page of accounts visible to the caller.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	actor, ok := identity(c)
	if !ok {
		return unauthenticated(c)
	}

	page := c.QueryInt("page", 1)
	users, total, err := h.uc.ListUsers(c.Context(), actor, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(api.UserPage{
		Users: mapper.ToAPIUserList(users),
		Total: total,
	})
}

// DeleteUser soft-deletes an account.
func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	actor, ok := identity(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.uc.DeleteUser(c.Context(), actor, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// MyBoards lists the boards the caller can open.
func (h *Handler) MyBoards(c *fiber.Ctx) error {
	actor, ok := identity(c)
	if !ok {
		return unauthenticated(c)
	}

	boards, err := h.uc.MyBoards(c.Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Boards []api.Board `json:"boards"`
	}{Boards: mapper.ToAPIBoardList(boards)})
}
