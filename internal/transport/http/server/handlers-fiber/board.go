package handlers_fiber

import (
	"net/http"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/api"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// CreateBoard registers a new board.
func (h *Handler) CreateBoard(c *fiber.Ctx) error {
	actor, ok := identity(c)
	if !ok {
		return unauthenticated(c)
	}

	var body api.CreateBoardRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	board, err := h.uc.CreateBoard(c.Context(), actor, mapper.FromAPIBoard(body))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(struct {
		Board api.Board `json:"board"`
	}{Board: mapper.ToAPIBoard(*board)})
}

// ListBoards lists every board.
func (h *Handler) ListBoards(c *fiber.Ctx) error {
	actor, ok := identity(c)
	if !ok {
		return unauthenticated(c)
	}

	boards, err := h.uc.ListBoards(c.Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Boards []api.Board `json:"boards"`
	}{Boards: mapper.ToAPIBoardList(boards)})
}

// GetBoard fetches one board by slug.
func (h *Handler) GetBoard(c *fiber.Ctx) error {
	if _, ok := identity(c); !ok {
		return unauthenticated(c)
	}

	board, err := h.uc.Board(c.Context(), c.Params("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Board api.Board `json:"board"`
	}{Board: mapper.ToAPIBoard(*board)})
}

// BoardMembers lists one page of a board's members.
func (h *Handler) BoardMembers(c *fiber.Ctx) error {
	if _, ok := identity(c); !ok {
		return unauthenticated(c)
	}

	page := c.QueryInt("page", 1)
	users, total, err := h.uc.BoardMembers(c.Context(), c.Params("slug"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(api.UserPage{
		Users: mapper.ToAPIUserList(users),
		Total: total,
	})
}

// AddableUsers lists the users that can still join the board.
func (h *Handler) AddableUsers(c *fiber.Ctx) error {
	actor, ok := identity(c)
	if !ok {
		return unauthenticated(c)
	}

	users, err := h.uc.AddableUsers(c.Context(), actor, c.Params("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Users []api.User `json:"users"`
	}{Users: mapper.ToAPIUserList(users)})
}

// AddMembers adds users to a board.
func (h *Handler) AddMembers(c *fiber.Ctx) error {
	actor, ok := identity(c)
	if !ok {
		return unauthenticated(c)
	}

	var body api.AddMembersRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	added, err := h.uc.AddMembers(c.Context(), actor, c.Params("slug"), body.Users)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Users []api.User `json:"users"`
	}{Users: mapper.ToAPIUserList(added)})
}

// RemoveMember removes one user from a board.
func (h *Handler) RemoveMember(c *fiber.Ctx) error {
	actor, ok := identity(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.uc.RemoveMember(c.Context(), actor, c.Params("slug"), c.Params("userId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
