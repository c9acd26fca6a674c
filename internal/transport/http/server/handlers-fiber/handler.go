// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"github.com/AlexRizo/flowee-bodesa-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the request tracking API over fiber.
type Handler struct {
	log *zap.SugaredLogger
	uc  usecase.InterfaceUsecase
}

// NewHandler constructs an HTTP handler with service dependencies.
func NewHandler(log *zap.SugaredLogger, usecase usecase.InterfaceUsecase) *Handler {
	return &Handler{
		log: log,
		uc:  usecase,
	}
}

// Register mounts every route on the router. The auth middleware must
// already be installed upstream: handlers trust locals for identity.
func (h *Handler) Register(r fiber.Router) {
	r.Post("/users", h.CreateUser)
	r.Get("/users", h.ListUsers)
	r.Delete("/users/:id", h.DeleteUser)

	r.Get("/me/boards", h.MyBoards)
	r.Get("/me/auto-assigned", h.MyAutoAssigned)

	r.Post("/boards", h.CreateBoard)
	r.Get("/boards", h.ListBoards)
	r.Get("/boards/:slug", h.GetBoard)
	r.Get("/boards/:slug/members", h.BoardMembers)
	r.Get("/boards/:slug/addable-users", h.AddableUsers)
	r.Post("/boards/:slug/members", h.AddMembers)
	r.Delete("/boards/:slug/members/:userId", h.RemoveMember)

	r.Post("/boards/:slug/requests", h.CreateRequest)
	r.Get("/boards/:slug/requests", h.BoardRequests)
	r.Get("/requests/:id", h.GetRequest)
	r.Patch("/requests/:id/status", h.SetStatus)

	r.Get("/designers/load", h.DesignerLoad)
}
