// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// UserInterface exposes user-related operations.
type UserInterface interface {
	CreateUser(ctx context.Context, user entities.User) (*entities.User, error)
	GetUser(ctx context.Context, userID string) (*entities.User, error)
	ListUsers(ctx context.Context, roles []entities.Role, page int) ([]entities.User, int, error)
	SoftDeleteUser(ctx context.Context, userID string) error
	UserBoards(ctx context.Context, userID string) ([]entities.Board, error)
}

// BoardInterface exposes board-related operations.
type BoardInterface interface {
	CreateBoard(ctx context.Context, board entities.Board) (*entities.Board, error)
	GetBoardBySlug(ctx context.Context, slug string) (*entities.Board, error)
	GetBoardByID(ctx context.Context, boardID string) (*entities.Board, error)
	ListBoards(ctx context.Context) ([]entities.Board, error)
	ListBoardMembers(ctx context.Context, boardID string, page int) ([]entities.User, int, error)
	ListAddableUsers(ctx context.Context, boardID string) ([]entities.User, error)
	AddBoardMembers(ctx context.Context, boardID string, userIDs []string) ([]entities.User, error)
	RemoveBoardMember(ctx context.Context, boardID, userID string) error
}

// RequestInterface exposes request persistence operations. Status
// writes go through UpdateRequestStatus only; there is no generic
// request update and no delete.
type RequestInterface interface {
	InsertRequest(ctx context.Context, request entities.Request) (*entities.Request, error)
	GetRequest(ctx context.Context, requestID string) (*entities.Request, error)
	ListBoardRequests(ctx context.Context, boardID string, viewerID *string) ([]entities.Request, error)
	ListAutoAssigned(ctx context.Context, userID string) ([]entities.Request, error)
	UpdateRequestStatus(ctx context.Context, requestID string, status entities.Status) (*entities.Request, error)
}

// LoadInterface exposes designer load aggregation.
type LoadInterface interface {
	DesignerLoad(ctx context.Context, boardID *string) ([]entities.DesignerLoad, error)
}
