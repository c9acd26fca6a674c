package usecase

import (
	"context"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"
)

// UserUsecaseInterface abstracts user administration for the delivery layer.
type UserUsecaseInterface interface {
	CreateUser(ctx context.Context, actor entities.Identity, user entities.User) (*entities.User, error)
	GetUser(ctx context.Context, userID string) (*entities.User, error)
	ListUsers(ctx context.Context, actor entities.Identity, page int) ([]entities.User, int, error)
	DeleteUser(ctx context.Context, actor entities.Identity, userID string) error
	MyBoards(ctx context.Context, actor entities.Identity) ([]entities.Board, error)
}

// BoardUsecaseInterface abstracts board and membership operations.
type BoardUsecaseInterface interface {
	CreateBoard(ctx context.Context, actor entities.Identity, board entities.Board) (*entities.Board, error)
	Board(ctx context.Context, slug string) (*entities.Board, error)
	ListBoards(ctx context.Context, actor entities.Identity) ([]entities.Board, error)
	BoardMembers(ctx context.Context, slug string, page int) ([]entities.User, int, error)
	AddableUsers(ctx context.Context, actor entities.Identity, slug string) ([]entities.User, error)
	AddMembers(ctx context.Context, actor entities.Identity, slug string, userIDs []string) ([]entities.User, error)
	RemoveMember(ctx context.Context, actor entities.Identity, slug, userID string) error
}

// RequestUsecaseInterface abstracts the request lifecycle.
type RequestUsecaseInterface interface {
	CreateRequest(ctx context.Context, actor entities.Identity, boardRef string, input entities.NewRequestInput,
		files, referenceFiles []entities.Upload, autoAssign bool) (*entities.Request, error)
	Request(ctx context.Context, requestID string) (*entities.Request, error)
	SetStatus(ctx context.Context, actor entities.Identity, requestID string, status entities.Status) (*entities.Request, error)
	BoardRequests(ctx context.Context, actor entities.Identity, boardSlug string) ([]entities.Request, error)
	MyAutoAssigned(ctx context.Context, actor entities.Identity) ([]entities.Request, error)
}

// LoadUsecaseInterface abstracts designer workload reporting.
type LoadUsecaseInterface interface {
	DesignerLoad(ctx context.Context, actor entities.Identity, boardSlug *string) ([]entities.DesignerLoad, error)
}
