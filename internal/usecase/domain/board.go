package domain

import (
	"context"
	"fmt"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"

	"github.com/google/uuid"
)

// CreateBoard registers a new board. Admin tier only; the slug must be
// unique.
func (u *Usecase) CreateBoard(ctx context.Context, actor entities.Identity, board entities.Board) (*entities.Board, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if !entities.CanAdminister(actor.Role) {
		return nil, fmt.Errorf("%w: role %s cannot manage boards", entities.ErrUnauthorized, actor.Role)
	}
	if board.Name == "" || board.Slug == "" {
		return nil, fmt.Errorf("%w: name and slug are required", entities.ErrInvalidArgument)
	}

	board.ID = uuid.NewString()
	created, err := u.repo.CreateBoard(ctx, board)
	if err != nil {
		return nil, err
	}
	u.log.Infow("board created", "slug", created.Slug)
	return created, nil
}

// Board fetches a board by slug.
func (u *Usecase) Board(ctx context.Context, slug string) (*entities.Board, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if slug == "" {
		return nil, fmt.Errorf("%w: board slug is required", entities.ErrInvalidArgument)
	}
	return u.repo.GetBoardBySlug(ctx, slug)
}

// ListBoards returns every board. Admin tier only.
func (u *Usecase) ListBoards(ctx context.Context, actor entities.Identity) ([]entities.Board, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if !entities.CanAdminister(actor.Role) {
		return nil, fmt.Errorf("%w: role %s cannot list all boards", entities.ErrUnauthorized, actor.Role)
	}
	return u.repo.ListBoards(ctx)
}

// BoardMembers returns one page of a board's active members and the
// total page count.
func (u *Usecase) BoardMembers(ctx context.Context, slug string, page int) ([]entities.User, int, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	board, err := u.repo.GetBoardBySlug(ctx, slug)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	return u.repo.ListBoardMembers(ctx, board.ID, page)
}

// AddableUsers lists the users an admin may still add to the board.
func (u *Usecase) AddableUsers(ctx context.Context, actor entities.Identity, slug string) ([]entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if !entities.CanAdminister(actor.Role) {
		return nil, fmt.Errorf("%w: role %s cannot manage members", entities.ErrUnauthorized, actor.Role)
	}
	board, err := u.repo.GetBoardBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return u.repo.ListAddableUsers(ctx, board.ID)
}

// AddMembers adds users to a board with set semantics and returns the
// users that were actually eligible.
func (u *Usecase) AddMembers(ctx context.Context, actor entities.Identity, slug string, userIDs []string) ([]entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if !entities.CanAdminister(actor.Role) {
		return nil, fmt.Errorf("%w: role %s cannot manage members", entities.ErrUnauthorized, actor.Role)
	}
	if len(userIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one user id is required", entities.ErrInvalidArgument)
	}
	board, err := u.repo.GetBoardBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	added, err := u.repo.AddBoardMembers(ctx, board.ID, userIDs)
	if err != nil {
		return nil, err
	}
	u.log.Infow("board members added", "board", slug, "count", len(added))
	return added, nil
}

// RemoveMember removes a user from a board.
func (u *Usecase) RemoveMember(ctx context.Context, actor entities.Identity, slug, userID string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if !entities.CanAdminister(actor.Role) {
		return fmt.Errorf("%w: role %s cannot manage members", entities.ErrUnauthorized, actor.Role)
	}
	if userID == "" {
		return fmt.Errorf("%w: user id is required", entities.ErrInvalidArgument)
	}
	board, err := u.repo.GetBoardBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return u.repo.RemoveBoardMember(ctx, board.ID, userID)
}
