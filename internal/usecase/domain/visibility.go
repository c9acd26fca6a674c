package domain

import (
	"context"
	"fmt"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"
)

// BoardRequests lists a board's requests under the caller's view scope.
// Admin tier roles see every request; contributor roles only see what
// they authored or are assigned to. The filter is applied in the query,
// never after the fact.
func (u *Usecase) BoardRequests(ctx context.Context, actor entities.Identity, boardSlug string) ([]entities.Request, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if boardSlug == "" {
		return nil, fmt.Errorf("%w: board slug is required", entities.ErrInvalidArgument)
	}

	board, err := u.repo.GetBoardBySlug(ctx, boardSlug)
	if err != nil {
		return nil, err
	}

	var viewerID *string
	if entities.BoardViewScope(actor.Role) == entities.ScopeOwnOrAssigned {
		viewerID = &actor.ID
	}
	return u.repo.ListBoardRequests(ctx, board.ID, viewerID)
}

// MyAutoAssigned lists the caller's self-assigned requests across all
// boards. Every role gets the same fixed filter.
func (u *Usecase) MyAutoAssigned(ctx context.Context, actor entities.Identity) ([]entities.Request, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.ListAutoAssigned(ctx, actor.ID)
}
