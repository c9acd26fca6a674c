package domain

import (
	"context"
	"fmt"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"
)

// DesignerLoad reports how many open requests each active designer is
// carrying, optionally scoped to one board. Admin view scope only; the
// counts are computed per call, nothing is cached.
func (u *Usecase) DesignerLoad(ctx context.Context, actor entities.Identity, boardSlug *string) ([]entities.DesignerLoad, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if entities.BoardViewScope(actor.Role) != entities.ScopeAll {
		return nil, fmt.Errorf("%w: role %s cannot view designer load", entities.ErrUnauthorized, actor.Role)
	}

	var boardID *string
	if boardSlug != nil && *boardSlug != "" {
		board, err := u.repo.GetBoardBySlug(ctx, *boardSlug)
		if err != nil {
			return nil, err
		}
		boardID = &board.ID
	}
	return u.repo.DesignerLoad(ctx, boardID)
}
