package domain

import (
	"context"
	"fmt"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"

	"github.com/google/uuid"
)

const defaultAvatar = "/images/avatar.webp"

// CreateUser registers a new account. Admin tier only; the email must
// be unique and the role a known one.
func (u *Usecase) CreateUser(ctx context.Context, actor entities.Identity, user entities.User) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if !entities.CanAdminister(actor.Role) {
		return nil, fmt.Errorf("%w: role %s cannot manage users", entities.ErrUnauthorized, actor.Role)
	}
	if user.Name == "" || user.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", entities.ErrInvalidArgument)
	}
	if !user.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", entities.ErrInvalidArgument, user.Role)
	}

	user.ID = uuid.NewString()
	if user.Avatar == "" {
		user.Avatar = defaultAvatar
	}
	created, err := u.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	u.log.Infow("user created", "user_id", created.ID, "role", created.Role)
	return created, nil
}

// GetUser fetches a user by id.
func (u *Usecase) GetUser(ctx context.Context, userID string) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", entities.ErrInvalidArgument)
	}
	return u.repo.GetUser(ctx, userID)
}

// ListUsers returns one page of users visible to the caller's role.
// SUPER_ADMIN sees every role, ADMIN sees everything below itself,
// other roles see nobody.
func (u *Usecase) ListUsers(ctx context.Context, actor entities.Identity, page int) ([]entities.User, int, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	roles := entities.ListableRoles(actor.Role)
	if len(roles) == 0 {
		return nil, 0, fmt.Errorf("%w: role %s cannot list users", entities.ErrUnauthorized, actor.Role)
	}
	if page < 1 {
		page = 1
	}
	return u.repo.ListUsers(ctx, roles, page)
}

// DeleteUser soft-deletes an account. The row is kept so requests the
// user authored stay joinable.
func (u *Usecase) DeleteUser(ctx context.Context, actor entities.Identity, userID string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if !entities.CanAdminister(actor.Role) {
		return fmt.Errorf("%w: role %s cannot manage users", entities.ErrUnauthorized, actor.Role)
	}
	if userID == "" {
		return fmt.Errorf("%w: user id is required", entities.ErrInvalidArgument)
	}
	if userID == actor.ID {
		return fmt.Errorf("%w: cannot delete own account", entities.ErrInvalidArgument)
	}

	if err := u.repo.SoftDeleteUser(ctx, userID); err != nil {
		return err
	}
	u.log.Infow("user deleted", "user_id", userID)
	return nil
}

// MyBoards lists the boards the caller can open: every board for the
// admin view scope, the boards they are a member of otherwise.
func (u *Usecase) MyBoards(ctx context.Context, actor entities.Identity) ([]entities.Board, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if entities.BoardViewScope(actor.Role) == entities.ScopeAll {
		return u.repo.ListBoards(ctx)
	}
	return u.repo.UserBoards(ctx, actor.ID)
}
