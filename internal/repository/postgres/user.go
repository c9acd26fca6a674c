package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertUserQuery = `
INSERT INTO users(id, name, email, avatar, role, active, deleted)
VALUES ($1, $2, $3, $4, $5, $6, false)
RETURNING created_at`
	selectUserQuery = `
SELECT id, name, email, avatar, role, active, deleted, created_at
FROM users
WHERE id = $1`
	listUsersQuery = `
SELECT id, name, email, avatar, role, active, deleted, created_at
FROM users
WHERE role = ANY($1) AND active = true AND deleted = false
ORDER BY role, created_at DESC
OFFSET $2 LIMIT $3`
	countUsersQuery    = `SELECT COUNT(*) FROM users WHERE role = ANY($1) AND active = true AND deleted = false`
	softDeleteQuery    = `UPDATE users SET deleted = true WHERE id = $1 AND deleted = false RETURNING id`
	selectUserBoardsQuery = `
SELECT b.id, b.name, b.slug, b.color, b.initials, b.active, b.created_at
FROM board_members m
JOIN boards b ON b.id = m.board_id
WHERE m.user_id = $1
ORDER BY b.name`
)

// CreateUser inserts a user. Email conflicts map to ErrEmailExists.
func (p *Postgres) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	err := p.db.QueryRow(ctx, insertUserQuery,
		user.ID, user.Name, user.Email, user.Avatar, user.Role, user.Active,
	).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, entities.ErrEmailExists
		}
		p.log.Errorw("failed to insert user", "error", err, "email", user.Email)
		return nil, fmt.Errorf("insert user: %w", err)
	}

	p.log.Infow("user created", "user_id", user.ID, "role", user.Role)
	return &user, nil
}

// GetUser fetches a user by id, including inactive and deleted ones;
// the caller decides what the flags mean.
func (p *Postgres) GetUser(ctx context.Context, userID string) (*entities.User, error) {
	var u entities.User
	err := p.db.QueryRow(ctx, selectUserQuery, userID).
		Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.Role, &u.Active, &u.Deleted, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// ListUsers returns a page of active, non-deleted users with the given
// roles, plus the total page count.
func (p *Postgres) ListUsers(ctx context.Context, roles []entities.Role, page int) ([]entities.User, int, error) {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}
	offset := (page - 1) * resultsPerPage

	rows, err := p.db.Query(ctx, listUsersQuery, names, offset, resultsPerPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.Role, &u.Active, &u.Deleted, &u.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}

	var total int
	if err := p.db.QueryRow(ctx, countUsersQuery, names).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	return users, pageCount(total), nil
}

// SoftDeleteUser flips the deleted flag; the row is kept so request
// history retains its author reference.
func (p *Postgres) SoftDeleteUser(ctx context.Context, userID string) error {
	var id string
	if err := p.db.QueryRow(ctx, softDeleteQuery, userID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.ErrUserNotFound
		}
		return fmt.Errorf("soft delete user: %w", err)
	}

	p.log.Infow("user soft-deleted", "user_id", userID)
	return nil
}

// UserBoards returns the boards a user is a member of.
func (p *Postgres) UserBoards(ctx context.Context, userID string) ([]entities.Board, error) {
	rows, err := p.db.Query(ctx, selectUserBoardsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("user boards: %w", err)
	}
	defer rows.Close()

	boards := make([]entities.Board, 0)
	for rows.Next() {
		var b entities.Board
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.Color, &b.Initials, &b.Active, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate boards: %w", err)
	}
	return boards, nil
}

func pageCount(total int) int {
	pages := total / resultsPerPage
	if total%resultsPerPage != 0 {
		pages++
	}
	return pages
}
