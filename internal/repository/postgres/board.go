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
	insertBoardQuery = `
INSERT INTO boards(id, name, slug, color, initials, active)
VALUES ($1, $2, $3, $4, $5, true)
RETURNING created_at`
	selectBoardBySlugQuery = `
SELECT id, name, slug, color, initials, active, created_at FROM boards WHERE slug = $1`
	selectBoardByIDQuery = `
SELECT id, name, slug, color, initials, active, created_at FROM boards WHERE id = $1`
	listBoardsQuery = `
SELECT id, name, slug, color, initials, active, created_at FROM boards ORDER BY name`
	listBoardMembersQuery = `
SELECT u.id, u.name, u.email, u.avatar, u.role, u.active, u.deleted, u.created_at
FROM board_members m
JOIN users u ON u.id = m.user_id
WHERE m.board_id = $1 AND u.active = true AND u.deleted = false
ORDER BY u.name
OFFSET $2 LIMIT $3`
	countBoardMembersQuery = `
SELECT COUNT(*)
FROM board_members m
JOIN users u ON u.id = m.user_id
WHERE m.board_id = $1 AND u.active = true AND u.deleted = false`
	listAddableUsersQuery = `
SELECT u.id, u.name, u.email, u.avatar, u.role, u.active, u.deleted, u.created_at
FROM users u
WHERE u.active = true AND u.deleted = false
  AND u.role NOT IN ('ADMIN', 'SUPER_ADMIN')
  AND NOT EXISTS (SELECT 1 FROM board_members m WHERE m.board_id = $1 AND m.user_id = u.id)
ORDER BY u.name`
	selectUsersByIDQuery = `
SELECT id, name, email, avatar, role, active, deleted, created_at
FROM users
WHERE id = ANY($1) AND active = true AND deleted = false`
	insertBoardMemberQuery = `
INSERT INTO board_members(board_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	deleteBoardMemberQuery = `DELETE FROM board_members WHERE board_id = $1 AND user_id = $2`
)

// CreateBoard inserts a board. Slug conflicts map to ErrBoardExists.
func (p *Postgres) CreateBoard(ctx context.Context, board entities.Board) (*entities.Board, error) {
	err := p.db.QueryRow(ctx, insertBoardQuery,
		board.ID, board.Name, board.Slug, board.Color, board.Initials,
	).Scan(&board.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, entities.ErrBoardExists
		}
		p.log.Errorw("failed to insert board", "error", err, "slug", board.Slug)
		return nil, fmt.Errorf("insert board: %w", err)
	}
	board.Active = true

	p.log.Infow("board created", "slug", board.Slug)
	return &board, nil
}

// GetBoardBySlug fetches a board by its unique slug.
func (p *Postgres) GetBoardBySlug(ctx context.Context, slug string) (*entities.Board, error) {
	return p.scanBoard(p.db.QueryRow(ctx, selectBoardBySlugQuery, slug))
}

// GetBoardByID fetches a board by id.
func (p *Postgres) GetBoardByID(ctx context.Context, boardID string) (*entities.Board, error) {
	return p.scanBoard(p.db.QueryRow(ctx, selectBoardByIDQuery, boardID))
}

func (p *Postgres) scanBoard(row pgx.Row) (*entities.Board, error) {
	var b entities.Board
	err := row.Scan(&b.ID, &b.Name, &b.Slug, &b.Color, &b.Initials, &b.Active, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrBoardNotFound
		}
		return nil, fmt.Errorf("get board: %w", err)
	}
	return &b, nil
}

// ListBoards returns all boards.
func (p *Postgres) ListBoards(ctx context.Context) ([]entities.Board, error) {
	rows, err := p.db.Query(ctx, listBoardsQuery)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
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

// ListBoardMembers returns a page of active members plus total pages.
func (p *Postgres) ListBoardMembers(ctx context.Context, boardID string, page int) ([]entities.User, int, error) {
	offset := (page - 1) * resultsPerPage

	rows, err := p.db.Query(ctx, listBoardMembersQuery, boardID, offset, resultsPerPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list board members: %w", err)
	}
	defer rows.Close()

	users, err := scanUsers(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := p.db.QueryRow(ctx, countBoardMembersQuery, boardID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count board members: %w", err)
	}

	return users, pageCount(total), nil
}

// ListAddableUsers returns active non-admin users that are not yet
// members of the board.
func (p *Postgres) ListAddableUsers(ctx context.Context, boardID string) ([]entities.User, error) {
	rows, err := p.db.Query(ctx, listAddableUsersQuery, boardID)
	if err != nil {
		return nil, fmt.Errorf("list addable users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

// AddBoardMembers adds the given users to a board with set semantics
// and returns the users actually eligible (active, non-deleted).
func (p *Postgres) AddBoardMembers(ctx context.Context, boardID string, userIDs []string) ([]entities.User, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, selectUsersByIDQuery, userIDs)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	users, err := scanUsers(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if _, err := tx.Exec(ctx, insertBoardMemberQuery, boardID, u.ID); err != nil {
			return nil, fmt.Errorf("insert member: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("board members added", "board_id", boardID, "count", len(users))
	return users, nil
}

// RemoveBoardMember removes a user from a board.
func (p *Postgres) RemoveBoardMember(ctx context.Context, boardID, userID string) error {
	tag, err := p.db.Exec(ctx, deleteBoardMemberQuery, boardID, userID)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrUserNotFound
	}

	p.log.Infow("board member removed", "board_id", boardID, "user_id", userID)
	return nil
}

func scanUsers(rows pgx.Rows) ([]entities.User, error) {
	users := make([]entities.User, 0)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.Role, &u.Active, &u.Deleted, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}
