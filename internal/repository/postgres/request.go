package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"

	"github.com/jackc/pgx/v5"
)

// requestColumns is the joined projection used by every request read:
// the request row plus the author, board and assignee display fields
// joined at read time.
const requestColumns = `
r.id, r.title, r.description, r.type, r.priority, r.status, r.size, r.legals,
r.is_auto_assigned, r.finish_date, r.created_at, r.updated_at,
a.id, a.name, a.avatar,
b.id, b.slug, b.name, b.color,
d.id, d.name, d.avatar`

const (
	insertRequestQuery = `
INSERT INTO requests(id, title, description, type, priority, status, size, legals,
                     author_id, board_id, assigned_to, is_auto_assigned, finish_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	insertRequestFileQuery = `
INSERT INTO request_files(id, request_id, url, kind) VALUES ($1, $2, $3, $4)`
	selectRequestQuery = `
SELECT ` + requestColumns + `
FROM requests r
JOIN users a ON a.id = r.author_id
JOIN boards b ON b.id = r.board_id
LEFT JOIN users d ON d.id = r.assigned_to
WHERE r.id = $1`
	listBoardRequestsQuery = `
SELECT ` + requestColumns + `
FROM requests r
JOIN users a ON a.id = r.author_id
JOIN boards b ON b.id = r.board_id
LEFT JOIN users d ON d.id = r.assigned_to
WHERE r.board_id = $1
ORDER BY r.created_at DESC`
	listBoardRequestsScopedQuery = `
SELECT ` + requestColumns + `
FROM requests r
JOIN users a ON a.id = r.author_id
JOIN boards b ON b.id = r.board_id
LEFT JOIN users d ON d.id = r.assigned_to
WHERE r.board_id = $1 AND (r.author_id = $2 OR r.assigned_to = $2)
ORDER BY r.created_at DESC`
	listAutoAssignedQuery = `
SELECT ` + requestColumns + `
FROM requests r
JOIN users a ON a.id = r.author_id
JOIN boards b ON b.id = r.board_id
LEFT JOIN users d ON d.id = r.assigned_to
WHERE r.assigned_to = $1 AND r.is_auto_assigned = true
ORDER BY r.created_at DESC`
	updateRequestStatusQuery = `
UPDATE requests SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING id`
	selectRequestFilesQuery = `
SELECT id, request_id, url, kind FROM request_files WHERE request_id = ANY($1)`
)

// InsertRequest persists a request and its file references in one
// transaction, then re-reads the joined document.
func (p *Postgres) InsertRequest(ctx context.Context, request entities.Request) (*entities.Request, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var assignedTo *string
	if request.AssignedTo != nil {
		assignedTo = &request.AssignedTo.ID
	}

	if _, err := tx.Exec(ctx, insertRequestQuery,
		request.ID, request.Title, request.Description, request.Type, request.Priority,
		request.Status, request.Size, request.Legals,
		request.Author.ID, request.Board.ID, assignedTo, request.IsAutoAssigned, request.FinishDate,
	); err != nil {
		p.log.Errorw("failed to insert request", "error", err, "request_id", request.ID)
		return nil, fmt.Errorf("insert request: %w", err)
	}

	for _, f := range request.Files {
		if _, err := tx.Exec(ctx, insertRequestFileQuery, f.ID, request.ID, f.URL, "file"); err != nil {
			return nil, fmt.Errorf("insert file: %w", err)
		}
	}
	for _, f := range request.ReferenceFiles {
		if _, err := tx.Exec(ctx, insertRequestFileQuery, f.ID, request.ID, f.URL, "reference"); err != nil {
			return nil, fmt.Errorf("insert reference file: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("request created", "request_id", request.ID, "board_id", request.Board.ID)
	return p.GetRequest(ctx, request.ID)
}

// GetRequest fetches a single request with its joined display fields
// and file references. No visibility filter is applied here.
func (p *Postgres) GetRequest(ctx context.Context, requestID string) (*entities.Request, error) {
	r, err := scanRequest(p.db.QueryRow(ctx, selectRequestQuery, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrRequestNotFound
		}
		return nil, fmt.Errorf("get request: %w", err)
	}

	if err := p.attachFiles(ctx, []*entities.Request{r}); err != nil {
		return nil, err
	}
	return r, nil
}

// ListBoardRequests returns a board's requests, newest first. With a
// non-nil viewerID the result is restricted to requests authored by or
// assigned to that viewer.
func (p *Postgres) ListBoardRequests(ctx context.Context, boardID string, viewerID *string) ([]entities.Request, error) {
	var rows pgx.Rows
	var err error
	if viewerID == nil {
		rows, err = p.db.Query(ctx, listBoardRequestsQuery, boardID)
	} else {
		rows, err = p.db.Query(ctx, listBoardRequestsScopedQuery, boardID, *viewerID)
	}
	if err != nil {
		return nil, fmt.Errorf("list board requests: %w", err)
	}
	defer rows.Close()

	return p.collectRequests(ctx, rows)
}

// ListAutoAssigned returns the requests a user self-assigned at
// creation time, across all boards.
func (p *Postgres) ListAutoAssigned(ctx context.Context, userID string) ([]entities.Request, error) {
	rows, err := p.db.Query(ctx, listAutoAssignedQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list auto assigned: %w", err)
	}
	defer rows.Close()

	return p.collectRequests(ctx, rows)
}

// UpdateRequestStatus writes the new status and returns the updated
// joined document. Last write wins; no version check is performed.
func (p *Postgres) UpdateRequestStatus(ctx context.Context, requestID string, status entities.Status) (*entities.Request, error) {
	var id string
	if err := p.db.QueryRow(ctx, updateRequestStatusQuery, requestID, status).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrRequestNotFound
		}
		return nil, fmt.Errorf("update request status: %w", err)
	}

	p.log.Infow("request status updated", "request_id", requestID, "status", status)
	return p.GetRequest(ctx, requestID)
}

func (p *Postgres) collectRequests(ctx context.Context, rows pgx.Rows) ([]entities.Request, error) {
	requests := make([]*entities.Request, 0)
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}

	if err := p.attachFiles(ctx, requests); err != nil {
		return nil, err
	}

	out := make([]entities.Request, 0, len(requests))
	for _, r := range requests {
		out = append(out, *r)
	}
	return out, nil
}

func scanRequest(row pgx.Row) (*entities.Request, error) {
	var r entities.Request
	var assigneeID, assigneeName, assigneeAvatar *string
	err := row.Scan(
		&r.ID, &r.Title, &r.Description, &r.Type, &r.Priority, &r.Status, &r.Size, &r.Legals,
		&r.IsAutoAssigned, &r.FinishDate, &r.CreatedAt, &r.UpdatedAt,
		&r.Author.ID, &r.Author.Name, &r.Author.Avatar,
		&r.Board.ID, &r.Board.Slug, &r.Board.Name, &r.Board.Color,
		&assigneeID, &assigneeName, &assigneeAvatar,
	)
	if err != nil {
		return nil, err
	}
	if assigneeID != nil {
		r.AssignedTo = &entities.UserRef{ID: *assigneeID}
		if assigneeName != nil {
			r.AssignedTo.Name = *assigneeName
		}
		if assigneeAvatar != nil {
			r.AssignedTo.Avatar = *assigneeAvatar
		}
	}
	return &r, nil
}

// attachFiles loads the file references of the given requests in one
// query and distributes them by request id.
func (p *Postgres) attachFiles(ctx context.Context, requests []*entities.Request) error {
	if len(requests) == 0 {
		return nil
	}

	ids := make([]string, 0, len(requests))
	byID := make(map[string]*entities.Request, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
		byID[r.ID] = r
		r.Files = make([]entities.FileRef, 0)
		r.ReferenceFiles = make([]entities.FileRef, 0)
	}

	rows, err := p.db.Query(ctx, selectRequestFilesQuery, ids)
	if err != nil {
		return fmt.Errorf("select request files: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f entities.FileRef
		var requestID, kind string
		if err := rows.Scan(&f.ID, &requestID, &f.URL, &kind); err != nil {
			return fmt.Errorf("scan request file: %w", err)
		}
		r := byID[requestID]
		if r == nil {
			continue
		}
		if kind == "reference" {
			r.ReferenceFiles = append(r.ReferenceFiles, f)
		} else {
			r.Files = append(r.Files, f)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate request files: %w", err)
	}
	return nil
}
