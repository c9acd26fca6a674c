package postgres

import (
	"context"
	"fmt"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	designerLoadQuery = `
SELECT u.id, u.name, u.avatar,
       COUNT(r.id) FILTER (WHERE r.status = 'PENDING'),
       COUNT(r.id) FILTER (WHERE r.status = 'AWAITING'),
       COUNT(r.id) FILTER (WHERE r.status = 'IN_PROGRESS')
FROM users u
LEFT JOIN requests r ON r.assigned_to = u.id
WHERE u.role = 'DESIGNER' AND u.active = true AND u.deleted = false
GROUP BY u.id, u.name, u.avatar
ORDER BY u.name`
	designerLoadByBoardQuery = `
SELECT u.id, u.name, u.avatar,
       COUNT(r.id) FILTER (WHERE r.status = 'PENDING'),
       COUNT(r.id) FILTER (WHERE r.status = 'AWAITING'),
       COUNT(r.id) FILTER (WHERE r.status = 'IN_PROGRESS')
FROM users u
LEFT JOIN requests r ON r.assigned_to = u.id AND r.board_id = $1
WHERE u.role = 'DESIGNER' AND u.active = true AND u.deleted = false
GROUP BY u.id, u.name, u.avatar
ORDER BY u.name`
)

// DesignerLoad aggregates open assigned requests per active designer,
// optionally scoped to one board. ATTENTION and DONE assignments never
// count towards the totals.
func (p *Postgres) DesignerLoad(ctx context.Context, boardID *string) ([]entities.DesignerLoad, error) {
	var rows pgx.Rows
	var err error
	if boardID == nil {
		rows, err = p.db.Query(ctx, designerLoadQuery)
	} else {
		rows, err = p.db.Query(ctx, designerLoadByBoardQuery, *boardID)
	}
	if err != nil {
		return nil, fmt.Errorf("designer load: %w", err)
	}
	defer rows.Close()

	loads := make([]entities.DesignerLoad, 0)
	for rows.Next() {
		var l entities.DesignerLoad
		if err := rows.Scan(&l.Designer.ID, &l.Designer.Name, &l.Designer.Avatar, &l.Pending, &l.Awaiting, &l.InProgress); err != nil {
			return nil, fmt.Errorf("scan designer load: %w", err)
		}
		l.Total = l.Pending + l.Awaiting + l.InProgress
		loads = append(loads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate designer load: %w", err)
	}
	return loads, nil
}
