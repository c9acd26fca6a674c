// Package api holds the JSON transport models of the HTTP surface.
package api

import "time"

// FileRef is a stored attachment reference.
type FileRef struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// UserRef carries the display fields of an author or assignee.
type UserRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// BoardRef carries the display fields of a request's board.
type BoardRef struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Request is the wire form of a design request.
type Request struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Type           string    `json:"type"`
	Priority       string    `json:"priority"`
	Status         string    `json:"status"`
	Size           string    `json:"size"`
	Legals         string    `json:"legals"`
	Author         UserRef   `json:"author"`
	Board          BoardRef  `json:"board"`
	AssignedTo     *UserRef  `json:"assignedTo,omitempty"`
	IsAutoAssigned bool      `json:"isAutoAssigned"`
	Files          []FileRef `json:"files"`
	ReferenceFiles []FileRef `json:"referenceFiles"`
	FinishDate     time.Time `json:"finishDate"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// User is the wire form of an account.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// Board is the wire form of a board.
type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Color     string    `json:"color"`
	Initials  string    `json:"initials"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// DesignerLoad is one row of the designer workload report.
type DesignerLoad struct {
	Designer   UserRef `json:"designer"`
	Pending    int64   `json:"pending"`
	Awaiting   int64   `json:"awaiting"`
	InProgress int64   `json:"inProgress"`
	Total      int64   `json:"total"`
}

// CreateBoardRequest is the create-board payload.
type CreateBoardRequest struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Color    string `json:"color"`
	Initials string `json:"initials"`
}

// CreateUserRequest is the create-user payload.
type CreateUserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

// AddMembersRequest is the add-board-members payload.
type AddMembersRequest struct {
	Users []string `json:"users"`
}

// SetStatusRequest is the patch-status payload.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// UserPage is a paginated user listing.
type UserPage struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// Error is the uniform error body.
type Error struct {
	Error string `json:"error"`
}
