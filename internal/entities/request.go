// Package entities contains core business entities.
package entities

import "time"

// Status enumerates request lifecycle states.
type Status string

const (
	// StatusAwaiting is the initial state of every request.
	StatusAwaiting Status = "AWAITING"
	// StatusAttention marks a request that needs author input.
	StatusAttention Status = "ATTENTION"
	// StatusInProgress marks a request being worked on.
	StatusInProgress Status = "IN_PROGRESS"
	// StatusPending marks a request waiting on review.
	StatusPending Status = "PENDING"
	// StatusDone marks a finished request.
	StatusDone Status = "DONE"
)

// Statuses lists every valid request status.
var Statuses = []Status{StatusAwaiting, StatusAttention, StatusInProgress, StatusPending, StatusDone}

// Valid reports whether s is a member of the status set.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// CanTransition is the status transition policy. The policy is total:
// any valid status may move to any other valid status, matching the
// unrestricted transitions the product relies on. Kept as a named
// function so the policy can be tightened in one place later.
func CanTransition(from, to Status) bool {
	return from.Valid() && to.Valid()
}

// RequestType enumerates kinds of design requests.
type RequestType string

const (
	// TypePrinted is a request for printed material.
	TypePrinted RequestType = "PRINTED"
	// TypeDigital is a request for digital assets.
	TypeDigital RequestType = "DIGITAL"
	// TypeEcommerce is a request for e-commerce material.
	TypeEcommerce RequestType = "ECOMMERCE"
	// TypeSpecial is the catch-all request kind.
	TypeSpecial RequestType = "SPECIAL"
)

// Valid reports whether t is a known request type.
func (t RequestType) Valid() bool {
	switch t {
	case TypePrinted, TypeDigital, TypeEcommerce, TypeSpecial:
		return true
	}
	return false
}

// Priority enumerates request urgency levels.
type Priority string

const (
	// PriorityLow is the default priority.
	PriorityLow Priority = "LOW"
	// PriorityNormal marks regular work.
	PriorityNormal Priority = "NORMAL"
	// PriorityHigh marks work that should jump the queue.
	PriorityHigh Priority = "HIGH"
	// PriorityUrgent marks drop-everything work.
	PriorityUrgent Priority = "URGENT"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// FileRef points at a file persisted in the external blob store.
type FileRef struct {
	ID  string
	URL string
}

// UserRef carries the denormalized display fields of a request's
// author or assignee, joined at read time.
type UserRef struct {
	ID     string
	Name   string
	Avatar string
}

// BoardRef carries the denormalized display fields of a request's board.
type BoardRef struct {
	ID    string
	Slug  string
	Name  string
	Color string
}

// Request is a unit of work submitted against a board.
type Request struct {
	ID             string
	Title          string
	Description    string
	Type           RequestType
	Priority       Priority
	Status         Status
	Size           string
	Legals         string
	Author         UserRef
	Board          BoardRef
	AssignedTo     *UserRef
	IsAutoAssigned bool
	Files          []FileRef
	ReferenceFiles []FileRef
	FinishDate     time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Upload is raw attachment content handed to request creation before
// it has been stored.
type Upload struct {
	Name string
	Data []byte
}

// NewRequestInput is the payload accepted by request creation. Author,
// status, files and timestamps are filled by the lifecycle manager.
type NewRequestInput struct {
	Title       string
	Description string
	Type        RequestType
	Priority    Priority
	Size        string
	Legals      string
	FinishDate  time.Time
}
