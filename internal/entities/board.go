// Package entities contains core business entities.
package entities

import "time"

// Board is a named grouping and visibility boundary for requests.
type Board struct {
	ID        string
	Name      string
	Slug      string
	Color     string
	Initials  string
	Active    bool
	CreatedAt time.Time
}
