// Package entities contains core business entities.
package entities

import "time"

// User is a domain representation of an account. Deleted users are
// kept so historical requests retain their author reference.
type User struct {
	ID        string
	Name      string
	Email     string
	Avatar    string
	Role      Role
	Boards    []string
	Active    bool
	Deleted   bool
	CreatedAt time.Time
}

// Identity is the already-authenticated caller passed into every
// operation. The core never performs authentication itself.
type Identity struct {
	ID   string
	Role Role
}
