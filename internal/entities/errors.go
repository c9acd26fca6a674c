// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrUserNotFound is returned when a user does not exist or is soft-deleted.
	ErrUserNotFound = errors.New("user not found")
	// ErrBoardNotFound signals missing board.
	ErrBoardNotFound = errors.New("board not found")
	// ErrRequestNotFound signals missing request.
	ErrRequestNotFound = errors.New("request not found")
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthorized signals a role policy denial.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBoardExists signals board slug conflict.
	ErrBoardExists = errors.New("board exists")
	// ErrEmailExists signals user email conflict.
	ErrEmailExists = errors.New("email exists")
	// ErrUpstream signals a store or blob-store I/O failure.
	ErrUpstream = errors.New("upstream failure")
)
