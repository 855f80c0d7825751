package database

import "errors"

var (
	// ErrNotFound covers absent resources and sub-entries. Handlers also
	// map malformed object ids to it, so a bad id reads as a missing
	// resource rather than leaking id syntax to the client.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateEmail is returned when registering an email that
	// already has an account.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrForbidden is returned when the requester is authenticated but
	// is not the owner/author of the target.
	ErrForbidden = errors.New("requester does not own resource")

	// ErrAlreadyLiked / ErrNotLiked guard the idempotent like set.
	ErrAlreadyLiked = errors.New("post already liked")
	ErrNotLiked     = errors.New("post not yet liked")
)
