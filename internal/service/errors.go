package service

import "errors"

var (
	// ErrNotFound reports a missing stored resource.
	ErrNotFound = errors.New("not found")
	// ErrForbidden reports an operation on a resource owned by another user.
	ErrForbidden = errors.New("forbidden")
)
