package service

import "errors"

var (
	// ErrNotFound indicates a referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied indicates the child does not belong to the
	// requesting parent
	ErrAccessDenied = errors.New("access denied")
)
