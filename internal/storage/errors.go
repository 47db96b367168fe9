package storage

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// ConflictError reports which unique constraint rejected a write.
type ConflictError struct {
	Constraint string
}

func (e *ConflictError) Error() string {
	return "conflict on " + e.Constraint
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Unique constraint names, shared by every storage backend.
const (
	ConstraintUsername = "users_username_key"
	ConstraintEmail    = "users_email_key"
	ConstraintCategory = "categories_slug_key"
	ConstraintGenre    = "genres_slug_key"
	ConstraintReview   = "reviews_author_title_key"
)
