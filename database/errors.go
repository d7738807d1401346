package database

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrInvalidID is returned when an external identifier is not a
	// well-formed encoding. It is always detected before any store lookup.
	ErrInvalidID = errors.New("malformed document id")

	ErrInvalidDate   = errors.New("date must be a calendar date in YYYY-MM-DD form")
	ErrInvalidRole   = errors.New(`role must be "student" or "teacher"`)
	ErrInvalidStatus = errors.New(`attendance status must be "present" or "absent"`)

	// Unique-index conflicts. Retrying the same insert reproduces the
	// conflict, so these are surfaced to the caller and never retried here.
	ErrUsernameTaken   = errors.New("a user with this username already exists")
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this course")
)

// conflict maps the store's duplicate-key rejection onto the sentinel for the
// unique index that fired; any other error passes through unchanged.
func conflict(err, sentinel error) error {
	if mongo.IsDuplicateKeyError(err) {
		return sentinel
	}
	return err
}
