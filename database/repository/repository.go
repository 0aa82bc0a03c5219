package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no document matches.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a write violates a unique index or an add-if-absent guard.
	ErrDuplicate = errors.New("duplicate document")
)

// Translate maps driver errors onto the package sentinels and passes others through.
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}

// NewContext derives a bounded context for one database call.
func NewContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

