// Package storage holds the user storage capability and its variants.
//
// Absence is never reported as an error: Load returns ok=false and Remove returns false. The
// error return is reserved for transport failures of the I/O-backed variants; the memory and file
// variants always return a nil error.
package storage

import (
	"context"

	"github.com/spec-kit/userstore/internal/domain"
)

// Storage is the capability every user backend implements.
type Storage interface {
	// Save inserts or overwrites the user keyed by its email.
	Save(ctx context.Context, user domain.User) error
	// Load returns the user stored under email, or ok=false.
	Load(ctx context.Context, email string) (user domain.User, ok bool, err error)
	// Remove deletes the entry and reports whether one existed.
	Remove(ctx context.Context, email string) (bool, error)
	// List returns all stored users in no particular order.
	List(ctx context.Context) ([]domain.User, error)
}
