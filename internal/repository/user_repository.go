package repository

import (
	"context"

	"github.com/spec-kit/userstore/internal/domain"
	"github.com/spec-kit/userstore/internal/storage"
)

// UserRepository forwards user operations to the one Storage it owns.
type UserRepository struct {
	storage storage.Storage
}

// NewUserRepository takes ownership of s; callers should not keep using it directly.
func NewUserRepository(s storage.Storage) *UserRepository {
	return &UserRepository{storage: s}
}

// AddUser saves user, overwriting any entry with the same email.
func (r *UserRepository) AddUser(ctx context.Context, user domain.User) error {
	return r.storage.Save(ctx, user)
}

// GetUser looks a user up by email.
func (r *UserRepository) GetUser(ctx context.Context, email string) (domain.User, bool, error) {
	return r.storage.Load(ctx, email)
}

// DeleteUser removes a user by email and reports whether it existed.
func (r *UserRepository) DeleteUser(ctx context.Context, email string) (bool, error) {
	return r.storage.Remove(ctx, email)
}

// ListUsers returns every stored user.
func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	return r.storage.List(ctx)
}
