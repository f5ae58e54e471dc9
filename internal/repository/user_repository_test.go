package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/userstore/internal/domain"
	"github.com/spec-kit/userstore/internal/storage"
)

// recordingStorage captures calls so forwarding can be asserted.
type recordingStorage struct {
	calls []string
	err   error
}

func (s *recordingStorage) Save(_ context.Context, user domain.User) error {
	s.calls = append(s.calls, "save:"+user.Email)
	return s.err
}

func (s *recordingStorage) Load(_ context.Context, email string) (domain.User, bool, error) {
	s.calls = append(s.calls, "load:"+email)
	return domain.User{Email: email}, true, s.err
}

func (s *recordingStorage) Remove(_ context.Context, email string) (bool, error) {
	s.calls = append(s.calls, "remove:"+email)
	return true, s.err
}

func (s *recordingStorage) List(_ context.Context) ([]domain.User, error) {
	s.calls = append(s.calls, "list")
	return nil, s.err
}

func TestUserRepository_ForwardsOneToOne(t *testing.T) {
	ctx := context.Background()
	rec := &recordingStorage{}
	repo := NewUserRepository(rec)

	// Invalid users go straight through; validation is the caller's job.
	require.NoError(t, repo.AddUser(ctx, domain.NewUser("", "", -1)))
	_, _, _ = repo.GetUser(ctx, "a@x")
	_, _ = repo.DeleteUser(ctx, "b@x")
	_, _ = repo.ListUsers(ctx)

	assert.Equal(t, []string{"save:", "load:a@x", "remove:b@x", "list"}, rec.calls)
}

func TestUserRepository_PropagatesErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	repo := NewUserRepository(&recordingStorage{err: boom})

	assert.ErrorIs(t, repo.AddUser(ctx, domain.SampleUser()), boom)
	_, err := repo.ListUsers(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestUserRepository_MemoryScenario(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(storage.NewMemoryStorage())
	user := domain.SampleUser()

	require.NoError(t, repo.AddUser(ctx, user))

	found, ok, err := repo.GetUser(ctx, "john@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "John Doe <john@example.com>", found.DisplayName())
	assert.True(t, found.IsAdult())

	deleted, err := repo.DeleteUser(ctx, user.Email)
	require.NoError(t, err)
	assert.True(t, deleted)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
