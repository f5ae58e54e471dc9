package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/userstore/internal/domain"
	"github.com/spec-kit/userstore/internal/events"
	"github.com/spec-kit/userstore/internal/repository"
	"github.com/spec-kit/userstore/pkg/util/errorutil"
)

// UserService adds validation, not-found mapping and events on top of the repository.
type UserService struct {
	repo       *repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewUserService builds the service. dispatcher may be nil.
func NewUserService(repo *repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, dispatcher: dispatcher, logger: logger}
}

// Create validates and stores user, replacing any user with the same email.
func (s *UserService) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if err := domain.ValidateUser(user); err != nil {
		return domain.User{}, err
	}
	if err := s.repo.AddUser(ctx, user); err != nil {
		return domain.User{}, fmt.Errorf("add user: %w", err)
	}
	s.publish(ctx, events.NewEvent(events.EventUserSaved, user.Email, events.UserSavedPayload{
		Name:  user.Name,
		Adult: user.IsAdult(),
	}))
	return user, nil
}

// Get returns the user stored under email or a NOT_FOUND error.
func (s *UserService) Get(ctx context.Context, email string) (domain.User, error) {
	user, ok, err := s.repo.GetUser(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return domain.User{}, errorutil.NewNotFound("user", map[string]any{"email": email})
	}
	return user, nil
}

// Delete removes the user stored under email or returns NOT_FOUND.
func (s *UserService) Delete(ctx context.Context, email string) error {
	removed, err := s.repo.DeleteUser(ctx, email)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !removed {
		return errorutil.NewNotFound("user", map[string]any{"email": email})
	}
	s.publish(ctx, events.NewEvent(events.EventUserRemoved, email, nil))
	return nil
}

// List returns all users sorted by email so responses are stable.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	slices.SortFunc(users, func(a, b domain.User) int {
		return strings.Compare(a.Email, b.Email)
	})
	return users, nil
}

// DisplayNames returns the display name of every user, in List order.
func (s *UserService) DisplayNames(ctx context.Context) ([]string, error) {
	users, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.DisplayName())
	}
	return names, nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("email", event.Email),
			zap.Error(err))
	}
}
