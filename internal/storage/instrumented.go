package storage

import (
	"context"

	"github.com/spec-kit/userstore/internal/domain"
	"github.com/spec-kit/userstore/internal/observability"
)

// Instrumented counts every call of the wrapped Storage by outcome.
type Instrumented struct {
	next    Storage
	metrics *observability.Metrics
}

var _ Storage = (*Instrumented)(nil)

// WithMetrics wraps next; a nil metrics value records nothing.
func WithMetrics(next Storage, metrics *observability.Metrics) *Instrumented {
	return &Instrumented{next: next, metrics: metrics}
}

func (s *Instrumented) Save(ctx context.Context, user domain.User) error {
	err := s.next.Save(ctx, user)
	s.metrics.RecordStorageOp("save", outcome(err, true))
	return err
}

func (s *Instrumented) Load(ctx context.Context, email string) (domain.User, bool, error) {
	user, ok, err := s.next.Load(ctx, email)
	s.metrics.RecordStorageOp("load", outcome(err, ok))
	return user, ok, err
}

func (s *Instrumented) Remove(ctx context.Context, email string) (bool, error) {
	ok, err := s.next.Remove(ctx, email)
	s.metrics.RecordStorageOp("remove", outcome(err, ok))
	return ok, err
}

func (s *Instrumented) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.next.List(ctx)
	s.metrics.RecordStorageOp("list", outcome(err, true))
	return users, err
}

func outcome(err error, hit bool) string {
	switch {
	case err != nil:
		return "error"
	case !hit:
		return "miss"
	default:
		return "ok"
	}
}
