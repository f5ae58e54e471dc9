package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/userstore/internal/domain"
)

var _ Storage = (*PostgresStorage)(nil)

// Querier is the subset of *pgxpool.Pool the Postgres variant needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStorage keeps users in the users table, keyed by email.
type PostgresStorage struct {
	db Querier
}

// NewPostgresStorage returns a Postgres-backed implementation.
func NewPostgresStorage(db Querier) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) Save(ctx context.Context, user domain.User) error {
	const query = `
        INSERT INTO users (email, name, age)
        VALUES ($1, $2, $3)
        ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, age = EXCLUDED.age, updated_at = NOW()`

	if _, err := s.db.Exec(ctx, query, user.Email, user.Name, user.Age); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Load(ctx context.Context, email string) (domain.User, bool, error) {
	const query = `SELECT name, email, age FROM users WHERE email = $1`

	var user domain.User
	err := s.db.QueryRow(ctx, query, email).Scan(&user.Name, &user.Email, &user.Age)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, fmt.Errorf("load user: %w", err)
	}
	return user, true, nil
}

func (s *PostgresStorage) Remove(ctx context.Context, email string) (bool, error) {
	const query = `DELETE FROM users WHERE email = $1`

	cmd, err := s.db.Exec(ctx, query, email)
	if err != nil {
		return false, fmt.Errorf("remove user: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (s *PostgresStorage) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT name, email, age FROM users`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.Name, &user.Email, &user.Age); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
