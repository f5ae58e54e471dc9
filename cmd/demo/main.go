package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spec-kit/userstore/internal/domain"
	"github.com/spec-kit/userstore/internal/repository"
	"github.com/spec-kit/userstore/internal/storage"
)

func main() {
	if err := run(context.Background(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer) error {
	repo := repository.NewUserRepository(storage.NewMemoryStorage())

	user := domain.SampleUser()
	if err := domain.ValidateUser(user); err != nil {
		return fmt.Errorf("validate user: %w", err)
	}
	if err := repo.AddUser(ctx, user); err != nil {
		return fmt.Errorf("add user: %w", err)
	}

	found, ok, err := repo.GetUser(ctx, "john@example.com")
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if ok {
		fmt.Fprintf(out, "Found user: %s\n", found.DisplayName())
		fmt.Fprintf(out, "Is adult: %v\n", found.IsAdult())
	}
	return nil
}
