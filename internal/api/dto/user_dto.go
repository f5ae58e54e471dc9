package dto

import (
	"time"

	"github.com/spec-kit/userstore/internal/domain"
)

// CreateUserRequest payload for POST /users.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

// ToDomain converts the payload.
func (r CreateUserRequest) ToDomain() domain.User {
	return domain.NewUser(r.Name, r.Email, r.Age)
}

// UserResponse is the wire form of a user.
type UserResponse struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Age         int    `json:"age"`
	DisplayName string `json:"display_name"`
	Adult       bool   `json:"adult"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		Name:        u.Name,
		Email:       u.Email,
		Age:         u.Age,
		DisplayName: u.DisplayName(),
		Adult:       u.IsAdult(),
	}
}

// TokenResponse is returned by the token subcommand.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
