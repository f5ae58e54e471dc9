package domain

import "fmt"

// User is the value stored by every storage backend. Email is the unique key.
type User struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Age   int    `json:"age" validate:"gte=0"`
}

// Validator defines validation behavior.
type Validator interface {
	Validate() error
}

var _ Validator = User{}

// NewUser creates a new User value.
func NewUser(name, email string, age int) User {
	return User{Name: name, Email: email, Age: age}
}

// SampleUser returns the user the demo and the tests start from.
func SampleUser() User {
	return NewUser("John Doe", "john@example.com", 30)
}

// IsAdult checks if the user is 18 or older.
func (u User) IsAdult() bool {
	return u.Age >= 18
}

// DisplayName returns "Name <email>".
func (u User) DisplayName() string {
	return fmt.Sprintf("%s <%s>", u.Name, u.Email)
}

// Validate runs ValidateUser on the receiver.
func (u User) Validate() error {
	return ValidateUser(u)
}
