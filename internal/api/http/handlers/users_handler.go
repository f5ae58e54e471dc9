package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/userstore/internal/api/dto"
	"github.com/spec-kit/userstore/internal/service"
)

// UsersHandler exposes the user store over HTTP.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	data := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		data = append(data, dto.NewUserResponse(u))
	}
	return c.JSON(fiber.Map{"data": data})
}

// Get handles GET /users/:email.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	email, err := emailParam(c)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Create(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Delete handles DELETE /users/:email.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	email, err := emailParam(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.UserContext(), email); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func emailParam(c *fiber.Ctx) (string, error) {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil || email == "" {
		return "", fiber.NewError(http.StatusBadRequest, "invalid email")
	}
	return email, nil
}
