package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := NewValidationError("name is required", map[string]any{"field": "name"})

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NotErrorIs(t, err, ErrNotFound)

	wrapped := fmt.Errorf("create user: %w", err)
	assert.ErrorIs(t, wrapped, ErrInvalidArgument)
}

func TestToDomainError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("domain error passes through", func(t *testing.T) {
		src := NewNotFound("user", map[string]any{"email": "a@x"})
		got := ToDomainError(fmt.Errorf("wrap: %w", src))
		require.NotNil(t, got)
		assert.Equal(t, CodeNotFound, got.Code)
		assert.Equal(t, http.StatusNotFound, got.HTTPStatus)
		assert.Equal(t, "user not found", got.Message)
	})

	t.Run("fiber error keeps status", func(t *testing.T) {
		got := ToDomainError(fiber.NewError(http.StatusBadRequest, "invalid payload"))
		assert.Equal(t, CodeValidationFailed, got.Code)
		assert.Equal(t, http.StatusBadRequest, got.HTTPStatus)
		assert.Equal(t, "invalid payload", got.Message)
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		cause := errors.New("boom")
		got := ToDomainError(cause)
		assert.Equal(t, CodeInternal, got.Code)
		assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus)
		assert.ErrorIs(t, got, cause)
	})
}
