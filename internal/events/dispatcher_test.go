package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishRunsAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var seen []string

	d.Subscribe(EventUserSaved, func(_ context.Context, e Event) error {
		seen = append(seen, "first:"+e.Email)
		return errors.New("first failed")
	})
	d.Subscribe(EventUserSaved, func(_ context.Context, e Event) error {
		seen = append(seen, "second:"+e.Email)
		return nil
	})
	d.Subscribe(EventUserRemoved, func(_ context.Context, e Event) error {
		seen = append(seen, "removed:"+e.Email)
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventUserSaved, "a@x", nil))

	assert.ErrorContains(t, err, "first failed")
	assert.Equal(t, []string{"first:a@x", "second:a@x"}, seen)
}

func TestDispatcher_NoListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	require.NoError(t, d.Publish(context.Background(), NewEvent(EventUserRemoved, "a@x", nil)))
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventUserSaved, "a@x", UserSavedPayload{Name: "A", Adult: true})

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, EventUserSaved, e.Type)
	assert.Equal(t, "a@x", e.Email)
	assert.False(t, e.Timestamp.IsZero())
}
