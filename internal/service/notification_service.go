package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/userstore/internal/config"
	"github.com/spec-kit/userstore/internal/events"
)

// NotificationService handles emitting notifications for user events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserSaved, n.handleUserSaved)
	n.dispatcher.Subscribe(events.EventUserRemoved, n.handleUserRemoved)
}

func (n *NotificationService) handleUserSaved(ctx context.Context, event events.Event) error {
	n.logger.Info("UserSaved", zap.String("email", event.Email), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleUserRemoved(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRemoved", zap.String("email", event.Email))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}
