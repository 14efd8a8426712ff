package handlers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"identity-api/pkg/helpers"
)

const (
	EventSignedUp = "user.signed_up"
	EventDeleted  = "user.deleted"
)

// AccountEvent is the audit-trail message published after an account
// mutation succeeds. It carries no PII beyond the opaque user id.
type AccountEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// publishEvent is best-effort: a broker outage must not fail the request.
func publishEvent(ctx context.Context, pub *helpers.RabbitPublisher, logger *logrus.Logger, eventType, userID string) {
	if pub == nil {
		return
	}
	evt := AccountEvent{Type: eventType, UserID: userID, OccurredAt: time.Now().UTC()}
	if err := pub.PublishJSON(ctx, evt); err != nil && logger != nil {
		logger.WithError(err).WithField("event", eventType).Warn("event publish failed")
	}
}
