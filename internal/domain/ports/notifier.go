package ports

import (
	"context"

	"wechat-monitor/internal/domain/model"
)

// Notifier sends notifications to downstream channels (e.g. email, Telegram).
// Delivery is best effort; the pipeline logs failures and keeps going.
type Notifier interface {
	Send(ctx context.Context, notification model.Notification) error
}
