// Package notify fans one notification out to every configured channel.
package notify

import (
	"context"
	"errors"

	"wechat-monitor/internal/domain/model"
	"wechat-monitor/internal/domain/ports"
)

// Composite delivers through all channels. Individual failures are logged
// and do not stop the remaining channels; an error is returned only when
// every channel failed, so one dead transport never hides a working one.
type Composite struct {
	logger   ports.Logger
	channels []ports.Notifier
}

// NewComposite builds a composite over the non-nil channels.
func NewComposite(logger ports.Logger, channels ...ports.Notifier) *Composite {
	active := make([]ports.Notifier, 0, len(channels))
	for _, ch := range channels {
		if ch != nil {
			active = append(active, ch)
		}
	}
	return &Composite{logger: logger, channels: active}
}

// Send delivers the notification to every channel.
func (c *Composite) Send(ctx context.Context, notification model.Notification) error {
	if len(c.channels) == 0 {
		return nil
	}

	var failures []error
	for _, channel := range c.channels {
		if err := channel.Send(ctx, notification); err != nil {
			failures = append(failures, err)
			if c.logger != nil {
				c.logger.Error(ctx, "notification channel failed", "error", err)
			}
		}
	}

	if len(failures) == len(c.channels) {
		return errors.Join(failures...)
	}
	return nil
}
