package ports

import (
	"context"

	"wechat-monitor/internal/domain/model"
)

// IssueTracker mirrors confirmed updates into an external tracker item.
// Optional; a nil tracker disables the integration.
type IssueTracker interface {
	Publish(ctx context.Context, notification model.Notification) error
}
