// Package webhook posts update notifications to a Discord-compatible
// webhook. Optional third channel next to email and Telegram.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wechat-monitor/internal/domain/model"
	"wechat-monitor/internal/domain/ports"
)

// Notifier is a webhook-backed notification channel.
type Notifier struct {
	webhookURL string
	httpClient *http.Client
	logger     ports.Logger
}

// New creates a webhook notifier.
func New(webhookURL string, timeout time.Duration, logger ports.Logger) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Send posts the notification as a single embed.
func (n *Notifier) Send(ctx context.Context, notification model.Notification) error {
	if n.webhookURL == "" {
		return fmt.Errorf("webhook URL is empty")
	}

	payload := map[string]any{
		"content": "",
		"embeds": []map[string]any{
			{
				"title":       truncate(notification.Subject, 256),
				"description": truncate(notification.Body, 4096),
				"fields":      updateFields(notification.Updates),
				"timestamp":   time.Now().UTC().Format(time.RFC3339),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	if n.logger != nil {
		n.logger.Info(ctx, "webhook notification sent")
	}
	return nil
}

func updateFields(updates []model.AccountUpdate) []map[string]any {
	if len(updates) == 0 {
		return nil
	}

	fields := make([]map[string]any, 0, len(updates))
	for _, update := range updates {
		value := fmt.Sprintf("[%s](%s)", update.Article.Title, update.Article.URL)
		if update.Classification.Relevant && len(update.Classification.Labels) > 0 {
			value += "\n" + strings.Join(update.Classification.Labels, ", ")
		}
		fields = append(fields, map[string]any{
			"name":   truncate(update.AccountName, 256),
			"value":  truncate(value, 1024),
			"inline": false,
		})
	}
	return fields
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return strings.TrimSpace(value[:limit-3]) + "..."
}
