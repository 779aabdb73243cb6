// Package telegram mirrors update notifications into a Telegram chat.
package telegram

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"wechat-monitor/internal/domain/model"
	"wechat-monitor/internal/domain/ports"
)

// Notifier posts one HTML message per notification.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger ports.Logger
}

// New builds a Telegram notifier; it fails fast on an invalid token.
func New(token string, chatID int64, logger ports.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &Notifier{bot: bot, chatID: chatID, logger: logger}, nil
}

// Send posts the notification to the configured chat.
func (n *Notifier) Send(ctx context.Context, notification model.Notification) error {
	msg := tgbotapi.NewMessage(n.chatID, FormatMessage(notification))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	if n.logger != nil {
		n.logger.Info(ctx, "telegram notification sent", "chat_id", n.chatID)
	}
	return nil
}

// FormatMessage renders the notification as Telegram HTML.
func FormatMessage(notification model.Notification) string {
	var builder strings.Builder
	builder.WriteString("📰 <b>")
	builder.WriteString(html.EscapeString(notification.Subject))
	builder.WriteString("</b>\n")

	for _, update := range notification.Updates {
		builder.WriteString(fmt.Sprintf("\n🏢 %s\n", html.EscapeString(update.AccountName)))
		builder.WriteString(fmt.Sprintf("📄 <a href=\"%s\">%s</a>\n", update.Article.URL, html.EscapeString(update.Article.Title)))
		if update.Article.PublishTime != "" {
			builder.WriteString(fmt.Sprintf("📅 %s\n", html.EscapeString(update.Article.PublishTime)))
		}
		if update.Classification.Relevant {
			builder.WriteString("💼 招聘相关")
			if len(update.Classification.Labels) > 0 {
				builder.WriteString(": " + html.EscapeString(strings.Join(update.Classification.Labels, ", ")))
			}
			builder.WriteString("\n")
		}
		if update.Classification.Summary != "" {
			builder.WriteString(fmt.Sprintf("📝 %s\n", html.EscapeString(update.Classification.Summary)))
		}
	}

	if len(notification.Updates) == 0 && notification.Body != "" {
		builder.WriteString("\n")
		builder.WriteString(html.EscapeString(notification.Body))
	}
	return builder.String()
}
