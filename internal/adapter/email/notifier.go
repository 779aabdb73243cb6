// Package email delivers update notifications over SMTP with implicit TLS,
// the transport QQ mail exposes on port 465.
package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"wechat-monitor/internal/domain/model"
	"wechat-monitor/internal/domain/ports"
)

// Notifier sends one plain-text mail per notification.
type Notifier struct {
	host      string
	port      int
	sender    string
	password  string
	recipient string
	timeout   time.Duration
	logger    ports.Logger
}

// New builds an email notifier.
func New(host string, port int, sender, password, recipient string, timeout time.Duration, logger ports.Logger) *Notifier {
	return &Notifier{
		host:      host,
		port:      port,
		sender:    sender,
		password:  password,
		recipient: recipient,
		timeout:   timeout,
		logger:    logger,
	}
}

// Send delivers the notification. The context deadline, when earlier than
// the configured timeout, bounds the whole SMTP conversation.
func (n *Notifier) Send(ctx context.Context, notification model.Notification) error {
	if n.sender == "" || n.recipient == "" {
		return fmt.Errorf("email notifier not configured")
	}

	addr := fmt.Sprintf("%s:%d", n.host, n.port)
	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: n.timeout}, "tcp", addr, &tls.Config{ServerName: n.host})
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	} else {
		conn.SetDeadline(time.Now().Add(n.timeout))
	}

	client, err := smtp.NewClient(conn, n.host)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", n.sender, n.password, n.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(n.sender); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(n.recipient); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := writer.Write([]byte(n.buildMessage(notification))); err != nil {
		writer.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("smtp quit: %w", err)
	}

	if n.logger != nil {
		n.logger.Info(ctx, "email sent", "recipient", n.recipient, "subject", notification.Subject)
	}
	return nil
}

// buildMessage produces an RFC 5322 message with a Q-encoded subject so
// Chinese account names survive the header.
func (n *Notifier) buildMessage(notification model.Notification) string {
	var builder strings.Builder
	builder.WriteString("From: " + n.sender + "\r\n")
	builder.WriteString("To: " + n.recipient + "\r\n")
	builder.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", notification.Subject) + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(notification.Body)
	builder.WriteString("\r\n")
	return builder.String()
}
