package email

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"wechat-monitor/internal/domain/model"
)

func TestSendUnconfigured(t *testing.T) {
	n := New("smtp.qq.com", 465, "", "", "", time.Second, nil)
	err := n.Send(context.Background(), model.Notification{Subject: "x"})
	assert.Error(t, err)
}

func TestBuildMessage(t *testing.T) {
	n := New("smtp.qq.com", 465, "from@example.com", "pw", "to@example.com", time.Second, nil)

	msg := n.buildMessage(model.Notification{
		Subject: "公众号更新",
		Body:    "2 accounts updated",
	})

	assert.Contains(t, msg, "From: from@example.com\r\n")
	assert.Contains(t, msg, "To: to@example.com\r\n")
	assert.Contains(t, msg, "Subject: =?utf-8?q?", "non-ASCII subject must be encoded")
	assert.Contains(t, msg, "\r\n\r\n2 accounts updated")
}
