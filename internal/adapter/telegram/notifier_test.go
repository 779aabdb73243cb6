package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wechat-monitor/internal/domain/model"
)

func TestFormatMessage(t *testing.T) {
	got := FormatMessage(model.Notification{
		Subject: "公众号更新 <2>",
		Updates: []model.AccountUpdate{
			{
				AccountName: "公众号 MzI5MjAx",
				Article: model.CandidateArticle{
					Title:       "校园招聘 & 实习",
					PublishTime: "2025年03月27日 15:34",
					URL:         "https://mp.weixin.qq.com/s/abc",
				},
				Classification: model.Classification{
					Relevant: true,
					Labels:   []string{"backend", "上海"},
					Summary:  "招聘后端工程师。",
				},
			},
		},
	})

	assert.Contains(t, got, "<b>公众号更新 &lt;2&gt;</b>", "subject must be HTML-escaped")
	assert.Contains(t, got, "校园招聘 &amp; 实习")
	assert.Contains(t, got, "https://mp.weixin.qq.com/s/abc")
	assert.Contains(t, got, "💼 招聘相关: backend, 上海")
	assert.Contains(t, got, "招聘后端工程师。")
}

func TestFormatMessageBodyFallback(t *testing.T) {
	got := FormatMessage(model.Notification{Subject: "s", Body: "nothing structured"})
	assert.Contains(t, got, "nothing structured")
}
