package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wechat-monitor/internal/domain/model"
)

func TestParsePublishTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"localized", "2025年03月27日 15:34", true},
		{"iso datetime", "2025-03-01 10:00:00", true},
		{"rfc3339", "2025-03-01T10:00:00+08:00", true},
		{"t separator no zone", "2025-03-01T10:00:00", true},
		{"garbage", "yesterday-ish", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParsePublishTime(tt.input)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestParsePublishTimeCivilZone(t *testing.T) {
	got, ok := ParsePublishTime("2025年03月27日 15:34")
	require.True(t, ok)
	assert.Equal(t, "2025-03-27T15:34:00+08:00", got.Format(time.RFC3339))
}

func TestIsUpdateNoStoredArticle(t *testing.T) {
	assert.True(t, IsUpdate(model.CandidateArticle{Title: "A", URL: "u1"}, nil))
	assert.False(t, IsUpdate(model.CandidateArticle{URL: "u1"}, nil), "empty title is not an update")
}

func TestIsUpdateTimestampPrecedence(t *testing.T) {
	stored := &model.LatestArticle{
		Title:       "old",
		PublishTime: "2025-03-01 10:00:00",
		URL:         "u1",
	}

	newer := model.CandidateArticle{Title: "old", PublishTime: "2025年03月27日 15:34", URL: "u1"}
	assert.True(t, IsUpdate(newer, stored))

	older := model.CandidateArticle{Title: "fresh title", PublishTime: "2025年02月01日 09:00", URL: "u2"}
	assert.False(t, IsUpdate(older, stored), "earlier timestamp loses even when identity differs")

	same := model.CandidateArticle{Title: "other", PublishTime: "2025-03-01 10:00:00", URL: "u3"}
	assert.False(t, IsUpdate(same, stored), "equal timestamps are not strictly later")
}

func TestIsUpdateIdentityFallback(t *testing.T) {
	stored := &model.LatestArticle{Title: "X", PublishTime: "no idea", URL: "u1"}

	assert.False(t, IsUpdate(model.CandidateArticle{Title: "X", PublishTime: "???", URL: "u1"}, stored))
	assert.True(t, IsUpdate(model.CandidateArticle{Title: "Y", PublishTime: "???", URL: "u1"}, stored))
	assert.True(t, IsUpdate(model.CandidateArticle{Title: "X", PublishTime: "???", URL: "u2"}, stored))
}

func TestIsUpdateOneSidedTimestampFallsBack(t *testing.T) {
	stored := &model.LatestArticle{Title: "X", PublishTime: "2025-03-01 10:00:00", URL: "u1"}
	candidate := model.CandidateArticle{Title: "X", PublishTime: "unknown", URL: "u1"}
	assert.False(t, IsUpdate(candidate, stored))
}

func TestApplyUpdate(t *testing.T) {
	account := &model.AccountRecord{
		Name: "公众号 MzI5MjAx",
		LatestArticle: &model.LatestArticle{
			Title: "old", PublishTime: "2025-03-01 10:00:00", URL: "u1", DetectedAt: "2025-03-01 10:05:00",
		},
	}

	now := time.Date(2025, 3, 27, 8, 0, 0, 0, time.UTC)
	ApplyUpdate(account, model.CandidateArticle{Title: "new", PublishTime: "2025年03月27日 15:34", URL: "u2"}, now)

	require.NotNil(t, account.LatestArticle)
	assert.Equal(t, "new", account.LatestArticle.Title)
	assert.Equal(t, "u2", account.LatestArticle.URL)
	assert.Equal(t, "2025-03-27 16:00:00", account.LatestArticle.DetectedAt, "stamped in the civil timezone")
}

func TestResolve(t *testing.T) {
	accounts := model.AccountStore{
		"ABOCD": {Name: "stored under variant"},
		"exact": {Name: "stored under raw key"},
	}
	registry := model.Registry{
		"AB0CD": {"AB0CD", "ABOCD", "ABoCD"},
		"exact": {"exact"},
	}

	key, ok := Resolve("exact", accounts, registry)
	require.True(t, ok)
	assert.Equal(t, "exact", key)

	key, ok = Resolve("AB0CD", accounts, registry)
	require.True(t, ok)
	assert.Equal(t, "ABOCD", key)

	_, ok = Resolve("unknown", accounts, registry)
	assert.False(t, ok)
}

func TestNewAccountPlaceholderName(t *testing.T) {
	acc := NewAccount("MzI5MjAxNjM4MA==")
	assert.Equal(t, "公众号 MzI5MjAx", acc.Name)
	assert.Nil(t, acc.LatestArticle)

	short := NewAccount("ab")
	assert.Equal(t, "公众号 ab", short.Name)
}
