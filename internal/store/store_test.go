package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wechat-monitor/internal/domain/model"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s := New(
		filepath.Join(dir, "biz.txt"),
		filepath.Join(dir, "processed_biz.json"),
		filepath.Join(dir, "accounts.json"),
	)
	return s, dir
}

func TestReadSourceList(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "biz.txt"), []byte("\uFEFFMzI5MjAxNjM4MA==\r\nAB0CD\n\n"), 0o644))

	lines, err := s.ReadSourceList()
	require.NoError(t, err)
	assert.Contains(t, lines, "AB0CD")
}

func TestReadSourceListMissing(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.ReadSourceList()
	assert.ErrorIs(t, err, ErrSourceListMissing)
}

func TestReadSourceListBlank(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "biz.txt"), []byte("\n  \n\uFEFF\n"), 0o644))

	_, err := s.ReadSourceList()
	assert.ErrorIs(t, err, ErrSourceListEmpty)
}

func TestAccountsRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	first, err := s.LoadAccounts()
	require.NoError(t, err)
	assert.Empty(t, first, "missing file means first run")

	first["MzI5MjAxNjM4MA=="] = &model.AccountRecord{
		Name: "公众号 MzI5MjAx",
		LatestArticle: &model.LatestArticle{
			Title:       "招聘启事",
			PublishTime: "2025年03月27日 15:34",
			URL:         "https://mp.weixin.qq.com/s/abc",
			DetectedAt:  "2025-03-27 16:00:00",
		},
	}
	require.NoError(t, s.SaveAccounts(first))

	second, err := s.LoadAccounts()
	require.NoError(t, err)
	require.Contains(t, second, "MzI5MjAxNjM4MA==")
	assert.Equal(t, "招聘启事", second["MzI5MjAxNjM4MA=="].LatestArticle.Title)
}

func TestLoadAccountsMalformed(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "accounts.json"), []byte(`["not", "an", "object"]`), 0o644))

	_, err := s.LoadAccounts()
	assert.ErrorIs(t, err, ErrMalformedAccounts)
}

func TestSaveRegistry(t *testing.T) {
	s, dir := newTestStore(t)
	reg := model.Registry{"AB0CD": {"AB0CD", "ABOCD", "ABoCD"}}
	require.NoError(t, s.SaveRegistry(reg))

	data, err := os.ReadFile(filepath.Join(dir, "processed_biz.json"))
	require.NoError(t, err)

	var decoded map[string][]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"AB0CD", "ABOCD", "ABoCD"}, decoded["AB0CD"])

	// No stray temp files after a successful write.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
