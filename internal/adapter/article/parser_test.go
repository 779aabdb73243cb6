package article

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>page</title></head>
<body>
  <div class="rich_media">
    <h1 class="rich_media_title" id="activity-name">
      2025年校园招聘正式启动
    </h1>
    <div class="rich_media_meta_list">
      <em id="publish_time" class="rich_media_meta rich_media_meta_text">2025年03月27日 15:34</em>
    </div>
  </div>
</body>
</html>`

func TestExtractInfo(t *testing.T) {
	candidate, err := ExtractInfo(strings.NewReader(samplePage))
	require.NoError(t, err)

	assert.Equal(t, "2025年校园招聘正式启动", candidate.Title)
	assert.Equal(t, "2025年03月27日 15:34", candidate.PublishTime)
}

func TestExtractInfoMissingElements(t *testing.T) {
	candidate, err := ExtractInfo(strings.NewReader("<html><body><p>deleted article</p></body></html>"))
	require.NoError(t, err)

	assert.Empty(t, candidate.Title)
	assert.Empty(t, candidate.PublishTime)
}

func TestFetchInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer server.Close()

	parser := NewParser(5*time.Second, nil)
	candidate, err := parser.FetchInfo(context.Background(), server.URL+"/s/abc")
	require.NoError(t, err)

	assert.Equal(t, "2025年校园招聘正式启动", candidate.Title)
	assert.Equal(t, server.URL+"/s/abc", candidate.URL)
}

func TestFetchInfoBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	parser := NewParser(5*time.Second, nil)
	_, err := parser.FetchInfo(context.Background(), server.URL)
	assert.Error(t, err)
}
