// Package github files confirmed updates as repository issues.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"wechat-monitor/internal/domain/model"
	"wechat-monitor/internal/domain/ports"
)

var issueLabels = []string{"rss-update", "processed"}

// IssueTracker creates or patches one issue per notification subject.
type IssueTracker struct {
	httpClient *http.Client
	baseURL    string
	repo       string
	token      string
	logger     ports.Logger
}

// New builds an issue tracker for the "owner/name" repository.
func New(repo, token string, timeout time.Duration, logger ports.Logger) *IssueTracker {
	return &IssueTracker{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://api.github.com",
		repo:       repo,
		token:      token,
		logger:     logger,
	}
}

// Publish files the notification: an existing open issue with the same
// title is patched, otherwise a fresh issue is created.
func (t *IssueTracker) Publish(ctx context.Context, notification model.Notification) error {
	if t.repo == "" || t.token == "" {
		return fmt.Errorf("issue tracker not configured")
	}

	number, err := t.findOpenIssue(ctx, notification.Subject)
	if err != nil {
		return err
	}

	payload := map[string]any{
		"title":  notification.Subject,
		"body":   notification.Body,
		"labels": issueLabels,
	}

	if number > 0 {
		return t.request(ctx, http.MethodPatch, fmt.Sprintf("%s/repos/%s/issues/%d", t.baseURL, t.repo, number), payload, nil)
	}
	return t.request(ctx, http.MethodPost, fmt.Sprintf("%s/repos/%s/issues", t.baseURL, t.repo), payload, nil)
}

func (t *IssueTracker) findOpenIssue(ctx context.Context, title string) (int, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/issues?state=open&labels=%s", t.baseURL, t.repo, url.QueryEscape("rss-update"))

	var issues []struct {
		Number int    `json:"number"`
		Title  string `json:"title"`
	}
	if err := t.request(ctx, http.MethodGet, endpoint, nil, &issues); err != nil {
		return 0, err
	}

	for _, issue := range issues {
		if issue.Title == title {
			return issue.Number, nil
		}
	}
	return 0, nil
}

func (t *IssueTracker) request(ctx context.Context, method, endpoint string, payload any, out any) error {
	var body io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal issue payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create issue request: %w", err)
	}
	req.Header.Set("Authorization", "token "+t.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform issue request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("github returned status %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode github response: %w", err)
		}
	}
	return nil
}
