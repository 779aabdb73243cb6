// Package feed polls the aggregated RSS feed and matches entries back to
// tracked accounts through the biz= parameter embedded in entry bodies.
package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wechat-monitor/internal/adapter/article"
	"wechat-monitor/internal/domain/model"
	"wechat-monitor/internal/domain/ports"
)

// entry is one feed item, newest first in feed order.
type entry struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// Client implements ports.ArticleSource over a single RSS feed. The parsed
// feed is cached briefly so one run does not refetch it per identifier; the
// pipeline is single-threaded, so no locking is needed.
type Client struct {
	feedURL    string
	httpClient *http.Client
	parser     *article.Parser
	logger     ports.Logger

	cacheTTL  time.Duration
	fetchedAt time.Time
	entries   []entry
}

// New builds a feed client. parser may be nil; when present, matched
// entries are enriched with title and publish time from the article page.
func New(feedURL string, timeout time.Duration, parser *article.Parser, logger ports.Logger) *Client {
	return &Client{
		feedURL:    feedURL,
		httpClient: &http.Client{Timeout: timeout},
		parser:     parser,
		logger:     logger,
		cacheTTL:   30 * time.Second,
	}
}

// LatestCandidate returns the newest feed entry carrying biz=<variant> for
// any of the identifier's variants, or (nil, nil) when no entry matches.
func (c *Client) LatestCandidate(ctx context.Context, identifier string, variants []string) (*model.CandidateArticle, error) {
	entries, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if matched := matchVariant(e, variants); matched != "" {
			if c.logger != nil {
				c.logger.Info(ctx, "feed entry matched", "identifier", identifier, "variant", matched, "title", e.Title)
			}
			return c.candidateFrom(ctx, e), nil
		}
	}
	return nil, nil
}

func (c *Client) load(ctx context.Context) ([]entry, error) {
	if c.entries != nil && time.Since(c.fetchedAt) < c.cacheTTL {
		return c.entries, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create feed request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; FeedMonitor/1.0)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("feed status %d: %s", resp.StatusCode, string(body))
	}

	payload := struct {
		Channel struct {
			Items []entry `xml:"item"`
		} `xml:"channel"`
	}{}

	if err := xml.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	if len(payload.Channel.Items) == 0 {
		return nil, fmt.Errorf("feed has no entries")
	}

	c.entries = payload.Channel.Items
	c.fetchedAt = time.Now()
	return c.entries, nil
}

func matchVariant(e entry, variants []string) string {
	for _, v := range variants {
		needle := "biz=" + v
		if strings.Contains(e.Description, needle) || strings.Contains(e.Link, needle) {
			return v
		}
	}
	return ""
}

// candidateFrom prefers the article page's own title and publish time over
// the feed fields; the page is authoritative, the feed is sometimes stale.
func (c *Client) candidateFrom(ctx context.Context, e entry) *model.CandidateArticle {
	candidate := &model.CandidateArticle{
		Title:       strings.TrimSpace(e.Title),
		PublishTime: strings.TrimSpace(e.PubDate),
		URL:         strings.TrimSpace(e.Link),
		Description: strings.TrimSpace(e.Description),
	}

	if c.parser == nil || candidate.URL == "" {
		return candidate
	}

	enriched, err := c.parser.FetchInfo(ctx, candidate.URL)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn(ctx, "article enrichment failed, using feed fields", "url", candidate.URL, "error", err)
		}
		return candidate
	}
	if enriched.Title != "" {
		candidate.Title = enriched.Title
	}
	if enriched.PublishTime != "" {
		candidate.PublishTime = enriched.PublishTime
	}
	return candidate
}
