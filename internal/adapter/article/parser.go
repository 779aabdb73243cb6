// Package article extracts title and publish time from WeChat article
// pages. The markup is stable enough to key off the rich_media_title
// heading and the publish_time element.
package article

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"wechat-monitor/internal/domain/model"
	"wechat-monitor/internal/domain/ports"
)

const maxArticleBody = 512 * 1024

// Parser fetches article pages and extracts candidate metadata.
type Parser struct {
	httpClient *http.Client
	logger     ports.Logger
}

// NewParser builds a Parser with the supplied timeout.
func NewParser(timeout time.Duration, logger ports.Logger) *Parser {
	return &Parser{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchInfo downloads an article page and extracts its title and publish
// time. The returned candidate always carries the requested URL.
func (p *Parser) FetchInfo(ctx context.Context, url string) (*model.CandidateArticle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create article request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; FeedMonitor/1.0)")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("article page status %d", resp.StatusCode)
	}

	candidate, err := ExtractInfo(io.LimitReader(resp.Body, maxArticleBody))
	if err != nil {
		return nil, err
	}
	candidate.URL = url
	return candidate, nil
}

// ExtractInfo walks the article DOM for the h1.rich_media_title text and
// the em#publish_time text. Missing elements leave the corresponding field
// empty; only unparseable markup is an error.
func ExtractInfo(r io.Reader) (*model.CandidateArticle, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse article html: %w", err)
	}

	candidate := &model.CandidateArticle{}
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			switch {
			case node.Data == "h1" && hasAttrValue(node, "class", "rich_media_title"):
				candidate.Title = strings.TrimSpace(nodeText(node))
			case node.Data == "em" && hasAttrValue(node, "id", "publish_time"):
				candidate.PublishTime = strings.TrimSpace(nodeText(node))
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	return candidate, nil
}

func hasAttrValue(node *html.Node, key, value string) bool {
	for _, attr := range node.Attr {
		if attr.Key != key {
			continue
		}
		for _, field := range strings.Fields(attr.Val) {
			if field == value {
				return true
			}
		}
	}
	return false
}

func nodeText(node *html.Node) string {
	var builder strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			builder.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extract(child)
		}
	}
	extract(node)
	return builder.String()
}
