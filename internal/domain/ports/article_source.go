package ports

import (
	"context"

	"wechat-monitor/internal/domain/model"
)

// ArticleSource fetches the latest-article candidate for one tracked
// identifier. A (nil, nil) return means the source had no article for any
// of the identifier's variants; errors cover transport and decode failures.
type ArticleSource interface {
	LatestCandidate(ctx context.Context, identifier string, variants []string) (*model.CandidateArticle, error)
}
