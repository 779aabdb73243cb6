package ports

import (
	"context"

	"wechat-monitor/internal/domain/model"
)

// Classifier judges article content for job-posting relevance and extracts
// labels plus a short summary.
type Classifier interface {
	Classify(ctx context.Context, title, content string) (model.Classification, error)
}
