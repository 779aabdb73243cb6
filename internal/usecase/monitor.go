package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"wechat-monitor/internal/domain/model"
	"wechat-monitor/internal/domain/ports"
	"wechat-monitor/internal/identifier"
	"wechat-monitor/internal/store"
	"wechat-monitor/internal/tracker"
)

// Monitor runs one full monitoring pass: regenerate the identifier
// registry, compare fresh candidates against stored account state, and
// dispatch notifications for genuine updates.
type Monitor struct {
	store      *store.Store
	source     ports.ArticleSource
	classifier ports.Classifier
	notifier   ports.Notifier
	issues     ports.IssueTracker
	logger     ports.Logger
	now        func() time.Time
}

// NewMonitor constructs the Monitor use case. classifier and issues may be
// nil; the corresponding steps are skipped.
func NewMonitor(
	st *store.Store,
	source ports.ArticleSource,
	classifier ports.Classifier,
	notifier ports.Notifier,
	issues ports.IssueTracker,
	logger ports.Logger,
) *Monitor {
	return &Monitor{
		store:      st,
		source:     source,
		classifier: classifier,
		notifier:   notifier,
		issues:     issues,
		logger:     logger,
		now:        time.Now,
	}
}

// Run executes one pass. The returned error reflects bookkeeping only:
// configuration and persistence failures are fatal, while per-identifier
// fetch, classification and notification failures are recovered locally.
func (m *Monitor) Run(ctx context.Context) (model.RunReport, error) {
	report := model.RunReport{RunID: uuid.NewString()}
	start := m.now()
	m.logger.Info(ctx, "starting monitoring pass", "run_id", report.RunID)

	lines, err := m.store.ReadSourceList()
	if err != nil {
		return report, fmt.Errorf("load source list: %w", err)
	}

	registry, err := identifier.BuildRegistry(lines)
	if err != nil {
		return report, fmt.Errorf("build registry: %w", err)
	}
	if err := m.store.SaveRegistry(registry); err != nil {
		return report, err
	}

	accounts, err := m.store.LoadAccounts()
	if err != nil {
		return report, fmt.Errorf("load accounts: %w", err)
	}

	updates := m.checkAll(ctx, registry, accounts, &report)

	if err := m.store.SaveAccounts(accounts); err != nil {
		return report, err
	}

	report.Updated = len(updates)
	report.HasUpdates = len(updates) > 0
	for _, update := range updates {
		report.UpdatedAccounts = append(report.UpdatedAccounts, update.AccountName)
	}

	if len(updates) > 0 {
		m.dispatch(ctx, updates)
	}

	m.logger.Info(ctx, "monitoring pass completed",
		"run_id", report.RunID,
		"checked", report.Checked,
		"updated", report.Updated,
		"duration", time.Since(start))
	return report, nil
}

// checkAll walks the registry in deterministic order and mutates accounts
// in place for every genuine update.
func (m *Monitor) checkAll(ctx context.Context, registry model.Registry, accounts model.AccountStore, report *model.RunReport) []model.AccountUpdate {
	raws := make([]string, 0, len(registry))
	for raw := range registry {
		raws = append(raws, raw)
	}
	sort.Strings(raws)

	var updates []model.AccountUpdate
	for _, raw := range raws {
		report.Checked++

		candidate, err := m.source.LatestCandidate(ctx, raw, registry[raw])
		if err != nil {
			m.logger.Warn(ctx, "fetch failed, skipping identifier", "identifier", raw, "error", err)
			continue
		}
		if candidate == nil {
			continue
		}

		key, found := tracker.Resolve(raw, accounts, registry)
		var account *model.AccountRecord
		if found {
			account = accounts[key]
		} else {
			key = raw
			account = tracker.NewAccount(raw)
		}

		if !tracker.IsUpdate(*candidate, account.LatestArticle) {
			continue
		}

		classification := m.classify(ctx, *candidate)
		tracker.ApplyUpdate(account, *candidate, m.now())
		account.Variants = registry[raw]
		accounts[key] = account

		m.logger.Info(ctx, "account updated", "identifier", key, "title", candidate.Title)
		updates = append(updates, model.AccountUpdate{
			Identifier:     key,
			AccountName:    account.Name,
			Article:        *candidate,
			Classification: classification,
		})
	}
	return updates
}

// classify is best effort: a failed or unavailable classifier degrades to
// "not relevant", never to a failed run.
func (m *Monitor) classify(ctx context.Context, candidate model.CandidateArticle) model.Classification {
	if m.classifier == nil {
		return model.Classification{}
	}

	content := candidate.Description
	if content == "" {
		content = candidate.Title
	}

	classification, err := m.classifier.Classify(ctx, candidate.Title, content)
	if err != nil {
		m.logger.Warn(ctx, "classification failed, treating as not relevant", "url", candidate.URL, "error", err)
		return model.Classification{}
	}
	return classification
}

// dispatch delivers notifications and files the tracker issue. Both are
// best effort; by this point the account store is already persisted and a
// delivery failure must not reverse it.
func (m *Monitor) dispatch(ctx context.Context, updates []model.AccountUpdate) {
	notification := buildNotification(updates)

	if m.notifier != nil {
		if err := m.notifier.Send(ctx, notification); err != nil {
			m.logger.Error(ctx, "notification delivery failed", "error", err)
		}
	}
	if m.issues != nil {
		if err := m.issues.Publish(ctx, notification); err != nil {
			m.logger.Error(ctx, "issue publishing failed", "error", err)
		}
	}
}

func buildNotification(updates []model.AccountUpdate) model.Notification {
	var builder strings.Builder
	summaries := make([]string, 0, len(updates))

	for _, update := range updates {
		builder.WriteString(fmt.Sprintf("%s\n", update.AccountName))
		builder.WriteString(fmt.Sprintf("  标题: %s\n", update.Article.Title))
		if update.Article.PublishTime != "" {
			builder.WriteString(fmt.Sprintf("  发布时间: %s\n", update.Article.PublishTime))
		}
		builder.WriteString(fmt.Sprintf("  链接: %s\n", update.Article.URL))
		if update.Classification.Relevant {
			builder.WriteString(fmt.Sprintf("  招聘相关: %s\n", strings.Join(update.Classification.Labels, ", ")))
		}
		builder.WriteString("\n")

		if update.Classification.Summary != "" {
			summaries = append(summaries, fmt.Sprintf("- %s: %s", update.AccountName, update.Classification.Summary))
		}
	}

	if len(summaries) > 0 {
		builder.WriteString("# AI 总结\n")
		builder.WriteString(strings.Join(summaries, "\n"))
		builder.WriteString("\n")
	}

	return model.Notification{
		Subject: fmt.Sprintf("公众号更新: %d 个账号有新文章", len(updates)),
		Body:    builder.String(),
		Updates: updates,
	}
}
