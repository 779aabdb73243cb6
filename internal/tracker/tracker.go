// Package tracker decides whether a freshly fetched article represents a
// genuine update for a tracked account, and applies the update to the
// stored record when it does.
package tracker

import (
	"time"

	"wechat-monitor/internal/domain/model"
)

// civilTZ is the fixed calendar timezone used for every human-readable
// timestamp in the system. A fixed offset avoids a tzdata dependency.
var civilTZ = time.FixedZone("CST", 8*60*60)

const stampLayout = "2006-01-02 15:04:05"

// publishLayouts are tried in order against publish-time strings. The first
// form is the localized one scraped from article pages; the rest cover
// feeds that already emit ISO-8601-like strings.
var publishLayouts = []string{
	"2006年01月02日 15:04",
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParsePublishTime normalizes a publish-time string to a comparable
// instant. Zone-less layouts are interpreted in the civil timezone. An
// unparseable string reports ok=false; it is never an error.
func ParsePublishTime(s string) (time.Time, bool) {
	for _, layout := range publishLayouts {
		if t, err := time.ParseInLocation(layout, s, civilTZ); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Stamp formats an instant the way the account store records detection
// times.
func Stamp(t time.Time) string {
	return t.In(civilTZ).Format(stampLayout)
}

// IsUpdate reports whether candidate is newer than the stored latest
// article. The rules are evaluated in order and the first applicable one
// wins:
//
//  1. no stored article yet: any candidate with a title is an update
//  2. both publish times parseable: strictly later wins
//  3. otherwise: the (title, url) pair must differ
func IsUpdate(candidate model.CandidateArticle, stored *model.LatestArticle) bool {
	if stored == nil {
		return candidate.Title != ""
	}

	candidateTime, candidateOK := ParsePublishTime(candidate.PublishTime)
	storedTime, storedOK := ParsePublishTime(stored.PublishTime)
	if candidateOK && storedOK {
		return candidateTime.After(storedTime)
	}

	return candidate.Title != stored.Title || candidate.URL != stored.URL
}

// ApplyUpdate overwrites the account's latest article wholesale with the
// candidate and stamps the detection time. No field-level merging.
func ApplyUpdate(account *model.AccountRecord, candidate model.CandidateArticle, now time.Time) {
	account.LatestArticle = &model.LatestArticle{
		Title:       candidate.Title,
		PublishTime: candidate.PublishTime,
		URL:         candidate.URL,
		DetectedAt:  Stamp(now),
	}
}

// Resolve finds the account-store key a raw identifier belongs to: an exact
// key match first, then the first registry variant that exists as a key.
// ok=false means no prior record exists and a fresh one should be created.
func Resolve(identifier string, accounts model.AccountStore, registry model.Registry) (string, bool) {
	if _, exists := accounts[identifier]; exists {
		return identifier, true
	}
	for _, variant := range registry[identifier] {
		if _, exists := accounts[variant]; exists {
			return variant, true
		}
	}
	return "", false
}

// NewAccount creates a record for an identifier seen for the first time.
// The display name is a placeholder built from a short identifier prefix;
// operators rename accounts by editing the store file.
func NewAccount(identifier string) *model.AccountRecord {
	prefix := identifier
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return &model.AccountRecord{Name: "公众号 " + prefix}
}
