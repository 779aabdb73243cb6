package model

// Registry maps each raw account identifier from the source list to the
// full set of confusable-character variants derived from it. It is rebuilt
// from scratch on every run; stale entries do not survive regeneration.
type Registry map[string][]string

// AllVariants flattens the registry into a single lookup set. The feed
// matcher uses it to decide whether an article belongs to a tracked account.
func (r Registry) AllVariants() map[string]struct{} {
	out := make(map[string]struct{})
	for _, variants := range r {
		for _, v := range variants {
			out[v] = struct{}{}
		}
	}
	return out
}

// LatestArticle is the most recent article seen for an account, as stored
// in the account store file.
type LatestArticle struct {
	Title       string `json:"title"`
	PublishTime string `json:"publish_time"`
	URL         string `json:"url"`
	DetectedAt  string `json:"detected_at"`
}

// AccountRecord is one tracked account. Records are created on first sight
// of an identifier and mutated in place on every genuine update; they are
// never retired automatically.
type AccountRecord struct {
	Name          string         `json:"name"`
	Variants      []string       `json:"variants,omitempty"`
	LatestArticle *LatestArticle `json:"latest_article,omitempty"`
}

// AccountStore maps a matched identifier to its account record. The whole
// map is read from and rewritten to a single JSON file per run.
type AccountStore map[string]*AccountRecord

// CandidateArticle is a freshly fetched latest-article candidate. It is
// never persisted on its own; it is absorbed into an AccountRecord when the
// tracker judges it newer. Description carries the feed entry body for
// classification and is not part of the stored record.
type CandidateArticle struct {
	Title       string
	PublishTime string
	URL         string
	Description string
}
