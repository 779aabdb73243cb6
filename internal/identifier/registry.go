package identifier

import (
	"errors"
	"strings"

	"wechat-monitor/internal/domain/model"
)

// ErrEmptyRegistry signals that a non-empty source list produced no usable
// identifiers. That is a data problem upstream and must abort the run rather
// than be papered over with placeholder entries.
var ErrEmptyRegistry = errors.New("identifier: source list produced an empty registry")

// BuildRegistry expands every raw line of the source list into its variant
// set. Lines are stripped of a UTF-8 BOM artifact and surrounding
// whitespace; blank lines are skipped.
func BuildRegistry(lines []string) (model.Registry, error) {
	registry := make(model.Registry)
	for _, line := range lines {
		raw := strings.TrimSpace(strings.ReplaceAll(line, "\uFEFF", ""))
		if raw == "" {
			continue
		}
		registry[raw] = Expand(raw)
	}

	if len(lines) > 0 && len(registry) == 0 {
		return nil, ErrEmptyRegistry
	}
	return registry, nil
}
