// Package identifier derives confusable-character variants for tracked
// account identifiers. WeChat biz tokens are base64-like strings that users
// copy by hand, so a zero is routinely transcribed as the letter O (either
// case) and vice versa; every lookup therefore has to consider all three
// spellings at every such position.
package identifier

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// confusable returns the other two members of the 0/O/o triple, or nil when
// the byte is not part of the triple.
func confusable(c byte) []byte {
	switch c {
	case '0':
		return []byte{'O', 'o'}
	case 'O':
		return []byte{'0', 'o'}
	case 'o':
		return []byte{'0', 'O'}
	}
	return nil
}

// Expand produces every spelling of raw obtainable by substituting any
// combination of confusable positions with the other two triple members.
// The original spelling is always included. The result is sorted so callers
// see a deterministic order; it contains at most 3^k entries for k
// confusable positions.
func Expand(raw string) []string {
	variants := mapset.NewThreadUnsafeSet(raw)

	// The triple is ASCII, so byte positions are safe even when the
	// identifier carries multi-byte runes elsewhere.
	for pos := 0; pos < len(raw); pos++ {
		if confusable(raw[pos]) == nil {
			continue
		}

		grown := mapset.NewThreadUnsafeSet[string]()
		for v := range variants.Iter() {
			for _, alt := range confusable(v[pos]) {
				grown.Add(v[:pos] + string(alt) + v[pos+1:])
			}
		}
		variants = variants.Union(grown)
	}

	out := variants.ToSlice()
	sort.Strings(out)
	return out
}
