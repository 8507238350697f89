package quest

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Filter narrows a quest list. Zero fields match everything.
type Filter struct {
	Difficulty  FitnessLevel
	MaxDuration float64
	Tag         string
}

// Active reports whether any criterion is set.
func (f Filter) Active() bool {
	return f.Difficulty != "" || f.MaxDuration > 0 || f.Tag != ""
}

// Match reports whether q satisfies every set criterion.
func (f Filter) Match(q Quest) bool {
	if f.Difficulty != "" && q.Difficulty != f.Difficulty {
		return false
	}
	if f.MaxDuration > 0 && q.EstimatedDuration > f.MaxDuration {
		return false
	}
	if f.Tag != "" && !hasTag(q.Tags, f.Tag) {
		return false
	}
	return true
}

// Apply returns the quests that match f, preserving order.
func (f Filter) Apply(quests []Quest) []Quest {
	out := make([]Quest, 0, len(quests))
	for _, q := range quests {
		if f.Match(q) {
			out = append(out, q)
		}
	}
	return out
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// UniqueTags returns the sorted set of tags across quests.
func UniqueTags(quests []Quest) []string {
	seen := make(map[string]struct{})
	for _, q := range quests {
		for _, t := range q.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// MatchTag resolves a loosely typed query to the closest known tag. An exact
// (case-insensitive) hit wins; otherwise the best fuzzy match is used.
func MatchTag(query string, tags []string) (string, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}
	for _, t := range tags {
		if strings.EqualFold(t, query) {
			return t, true
		}
	}

	matches := fuzzy.Find(strings.ToLower(query), tags)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}
