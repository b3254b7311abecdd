package mood

import (
	"regexp"
	"strings"
)

var hashtagRe = regexp.MustCompile(`#([a-zA-Z0-9_]{1,32})`)

func ExtractTags(note string) []string {
	matches := hashtagRe.FindAllStringSubmatch(note, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	out := make([]string, 0, len(matches))

	for _, m := range matches {
		if len(m) < 2 {
			continue
		}
		t := strings.ToLower(m[1])
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)

		if len(out) >= 20 { // cap
			break
		}
	}

	return out
}

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

type HistoryFilter struct {
	Mood  Mood
	Tag   string
	Query string
	Limit int
}

// History returns records newest first, narrowed by f.
func History(records []Record, f HistoryFilter) []Record {
	limit := min(f.Limit, MaxHistoryLimit)
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	tag := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(f.Tag)), "#")
	q := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]Record, 0, min(limit, len(records)))
	for _, r := range SortNewestFirst(records) {
		if f.Mood != "" && r.Mood != f.Mood {
			continue
		}
		if tag != "" && !hasTag(r.Note, tag) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(r.Note), q) {
			continue
		}
		out = append(out, r)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func hasTag(note, tag string) bool {
	for _, t := range ExtractTags(note) {
		if t == tag {
			return true
		}
	}
	return false
}
