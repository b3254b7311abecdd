package mood

import (
	"sort"
	"time"
)

const dayMillis int64 = 86_400_000

// MaxStatsDays bounds the stats window accepted from callers.
const MaxStatsDays = 366

// WindowLastNDays keeps records strictly newer than now minus days.
func WindowLastNDays(records []Record, days int, now time.Time) []Record {
	cutoff := now.UnixMilli() - int64(days)*dayMillis
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Timestamp > cutoff {
			out = append(out, r)
		}
	}
	return out
}

// Distribution counts records per mood. Moods with no records are absent.
func Distribution(records []Record) map[Mood]int {
	counts := make(map[Mood]int)
	for _, r := range records {
		counts[r.Mood]++
	}
	return counts
}

// DistinctDayStreak counts calendar days in loc that hold at least one
// record, over the whole history. It is not a consecutive-day run.
func DistinctDayStreak(records []Record, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	days := make(map[string]struct{}, len(records))
	for _, r := range records {
		days[time.UnixMilli(r.Timestamp).In(loc).Format(time.DateOnly)] = struct{}{}
	}
	return len(days)
}

// SortNewestFirst returns a copy ordered by timestamp, newest first.
func SortNewestFirst(records []Record) []Record {
	out := append([]Record(nil), records...)
	sort.SliceStable(out, func(i, k int) bool {
		return out[i].Timestamp > out[k].Timestamp
	})
	return out
}

type ChartSlice struct {
	Mood  Mood   `json:"mood"`
	Label string `json:"label"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

type Stats struct {
	Streak       int          `json:"streak"`
	WindowDays   int          `json:"windowDays"`
	WindowCount  int          `json:"windowCount"`
	Distribution map[Mood]int `json:"distribution"`
	Chart        []ChartSlice `json:"chart"`
}

func BuildStats(records []Record, days int, now time.Time, loc *time.Location) Stats {
	window := WindowLastNDays(records, days, now)
	dist := Distribution(window)

	chart := make([]ChartSlice, 0, len(dist))
	for _, m := range All {
		n, ok := dist[m]
		if !ok {
			continue
		}
		meta := m.Meta()
		chart = append(chart, ChartSlice{Mood: m, Label: meta.Label, Color: meta.Color, Count: n})
	}

	return Stats{
		Streak:       DistinctDayStreak(records, loc),
		WindowDays:   days,
		WindowCount:  len(window),
		Distribution: dist,
		Chart:        chart,
	}
}
