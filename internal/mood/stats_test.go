package mood

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func at(t time.Time, m Mood) Record {
	return Record{ID: t.String(), Timestamp: t.UnixMilli(), DateString: t.Format(DateLayout), Mood: m}
}

func TestWindowLastNDays(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	records := []Record{
		at(now.Add(-1*time.Hour), Happy),
		at(now.Add(-7*24*time.Hour), Sad), // exactly on the bound: excluded
		at(now.Add(-7*24*time.Hour+time.Millisecond), Angry),
		at(now.Add(-30*24*time.Hour), Neutral),
	}

	got := WindowLastNDays(records, 7, now)
	assert.Len(t, got, 2)
	assert.Equal(t, Happy, got[0].Mood)
	assert.Equal(t, Angry, got[1].Mood)
}

func TestWindowLastNDays_Idempotent(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	var records []Record
	for i := 0; i < 20; i++ {
		records = append(records, at(now.Add(-time.Duration(i)*13*time.Hour), All[i%len(All)]))
	}

	once := WindowLastNDays(records, 7, now)
	twice := WindowLastNDays(once, 7, now)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("re-filtering changed the window (-once +twice):\n%s", diff)
	}
}

func TestDistribution_SumsToWindow(t *testing.T) {
	base := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	var records []Record
	for i := 0; i < 40; i++ {
		records = append(records, at(base.Add(-time.Duration(i)*7*time.Hour), All[(i*3)%len(All)]))
	}

	for _, now := range []time.Time{base, base.Add(-48 * time.Hour), base.Add(10 * 24 * time.Hour)} {
		window := WindowLastNDays(records, 7, now)
		sum := 0
		for _, n := range Distribution(window) {
			sum += n
		}
		assert.Equal(t, len(window), sum)
	}
}

func TestDistribution_AbsentMoodsNotZeroFilled(t *testing.T) {
	now := time.Now()
	got := Distribution([]Record{at(now, Happy), at(now, Happy), at(now, Sad)})
	if diff := cmp.Diff(map[Mood]int{Happy: 2, Sad: 1}, got); diff != "" {
		t.Fatalf("distribution mismatch (-want +got):\n%s", diff)
	}
}

func TestDistinctDayStreak(t *testing.T) {
	loc := time.UTC
	assert.Equal(t, 0, DistinctDayStreak(nil, loc))

	day := time.Date(2024, 1, 1, 9, 0, 0, 0, loc)
	records := []Record{at(day, Happy), at(day.Add(3*time.Hour), Sad)}
	assert.Equal(t, 1, DistinctDayStreak(records, loc))

	prev := 1
	for i := 2; i <= 5; i++ {
		// gaps are fine: this counts active days, not a consecutive run
		records = append(records, at(day.AddDate(0, 0, i*3), Neutral))
		got := DistinctDayStreak(records, loc)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
	assert.Equal(t, 5, prev)
}

func TestDistinctDayStreak_UsesLocalDate(t *testing.T) {
	// 23:30 and 00:30 UTC are the same day in UTC-5 but different days in UTC.
	a := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	b := time.Date(2024, 1, 2, 0, 30, 0, 0, time.UTC)
	records := []Record{at(a, Happy), at(b, Happy)}

	assert.Equal(t, 2, DistinctDayStreak(records, time.UTC))
	assert.Equal(t, 1, DistinctDayStreak(records, time.FixedZone("UTC-5", -5*3600)))
}

func TestBuildStats(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	records := []Record{
		at(now.Add(-time.Hour), Anxious),
		at(now.Add(-2*time.Hour), Happy),
		at(now.Add(-26*time.Hour), Happy),
		at(now.Add(-20*24*time.Hour), Sad),
	}

	s := BuildStats(records, 7, now, time.UTC)
	assert.Equal(t, 3, s.Streak)
	assert.Equal(t, 7, s.WindowDays)
	assert.Equal(t, 3, s.WindowCount)
	want := []ChartSlice{
		{Mood: Happy, Label: "開心", Color: "#FCD34D", Count: 2},
		{Mood: Anxious, Label: "焦慮", Color: "#A78BFA", Count: 1},
	}
	if diff := cmp.Diff(want, s.Chart); diff != "" {
		t.Fatalf("chart mismatch (-want +got):\n%s", diff)
	}
}
