// Package app is the surface the HTTP API and the CLI share.
package app

import (
	"context"
	"time"

	"moodflow/internal/insight"
	"moodflow/internal/mood"
)

type App struct {
	Journal    *mood.Journal
	Insight    *insight.Client
	WindowDays int
	Now        func() time.Time
}

func New(j *mood.Journal, ic *insight.Client, windowDays int) *App {
	if windowDays <= 0 {
		windowDays = 7
	}
	return &App{Journal: j, Insight: ic, WindowDays: windowDays, Now: time.Now}
}

// Records returns the full history, newest first.
func (a *App) Records(ctx context.Context) []mood.Record {
	return a.Journal.Records(ctx)
}

func (a *App) History(ctx context.Context, f mood.HistoryFilter) []mood.Record {
	return mood.History(a.Journal.ReadStore(ctx).MoodEntries, f)
}

func (a *App) Credential(ctx context.Context) (string, bool) {
	return a.Journal.Credential(ctx)
}

func (a *App) RecordMood(ctx context.Context, m mood.Mood, note string) (mood.Record, error) {
	return a.Journal.RecordMood(ctx, m, note)
}

func (a *App) SetCredential(ctx context.Context, key string) error {
	_, err := a.Journal.SetCredential(ctx, key)
	return err
}

func (a *App) Stats(ctx context.Context, days int) mood.Stats {
	if days <= 0 {
		days = a.WindowDays
	}
	records := a.Journal.ReadStore(ctx).MoodEntries
	return mood.BuildStats(records, days, a.Now(), a.Journal.Location())
}

// RecentRecords is the insight window, newest first.
func (a *App) RecentRecords(ctx context.Context) []mood.Record {
	return mood.WindowLastNDays(a.Journal.Records(ctx), a.WindowDays, a.Now())
}

// FetchInsight asks the backend about recent using the stored credential.
func (a *App) FetchInsight(ctx context.Context, recent []mood.Record) (insight.Result, error) {
	key, _ := a.Journal.Credential(ctx)
	return a.Insight.Fetch(ctx, key, recent)
}

func (a *App) FetchRecentInsight(ctx context.Context) (insight.Result, error) {
	return a.FetchInsight(ctx, a.RecentRecords(ctx))
}
