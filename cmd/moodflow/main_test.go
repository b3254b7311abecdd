package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"moodflow/internal/mood"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	e := &env{}
	root := newRootCmd(e)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	e.shutdown()
	return out.String(), err
}

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "file")
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("LOG_LEVEL", "error")
}

func TestRecordAndHistory(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "record", "happy", "long", "walk", "#outside")
	require.NoError(t, err)
	assert.Contains(t, out, "recorded at")

	_, err = run(t, "record", "sad")
	require.NoError(t, err)

	out, err = run(t, "history", "--output", "json")
	require.NoError(t, err)
	var records []mood.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)

	out, err = run(t, "history", "--tag", "outside", "-o", "yaml")
	require.NoError(t, err)
	var tagged []mood.Record
	require.NoError(t, yaml.Unmarshal([]byte(out), &tagged))
	require.Len(t, tagged, 1)
	assert.Equal(t, mood.Happy, tagged[0].Mood)
	assert.Equal(t, "long walk #outside", tagged[0].Note)
}

func TestRecord_InvalidMood(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "record", "bored")
	assert.ErrorIs(t, err, mood.ErrInvalidMood)
}

func TestStats(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "record", "angry")
	require.NoError(t, err)

	out, err := run(t, "stats", "--days", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "streak: 1 day(s)")
	assert.Contains(t, out, "last 7 days: 1 record(s)")
}

func TestStats_DaysOutOfRange(t *testing.T) {
	setupEnv(t)
	for _, days := range []string{"367", "9223372036854775807", "-1"} {
		_, err := run(t, "stats", "--days", days)
		require.Error(t, err, days)
		assert.Contains(t, err.Error(), "--days must be between 1 and 366")
	}
}

func TestKeyLifecycle(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "key", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "not set")

	_, err = run(t, "key", "set", "abc")
	require.NoError(t, err)
	out, err = run(t, "key", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "API key: set")

	_, err = run(t, "key", "clear")
	require.NoError(t, err)
	out, err = run(t, "key", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "not set")
}

func TestInsight_NoKey(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "insight")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key set")
}

func TestInsight_Reveal(t *testing.T) {
	setupEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"Steady week."}}]}`))
	}))
	defer srv.Close()

	t.Setenv("INSIGHT_PROVIDER", "openai")
	t.Setenv("INSIGHT_MODELS", "gpt-4o-mini")
	t.Setenv("INSIGHT_BASE_URL", srv.URL+"/v1")
	t.Setenv("REVEAL_INTERVAL", "1ms")

	_, err := run(t, "key", "set", "sk-test")
	require.NoError(t, err)
	_, err = run(t, "record", "neutral", "ok")
	require.NoError(t, err)

	out, err := run(t, "insight", "--reveal")
	require.NoError(t, err)
	assert.Equal(t, "Steady week.\n", out)
}
