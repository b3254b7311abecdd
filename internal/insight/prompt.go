package insight

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"moodflow/internal/mood"
)

const DefaultLanguage = "Traditional Chinese (繁體中文)"

type promptEntry struct {
	Date string    `json:"date"`
	Mood mood.Mood `json:"mood"`
	Note string    `json:"note"`
}

// BuildPrompt renders records into the fixed request template. The word cap
// is only an instruction to the model.
func BuildPrompt(records []mood.Record, language string) string {
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}

	entries := make([]promptEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, promptEntry{Date: r.DateString, Mood: r.Mood, Note: r.Note})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(entries)

	return fmt.Sprintf("Based on these mood entries: %s, act as a warm, empathetic friend. "+
		"Give a summary of my mental state and 1 actionable self-care tip in %s. "+
		"Keep it under 100 words. Be gentle and supportive.",
		strings.TrimSpace(buf.String()), language)
}
