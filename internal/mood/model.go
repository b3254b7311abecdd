package mood

import (
	"fmt"
	"strings"
)

type Mood string

const (
	Happy   Mood = "happy"
	Neutral Mood = "neutral"
	Sad     Mood = "sad"
	Angry   Mood = "angry"
	Anxious Mood = "anxious"
)

// All lists the closed set of moods in display order.
var All = []Mood{Happy, Neutral, Sad, Angry, Anxious}

type Meta struct {
	Mood  Mood   `json:"mood"`
	Emoji string `json:"emoji"`
	Label string `json:"label"`
	Color string `json:"color"`
}

var catalog = map[Mood]Meta{
	Happy:   {Mood: Happy, Emoji: "😄", Label: "開心", Color: "#FCD34D"},
	Neutral: {Mood: Neutral, Emoji: "😐", Label: "平靜", Color: "#9CA3AF"},
	Sad:     {Mood: Sad, Emoji: "😞", Label: "難過", Color: "#60A5FA"},
	Angry:   {Mood: Angry, Emoji: "😡", Label: "生氣", Color: "#F87171"},
	Anxious: {Mood: Anxious, Emoji: "😰", Label: "焦慮", Color: "#A78BFA"},
}

func (m Mood) Valid() bool {
	_, ok := catalog[m]
	return ok
}

func (m Mood) Meta() Meta {
	return catalog[m]
}

// Catalog returns display metadata for every mood, in display order.
func Catalog() []Meta {
	out := make([]Meta, 0, len(All))
	for _, m := range All {
		out = append(out, catalog[m])
	}
	return out
}

func Parse(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMood, s)
	}
	return m, nil
}

// Record is one journaled entry. Records are never edited after creation.
type Record struct {
	ID         string `json:"id" yaml:"id"`
	Timestamp  int64  `json:"timestamp" yaml:"timestamp"` // unix milliseconds
	DateString string `json:"dateString" yaml:"dateString"`
	Mood       Mood   `json:"mood" yaml:"mood"`
	Note       string `json:"note" yaml:"note"`
}

// State is the whole persisted document.
type State struct {
	MoodEntries  []Record `json:"moodEntries"`
	GeminiAPIKey *string  `json:"geminiApiKey"`
}

// Credential returns the stored key, if any.
func (s State) Credential() (string, bool) {
	if s.GeminiAPIKey == nil || *s.GeminiAPIKey == "" {
		return "", false
	}
	return *s.GeminiAPIKey, true
}

func emptyState() State {
	return State{MoodEntries: []Record{}}
}
