package insight

import (
	"context"
	"iter"
	"time"
	"unicode/utf8"
)

// Reveal yields growing prefixes of text, one rune longer each step. The
// sequence is finite and can be ranged over any number of times.
func Reveal(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for end := 0; end < len(text); {
			_, size := utf8.DecodeRuneInString(text[end:])
			end += size
			if !yield(text[:end]) {
				return
			}
		}
	}
}

// Play paces Reveal, calling fn with each prefix one interval apart. It only
// starts once the whole text is known.
func Play(ctx context.Context, text string, interval time.Duration, fn func(prefix string) error) error {
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for prefix := range Reveal(text) {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := fn(prefix); err != nil {
			return err
		}
	}
	return nil
}
