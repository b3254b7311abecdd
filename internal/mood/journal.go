package mood

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"moodflow/internal/logging"
	"moodflow/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidRecord     = errors.New("invalid mood record")
	ErrInvalidMood       = errors.New("invalid mood")
	ErrPersistenceFailed = errors.New("persistence failed")
)

const DateLayout = "2006-01-02 15:04"

// Journal reads and rewrites the whole State document under one storage key.
type Journal struct {
	store storage.Store
	key   string
	log   *zap.Logger
	loc   *time.Location

	now   func() time.Time
	newID func() string

	// one writer at a time: every mutation is read-modify-write of the document
	mu sync.Mutex
}

type Option func(*Journal)

func WithClock(now func() time.Time) Option {
	return func(j *Journal) { j.now = now }
}

func WithIDs(newID func() string) Option {
	return func(j *Journal) { j.newID = newID }
}

func WithLocation(loc *time.Location) Option {
	return func(j *Journal) {
		if loc != nil {
			j.loc = loc
		}
	}
}

func NewJournal(store storage.Store, key string, log *zap.Logger, opts ...Option) *Journal {
	j := &Journal{
		store: store,
		key:   key,
		log:   logging.OrNop(log),
		loc:   time.Local,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(j)
	}
	return j
}

func (j *Journal) Location() *time.Location { return j.loc }

// ReadStore never fails. Missing, unreadable or corrupt documents read as an
// empty State; the cause is logged.
func (j *Journal) ReadStore(ctx context.Context) State {
	s, err := j.load(ctx)
	if err != nil {
		j.log.Warn("store read failed, using empty state", zap.String("key", j.key), zap.Error(err))
		return emptyState()
	}
	return s
}

// load reads the document for a read-modify-write. Missing and corrupt
// documents are empty; any other read error is returned so that a mutation
// never overwrites records it could not see.
func (j *Journal) load(ctx context.Context) (State, error) {
	b, err := j.store.Get(ctx, j.key)
	if errors.Is(err, storage.ErrNotFound) {
		return emptyState(), nil
	}
	if err != nil {
		return State{}, err
	}

	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		j.log.Warn("store document is corrupt, using empty state", zap.String("key", j.key), zap.Error(err))
		return emptyState(), nil
	}
	if s.MoodEntries == nil {
		s.MoodEntries = []Record{}
	}
	return s, nil
}

// AppendRecord prepends rec to the stored records and persists the document.
// The mood value itself is not checked here.
func (j *Journal) AppendRecord(ctx context.Context, rec Record) (State, error) {
	if rec.ID == "" || rec.Timestamp == 0 || rec.DateString == "" || rec.Mood == "" {
		return State{}, ErrInvalidRecord
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	s, err := j.load(ctx)
	if err != nil {
		j.log.Error("store read failed, not writing", zap.String("key", j.key), zap.Error(err))
		return State{}, fmt.Errorf("%w: read: %v", ErrPersistenceFailed, err)
	}
	entries := make([]Record, 0, len(s.MoodEntries)+1)
	entries = append(entries, rec)
	entries = append(entries, s.MoodEntries...)
	s.MoodEntries = entries

	if err := j.write(ctx, s); err != nil {
		return State{}, err
	}
	return s, nil
}

// SetCredential replaces the stored credential. A blank key clears it and is
// persisted as null.
func (j *Journal) SetCredential(ctx context.Context, key string) (State, error) {
	key = strings.TrimSpace(key)

	j.mu.Lock()
	defer j.mu.Unlock()

	s, err := j.load(ctx)
	if err != nil {
		j.log.Error("store read failed, not writing", zap.String("key", j.key), zap.Error(err))
		return State{}, fmt.Errorf("%w: read: %v", ErrPersistenceFailed, err)
	}
	if key == "" {
		s.GeminiAPIKey = nil
	} else {
		s.GeminiAPIKey = &key
	}

	if err := j.write(ctx, s); err != nil {
		return State{}, err
	}
	return s, nil
}

func (j *Journal) write(ctx context.Context, s State) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersistenceFailed, err)
	}
	if err := j.store.Put(ctx, j.key, b); err != nil {
		j.log.Error("store write failed", zap.String("key", j.key), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	return nil
}

// Records returns every record, newest first.
func (j *Journal) Records(ctx context.Context) []Record {
	return SortNewestFirst(j.ReadStore(ctx).MoodEntries)
}

func (j *Journal) Credential(ctx context.Context) (string, bool) {
	return j.ReadStore(ctx).Credential()
}

// RecordMood creates a new record stamped with the current time.
func (j *Journal) RecordMood(ctx context.Context, m Mood, note string) (Record, error) {
	if !m.Valid() {
		return Record{}, fmt.Errorf("%w: %q", ErrInvalidMood, m)
	}
	now := j.now().In(j.loc)
	rec := Record{
		ID:         j.newID(),
		Timestamp:  now.UnixMilli(),
		DateString: now.Format(DateLayout),
		Mood:       m,
		Note:       strings.TrimSpace(note),
	}
	if _, err := j.AppendRecord(ctx, rec); err != nil {
		return Record{}, err
	}
	j.log.Info("mood recorded", zap.String("id", rec.ID), zap.String("mood", string(rec.Mood)))
	return rec, nil
}
