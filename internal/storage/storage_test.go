package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "moodflow_data_v1")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "moodflow_data_v1", []byte(`{"a":1}`)))
	got, err := s.Get(ctx, "moodflow_data_v1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))

	require.NoError(t, s.Put(ctx, "moodflow_data_v1", []byte(`{"a":2}`)))
	got, err = s.Get(ctx, "moodflow_data_v1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(got))

	_, err = s.Get(ctx, "other")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	v := []byte("abc")
	require.NoError(t, m.Put(ctx, "k", v))
	v[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	f, err := NewFile(dir)
	require.NoError(t, err)
	exerciseStore(t, f)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "moodflow_data_v1.json", entries[0].Name())
}

func TestFile_RejectsPathKeys(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	err = f.Put(context.Background(), "../escape", []byte("x"))
	assert.Error(t, err)
	_, err = f.Get(context.Background(), "a/b")
	assert.Error(t, err)
}

func TestSQLite(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "db", "moodflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	exerciseStore(t, s)
}

func TestSQLite_EmptyPath(t *testing.T) {
	_, err := NewSQLite("  ")
	assert.Error(t, err)
}
