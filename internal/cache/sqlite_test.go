package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_SetGet(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte(`{"x":1}`), time.Minute))
	got, hit, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte(`{"x":1}`), got)
}

func TestSQLite_Miss(t *testing.T) {
	s := newTestSQLite(t)
	_, hit, err := s.Get(context.Background(), "never")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestSQLite_ExpiredIsMiss(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), -time.Second))
	_, hit, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestSQLite_Upsert(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("old"), time.Minute))
	require.NoError(t, s.Set(ctx, "k", []byte("new"), time.Minute))

	got, hit, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("new"), got)
}

func TestSQLite_PurgeExpired(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "dead", []byte("v"), -time.Second))
	require.NoError(t, s.Set(ctx, "live", []byte("v"), time.Hour))

	n, err := s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, hit, err := s.Get(ctx, "live")
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestSQLite_Delete(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, s.Delete(ctx, "k"))
	_, hit, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
}
