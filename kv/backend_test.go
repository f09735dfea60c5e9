package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/marketing-site-backend/errs"
)

// exerciseBackend runs the get/set contract every backend must honour. Keys
// are prefixed so shared servers can be used without cleanup.
func exerciseBackend(t *testing.T, b Backend, prefix string) {
	t.Helper()
	ctx := context.Background()
	blogKey, otherKey, emptyKey := prefix+"blogPosts", prefix+"other/key", prefix+"empty"

	_, ok, err := b.Get(ctx, blogKey)
	require.NoError(t, err)
	assert.False(t, ok, "fresh backend must report the key as absent")

	require.NoError(t, b.Set(ctx, blogKey, `[{"id":1}]`))
	value, ok, err := b.Get(ctx, blogKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, value)

	require.NoError(t, b.Set(ctx, blogKey, `[]`))
	value, ok, err = b.Get(ctx, blogKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, value, "set must overwrite")

	require.NoError(t, b.Set(ctx, otherKey, "x"))
	value, _, err = b.Get(ctx, blogKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, value, "keys must not interfere")

	require.NoError(t, b.Set(ctx, emptyKey, ""))
	value, ok, err = b.Get(ctx, emptyKey)
	require.NoError(t, err)
	assert.True(t, ok, "an empty value is still present")
	assert.Equal(t, "", value)
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemory(0), "")
}

func TestMemoryQuota(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(20)

	require.NoError(t, m.Set(ctx, "k", "0123456789"))
	// replacing a key only counts the new value
	require.NoError(t, m.Set(ctx, "k", "0123456789abcdef"))

	err := m.Set(ctx, "k", "0123456789abcdefghijkl")
	require.Error(t, err)
	assert.True(t, errs.IsStorageQuotaFullError(err))

	value, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "0123456789abcdef", value, "rejected write must not change the stored value")
}

func TestFileBackend(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	exerciseBackend(t, f, "")
}

func TestFileBackendLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, f.Set(context.Background(), "blogPosts", "[]"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "blogPosts.json", entries[0].Name())
}

func TestSQLiteBackend(t *testing.T) {
	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	exerciseBackend(t, s, "")
}

func TestSQLiteBackendPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "blog.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), "blogPosts", `[{"id":"a"}]`))
	require.NoError(t, s.Close())

	s, err = NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	value, ok, err := s.Get(context.Background(), "blogPosts")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, value)
}

func TestRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedis(mr.Addr(), "", 0)
	t.Cleanup(func() { r.Close() })

	exerciseBackend(t, r, "")
	assert.Equal(t, time.Duration(0), mr.TTL("blogPosts"), "values must not expire")
}

func TestRedisBackendReportsConnectionErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedis(mr.Addr(), "", 0)
	t.Cleanup(func() { r.Close() })
	mr.Close()

	_, _, err := r.Get(context.Background(), "blogPosts")
	assert.Error(t, err)
}
