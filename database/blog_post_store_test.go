package database

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/marketing-site-backend/errs"
	"github.com/rpupo63/marketing-site-backend/kv"
	"github.com/rpupo63/marketing-site-backend/models"
)

func TestBlogPostStoreHappyPath(t *testing.T) {
	ctx := context.Background()
	db := New(kv.NewMemory(0), "")
	store := db.BlogPostStore()
	assert.Equal(t, DefaultBlogKey, db.BlogPostRepo().Key())

	assert.Empty(t, store.LoadAll(ctx))

	a := newPost("1", "A", "Tech")
	b := newPost("2", "B", "HR")
	require.True(t, store.Add(ctx, a))
	require.True(t, store.Add(ctx, b))
	assert.Equal(t, []models.BlogPost{b, a}, store.LoadAll(ctx))

	got, ok := store.GetByID(ctx, "1")
	require.True(t, ok)
	assert.Equal(t, a, got)

	_, ok = store.GetByID(ctx, "404")
	assert.False(t, ok)

	a.Title = "A2"
	assert.True(t, store.Update(ctx, a))
	assert.False(t, store.Update(ctx, newPost("404", "Ghost")))

	assert.Len(t, store.FindByCategory(ctx, "tech"), 1)
	assert.Len(t, store.Search(ctx, "a2"), 1)

	assert.True(t, store.DeleteByID(ctx, "1"))
	assert.True(t, store.DeleteByID(ctx, "404"), "deleting an unknown id still reports the save result")
	assert.Equal(t, []models.BlogPost{b}, store.LoadAll(ctx))

	assert.True(t, store.SaveAll(ctx, nil))
	assert.Empty(t, store.LoadAll(ctx))
	assert.NoError(t, db.Close())
}

func TestBlogPostStoreCorruptValueReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory(0)
	require.NoError(t, backend.Set(ctx, DefaultBlogKey, "<<<"))
	store := New(backend, DefaultBlogKey).BlogPostStore()

	assert.NotNil(t, store.LoadAll(ctx))
	assert.Empty(t, store.LoadAll(ctx))
	assert.Empty(t, store.FindByCategory(ctx, "Tech"))
	assert.Empty(t, store.Search(ctx, "x"))
	_, ok := store.GetByID(ctx, "1")
	assert.False(t, ok)

	// a corrupt value is empty to mutations too, so they overwrite it
	assert.False(t, store.Update(ctx, newPost("1", "A")))
	raw, _, _ := backend.Get(ctx, DefaultBlogKey)
	assert.Equal(t, "<<<", raw, "update finds nothing and writes nothing")

	a := newPost("1", "A")
	require.True(t, store.Add(ctx, a))
	assert.Equal(t, []models.BlogPost{a}, store.LoadAll(ctx))

	require.NoError(t, backend.Set(ctx, DefaultBlogKey, `{"not":"an array"}`))
	require.True(t, store.DeleteByID(ctx, "1"))
	raw, _, _ = backend.Get(ctx, DefaultBlogKey)
	assert.Equal(t, "[]", raw)

	require.NoError(t, backend.Set(ctx, DefaultBlogKey, "<<<"))
	assert.True(t, store.SaveAll(ctx, []models.BlogPost{a}))
	assert.Len(t, store.LoadAll(ctx), 1)

	// the strict repository still refuses to touch it
	require.NoError(t, backend.Set(ctx, DefaultBlogKey, "<<<"))
	assert.True(t, errs.IsDeserializationError(New(backend, DefaultBlogKey).BlogPostRepo().Add(ctx, a)))
	raw, _, _ = backend.Get(ctx, DefaultBlogKey)
	assert.Equal(t, "<<<", raw)
}

func TestBlogPostStoreUnreachableBackendIsNotOverwritten(t *testing.T) {
	ctx := context.Background()
	backend := &brokenBackend{getErr: errors.New("connection refused")}
	store := New(backend, DefaultBlogKey).BlogPostStore()

	assert.Empty(t, store.LoadAll(ctx))
	assert.False(t, store.Add(ctx, newPost("1", "A")))
	assert.False(t, store.Update(ctx, newPost("1", "A")))
	assert.False(t, store.DeleteByID(ctx, "1"))
	assert.Zero(t, backend.sets)
}

func TestBlogPostStoreLogsCause(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })

	ctx := context.Background()
	backend := kv.NewMemory(0)
	require.NoError(t, backend.Set(ctx, DefaultBlogKey, "<<<"))
	store := New(backend, DefaultBlogKey).BlogPostStore()
	assert.Empty(t, store.LoadAll(ctx))
	assert.Contains(t, buf.String(), `"cause":"stored value could not be deserialized`)
	assert.Contains(t, buf.String(), "invalid character '<'")

	buf.Reset()
	store = New(&brokenBackend{setErr: errors.New("disk full")}, DefaultBlogKey).BlogPostStore()
	assert.False(t, store.SaveAll(ctx, nil))
	assert.Contains(t, buf.String(), "disk full")
	assert.Contains(t, buf.String(), `"key":"blogPosts"`)
}

func TestBlogPostStoreFindsFloatFormIDs(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory(0)
	require.NoError(t, backend.Set(ctx, DefaultBlogKey, `[{"id":1.7e12,"title":"Launch"}]`))
	store := New(backend, DefaultBlogKey).BlogPostStore()

	got, ok := store.GetByID(ctx, "1700000000000")
	require.True(t, ok)
	assert.Equal(t, "Launch", got.Title)
}

func TestBlogPostStoreWriteFailuresReturnFalse(t *testing.T) {
	ctx := context.Background()
	store := New(&brokenBackend{setErr: errors.New("disk full")}, DefaultBlogKey).BlogPostStore()

	assert.False(t, store.SaveAll(ctx, nil))
	assert.False(t, store.Add(ctx, newPost("1", "A")))
	assert.False(t, store.DeleteByID(ctx, "1"))
}

func TestBlogPostStoreQuotaFailure(t *testing.T) {
	ctx := context.Background()
	store := New(kv.NewMemory(32), DefaultBlogKey).BlogPostStore()

	assert.False(t, store.Add(ctx, newPost("1", "Too big for a 32 byte quota")))
	assert.Empty(t, store.LoadAll(ctx))
}
