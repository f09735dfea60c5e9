package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/marketing-site-backend/errs"
)

func TestOpenPicksBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b, err := Open(ctx, nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, b)

	b, err = Open(ctx, map[string]string{"STORAGE_BACKEND": "file", "DATA_DIR": dir})
	require.NoError(t, err)
	assert.IsType(t, &File{}, b)

	b, err = Open(ctx, map[string]string{"STORAGE_BACKEND": "sqlite", "DATA_DIR": dir})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, b)
	assert.FileExists(t, filepath.Join(dir, "blog.db"))
	assert.NoError(t, Close(b))
}

func TestOpenRejectsBadConfig(t *testing.T) {
	ctx := context.Background()
	for _, c := range []map[string]string{
		{"STORAGE_BACKEND": "floppy"},
		{"STORAGE_BACKEND": "postgres"},
		{"STORAGE_BACKEND": "mongo"},
		{"STORAGE_BACKEND": "s3"},
	} {
		_, err := Open(ctx, c)
		require.Error(t, err, c["STORAGE_BACKEND"])
		assert.True(t, errs.IsConfigError(err), c["STORAGE_BACKEND"])
	}
}

func TestPostgresDSN(t *testing.T) {
	assert.Equal(t, "postgres://u@h/db", postgresDSN(map[string]string{"DATABASE_URL": "postgres://u@h/db"}))
	assert.Equal(t, "", postgresDSN(map[string]string{}))
	assert.Equal(t,
		"host=db.example user=site password=secret dbname=blog port=5432 sslmode=require",
		postgresDSN(map[string]string{
			"SUPABASE_DB_HOST":     "db.example",
			"SUPABASE_DB_USER":     "site",
			"SUPABASE_DB_PASSWORD": "secret",
			"SUPABASE_DB_NAME":     "blog",
		}),
	)
}

func TestCloseIgnoresBackendsWithoutResources(t *testing.T) {
	assert.NoError(t, Close(NewMemory(0)))
}
