package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":             "9090",
		"BAD_INT":          "nine",
		"EMPTY":            "",
		"DEBUG":            "true",
		"ACCEPTED_ORIGINS": " https://a.example , ,https://b.example",
	}

	assert.Equal(t, 9090, GetInt(c, "PORT", 8080))
	assert.Equal(t, 8080, GetInt(c, "BAD_INT", 8080))
	assert.Equal(t, 8080, GetInt(nil, "PORT", 8080))

	assert.Equal(t, "fallback", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(c, "MISSING", "fallback"))
	assert.Equal(t, "9090", GetString(c, "PORT", ""))

	assert.True(t, GetBool(c, "DEBUG", false))
	assert.True(t, GetBool(c, "MISSING", true))

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetList(c, "ACCEPTED_ORIGINS", nil))
	assert.Equal(t, []string{"*"}, GetList(c, "MISSING", []string{"*"}))
}

func TestSplit(t *testing.T) {
	k, v := split("A=b=c")
	assert.Equal(t, "A", k)
	assert.Equal(t, "b=c", v)

	k, v = split("FLAG")
	assert.Equal(t, "FLAG", k)
	assert.Equal(t, "", v)
}

func TestLoadReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BLOG_STORAGE_KEY_TEST=fromfile\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("BLOG_STORAGE_KEY_TEST") })

	c := Load(path)
	assert.Equal(t, "fromfile", GetString(c, "BLOG_STORAGE_KEY_TEST", ""))
}

func TestLoadToleratesMissingFile(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NotNil(t, c)
}
