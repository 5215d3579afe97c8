package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnolang/jdlint/internal/types"
)

func TestCache(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	file := writeFile(t, dir, "Foo.java", undocumented)

	cache, err := NewCache(cacheDir, "fp")
	require.NoError(t, err)

	_, ok := cache.Get(file)
	assert.False(t, ok)

	issues := []tt.Issue{{Rule: "javadoc-tags", Filename: file, Message: "m"}}
	require.NoError(t, cache.Set(file, issues))

	got, ok := cache.Get(file)
	require.True(t, ok)
	assert.Equal(t, issues, got)

	// nothing reaches the disk before Flush
	_, err = os.Stat(filepath.Join(cacheDir, cacheFileName))
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, cache.Flush())

	// reloaded from disk
	reloaded, err := NewCache(cacheDir, "fp")
	require.NoError(t, err)
	got, ok = reloaded.Get(file)
	require.True(t, ok)
	assert.Equal(t, issues, got)

	// a different fingerprint starts empty
	other, err := NewCache(cacheDir, "other")
	require.NoError(t, err)
	_, ok = other.Get(file)
	assert.False(t, ok)
}

func TestCacheFlushWritesOnce(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	a := writeFile(t, dir, "A.java", documented)
	b := writeFile(t, dir, "B.java", undocumented)

	cache, err := NewCache(cacheDir, "fp")
	require.NoError(t, err)
	require.NoError(t, cache.Set(a, nil))
	require.NoError(t, cache.Set(b, nil))
	require.NoError(t, cache.Flush())

	path := filepath.Join(cacheDir, cacheFileName)
	info, err := os.Stat(path)
	require.NoError(t, err)

	// a clean cache does not rewrite the file
	require.NoError(t, os.Remove(path))
	require.NoError(t, cache.Flush())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	reloaded, err := NewCache(cacheDir, "fp")
	require.NoError(t, err)
	assert.Empty(t, reloaded.entries)
	assert.NotZero(t, info.Size())

	var nilCache *Cache
	assert.NoError(t, nilCache.Flush())
}

func TestCacheInvalidation(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	file := writeFile(t, dir, "Foo.java", undocumented)

	cache, err := NewCache(filepath.Join(dir, "cache"), "fp")
	require.NoError(t, err)
	require.NoError(t, cache.Set(file, nil))

	require.NoError(t, os.WriteFile(file, []byte(documented), 0o644))
	_, ok := cache.Get(file)
	assert.False(t, ok, "changed content must invalidate the entry")

	require.NoError(t, cache.Set(file, nil))
	cache.SetMaxAge(time.Nanosecond)
	time.Sleep(time.Millisecond)
	_, ok = cache.Get(file)
	assert.False(t, ok, "expired entry must be dropped")

	cache.SetMaxAge(0)
	require.NoError(t, cache.Set(file, nil))
	cache.InvalidateAll()
	_, ok = cache.Get(file)
	assert.False(t, ok)
}

func TestEngineUsesCache(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	file := writeFile(t, dir, "Foo.java", undocumented)

	engine, err := NewEngine(dir, nil, nil)
	require.NoError(t, err)
	cache, err := NewCache(filepath.Join(dir, "cache"), engine.Fingerprint())
	require.NoError(t, err)
	engine.UseCache(cache)

	first, err := engine.Run(file)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	cached, ok := cache.Get(file)
	require.True(t, ok)
	assert.Equal(t, first, cached)

	second, err := engine.Run(file)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEngineFingerprint(t *testing.T) {
	t.Parallel()
	a, err := NewEngine(".", nil, nil)
	require.NoError(t, err)
	b, err := NewEngine(".", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.IgnoreRule("javadoc-tags")
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	c, err := NewEngine(".", map[string]tt.ConfigRule{"javadoc-tags": {Severity: tt.SeverityWarning}}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
