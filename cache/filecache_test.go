package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCacheRoundTrip(t *testing.T) {
	fc, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	key := fc.KeyFor("/activities", map[string]string{"startDate": "2024-01-01"})
	require.NoError(t, fc.Write(key, &Entry{
		ETag: `"abc"`,
		Body: json.RawMessage(`[{"id": 1}]`),
	}))

	entry, fresh := fc.Read(key, time.Hour)
	require.NotNil(t, entry)
	assert.True(t, fresh)
	assert.Equal(t, `"abc"`, entry.ETag)
	assert.JSONEq(t, `[{"id": 1}]`, string(entry.Body))
}

func TestFileCacheExpiryKeepsEntryForRevalidation(t *testing.T) {
	fc, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	key := fc.KeyFor("/activities", nil)
	require.NoError(t, fc.Write(key, &Entry{ETag: `"v1"`, Body: json.RawMessage(`{}`)}))

	entry, fresh := fc.Read(key, time.Nanosecond)
	require.NotNil(t, entry, "expired entries stay readable")
	assert.False(t, fresh)
}

func TestFileCacheMissingKey(t *testing.T) {
	fc, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	entry, fresh := fc.Read("nope", time.Hour)
	assert.Nil(t, entry)
	assert.False(t, fresh)
}

func TestKeyForIsStable(t *testing.T) {
	fc, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	a := fc.KeyFor("/p", map[string]string{"a": "1", "b": "2"})
	b := fc.KeyFor("/p", map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, fc.KeyFor("/p", map[string]string{"a": "2", "b": "2"}))
}
