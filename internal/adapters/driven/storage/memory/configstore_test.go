package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"llm.provider":          "openai",
		"agenda.fy_start_month": int64(7),
	}, map[string]any{
		"agenda.facts_only": false,
	})

	assert.Equal(t, "openai", store.GetString("llm.provider"))
	assert.Equal(t, 7, store.GetInt("agenda.fy_start_month"))
	_, ok := store.Get("agenda.facts_only")
	assert.True(t, ok)
	assert.False(t, store.GetBool("agenda.facts_only"))
}

func TestConfigStore_TypeMismatchReturnsZero(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"a": 3,
		"b": "text",
	})

	assert.Equal(t, "", store.GetString("a"))
	assert.Equal(t, 0, store.GetInt("b"))
	assert.False(t, store.GetBool("b"))
	assert.Nil(t, store.GetStringSlice("a"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_NumericForms(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("int", 4))
	require.NoError(t, store.Set("int64", int64(30)))
	require.NoError(t, store.Set("float", 3.0))

	assert.Equal(t, 4, store.GetInt("int"))
	assert.Equal(t, 30, store.GetInt("int64"))
	assert.Equal(t, 3, store.GetInt("float"))
}

func TestConfigStore_StringSlice(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"typed":   []string{"a", "b"},
		"untyped": []any{"a", 1, "b"},
	})

	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("typed"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("untyped"))
}

func TestConfigStore_SaveCounts(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Save())
	require.NoError(t, store.Save())
	assert.Equal(t, 2, store.Saves())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("extraction.concurrency", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("extraction.concurrency")
		}()
	}
	wg.Wait()

	_, ok := store.Get("extraction.concurrency")
	assert.True(t, ok)
}
