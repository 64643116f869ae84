package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	err := store.Set("ui.theme", "ascii")
	require.NoError(t, err)

	val, ok := store.Get("ui.theme")
	assert.True(t, ok)
	assert.Equal(t, "ascii", val)
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store := NewConfigStore()

	val, ok := store.Get("ui.theme")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("catalog.dir", "/opt/runbooks")
	_ = store.Set("execution.history_limit", 42)

	assert.Equal(t, "/opt/runbooks", store.GetString("catalog.dir"))
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, "", store.GetString("execution.history_limit"))
}

func TestConfigStore_GetInt_NumericWidths(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("int", 42)
	_ = store.Set("int64", int64(43))
	_ = store.Set("float", 3.9)
	_ = store.Set("string", "not a number")

	assert.Equal(t, 42, store.GetInt("int"))
	assert.Equal(t, 43, store.GetInt("int64"))
	assert.Equal(t, 3, store.GetInt("float"))
	assert.Equal(t, 0, store.GetInt("string"))
	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("ui.mouse", true)
	_ = store.Set("catalog.repo", "true")

	assert.True(t, store.GetBool("ui.mouse"))
	assert.False(t, store.GetBool("catalog.repo"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_Overwrite(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("ui.theme", "default"))
	require.NoError(t, store.Set("ui.theme", "ascii"))

	assert.Equal(t, "ascii", store.GetString("ui.theme"))
}

func TestConfigStore_SaveAndLoadAreNoOps(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("ui.theme", "ascii")

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.Equal(t, "ascii", store.GetString("ui.theme"))
}

func TestConfigStore_Path(t *testing.T) {
	store := NewConfigStore()

	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key-" + string(rune('a'+id%5))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_, _ = store.Get(key)
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("key-a")
	assert.True(t, ok)
}
