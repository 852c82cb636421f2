package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndRetrieve(t *testing.T) {
	c := New[string]("test", 10)

	require.NoError(t, c.Insert("a", "value-a", 1))
	require.NoError(t, c.Insert("b", "value-b", 2))

	actual, ok := c.Retrieve("a")
	require.True(t, ok)
	assert.Equal(t, "value-a", actual)

	_, ok = c.Retrieve("missing")
	assert.False(t, ok)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 3, c.Weight())
	assert.Equal(t, 10, c.Budget())

	assert.Equal(t, ErrKeyExists, c.Insert("a", "other", 1))
	assert.Equal(t, ErrOverBudget, c.Insert("huge", "value", 11))

	actual, _ = c.Retrieve("a")
	assert.Equal(t, "value-a", actual)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int]("test", 3)

	require.NoError(t, c.Insert("a", 1, 1))
	require.NoError(t, c.Insert("b", 2, 1))
	require.NoError(t, c.Insert("c", 3, 1))

	// Touching a makes b the least recently used
	_, ok := c.Retrieve("a")
	require.True(t, ok)

	require.NoError(t, c.Insert("d", 4, 1))
	assert.Equal(t, 3, c.Weight())

	_, ok = c.Retrieve("b")
	assert.False(t, ok)
	for _, key := range []string{"a", "c", "d"} {
		_, ok = c.Retrieve(key)
		assert.True(t, ok, key)
	}

	// A heavy entry evicts as many entries as needed
	require.NoError(t, c.Insert("e", 5, 3))
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 3, c.Weight())

	actual, ok := c.Retrieve("e")
	require.True(t, ok)
	assert.Equal(t, 5, actual)
}

func TestClear(t *testing.T) {
	c := New[int]("test", 5)

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Insert(fmt.Sprintf("%d", i), i, 1))
	}

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Weight())

	_, ok := c.Retrieve("0")
	assert.False(t, ok)

	require.NoError(t, c.Insert("0", 0, 1))
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int]("test", 50)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("%d-%d", worker, j)
				assert.NoError(t, c.Insert(key, j, 1))
				c.Retrieve(key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, c.Len())
	assert.Equal(t, 50, c.Weight())
}
