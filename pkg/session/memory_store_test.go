package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("save retrieve delete", func(t *testing.T) {
		store := session.NewMemoryStore(0, 0)
		defer store.Close()

		_, err := store.Retrieve(ctx, "missing")
		assert.ErrorIs(t, err, session.ErrNotFound)

		attrs := session.NewAttributes(map[string]any{"user_id": 42})
		require.NoError(t, store.Save(ctx, "abc", attrs))
		assert.Equal(t, 1, store.Len())

		got, err := store.Retrieve(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, attrs.Map(), got.Map())

		require.NoError(t, store.Delete(ctx, "abc"))
		require.NoError(t, store.Delete(ctx, "abc"))
		_, err = store.Retrieve(ctx, "abc")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("isolates stored copies", func(t *testing.T) {
		store := session.NewMemoryStore(0, 0)
		defer store.Close()

		attrs := session.NewAttributes(map[string]any{"k": "v"})
		require.NoError(t, store.Save(ctx, "abc", attrs))
		attrs.Set("k", "mutated")

		got, err := store.Retrieve(ctx, "abc")
		require.NoError(t, err)
		got.Set("k", "also mutated")

		again, err := store.Retrieve(ctx, "abc")
		require.NoError(t, err)
		v, _ := again.Get("k")
		assert.Equal(t, "v", v)
	})

	t.Run("expires records", func(t *testing.T) {
		store := session.NewMemoryStore(10*time.Millisecond, 0)
		defer store.Close()

		require.NoError(t, store.Save(ctx, "abc", session.NewAttributes(map[string]any{"k": "v"})))
		time.Sleep(20 * time.Millisecond)

		_, err := store.Retrieve(ctx, "abc")
		assert.ErrorIs(t, err, session.ErrNotFound)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("cleanup loop removes expired", func(t *testing.T) {
		store := session.NewMemoryStore(5*time.Millisecond, 5*time.Millisecond)
		defer store.Close()

		require.NoError(t, store.Save(ctx, "abc", session.NewAttributes(map[string]any{"k": "v"})))
		assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		store := session.NewMemoryStore(0, time.Minute)
		assert.NoError(t, store.Close())
		assert.NoError(t, store.Close())
	})

	t.Run("concurrent access", func(t *testing.T) {
		store := session.NewMemoryStore(time.Minute, 0)
		defer store.Close()

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				id := fmt.Sprintf("id-%d", i%5)
				_ = store.Save(ctx, id, session.NewAttributes(map[string]any{"i": i}))
				_, _ = store.Retrieve(ctx, id)
				if i%3 == 0 {
					_ = store.Delete(ctx, id)
				}
			}(i)
		}
		wg.Wait()
		assert.LessOrEqual(t, store.Len(), 5)
	})
}

func TestMemoryStore_WithStoreBackend(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := session.NewMemoryStore(time.Hour, 0)
	defer store.Close()
	b := newStoreBackend(t, store)

	sess, err := b.Setup(ctx, requestWithCookie(""))
	require.NoError(t, err)
	sess.Set("user_id", 42)
	require.NoError(t, b.Finalize(ctx, nopWriter{}, sess))

	loaded, err := b.Setup(ctx, requestWithCookie(sess.ID()))
	require.NoError(t, err)
	n, ok := loaded.GetInt("user_id")
	require.True(t, ok)
	assert.Equal(t, 42, n)
}
