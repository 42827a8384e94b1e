package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"neighborhelp-backend/config"
	"neighborhelp-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(ttl time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(ttl)
	store.now = clock.Now
	return store, clock
}

func testAccount() models.AccountSnapshot {
	return models.AccountSnapshot{ID: uuid.New(), Name: "Alex", Email: "a@b.com"}
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	store, clock := newTestStore(24 * time.Hour)
	ctx := context.Background()
	account := testAccount()

	sess, err := store.Create(ctx, account)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, account, sess.Account)
	assert.Equal(t, clock.Now().Add(24*time.Hour), sess.ExpiresAt)

	got, err := store.Get(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, account.Email, got.Account.Email)
}

func TestMemoryStore_TokensAreUnique(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	ctx := context.Background()

	first, err := store.Create(ctx, testAccount())
	require.NoError(t, err)
	second, err := store.Create(ctx, testAccount())
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	store, _ := newTestStore(time.Hour)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store, clock := newTestStore(24 * time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, testAccount())
	require.NoError(t, err)

	clock.Advance(24*time.Hour - time.Second)
	_, err = store.Get(ctx, sess.Token)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = store.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, testAccount())
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, sess.Token))
	require.NoError(t, store.Delete(ctx, sess.Token))
	require.NoError(t, store.Delete(ctx, "never-existed"))

	_, err = store.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ReturnedSessionIsACopy(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, testAccount())
	require.NoError(t, err)
	sess.Account.Email = "tampered@x.com"

	got, err := store.Get(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got.Account.Email)
}

func TestMemoryStore_Sweep(t *testing.T) {
	store, clock := newTestStore(time.Hour)
	ctx := context.Background()

	_, err := store.Create(ctx, testAccount())
	require.NoError(t, err)
	clock.Advance(30 * time.Minute)
	fresh, err := store.Create(ctx, testAccount())
	require.NoError(t, err)

	clock.Advance(45 * time.Minute)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())

	_, err = store.Get(ctx, fresh.Token)
	assert.NoError(t, err)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, err := store.Create(ctx, testAccount())
			if err != nil {
				return
			}
			_, _ = store.Get(ctx, sess.Token)
			_ = store.Delete(ctx, sess.Token)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, store.Len())
}

func TestNewStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		store, err := NewStore(config.SessionConfig{Store: "memory", TTL: time.Hour}, nil)
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, store)
	})

	t.Run("redis without client", func(t *testing.T) {
		_, err := NewStore(config.SessionConfig{Store: "redis", TTL: time.Hour}, nil)
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewStore(config.SessionConfig{Store: "cookie"}, nil)
		assert.Error(t, err)
	})
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "session:abc", redisKey("abc"))
}
