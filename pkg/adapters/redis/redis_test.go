package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/lumina/pkg/adapters/redis"
	"github.com/aretw0/lumina/pkg/domain"
	"github.com/aretw0/lumina/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestNotifier_History(t *testing.T) {
	mr, client := setup(t)
	n := redis.NewFromClient(client, redis.WithPrefix("test:"), redis.WithHistory(2))
	ctx := context.Background()

	for _, msg := range []string{"first", "second", "third"} {
		require.NoError(t, n.Notify(ctx, domain.Notification{Kind: domain.OpCheckData, Message: msg}))
	}

	assert.True(t, mr.Exists("test:notifications:recent"))

	recent, err := n.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2, "history is capped")
	assert.Equal(t, "third", recent[0].Message)
	assert.Equal(t, "second", recent[1].Message)
	assert.Equal(t, domain.OpCheckData, recent[0].Kind)
}

func TestNotifier_Subscribe(t *testing.T) {
	_, client := setup(t)
	n := redis.NewFromClient(client)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, stop, err := n.Subscribe(ctx)
	require.NoError(t, err)
	defer stop()

	require.NoError(t, n.Notify(ctx, domain.Notification{Kind: domain.OpMassDelete, Owner: "o1", Message: "boom"}))

	select {
	case item := <-ch:
		assert.Equal(t, "boom", item.Message)
		assert.Equal(t, "o1", item.Owner)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not received")
	}
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := redis.New("not a url")
	assert.Error(t, err)
}

func TestRedisLocker_LockUnlock(t *testing.T) {
	mr, client := setup(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "owner-1", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:lock:owner-1"), "Lock key should be set in Redis")

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:lock:owner-1"), "Lock key should be removed after unlock")
}

func TestRedisLocker_Contention(t *testing.T) {
	_, client := setup(t)
	locker1 := redis.NewLocker(client, "test:")
	locker2 := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock1, err := locker1.Lock(ctx, "shared", 5*time.Second)
	require.NoError(t, err)

	ctxTimeout, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	_, err = locker2.Lock(ctxTimeout, "shared", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock1(ctx))

	unlock2, err := locker2.Lock(ctx, "shared", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestRedisLocker_StaleUnlockKeepsNewOwner(t *testing.T) {
	mr, client := setup(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock1, err := locker.Lock(ctx, "k", time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	unlock2, err := locker.Lock(ctx, "k", 5*time.Second)
	require.NoError(t, err)

	require.NoError(t, unlock1(ctx))
	assert.True(t, mr.Exists("test:lock:k"), "expired holder must not release the new lock")
	require.NoError(t, unlock2(ctx))
}

var (
	_ ports.Notifier          = (*redis.Notifier)(nil)
	_ ports.DistributedLocker = (*redis.Locker)(nil)
)
