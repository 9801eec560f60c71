package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server only when REDIS_ADDR is set.
func TestStore_GetSet(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	prefix := fmt.Sprintf("healthstate_test_%d:", time.Now().UnixNano())

	store, err := Open(addr, 0, prefix)
	require.NoError(t, err)
	defer store.Close() //nolint:errcheck

	ctx := context.Background()
	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "user_a_water", `{"consumedMl":250}`))
	v, ok, err := store.Get(ctx, "user_a_water")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"consumedMl":250}`, v)

	require.NoError(t, store.client.Del(ctx, prefix+"user_a_water").Err())
}

func TestOpen_Unreachable(t *testing.T) {
	_, err := Open("127.0.0.1:1", 0, "")
	assert.Error(t, err)
}
