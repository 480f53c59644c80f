package worker

import (
	"context"
	"testing"
	"time"

	"github.com/aescanero/dago-node-arith/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultStore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	store := env.store

	result := &engine.Result{
		RequestID:  "r-1",
		Value:      5,
		Expression: "10 / 2",
		Mode:       "native",
		PathTaken:  "native",
		Nodes:      3,
		Summary:    "10 / 2 = 5",
	}
	require.NoError(t, store.Save(ctx, result))

	loaded, err := store.Load(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, result, loaded)

	assert.Equal(t, time.Hour, env.redis.TTL("arith:result:r-1"))

	exists, err := store.Exists(ctx, "r-1")
	require.NoError(t, err)
	assert.True(t, exists)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"r-1"}, ids)

	require.NoError(t, store.Delete(ctx, "r-1"))

	_, err = store.Load(ctx, "r-1")
	assert.ErrorIs(t, err, ErrResultNotFound)

	exists, err = store.Exists(ctx, "r-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestResultStoreRequiresID(t *testing.T) {
	env := newTestEnv(t)

	err := env.store.Save(context.Background(), &engine.Result{Value: 1})
	assert.Error(t, err)
}
