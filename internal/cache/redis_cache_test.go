package cache

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

type item struct {
	Name string `json:"name"`
}

func TestRedisCache(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()
	c := NewRedisCache(rdb, "test:")

	var got item
	hit, err := c.GetJSON(ctx, "a", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetJSON(ctx, "a", item{Name: "x"}, time.Minute))
	hit, err = c.GetJSON(ctx, "a", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "x", got.Name)

	// keys are namespaced
	raw, err := rdb.Get(ctx, "test:a").Result()
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x"}`, raw)

	require.NoError(t, rdb.Set(ctx, "test:bad", "{not json", time.Minute).Err())
	hit, err = c.GetJSON(ctx, "bad", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int64(0), rdb.Exists(ctx, "test:bad").Val())

	require.NoError(t, c.Del(ctx, "a"))
	hit, err = c.GetJSON(ctx, "a", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Del(ctx))
}

func TestProfileKeys(t *testing.T) {
	assert.Equal(t, "profiles:user:42", ProfileKey("42"))
	assert.NotEqual(t, ProfileListKey, ProfileKey(""))

	hit, err := Nop{}.GetJSON(context.Background(), ProfileListKey, &item{})
	assert.NoError(t, err)
	assert.False(t, hit)
}
