package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sbilibin2017/blog-api/internal/models"
)

func TestBlogCacheRepository(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()

	require.NoError(t, rdb.Ping(ctx).Err())

	repo := NewBlogCacheRepository(rdb, 2*time.Second)

	blogs := []models.BlogDB{
		{ID: primitive.NewObjectID(), Title: "T", Content: "C", Date: "2024-01-01", Likes: 3},
		{ID: primitive.NewObjectID(), Title: "T2"},
	}

	t.Run("Miss", func(t *testing.T) {
		_, err := repo.GetAll(ctx)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	fill := func(t *testing.T, list []models.BlogDB) {
		t.Helper()
		gen, err := repo.Generation(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.SetAll(ctx, gen, list))
	}

	t.Run("SetAndGet", func(t *testing.T) {
		fill(t, blogs)

		got, err := repo.GetAll(ctx)
		assert.NoError(t, err)
		assert.Equal(t, blogs, got)
	})

	t.Run("EmptyListIsCached", func(t *testing.T) {
		fill(t, []models.BlogDB{})

		got, err := repo.GetAll(ctx)
		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Invalidate", func(t *testing.T) {
		fill(t, blogs)
		require.NoError(t, repo.Invalidate(ctx))

		_, err := repo.GetAll(ctx)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("InvalidateBumpsGeneration", func(t *testing.T) {
		before, err := repo.Generation(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.Invalidate(ctx))

		after, err := repo.Generation(ctx)
		require.NoError(t, err)
		assert.Equal(t, before+1, after)
	})

	t.Run("FillAfterInvalidateIsDropped", func(t *testing.T) {
		gen, err := repo.Generation(ctx)
		require.NoError(t, err)

		// a create lands between reading the store and filling the cache
		require.NoError(t, repo.Invalidate(ctx))

		err = repo.SetAll(ctx, gen, blogs[:1])
		assert.ErrorIs(t, err, ErrCacheStale)

		_, err = repo.GetAll(ctx)
		assert.ErrorIs(t, err, ErrCacheMiss)

		fill(t, blogs)
		got, err := repo.GetAll(ctx)
		assert.NoError(t, err)
		assert.Equal(t, blogs, got)
	})

	t.Run("Expires", func(t *testing.T) {
		fill(t, blogs)

		time.Sleep(3 * time.Second)

		_, err := repo.GetAll(ctx)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}
