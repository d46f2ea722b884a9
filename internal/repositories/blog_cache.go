package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/blog-api/internal/logger"
	"github.com/sbilibin2017/blog-api/internal/models"
)

const (
	blogListCacheKey = "blogs:all"
	blogListGenKey   = "blogs:gen"
)

var (
	// ErrCacheMiss is returned when the blog list is not cached.
	ErrCacheMiss = errors.New("blog list not found in cache")
	// ErrCacheStale is returned by SetAll when the list was invalidated
	// after the generation was read.
	ErrCacheStale = errors.New("blog list cache generation changed")
)

// BlogCacheRepository caches the full blog list in Redis.
// Every invalidation bumps a generation counter; a fill only lands if
// the generation it started from is still current.
type BlogCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration of the cached list
}

func NewBlogCacheRepository(client *redis.Client, expiration time.Duration) *BlogCacheRepository {
	return &BlogCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// GetAll returns the cached blog list or ErrCacheMiss.
func (r *BlogCacheRepository) GetAll(ctx context.Context) ([]models.BlogDB, error) {
	val, err := r.client.Get(ctx, blogListCacheKey).Bytes()
	if err != nil {
		logger.Log.Infow("cache get",
			"key", blogListCacheKey,
			"error", err,
		)
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	blogs := make([]models.BlogDB, 0)
	if err := json.Unmarshal(val, &blogs); err != nil {
		logger.Log.Infow("cache decode",
			"key", blogListCacheKey,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow("cache get",
		"key", blogListCacheKey,
		"result", len(blogs),
	)
	return blogs, nil
}

// Generation returns the current invalidation generation, 0 if never invalidated.
func (r *BlogCacheRepository) Generation(ctx context.Context) (int64, error) {
	return readGeneration(ctx, r.client)
}

// SetAll stores the blog list read under generation gen.
// It returns ErrCacheStale and writes nothing if an invalidation happened since.
func (r *BlogCacheRepository) SetAll(ctx context.Context, gen int64, blogs []models.BlogDB) error {
	data, err := json.Marshal(blogs)
	if err != nil {
		return err
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := readGeneration(ctx, tx)
		if err != nil {
			return err
		}
		if cur != gen {
			return ErrCacheStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, blogListCacheKey, data, r.exp)
			return nil
		})
		return err
	}, blogListGenKey)
	if errors.Is(err, redis.TxFailedErr) {
		err = ErrCacheStale
	}

	logger.Log.Infow("cache set",
		"key", blogListCacheKey,
		"generation", gen,
		"result", len(blogs),
		"error", err,
	)
	return err
}

// Invalidate drops the cached blog list and bumps the generation.
func (r *BlogCacheRepository) Invalidate(ctx context.Context) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, blogListGenKey)
		pipe.Del(ctx, blogListCacheKey)
		return nil
	})

	logger.Log.Infow("cache invalidate",
		"key", blogListCacheKey,
		"error", err,
	)
	return err
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, c stringGetter) (int64, error) {
	gen, err := c.Get(ctx, blogListGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}
