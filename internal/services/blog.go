//go:generate mockgen -source=blog.go -destination=blog_mock.go -package=services
package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/blog-api/internal/logger"
	"github.com/sbilibin2017/blog-api/internal/models"
	"github.com/sbilibin2017/blog-api/internal/repositories"
)

var (
	// ErrBlogNotFound is returned when no blog post matches the requested id.
	ErrBlogNotFound = errors.New("blog not found")
	// ErrInvalidBlog is returned when the store rejects a new blog post.
	ErrInvalidBlog = errors.New("invalid blog post")
)

// BlogReader defines read operations for blog posts.
type BlogReader interface {
	List(ctx context.Context) ([]models.BlogDB, error) // Returns all posts in store order
}

// BlogWriter defines write operations for blog posts.
type BlogWriter interface {
	Save(ctx context.Context, blog models.BlogDB) (*models.BlogDB, error)  // Inserts a post and assigns its id
	IncrementLikes(ctx context.Context, id string) (*models.BlogDB, error) // Atomic +1, nil when not found
}

// BlogCache caches the full blog list.
// SetAll must not store a list read before the latest Invalidate.
type BlogCache interface {
	GetAll(ctx context.Context) ([]models.BlogDB, error)
	Generation(ctx context.Context) (int64, error)                      // Current invalidation generation
	SetAll(ctx context.Context, gen int64, blogs []models.BlogDB) error // Stores blogs only if gen is still current
	Invalidate(ctx context.Context) error                               // Drops the list and bumps the generation
}

// BlogService handles listing, creating and liking blog posts.
type BlogService struct {
	reader BlogReader
	writer BlogWriter
	cache  BlogCache
}

// NewBlogService creates a new BlogService. cache may be nil.
func NewBlogService(reader BlogReader, writer BlogWriter, cache BlogCache) *BlogService {
	return &BlogService{
		reader: reader,
		writer: writer,
		cache:  cache,
	}
}

// List returns all blog posts. The result is never nil.
func (s *BlogService) List(ctx context.Context) ([]models.BlogDB, error) {
	var (
		gen       int64
		cacheable bool
	)
	if s.cache != nil {
		blogs, err := s.cache.GetAll(ctx)
		if err == nil {
			return blogs, nil
		}
		logger.Log.Debugw("blog list cache unavailable", "error", err)

		// read before the store so a concurrent invalidation voids this fill
		if gen, err = s.cache.Generation(ctx); err != nil {
			logger.Log.Warnw("failed to read blog list cache generation", "error", err)
		} else {
			cacheable = true
		}
	}

	blogs, err := s.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list blogs", "error", err)
		return nil, err
	}
	if blogs == nil {
		blogs = []models.BlogDB{}
	}

	if cacheable {
		if err := s.cache.SetAll(ctx, gen, blogs); err != nil {
			logger.Log.Warnw("failed to cache blog list", "generation", gen, "error", err)
		}
	}

	return blogs, nil
}

// Create stores a new blog post and returns it with its generated id.
func (s *BlogService) Create(ctx context.Context, title, content, date string, likes int64) (*models.BlogDB, error) {
	blog, err := s.writer.Save(ctx, models.BlogDB{
		Title:   title,
		Content: content,
		Date:    date,
		Likes:   likes,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrBlogRejected) {
			logger.Log.Warnw("blog rejected by store", "title", title, "error", err)
			return nil, ErrInvalidBlog
		}
		logger.Log.Errorw("failed to save blog", "title", title, "error", err)
		return nil, err
	}

	s.invalidate(ctx)
	return blog, nil
}

// Like adds one like to the post with the given id and returns the updated post.
func (s *BlogService) Like(ctx context.Context, id string) (*models.BlogDB, error) {
	blog, err := s.writer.IncrementLikes(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to like blog", "id", id, "error", err)
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}

	s.invalidate(ctx)
	return blog, nil
}

func (s *BlogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Log.Warnw("failed to invalidate blog list cache", "error", err)
	}
}
