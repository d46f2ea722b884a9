//go:generate mockgen -source=blogs.go -destination=blogs_mock.go -package=handlers
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/blog-api/internal/models"
	"github.com/sbilibin2017/blog-api/internal/services"
)

// BlogLister lists blog posts.
type BlogLister interface {
	List(ctx context.Context) ([]models.BlogDB, error)
}

// BlogCreator creates blog posts.
type BlogCreator interface {
	Create(ctx context.Context, title, content, date string, likes int64) (*models.BlogDB, error)
}

// BlogLiker increments the like counter of a blog post.
type BlogLiker interface {
	Like(ctx context.Context, id string) (*models.BlogDB, error)
}

// CreateBlogRequest represents the JSON body for creating a blog post
// swagger:model CreateBlogRequest
type CreateBlogRequest struct {
	// Title
	// example: Hello world
	Title string `json:"newTitle"`

	// Content
	// example: First post
	Content string `json:"newContent"`

	// Date, free form
	// example: 2024-01-01
	Date string `json:"date"`

	// Initial likes, 0 when omitted
	// example: 0
	Likes int64 `json:"likes" validate:"gte=0"`
}

// NewListBlogsHandler returns an HTTP handler listing all blog posts.
// @Summary List blog posts
// @Description Returns every blog post in store order, without pagination.
// @Tags blogs
// @Produce json
// @Success 200 {array} models.BlogDB "Blog posts"
// @Failure 500 {object} handlers.ErrorResponse "Server error"
// @Router /api/blogs [get]
func NewListBlogsHandler(svc BlogLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogs, err := svc.List(r.Context())
		if err != nil {
			requestLog(r).Errorw("failed to list blogs", "error", err)
			writeError(w, http.StatusInternalServerError, msgServerError)
			return
		}

		writeJSON(w, http.StatusOK, blogs)
	}
}

// NewCreateBlogHandler returns an HTTP handler creating a blog post.
// @Summary Create a blog post
// @Description Stores a new blog post. Every field is optional; likes defaults to 0.
// @Tags blogs
// @Accept json
// @Produce json
// @Param request body handlers.CreateBlogRequest true "Blog post"
// @Success 201 {object} models.BlogDB "Created blog post"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body / Invalid blog post"
// @Failure 413 {object} handlers.ErrorResponse "Request body too large"
// @Failure 500 {object} handlers.ErrorResponse "Server error"
// @Router /api/blogs [post]
func NewCreateBlogHandler(svc BlogCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateBlogRequest
		if err := decodeRequest(w, r, &req); err != nil {
			requestLog(r).Warnw("invalid create blog request", "error", err)
			writeDecodeError(w, err)
			return
		}

		blog, err := svc.Create(r.Context(), req.Title, req.Content, req.Date, req.Likes)
		if err != nil {
			if errors.Is(err, services.ErrInvalidBlog) {
				writeError(w, http.StatusBadRequest, "Invalid blog post")
				return
			}
			requestLog(r).Errorw("failed to create blog", "error", err)
			writeError(w, http.StatusInternalServerError, msgServerError)
			return
		}

		writeJSON(w, http.StatusCreated, blog)
	}
}

// NewLikeBlogHandler returns an HTTP handler adding one like to a blog post.
// @Summary Like a blog post
// @Description Atomically increments the likes counter by one.
// @Tags blogs
// @Produce json
// @Param id path string true "Blog post id"
// @Success 200 {object} models.BlogDB "Updated blog post"
// @Failure 404 {object} handlers.ErrorResponse "Blog not found"
// @Failure 500 {object} handlers.ErrorResponse "Server error"
// @Router /api/blogs/like/{id} [patch]
func NewLikeBlogHandler(svc BlogLiker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		blog, err := svc.Like(r.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrBlogNotFound) {
				writeError(w, http.StatusNotFound, "Blog not found")
				return
			}
			requestLog(r).Errorw("failed to like blog", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, msgServerError)
			return
		}

		writeJSON(w, http.StatusOK, blog)
	}
}
