package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sbilibin2017/blog-api/internal/logger"
	"github.com/sbilibin2017/blog-api/internal/models"
)

// ErrBlogRejected is returned by Save when the store refuses the document,
// for example on a unique index or document validation failure.
var ErrBlogRejected = errors.New("blog rejected by store")

// BlogRepository stores blog posts in MongoDB
type BlogRepository struct {
	coll *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{coll: db.Collection(BlogsCollection)}
}

// List returns every blog post in store order. The result is never nil.
func (r *BlogRepository) List(ctx context.Context) ([]models.BlogDB, error) {
	blogs := make([]models.BlogDB, 0)

	cur, err := r.coll.Find(ctx, bson.D{})
	if err == nil {
		err = cur.All(ctx, &blogs)
	}

	logger.Log.Infow("mongo operation",
		"collection", BlogsCollection,
		"op", "find",
		"result", len(blogs),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return blogs, nil
}

// Save inserts blog and returns it with the generated id.
func (r *BlogRepository) Save(ctx context.Context, blog models.BlogDB) (*models.BlogDB, error) {
	blog.ID = primitive.NilObjectID

	res, err := r.coll.InsertOne(ctx, blog)

	logger.Log.Infow("mongo operation",
		"collection", BlogsCollection,
		"op", "insert",
		"args", blog,
		"error", err,
	)

	if err != nil {
		var we mongo.WriteException
		if errors.As(err, &we) || mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %v", ErrBlogRejected, err)
		}
		return nil, err
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		blog.ID = id
	}
	return &blog, nil
}

// IncrementLikes atomically adds one like to the post with the given hex id
// and returns the updated document. It returns nil, nil when no post matches,
// including when id is not a valid ObjectID.
func (r *BlogRepository) IncrementLikes(ctx context.Context, id string) (*models.BlogDB, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.Infow("invalid blog id", "id", id, "error", err)
		return nil, nil
	}

	var blog models.BlogDB
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"likes": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&blog)

	logger.Log.Infow("mongo operation",
		"collection", BlogsCollection,
		"op", "findOneAndUpdate",
		"args", id,
		"result", blog.Likes,
		"error", err,
	)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}
