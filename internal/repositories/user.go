package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sbilibin2017/blog-api/internal/logger"
	"github.com/sbilibin2017/blog-api/internal/models"
)

// ErrEmailTaken is returned by Save when the unique email index rejects the insert.
var ErrEmailTaken = errors.New("email already taken")

type UserReadRepository struct {
	coll *mongo.Collection
}

func NewUserReadRepository(db *mongo.Database) *UserReadRepository {
	return &UserReadRepository{coll: db.Collection(UsersCollection)}
}

// GetByEmail returns the user with the given email, or nil, nil if none exists.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	var user models.UserDB
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)

	logger.Log.Infow("mongo operation",
		"collection", UsersCollection,
		"op", "findOne",
		"args", email,
		"found", err == nil,
		"error", err,
	)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type UserWriteRepository struct {
	coll *mongo.Collection
}

func NewUserWriteRepository(db *mongo.Database) *UserWriteRepository {
	return &UserWriteRepository{coll: db.Collection(UsersCollection)}
}

// Save inserts a user. passwordHash must already be hashed.
func (r *UserWriteRepository) Save(ctx context.Context, username, email, passwordHash string) error {
	user := models.UserDB{
		Username:  username,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.coll.InsertOne(ctx, user)

	// Password hash stays out of the log
	logger.Log.Infow("mongo operation",
		"collection", UsersCollection,
		"op", "insert",
		"args", []any{username, email},
		"error", err,
	)

	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	return err
}
