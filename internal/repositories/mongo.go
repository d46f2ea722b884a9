package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/sbilibin2017/blog-api/internal/logger"
)

// Collection names
const (
	BlogsCollection    = "blogs"
	UsersCollection    = "users"
	ContactsCollection = "contacts"
)

// ConnectMongo opens a client for uri and pings the primary.
// The returned client is ready to use; callers own Disconnect.
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the indexes the repositories rely on.
// The unique email index backs the signup existence check.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	name, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	logger.Log.Infow("mongo operation",
		"collection", UsersCollection,
		"index", name,
		"error", err,
	)

	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	return nil
}
