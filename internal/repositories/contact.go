package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sbilibin2017/blog-api/internal/logger"
	"github.com/sbilibin2017/blog-api/internal/models"
)

type ContactRepository struct {
	coll *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{coll: db.Collection(ContactsCollection)}
}

// Save inserts a contact message and returns it with the generated id.
func (r *ContactRepository) Save(ctx context.Context, contact models.ContactDB) (*models.ContactDB, error) {
	contact.ID = primitive.NilObjectID

	res, err := r.coll.InsertOne(ctx, contact)

	logger.Log.Infow("mongo operation",
		"collection", ContactsCollection,
		"op", "insert",
		"args", []any{contact.Name, contact.Email},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		contact.ID = id
	}
	return &contact, nil
}
