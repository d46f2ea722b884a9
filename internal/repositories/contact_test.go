package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/sbilibin2017/blog-api/internal/models"
)

func TestContactRepository_Save(t *testing.T) {
	db, teardown := setupMongoContainer(t)
	defer teardown()

	repo := NewContactRepository(db)
	ctx := context.Background()
	createdAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	contact, err := repo.Save(ctx, models.ContactDB{
		Message:   "hi",
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
	assert.False(t, contact.ID.IsZero())

	var stored models.ContactDB
	err = db.Collection(ContactsCollection).FindOne(ctx, bson.M{"_id": contact.ID}).Decode(&stored)
	require.NoError(t, err)

	assert.Equal(t, "hi", stored.Message)
	assert.Empty(t, stored.Name)
	assert.Empty(t, stored.Email)
	assert.True(t, createdAt.Equal(stored.CreatedAt))
}
