package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserDB represents a user document in the users collection
type UserDB struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`   // Primary key
	Username  string             `json:"username" bson:"username"`   // Display name
	Email     string             `json:"email" bson:"email"`         // Unique email
	Password  string             `json:"-" bson:"password"`          // bcrypt hash, never serialized
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"` // Creation timestamp
}
