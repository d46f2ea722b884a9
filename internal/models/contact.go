package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactDB represents a contact message document in the contacts collection
type ContactDB struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Message   string             `json:"message" bson:"message"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// ContactEvent is published to Kafka after a contact message is stored
type ContactEvent struct {
	EventID   string `json:"event_id"`   // Unique event identifier
	ContactID string `json:"contact_id"` // Hex ObjectID of the stored message
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"` // Unix seconds of createdAt
}
