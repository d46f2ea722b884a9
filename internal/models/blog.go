package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// BlogDB represents a blog post document in the blogs collection.
// Field names on the wire and in storage keep the newTitle/newContent
// naming used by existing clients.
type BlogDB struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id,omitempty"` // Assigned on insert
	Title   string             `json:"newTitle" bson:"newTitle"`
	Content string             `json:"newContent" bson:"newContent"`
	Date    string             `json:"date" bson:"date"`   // Caller supplied, not parsed
	Likes   int64              `json:"likes" bson:"likes"` // Changed only by $inc
}
