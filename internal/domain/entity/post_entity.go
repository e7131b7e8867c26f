package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is one stored post image. Key addresses the object in the image store.
type Image struct {
	URL string `bson:"url" json:"url"`
	Key string `bson:"key" json:"-"`
}

// Post owner is set at creation and never changes.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Content   string             `bson:"content" json:"content"`
	Images    []Image            `bson:"images" json:"images"`
	Tags      []string           `bson:"tags" json:"tags"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
