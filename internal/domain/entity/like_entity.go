package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like is unique per (Post, LikedBy); it is created or deleted, never updated.
type Like struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Post      primitive.ObjectID `bson:"post" json:"post"`
	LikedBy   primitive.ObjectID `bson:"likedBy" json:"likedBy"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
