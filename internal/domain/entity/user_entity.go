package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the aggregate root for accounts. Password holds the bcrypt hash and,
// together with RefreshToken, never leaves the service boundary.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FullName     string             `bson:"fullName" json:"fullName"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password" json:"-"`
	Avatar       string             `bson:"avatar" json:"avatar"`
	Bio          string             `bson:"bio" json:"bio"`
	DOB          *time.Time         `bson:"dob,omitempty" json:"dob,omitempty"`
	Location     string             `bson:"location" json:"location"`
	CoverImage   string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	RefreshToken *string            `bson:"refreshToken,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultLocation is used when registration omits a location.
const DefaultLocation = "Earth"
