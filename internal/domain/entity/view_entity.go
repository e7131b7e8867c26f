package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The view types below are the response-shaped documents produced by the
// aggregation pipelines. Field names match the projected document keys.

type Account struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Avatar   string             `bson:"avatar" json:"avatar"`
	Email    string             `bson:"email" json:"email"`
	Username string             `bson:"username" json:"username"`
}

type PostOwner struct {
	ID      primitive.ObjectID `bson:"_id" json:"_id"`
	Account *Account           `bson:"account" json:"account"`
}

type PostView struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Content   string             `bson:"content" json:"content"`
	Tags      []string           `bson:"tags" json:"tags"`
	Images    []Image            `bson:"images" json:"images"`
	Owner     *PostOwner         `bson:"owner" json:"owner"`
	Likes     int                `bson:"likes" json:"likes"`
	IsLiked   bool               `bson:"isLiked" json:"isLiked"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProfileView is a user with relationship counts. IsFollowing is filled in
// outside the aggregation.
type ProfileView struct {
	ID             primitive.ObjectID `bson:"_id" json:"_id"`
	FullName       string             `bson:"fullName" json:"fullName"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	Avatar         string             `bson:"avatar" json:"avatar"`
	Bio            string             `bson:"bio" json:"bio"`
	DOB            *time.Time         `bson:"dob,omitempty" json:"dob,omitempty"`
	Location       string             `bson:"location" json:"location"`
	CoverImage     string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	FollowersCount int                `bson:"followersCount" json:"followersCount"`
	FollowingCount int                `bson:"followingCount" json:"followingCount"`
	IsFollowing    bool               `bson:"-" json:"isFollowing"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the header user of follower/following lists.
type UserSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Username string             `bson:"username" json:"username"`
	FullName string             `bson:"fullName" json:"fullName"`
	Email    string             `bson:"email" json:"email"`
	Avatar   string             `bson:"avatar" json:"avatar"`
	Profile  *Profile           `bson:"profile" json:"profile,omitempty"`
}

// FollowUserView is one row of a follower/following list.
type FollowUserView struct {
	UserSummary `bson:",inline"`
	IsFollowing bool `bson:"isFollowing" json:"isFollowing"`
}
