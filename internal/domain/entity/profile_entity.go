package entity

import "time"

// Profile is the extended profile sub-object of a user as exposed in list
// projections. It is embedded in the user document, not a collection.
type Profile struct {
	Bio        string     `bson:"bio" json:"bio"`
	DOB        *time.Time `bson:"dob,omitempty" json:"dob,omitempty"`
	Location   string     `bson:"location" json:"location"`
	CoverImage string     `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
}
