package aggregate

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/vibhive/internal/domain/entity"
	"github.com/oksasatya/vibhive/internal/domain/repository"
)

// The builders below produce the stages that follow a base Match (and Sort).
// They are shared by every list and single-item path so the response schema
// is identical whichever filter selected the candidates. The viewer is always
// passed explicitly; nil means anonymous.

// accountFields is the owner account projection embedded in posts.
var accountFields = []string{"avatar", "email", "username"}

// PostStages turns raw post documents into PostView documents.
func PostStages(viewer *primitive.ObjectID) Pipeline {
	p := New(
		Lookup{
			From:         entity.LikesCollection,
			LocalField:   "_id",
			ForeignField: "post",
			As:           "likes",
		},
	)

	// Distinct from the count lookup above: the viewer filter changes the join.
	isLiked := any(false)
	if viewer != nil {
		p = p.Then(Lookup{
			From:         entity.LikesCollection,
			LocalField:   "_id",
			ForeignField: "post",
			As:           "isLiked",
			Pipeline:     New(Match{Filter: Eq("likedBy", *viewer)}),
		})
		isLiked = NonEmpty("$isLiked")
	}

	return p.Then(
		Lookup{
			From:         entity.UsersCollection,
			LocalField:   "owner",
			ForeignField: "_id",
			As:           "owner",
			Pipeline: New(
				Lookup{
					From:         entity.UsersCollection,
					LocalField:   "_id",
					ForeignField: "_id",
					As:           "account",
					Pipeline:     New(Project{Include: accountFields}),
				},
				AddFields{{Name: "account", Expr: FirstOrNull("$account")}},
				Project{Include: []string{"account"}},
			),
		},
		AddFields{
			{Name: "owner", Expr: FirstOrNull("$owner")},
			{Name: "likes", Expr: Size("$likes")},
			{Name: "isLiked", Expr: isLiked},
		},
		Project{Include: []string{"content", "tags", "images", "owner", "likes", "isLiked", "createdAt", "updatedAt"}},
	)
}

// ProfileStages adds follower/following counts to user documents and drops
// the joined lists and credentials.
func ProfileStages() Pipeline {
	return New(
		Lookup{
			From:         entity.FollowsCollection,
			LocalField:   "_id",
			ForeignField: "followerId",
			As:           "following",
		},
		Lookup{
			From:         entity.FollowsCollection,
			LocalField:   "_id",
			ForeignField: "followeeId",
			As:           "followedBy",
		},
		AddFields{
			{Name: "followersCount", Expr: Size("$followedBy")},
			{Name: "followingCount", Expr: Size("$following")},
		},
		Project{Exclude: []string{"followedBy", "following", "password", "refreshToken"}},
	)
}

// profileExpr assembles the profile sub-object from the user's own fields.
func profileExpr() bson.D {
	return bson.D{
		{Key: "bio", Value: "$bio"},
		{Key: "dob", Value: "$dob"},
		{Key: "location", Value: "$location"},
		{Key: "coverImage", Value: "$coverImage"},
	}
}

var summaryFields = []string{"username", "fullName", "email", "avatar", "profile"}

// UserSummaryStages shapes a user into a UserSummary.
func UserSummaryStages() Pipeline {
	return New(
		AddFields{{Name: "profile", Expr: profileExpr()}},
		Project{Include: summaryFields},
	)
}

// sideFields returns the edge field matched for side, the edge field naming
// the listed user, and the key the joined user is stored under.
func sideFields(side repository.FollowSide) (match, other, as string) {
	if side == repository.Followers {
		return "followeeId", "followerId", "follower"
	}
	return "followerId", "followeeId", "following"
}

// FollowListMatch is the base filter for a follow list of user.
func FollowListMatch(side repository.FollowSide, user primitive.ObjectID) Match {
	match, _, _ := sideFields(side)
	return Match{Filter: Eq(match, user)}
}

// FollowListStages turns follow edges into FollowUserView rows, flagging
// whether the viewer follows each listed user.
func FollowListStages(side repository.FollowSide, viewer *primitive.ObjectID) Pipeline {
	inner := New(AddFields{{Name: "profile", Expr: profileExpr()}})

	isFollowing := any(false)
	if viewer != nil {
		inner = inner.Then(Lookup{
			From:         entity.FollowsCollection,
			LocalField:   "_id",
			ForeignField: "followeeId",
			As:           "isFollowing",
			Pipeline:     New(Match{Filter: Eq("followerId", *viewer)}),
		})
		isFollowing = NonEmpty("$isFollowing")
	}
	inner = inner.Then(
		AddFields{{Name: "isFollowing", Expr: isFollowing}},
		Project{Include: append(append([]string{}, summaryFields...), "isFollowing")},
	)

	_, other, as := sideFields(side)
	return New(
		Lookup{
			From:         entity.UsersCollection,
			LocalField:   other,
			ForeignField: "_id",
			As:           as,
			Pipeline:     inner,
		},
		AddFields{{Name: as, Expr: First("$" + as)}},
		// Edges whose user no longer exists would make replaceRoot fail.
		Match{Filter: bson.D{{Key: as, Value: bson.D{{Key: "$type", Value: "object"}}}}},
		Project{Include: []string{as}, Computed: []Field{{Name: "_id", Expr: 0}}},
		ReplaceRoot{NewRoot: "$" + as},
	)
}

// NewestFirst orders by creation time descending, ties broken by _id.
func NewestFirst() Sort {
	return Sort{{Field: "createdAt", Desc: true}, {Field: "_id", Desc: true}}
}
