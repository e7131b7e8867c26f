package entity

// Collection names in the document store.
const (
	UsersCollection   = "users"
	PostsCollection   = "posts"
	LikesCollection   = "likes"
	FollowsCollection = "follows"
)
