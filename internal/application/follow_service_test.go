package application

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/vibhive/pkg/apperror"
	"github.com/oksasatya/vibhive/pkg/pagination"
)

func TestFollowToggle_TwoCycle(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	alice := a.register(t, "alice")
	bob := a.register(t, "bob")

	first, err := a.follows.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, &FollowResult{Following: true, FollowersCount: 1}, first)

	second, err := a.follows.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, &FollowResult{Following: false, FollowersCount: 0}, second)

	third, err := a.follows.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, third.Following)
}

func TestFollowToggle_SelfFollowRejected(t *testing.T) {
	a := newApp(t)
	alice := a.register(t, "alice")

	for range 2 {
		_, err := a.follows.Toggle(context.Background(), alice.ID, alice.ID)
		require.ErrorIs(t, err, apperror.ErrUnprocessable)
		assert.EqualError(t, err, "You cannot follow yourself")
	}
	assert.Empty(t, a.db.follows)
}

func TestFollowToggle_MissingTarget(t *testing.T) {
	a := newApp(t)
	alice := a.register(t, "alice")
	_, err := a.follows.Toggle(context.Background(), alice.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestFollowLists(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	alice := a.register(t, "alice")
	bob := a.register(t, "bob")
	carol := a.register(t, "carol")

	for _, pair := range [][2]primitive.ObjectID{{alice.ID, carol.ID}, {bob.ID, carol.ID}, {carol.ID, alice.ID}} {
		_, err := a.follows.Toggle(ctx, pair[0], pair[1])
		require.NoError(t, err)
	}

	followers, err := a.follows.Followers(ctx, "carol", &carol.ID, firstPage)
	require.NoError(t, err)
	assert.Equal(t, "carol", followers.User.Username)
	assert.Equal(t, int64(2), followers.Page.TotalDocs)
	require.Len(t, followers.Page.Docs, 2)
	assert.Equal(t, "alice", followers.Page.Docs[0].Username)
	assert.True(t, followers.Page.Docs[0].IsFollowing, "carol follows alice back")
	assert.False(t, followers.Page.Docs[1].IsFollowing)

	b, err := json.Marshal(followers)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(b, &body))
	assert.Contains(t, body, "user")
	assert.Contains(t, body, "followers")
	assert.EqualValues(t, 2, body["totalFollowers"])

	following, err := a.follows.Following(ctx, "alice", nil, firstPage)
	require.NoError(t, err)
	assert.Equal(t, pagination.FollowingLabels, following.Page.Labels)
	require.Len(t, following.Page.Docs, 1)
	assert.Equal(t, "carol", following.Page.Docs[0].Username)
	assert.False(t, following.Page.Docs[0].IsFollowing)

	_, err = a.follows.Followers(ctx, "ghost", nil, firstPage)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
