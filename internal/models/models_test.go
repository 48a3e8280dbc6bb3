package models_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/internal/db"
	"socialnet/internal/models"
)

func openTest(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	database := openTest(t)

	require.NoError(t, models.CreateUser(ctx, database, &models.User{ID: "u1", Email: "a@b.com", PasswordHash: "h"}))
	err := models.CreateUser(ctx, database, &models.User{ID: "u2", Email: "a@b.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)

	u, err := models.GetUserByEmail(ctx, database, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = models.GetUserByID(ctx, database, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFollowEdges(t *testing.T) {
	ctx := context.Background()
	database := openTest(t)

	require.NoError(t, models.InsertFollow(ctx, database, "a", "b"))
	assert.ErrorIs(t, models.InsertFollow(ctx, database, "a", "b"), models.ErrDuplicateFollow)

	following, err := models.ListFollowing(ctx, database, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, following)

	followers, err := models.ListFollowers(ctx, database, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, followers)

	nFollowers, nFollowing, err := models.CountFollows(ctx, database, "a")
	require.NoError(t, err)
	assert.Equal(t, 0, nFollowers)
	assert.Equal(t, 1, nFollowing)

	n, err := models.DeleteFollow(ctx, database, "a", "b")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	ok, err := models.IsFollowing(ctx, database, "a", "b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpsertReactionKeepsOneRow(t *testing.T) {
	ctx := context.Background()
	database := openTest(t)
	now := time.Now().UTC()

	first := &models.Reaction{ID: "r1", PostID: "p1", UserID: "u1", Kind: models.ReactionLike, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, models.UpsertReaction(ctx, database, first))

	second := &models.Reaction{ID: "r2", PostID: "p1", UserID: "u1", Kind: models.ReactionUnlike, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, models.UpsertReaction(ctx, database, second))

	n, err := models.CountAllReactions(ctx, database, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	r, err := models.GetReaction(ctx, database, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "r1", r.ID)
	assert.Equal(t, models.ReactionUnlike, r.Kind)
}

func TestOwnerAggregates(t *testing.T) {
	ctx := context.Background()
	database := openTest(t)
	now := time.Now().UTC()

	for _, p := range []models.Post{
		{ID: "p1", UserID: "owner", Title: "a", Description: "a", CreatedAt: now, UpdatedAt: now},
		{ID: "p2", UserID: "owner", Title: "b", Description: "b", CreatedAt: now.Add(time.Second), UpdatedAt: now},
		{ID: "p3", UserID: "other", Title: "c", Description: "c", CreatedAt: now, UpdatedAt: now},
	} {
		require.NoError(t, models.CreatePost(ctx, database, &p))
	}
	require.NoError(t, models.CreateComment(ctx, database, &models.Comment{ID: "c1", PostID: "p1", UserID: "x", Body: "hi", CreatedAt: now}))
	require.NoError(t, models.CreateComment(ctx, database, &models.Comment{ID: "c2", PostID: "p3", UserID: "x", Body: "hi", CreatedAt: now}))
	for i, u := range []string{"x", "y"} {
		kind := models.ReactionLike
		if i == 1 {
			kind = models.ReactionUnlike
		}
		require.NoError(t, models.UpsertReaction(ctx, database, &models.Reaction{ID: "r" + u, PostID: "p1", UserID: u, Kind: kind, CreatedAt: now, UpdatedAt: now}))
	}

	posts, err := models.ListPostsByUser(ctx, database, "owner")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p2", posts[0].ID)

	comments, err := models.CommentsForOwnerPosts(ctx, database, "owner")
	require.NoError(t, err)
	assert.Len(t, comments["p1"], 1)
	assert.Empty(t, comments["p2"])
	assert.NotContains(t, comments, "p3")

	likes, err := models.LikeCountsForOwnerPosts(ctx, database, "owner")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"p1": 1}, likes)
}

func TestDeletePostOwnedBy(t *testing.T) {
	ctx := context.Background()
	database := openTest(t)
	now := time.Now().UTC()
	require.NoError(t, models.CreatePost(ctx, database, &models.Post{ID: "p1", UserID: "owner", Title: "t", Description: "d", CreatedAt: now, UpdatedAt: now}))

	n, err := models.DeletePostOwnedBy(ctx, database, "p1", "intruder")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	n, err = models.DeletePostOwnedBy(ctx, database, "p1", "owner")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = models.GetPost(ctx, database, "p1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	database := openTest(t)

	require.NoError(t, models.CreateSession(ctx, database, "u1", "s1", time.Now().Add(time.Hour)))
	s, err := models.GetSession(ctx, database, "s1")
	require.NoError(t, err)
	assert.True(t, s.Active(time.Now()))

	require.NoError(t, models.RevokeSession(ctx, database, "s1"))
	s, err = models.GetSession(ctx, database, "s1")
	require.NoError(t, err)
	assert.False(t, s.Active(time.Now()))
}
