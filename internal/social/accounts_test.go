package social_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/internal/social"
)

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, defaultPolicy)

	_, err := f.svc.Accounts.Register(ctx, "n", "", "pw")
	requireKind(t, social.KindInvalidArgument, err)
	_, err = f.svc.Accounts.Register(ctx, "n", "a@b.com", "")
	requireKind(t, social.KindInvalidArgument, err)

	u, err := f.svc.Accounts.Register(ctx, "n", "a@b.com", "pw")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", u.PasswordHash)

	_, err = f.svc.Accounts.Register(ctx, "n2", "a@b.com", "pw")
	requireKind(t, social.KindConflict, err)
}

func TestAuthenticateAndResolve(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, defaultPolicy)
	u := f.user(t, "alice")

	_, err := f.svc.Accounts.Authenticate(ctx, "alice@example.com", "wrong")
	requireKind(t, social.KindUnauthorized, err)
	_, err = f.svc.Accounts.Authenticate(ctx, "nobody@example.com", "pw-alice")
	requireKind(t, social.KindUnauthorized, err)

	issued, err := f.svc.Accounts.Authenticate(ctx, "alice@example.com", "pw-alice")
	require.NoError(t, err)

	got, claims, err := f.svc.Accounts.Resolve(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, issued.SessionID, claims.ID)

	_, _, err = f.svc.Accounts.Resolve(ctx, "")
	requireKind(t, social.KindUnauthorized, err)
	_, _, err = f.svc.Accounts.Resolve(ctx, "garbage")
	requireKind(t, social.KindUnauthorized, err)
}

func TestLogoutRevokesCredential(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, defaultPolicy)
	f.user(t, "alice")

	issued, err := f.svc.Accounts.Authenticate(ctx, "alice@example.com", "pw-alice")
	require.NoError(t, err)
	_, claims, err := f.svc.Accounts.Resolve(ctx, issued.Token)
	require.NoError(t, err)

	require.NoError(t, f.svc.Accounts.Logout(ctx, claims))

	_, _, err = f.svc.Accounts.Resolve(ctx, issued.Token)
	requireKind(t, social.KindUnauthorized, err)
}

func TestResolveDeletedUserIsForbidden(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, defaultPolicy)
	u := f.user(t, "alice")

	issued, err := f.svc.Accounts.Authenticate(ctx, "alice@example.com", "pw-alice")
	require.NoError(t, err)
	_, err = f.db.Exec(`DELETE FROM users WHERE id = ?`, u.ID)
	require.NoError(t, err)

	_, _, err = f.svc.Accounts.Resolve(ctx, issued.Token)
	requireKind(t, social.KindForbidden, err)
}

func TestProfileCounts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, defaultPolicy)
	a, b, c := f.user(t, "a"), f.user(t, "b"), f.user(t, "c")

	require.NoError(t, f.svc.Relationships.Follow(ctx, a, b.ID))
	require.NoError(t, f.svc.Relationships.Follow(ctx, a, c.ID))
	require.NoError(t, f.svc.Relationships.Follow(ctx, c, a.ID))

	p, err := f.svc.Accounts.Profile(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, social.Profile{Name: "a", FollowersCount: 1, FollowingCount: 2}, *p)
}
