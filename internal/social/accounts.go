package social

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"socialnet/internal/auth"
	"socialnet/internal/models"
)

// Accounts registers users and turns credentials into authenticated users.
type Accounts struct {
	db     *sql.DB
	log    *zap.Logger
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
}

// Profile is the caller's own view of their account.
type Profile struct {
	Name           string `json:"name"`
	FollowersCount int    `json:"followersCount"`
	FollowingCount int    `json:"followingCount"`
}

// Register creates a user with a bcrypt-hashed password.
func (a *Accounts) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, invalidArgument("Email and password are required")
	}
	hash, err := a.hasher.Hash(password)
	if err != nil {
		return nil, internal("hash password", err)
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
	}
	err = models.CreateUser(ctx, a.db, u)
	if errors.Is(err, models.ErrDuplicateEmail) {
		return nil, conflict("User with this email already exists")
	}
	if err != nil {
		return nil, internal("create user", err)
	}
	a.log.Info("user registered", zap.String("user", u.ID))
	return u, nil
}

// Authenticate checks email and password and issues a credential.
func (a *Accounts) Authenticate(ctx context.Context, email, password string) (*auth.Issued, error) {
	u, err := models.GetUserByEmail(ctx, a.db, strings.TrimSpace(email))
	if errors.Is(err, models.ErrNotFound) {
		return nil, unauthorized("Invalid credentials")
	}
	if err != nil {
		return nil, internal("find user", err)
	}
	if !a.hasher.Matches(u.PasswordHash, password) {
		return nil, unauthorized("Invalid credentials")
	}

	issued, err := a.tokens.Issue(u.ID)
	if err != nil {
		return nil, internal("issue token", err)
	}
	if err := models.CreateSession(ctx, a.db, u.ID, issued.SessionID, issued.ExpiresAt); err != nil {
		return nil, internal("create session", err)
	}
	a.log.Info("user authenticated", zap.String("user", u.ID))
	return issued, nil
}

// Resolve maps a bearer credential to its user. A credential for a user
// that no longer exists is Forbidden, any other failure Unauthorized.
func (a *Accounts) Resolve(ctx context.Context, token string) (*models.User, *auth.Claims, error) {
	if token == "" {
		return nil, nil, unauthorized("Unauthorized")
	}
	claims, err := a.tokens.Verify(token)
	if err != nil {
		return nil, nil, unauthorized("Unauthorized")
	}

	sess, err := models.GetSession(ctx, a.db, claims.ID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil, unauthorized("Unauthorized")
	}
	if err != nil {
		return nil, nil, internal("get session", err)
	}
	if !sess.Active(a.now()) || sess.UserID != claims.UserID {
		return nil, nil, unauthorized("Unauthorized")
	}

	u, err := models.GetUserByID(ctx, a.db, claims.UserID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil, forbidden("Forbidden")
	}
	if err != nil {
		return nil, nil, internal("get user", err)
	}
	return u, claims, nil
}

// Logout revokes the session behind claims.
func (a *Accounts) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := models.RevokeSession(ctx, a.db, claims.ID); err != nil {
		return internal("revoke session", err)
	}
	return nil
}

// Profile returns the user's name and follow counts.
func (a *Accounts) Profile(ctx context.Context, u *models.User) (*Profile, error) {
	followers, following, err := models.CountFollows(ctx, a.db, u.ID)
	if err != nil {
		return nil, internal("count follows", err)
	}
	return &Profile{Name: u.Name, FollowersCount: followers, FollowingCount: following}, nil
}
