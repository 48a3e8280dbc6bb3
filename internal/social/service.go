// Package social holds the social-graph and post-aggregation engine: follow
// relationships, the post lifecycle with its delete cascade, reactions, and
// the read-side aggregation over posts.
package social

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"socialnet/internal/auth"
)

// Policy holds product decisions the reference behavior left open.
type Policy struct {
	// RejectSelfFollow refuses follow/unfollow where actor and target match.
	RejectSelfFollow bool
	// RequireReactionTarget refuses reactions on posts that do not exist.
	RequireReactionTarget bool
}

// PasswordHasher hashes and checks stored credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(hash, password string) bool
}

// TokenIssuer issues and verifies bearer credentials.
type TokenIssuer interface {
	Issue(userID string) (*auth.Issued, error)
	Verify(token string) (*auth.Claims, error)
}

// Service bundles the managers over one shared store handle.
type Service struct {
	Accounts      *Accounts
	Relationships *Relationships
	Posts         *Posts
	Reactions     *Reactions
	Reader        *Reader
}

func New(db *sql.DB, logger *zap.Logger, hasher PasswordHasher, tokens TokenIssuer, policy Policy) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		Accounts:      &Accounts{db: db, log: logger.Named("accounts"), hasher: hasher, tokens: tokens, now: time.Now},
		Relationships: &Relationships{db: db, log: logger.Named("relationships"), policy: policy},
		Posts:         &Posts{db: db, log: logger.Named("posts"), now: utcNow},
		Reactions:     &Reactions{db: db, log: logger.Named("reactions"), policy: policy, now: utcNow},
		Reader:        &Reader{db: db, log: logger.Named("reader"), now: utcNow},
	}
}

func utcNow() time.Time { return time.Now().UTC() }
