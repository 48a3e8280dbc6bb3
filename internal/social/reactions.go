package social

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"socialnet/internal/db"
	"socialnet/internal/models"
)

// Reactions records like/unlike, one row per (user, post).
type Reactions struct {
	db     *sql.DB
	log    *zap.Logger
	policy Policy
	now    func() time.Time
}

// SetReaction upserts actor's reaction on postID. Repeating the same kind
// changes nothing.
func (r *Reactions) SetReaction(ctx context.Context, actor *models.User, postID string, kind models.ReactionKind) error {
	if !kind.Valid() {
		return invalidArgument("Unknown reaction type")
	}
	now := r.now()
	reaction := &models.Reaction{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    actor.ID,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if r.policy.RequireReactionTarget {
			ok, err := models.PostExists(ctx, tx, postID)
			if err != nil {
				return err
			}
			if !ok {
				return notFound("Post not found")
			}
		}
		return models.UpsertReaction(ctx, tx, reaction)
	})
	if err != nil {
		return internal("set reaction", err)
	}
	r.log.Debug("reaction set", zap.String("post", postID), zap.String("user", actor.ID), zap.String("kind", string(kind)))
	return nil
}
