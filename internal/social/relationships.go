package social

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"socialnet/internal/db"
	"socialnet/internal/models"
)

// Relationships mutates the follow graph. Each follow is one edge row, so
// actor.following and target.followers change together by construction.
type Relationships struct {
	db     *sql.DB
	log    *zap.Logger
	policy Policy
}

func (r *Relationships) checkTarget(ctx context.Context, tx *sql.Tx, actor *models.User, targetID string) error {
	if r.policy.RejectSelfFollow && actor.ID == targetID {
		return invalidArgument("Cannot follow yourself")
	}
	ok, err := models.UserExists(ctx, tx, targetID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("Invalid User")
	}
	return nil
}

// Follow makes actor follow targetID.
func (r *Relationships) Follow(ctx context.Context, actor *models.User, targetID string) error {
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := r.checkTarget(ctx, tx, actor, targetID); err != nil {
			return err
		}
		already, err := models.IsFollowing(ctx, tx, actor.ID, targetID)
		if err != nil {
			return err
		}
		if already {
			return conflict("User already followed")
		}
		err = models.InsertFollow(ctx, tx, actor.ID, targetID)
		if errors.Is(err, models.ErrDuplicateFollow) {
			return conflict("User already followed")
		}
		return err
	})
	if err != nil {
		return internal("follow user", err)
	}
	r.log.Debug("followed", zap.String("actor", actor.ID), zap.String("target", targetID))
	return nil
}

// Unfollow removes the edge from actor to targetID.
func (r *Relationships) Unfollow(ctx context.Context, actor *models.User, targetID string) error {
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := r.checkTarget(ctx, tx, actor, targetID); err != nil {
			return err
		}
		n, err := models.DeleteFollow(ctx, tx, actor.ID, targetID)
		if err != nil {
			return err
		}
		if n == 0 {
			return conflict("User is already unfollowed")
		}
		return nil
	})
	if err != nil {
		return internal("unfollow user", err)
	}
	r.log.Debug("unfollowed", zap.String("actor", actor.ID), zap.String("target", targetID))
	return nil
}

// Followers lists the ids of users following userID.
func (r *Relationships) Followers(ctx context.Context, userID string) ([]string, error) {
	ids, err := models.ListFollowers(ctx, r.db, userID)
	return ids, internal("list followers", err)
}

// Following lists the ids of users userID follows.
func (r *Relationships) Following(ctx context.Context, userID string) ([]string, error) {
	ids, err := models.ListFollowing(ctx, r.db, userID)
	return ids, internal("list following", err)
}
