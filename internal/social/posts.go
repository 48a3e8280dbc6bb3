package social

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"socialnet/internal/db"
	"socialnet/internal/models"
)

// Posts creates posts and runs the delete cascade.
type Posts struct {
	db  *sql.DB
	log *zap.Logger
	now func() time.Time
}

// CreatePost persists a post owned by owner.
func (p *Posts) CreatePost(ctx context.Context, owner *models.User, title, description string) (*models.Post, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return nil, invalidArgument("Title, descriptions field are required")
	}
	now := p.now()
	post := &models.Post{
		ID:          uuid.NewString(),
		UserID:      owner.ID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := models.CreatePost(ctx, p.db, post); err != nil {
		return nil, internal("create post", err)
	}
	p.log.Info("post created", zap.String("post", post.ID), zap.String("owner", owner.ID))
	return post, nil
}

// DeletePost removes actor's post together with its comments and reactions
// in one transaction. A post that is missing and a post owned by someone
// else both fail NotFound.
func (p *Posts) DeletePost(ctx context.Context, actor *models.User, postID string) error {
	err := db.WithTx(ctx, p.db, func(tx *sql.Tx) error {
		n, err := models.DeletePostOwnedBy(ctx, tx, postID, actor.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return notFound("Post not found or not deleted")
		}

		comments, err := models.DeleteCommentsForPost(ctx, tx, postID)
		if err != nil {
			return err
		}
		if comments == 0 {
			p.log.Warn("no comments found or deleted for post", zap.String("post", postID))
		}

		reactions, err := models.DeleteReactionsForPost(ctx, tx, postID)
		if err != nil {
			return err
		}
		if reactions == 0 {
			p.log.Warn("no reactions found or deleted for post", zap.String("post", postID))
		}
		return nil
	})
	if err != nil {
		return internal("delete post", err)
	}
	p.log.Info("post deleted", zap.String("post", postID), zap.String("owner", actor.ID))
	return nil
}
