package social

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"socialnet/internal/db"
	"socialnet/internal/models"
)

// OwnedPost is a post with its owner's public profile in place of the id.
type OwnedPost struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	User        models.PublicUser `json:"user"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// PostDetail is the single-post view with derived counts.
type PostDetail struct {
	Post     OwnedPost `json:"post"`
	Likes    int       `json:"likes"`
	Comments int       `json:"comments"`
}

// PostSummary is one entry of an owner's post listing.
type PostSummary struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Comments    []models.Comment `json:"comments"`
	Likes       int              `json:"likes"`
}

// Reader serves the aggregated post views and adds comments. Counts are
// read outside any transaction and may trail concurrent writes.
type Reader struct {
	db  *sql.DB
	log *zap.Logger
	now func() time.Time
}

// GetPost returns the post, its owner's name, and its comment and like counts.
func (r *Reader) GetPost(ctx context.Context, postID string) (*PostDetail, error) {
	post, err := models.GetPost(ctx, r.db, postID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, notFound("Post not found")
	}
	if err != nil {
		return nil, internal("get post", err)
	}

	owner := models.PublicUser{ID: post.UserID}
	u, err := models.GetUserByID(ctx, r.db, post.UserID)
	switch {
	case err == nil:
		owner = u.Public()
	case !errors.Is(err, models.ErrNotFound):
		return nil, internal("get post owner", err)
	}

	comments, err := models.CountComments(ctx, r.db, postID)
	if err != nil {
		return nil, internal("count comments", err)
	}
	likes, err := models.CountReactions(ctx, r.db, postID, models.ReactionLike)
	if err != nil {
		return nil, internal("count likes", err)
	}

	return &PostDetail{
		Post: OwnedPost{
			ID:          post.ID,
			Title:       post.Title,
			Description: post.Description,
			User:        owner,
			CreatedAt:   post.CreatedAt,
			UpdatedAt:   post.UpdatedAt,
		},
		Likes:    likes,
		Comments: comments,
	}, nil
}

// GetPostsByOwner lists every post of ownerID with its comments and like count.
func (r *Reader) GetPostsByOwner(ctx context.Context, ownerID string) ([]PostSummary, error) {
	posts, err := models.ListPostsByUser(ctx, r.db, ownerID)
	if err != nil {
		return nil, internal("list posts", err)
	}
	comments, err := models.CommentsForOwnerPosts(ctx, r.db, ownerID)
	if err != nil {
		return nil, internal("list comments", err)
	}
	likes, err := models.LikeCountsForOwnerPosts(ctx, r.db, ownerID)
	if err != nil {
		return nil, internal("count likes", err)
	}

	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		cs := comments[p.ID]
		if cs == nil {
			cs = []models.Comment{}
		}
		out = append(out, PostSummary{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
			Comments:    cs,
			Likes:       likes[p.ID],
		})
	}
	return out, nil
}

// CreateComment adds a comment by actor to postID and returns its id.
func (r *Reader) CreateComment(ctx context.Context, actor *models.User, postID, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", invalidArgument("Comment text is required")
	}
	comment := &models.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    actor.ID,
		Body:      text,
		CreatedAt: r.now(),
	}
	// The existence check and insert share a transaction so a concurrent
	// delete cannot leave the comment orphaned.
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := models.PostExists(ctx, tx, postID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("Post not found")
		}
		return models.CreateComment(ctx, tx, comment)
	})
	if err != nil {
		return "", internal("create comment", err)
	}
	r.log.Debug("comment created", zap.String("post", postID), zap.String("comment", comment.ID))
	return comment.ID, nil
}
