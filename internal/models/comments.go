package models

import (
	"context"
)

func CreateComment(ctx context.Context, db DBTX, c *Comment) error {
	_, err := db.ExecContext(ctx, `INSERT INTO comments (id, post_id, user_id, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.PostID, c.UserID, c.Body, c.CreatedAt)
	return err
}

func ListComments(ctx context.Context, db DBTX, postID string) ([]Comment, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, post_id, user_id, body, created_at FROM comments WHERE post_id = ? ORDER BY created_at, id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cs := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return cs, rows.Err()
}

func CountComments(ctx context.Context, db DBTX, postID string) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = ?`, postID).Scan(&n)
	return n, err
}

// CommentsForOwnerPosts returns every comment on posts owned by userID,
// keyed by post id.
func CommentsForOwnerPosts(ctx context.Context, db DBTX, userID string) (map[string][]Comment, error) {
	rows, err := db.QueryContext(ctx, `SELECT c.id, c.post_id, c.user_id, c.body, c.created_at
		FROM comments c JOIN posts p ON p.id = c.post_id
		WHERE p.user_id = ? ORDER BY c.created_at, c.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	byPost := map[string][]Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		byPost[c.PostID] = append(byPost[c.PostID], c)
	}
	return byPost, rows.Err()
}

func DeleteCommentsForPost(ctx context.Context, db DBTX, postID string) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM comments WHERE post_id = ?`, postID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
