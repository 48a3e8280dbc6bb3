package models

import (
	"context"
	"database/sql"
	"errors"
)

// UpsertReaction stores r as the single reaction of r.UserID on r.PostID.
// An existing row keeps its id and creation time; only a changed kind
// touches it.
func UpsertReaction(ctx context.Context, db DBTX, r *Reaction) error {
	_, err := db.ExecContext(ctx, `INSERT INTO reactions (id, post_id, user_id, kind, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(user_id, post_id) DO UPDATE SET kind = excluded.kind, updated_at = excluded.updated_at
        WHERE reactions.kind <> excluded.kind`,
		r.ID, r.PostID, r.UserID, string(r.Kind), r.CreatedAt, r.UpdatedAt)
	return err
}

func GetReaction(ctx context.Context, db DBTX, userID, postID string) (*Reaction, error) {
	row := db.QueryRowContext(ctx, `SELECT id, post_id, user_id, kind, created_at, updated_at FROM reactions WHERE user_id = ? AND post_id = ?`, userID, postID)
	var r Reaction
	var kind string
	err := row.Scan(&r.ID, &r.PostID, &r.UserID, &kind, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	r.Kind = ReactionKind(kind)
	return &r, nil
}

func CountReactions(ctx context.Context, db DBTX, postID string, kind ReactionKind) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reactions WHERE post_id = ? AND kind = ?`, postID, string(kind)).Scan(&n)
	return n, err
}

// CountAllReactions counts reaction rows of any kind on postID.
func CountAllReactions(ctx context.Context, db DBTX, postID string) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reactions WHERE post_id = ?`, postID).Scan(&n)
	return n, err
}

// LikeCountsForOwnerPosts groups like reactions on userID's posts by post id.
// Posts without likes are absent from the map.
func LikeCountsForOwnerPosts(ctx context.Context, db DBTX, userID string) (map[string]int, error) {
	rows, err := db.QueryContext(ctx, `SELECT r.post_id, COUNT(*)
		FROM reactions r JOIN posts p ON p.id = r.post_id
		WHERE p.user_id = ? AND r.kind = ?
		GROUP BY r.post_id`, userID, string(ReactionLike))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := map[string]int{}
	for rows.Next() {
		var postID string
		var n int
		if err := rows.Scan(&postID, &n); err != nil {
			return nil, err
		}
		counts[postID] = n
	}
	return counts, rows.Err()
}

func DeleteReactionsForPost(ctx context.Context, db DBTX, postID string) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM reactions WHERE post_id = ?`, postID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
