package models

import (
	"context"
	"database/sql"
	"errors"
)

func CreatePost(ctx context.Context, db DBTX, p *Post) error {
	_, err := db.ExecContext(ctx, `INSERT INTO posts (id, user_id, title, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Title, p.Description, p.CreatedAt, p.UpdatedAt)
	return err
}

func GetPost(ctx context.Context, db DBTX, id string) (*Post, error) {
	row := db.QueryRowContext(ctx, `SELECT id, user_id, title, description, created_at, updated_at FROM posts WHERE id = ?`, id)
	var p Post
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func PostExists(ctx context.Context, db DBTX, id string) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM posts WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// ListPostsByUser returns the user's posts, newest first.
func ListPostsByUser(ctx context.Context, db DBTX, userID string) ([]Post, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, user_id, title, description, created_at, updated_at
		FROM posts WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	posts := []Post{}
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// DeletePostOwnedBy deletes the post only when userID owns it. Zero rows
// affected means the post is missing or belongs to someone else.
func DeletePostOwnedBy(ctx context.Context, db DBTX, postID, userID string) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM posts WHERE id = ? AND user_id = ?`, postID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
