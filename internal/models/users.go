package models

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrDuplicateFollow = errors.New("already following")
)

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func CreateUser(ctx context.Context, db DBTX, u *User) error {
	_, err := db.ExecContext(ctx, `INSERT INTO users (id, name, email, password_hash) VALUES (?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func GetUserByEmail(ctx context.Context, db DBTX, email string) (*User, error) {
	return scanUser(db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`, email))
}

func GetUserByID(ctx context.Context, db DBTX, id string) (*User, error) {
	return scanUser(db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`, id))
}

func UserExists(ctx context.Context, db DBTX, id string) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// InsertFollow records that follower follows followee.
func InsertFollow(ctx context.Context, db DBTX, followerID, followeeID string) error {
	_, err := db.ExecContext(ctx, `INSERT INTO follows (follower_id, followee_id) VALUES (?, ?)`, followerID, followeeID)
	if isUniqueViolation(err) {
		return ErrDuplicateFollow
	}
	return err
}

// DeleteFollow removes the follow edge and reports how many rows went away.
func DeleteFollow(ctx context.Context, db DBTX, followerID, followeeID string) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`, followerID, followeeID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func IsFollowing(ctx context.Context, db DBTX, followerID, followeeID string) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM follows WHERE follower_id = ? AND followee_id = ?`, followerID, followeeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func listIDs(ctx context.Context, db DBTX, query, id string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		ids = append(ids, v)
	}
	return ids, rows.Err()
}

// ListFollowers returns the ids of users following userID.
func ListFollowers(ctx context.Context, db DBTX, userID string) ([]string, error) {
	return listIDs(ctx, db, `SELECT follower_id FROM follows WHERE followee_id = ? ORDER BY created_at, follower_id`, userID)
}

// ListFollowing returns the ids of users userID follows.
func ListFollowing(ctx context.Context, db DBTX, userID string) ([]string, error) {
	return listIDs(ctx, db, `SELECT followee_id FROM follows WHERE follower_id = ? ORDER BY created_at, followee_id`, userID)
}

func CountFollows(ctx context.Context, db DBTX, userID string) (followers, following int, err error) {
	err = db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM follows WHERE followee_id = ?),
		(SELECT COUNT(*) FROM follows WHERE follower_id = ?)`, userID, userID).Scan(&followers, &following)
	return followers, following, err
}
