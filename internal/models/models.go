package models

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so every query can run
// standalone or as one step of a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the slice of a user that other callers may see.
type PublicUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name}
}

type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

type Post struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post"`
	UserID    string    `json:"user"`
	Body      string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReactionKind is the value of a user's reaction to a post.
type ReactionKind string

const (
	ReactionLike   ReactionKind = "like"
	ReactionUnlike ReactionKind = "unlike"
)

func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionUnlike
}

// Reaction is unique per (UserID, PostID).
type Reaction struct {
	ID        string       `json:"id"`
	PostID    string       `json:"post"`
	UserID    string       `json:"user"`
	Kind      ReactionKind `json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
