package userservice

import (
	"context"
	"errors"

	"github.com/lib/pq"
)

var ErrAlreadyFollowing = errors.New("already following user")

// UniqueViolation reports whether the error is a unique constraint violation
// on the named constraint.
func UniqueViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

// insertFollow records a follow edge. A single row insert keeps the two
// membership views consistent without a client-side transaction.
func (m *UserModel) insertFollow(ctx context.Context, followerID, followedID int) error {
	query := `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)`

	_, err := m.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		switch {
		case UniqueViolation(err, "follows_pkey"):
			return ErrAlreadyFollowing
		default:
			return err
		}
	}

	return nil
}

// deleteFollow removes the matching follow edge. Removing a non-existent
// edge is a no-op.
func (m *UserModel) deleteFollow(ctx context.Context, followerID, followedID int) error {
	query := `
		DELETE FROM follows
		WHERE follower_id = $1 AND followed_id = $2`

	_, err := m.db.ExecContext(ctx, query, followerID, followedID)
	return err
}

func (m *UserModel) getFollowers(ctx context.Context, userID int) ([]string, error) {
	query := `
		SELECT u.username
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followed_id = $1
		ORDER BY f.created_at ASC`

	return m.collectStrings(ctx, query, userID)
}

func (m *UserModel) getFollowings(ctx context.Context, userID int) ([]string, error) {
	query := `
		SELECT u.username
		FROM follows f
		JOIN users u ON u.id = f.followed_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at ASC`

	return m.collectStrings(ctx, query, userID)
}
