package userservice

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrNotFound          = errors.New("user not found")
)

func newUserModel(db *sql.DB) *UserModel {
	return &UserModel{db: db}
}

func (m *UserModel) insertUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, name, email, password, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, version`

	args := []any{
		u.Username,
		u.Name,
		u.Email,
		u.Password.hash,
		u.AvatarURL,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case err.Error() == "pq: duplicate key value violates unique constraint \"users_username_key\"":
			return ErrDuplicateUsername
		case err.Error() == "pq: duplicate key value violates unique constraint \"users_email_key\"":
			return ErrDuplicateEmail
		default:
			return err
		}
	}
	return nil
}

func (m *UserModel) getUserByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, username, name, email, password, avatar_url, refresh_token, created_at, updated_at, version
		FROM users
		WHERE id = $1`

	return m.scanUser(m.db.QueryRowContext(ctx, query, id))
}

func (m *UserModel) getUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, name, email, password, avatar_url, refresh_token, created_at, updated_at, version
		FROM users
		WHERE username = $1`

	return m.scanUser(m.db.QueryRowContext(ctx, query, username))
}

func (m *UserModel) getUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, username, name, email, password, avatar_url, refresh_token, created_at, updated_at, version
		FROM users
		WHERE email = $1`

	return m.scanUser(m.db.QueryRowContext(ctx, query, email))
}

func (m *UserModel) scanUser(row *sql.Row) (*User, error) {
	var u User

	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Password.hash, &u.AvatarURL, &u.RefreshToken, &u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *UserModel) getAllUsers(ctx context.Context) ([]User, error) {
	query := `
		SELECT id, username, name, email, password, avatar_url, refresh_token, created_at, updated_at, version
		FROM users
		ORDER BY created_at ASC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Password.hash, &u.AvatarURL, &u.RefreshToken, &u.CreatedAt, &u.UpdatedAt, &u.Version)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// setRefreshToken persists the refresh token on the user record. A nil token
// clears it.
func (m *UserModel) setRefreshToken(ctx context.Context, email string, token *string) error {
	query := `
		UPDATE users
		SET refresh_token = $1, updated_at = NOW(), version = version + 1
		WHERE email = $2`

	_, err := m.db.ExecContext(ctx, query, token, email)
	return err
}

func (m *UserModel) updateName(ctx context.Context, email, name string) (*User, error) {
	query := `
		UPDATE users
		SET name = $1, updated_at = NOW(), version = version + 1
		WHERE email = $2
		RETURNING id, username, name, email, password, avatar_url, refresh_token, created_at, updated_at, version`

	return m.scanUser(m.db.QueryRowContext(ctx, query, name, email))
}

func (m *UserModel) updatePassword(ctx context.Context, pwd Password, id int, version int) error {
	query := `
		UPDATE users
		SET password = $1, updated_at = NOW(), version = version + 1
		WHERE id = $2 AND version = $3`

	res, err := m.db.ExecContext(ctx, query, pwd.hash, id, version)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (m *UserModel) deleteUser(ctx context.Context, id int) error {
	query := `
		DELETE FROM users
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// attachLists fills the derived blogs, followers and followings lists of the
// user record.
func (m *UserModel) attachLists(ctx context.Context, u *User) error {
	blogs, err := m.getBlogPostnames(ctx, u.ID)
	if err != nil {
		return err
	}
	u.Blogs = blogs

	followers, err := m.getFollowers(ctx, u.ID)
	if err != nil {
		return err
	}
	u.Followers = followers

	followings, err := m.getFollowings(ctx, u.ID)
	if err != nil {
		return err
	}
	u.Followings = followings

	return nil
}

func (m *UserModel) getBlogPostnames(ctx context.Context, userID int) ([]string, error) {
	query := `
		SELECT postname
		FROM blogs
		WHERE user_id = $1
		ORDER BY created_at ASC`

	return m.collectStrings(ctx, query, userID)
}

func (m *UserModel) collectStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, rows.Err()
}
