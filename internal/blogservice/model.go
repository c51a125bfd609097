package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrDuplicatePostname = errors.New("duplicate postname")
	ErrUserNotFound      = errors.New("user not found")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

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

func (m *BlogModel) getUserIDByUsername(ctx context.Context, username string) (int, error) {
	query := `
		SELECT id
		FROM users
		WHERE username = $1`

	var id int
	err := m.db.QueryRowContext(ctx, query, username).Scan(&id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, ErrUserNotFound
		default:
			return 0, err
		}
	}

	return id, nil
}

func (m *BlogModel) insert(ctx context.Context, b *Blog) error {
	query := `
		INSERT INTO blogs (postname, title, description, image_url, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, version`

	args := []any{b.Postname, b.Title, b.Description, b.ImageURL, b.UserID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt, &b.Version)
	if err != nil {
		switch {
		case UniqueViolation(err, "blogs_postname_key"):
			return ErrDuplicatePostname
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) getBlogByPostname(ctx context.Context, postname string) (*Blog, error) {
	query := `
		SELECT b.id, b.postname, b.title, b.description, b.image_url, b.user_id, u.username, b.created_at, b.updated_at, b.version
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.postname = $1`

	var blog Blog
	err := m.db.QueryRowContext(ctx, query, postname).Scan(&blog.ID, &blog.Postname, &blog.Title, &blog.Description, &blog.ImageURL, &blog.UserID, &blog.Username, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	likes, err := m.getLikes(ctx, blog.ID)
	if err != nil {
		return nil, err
	}
	blog.Likes = likes

	return &blog, nil
}

// getBlogs returns all blog posts with their liker sets, newest first.
func (m *BlogModel) getBlogs(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT b.id, b.postname, b.title, b.description, b.image_url, b.user_id, u.username, b.created_at, b.updated_at, b.version
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		ORDER BY b.created_at DESC, b.id DESC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []Blog
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Postname, &blog.Title, &blog.Description, &blog.ImageURL, &blog.UserID, &blog.Username, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range blogs {
		likes, err := m.getLikes(ctx, blogs[i].ID)
		if err != nil {
			return nil, err
		}
		blogs[i].Likes = likes
	}

	return blogs, nil
}

func (m *BlogModel) updateBlog(ctx context.Context, postname string, title, description *string) (*Blog, error) {
	query := `
		UPDATE blogs
		SET title = COALESCE($1, title), description = COALESCE($2, description), updated_at = NOW(), version = version + 1
		WHERE postname = $3
		RETURNING id`

	var id int
	err := m.db.QueryRowContext(ctx, query, title, description, postname).Scan(&id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return m.getBlogByPostname(ctx, postname)
}

func (m *BlogModel) deleteBlog(ctx context.Context, blogID, userID int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1 AND user_id = $2`

	res, err := m.db.ExecContext(ctx, query, blogID, userID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// insertLike adds the user to the liker set. Liking a post twice is a no-op.
func (m *BlogModel) insertLike(ctx context.Context, blogID, userID int) error {
	query := `
		INSERT INTO blog_likes (blog_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	_, err := m.db.ExecContext(ctx, query, blogID, userID)
	return err
}

// deleteLike removes the user from the liker set. Removing an absent like is
// a no-op.
func (m *BlogModel) deleteLike(ctx context.Context, blogID, userID int) error {
	query := `
		DELETE FROM blog_likes
		WHERE blog_id = $1 AND user_id = $2`

	_, err := m.db.ExecContext(ctx, query, blogID, userID)
	return err
}

func (m *BlogModel) getLikes(ctx context.Context, blogID int) ([]string, error) {
	query := `
		SELECT u.username
		FROM blog_likes l
		JOIN users u ON u.id = l.user_id
		WHERE l.blog_id = $1
		ORDER BY l.created_at ASC`

	rows, err := m.db.QueryContext(ctx, query, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := []string{}
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, err
		}
		likes = append(likes, username)
	}

	return likes, rows.Err()
}

func (m *BlogModel) countLikes(ctx context.Context, blogID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM blog_likes
		WHERE blog_id = $1`

	var count int
	err := m.db.QueryRowContext(ctx, query, blogID).Scan(&count)
	return count, err
}
