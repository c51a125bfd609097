package blogservice

import (
	"context"
	"database/sql"
	"time"

	"github.com/blogverse/blogverse/internal/common"
)

type Blog struct {
	ID          int       `json:"id"`
	Postname    string    `json:"postname"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	UserID      int       `json:"user_id"`
	Username    string    `json:"username"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`

	// Likes holds the usernames that liked the post.
	Likes []string `json:"likes"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m     *BlogModel
	c     *common.Cache
	media MediaUploader
}

// MediaUploader maps a local file path to a durable hosted URL.
type MediaUploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}
