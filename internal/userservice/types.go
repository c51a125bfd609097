package userservice

import (
	"context"
	"database/sql"
	"time"

	"github.com/blogverse/blogverse/internal/common"
)

type UserService struct {
	m      *UserModel
	mb     common.MessageProducer
	media  MediaUploader
	tokens *TokenIssuer
}

type UserModel struct {
	db *sql.DB
}

// MediaUploader maps a local file path to a durable hosted URL.
type MediaUploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     Password  `json:"-"`
	AvatarURL    string    `json:"avatar_url"`
	RefreshToken *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Version      int       `json:"version"`

	// Blogs holds the postnames of the user's blog posts. Followers and
	// Followings hold usernames.
	Blogs      []string `json:"blogs"`
	Followers  []string `json:"followers"`
	Followings []string `json:"followings"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// AuthToken carries the signed access and refresh tokens returned on login.
type AuthToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
