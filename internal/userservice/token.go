package userservice

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenTime  time.Duration = 24 * time.Hour
	RefreshTokenTime time.Duration = 10 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs access and refresh JWTs bound to a user record.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type tokenClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	if accessTTL <= 0 {
		accessTTL = AccessTokenTime
	}
	if refreshTTL <= 0 {
		refreshTTL = RefreshTokenTime
	}

	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (t *TokenIssuer) sign(u *User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := tokenClaims{
		Username: u.Username,
		Email:    u.Email,
		Type:     tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Issue returns a new access/refresh token pair for the user.
func (t *TokenIssuer) Issue(u *User) (*AuthToken, error) {
	access, err := t.sign(u, "access", t.accessTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := t.sign(u, "refresh", t.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &AuthToken{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Parse verifies the token signature and expiry and returns the claims.
func (t *TokenIssuer) Parse(token string) (*tokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
