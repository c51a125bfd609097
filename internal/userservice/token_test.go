package userservice

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("testsecret", time.Hour, time.Hour)

	user := &User{
		ID:       42,
		Username: "alice",
		Email:    "alice@example.com",
	}

	token, err := issuer.Issue(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.NotEmpty(t, token.RefreshToken)
	assert.NotEqual(t, token.AccessToken, token.RefreshToken)

	claims, err := issuer.Parse(token.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, strconv.Itoa(user.ID), claims.Subject)

	claims, err = issuer.Parse(token.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, "refresh", claims.Type)
}

func TestTokenParseExpired(t *testing.T) {
	issuer := NewTokenIssuer("testsecret", time.Hour, time.Hour)

	user := &User{ID: 1, Username: "alice", Email: "alice@example.com"}

	token, err := issuer.sign(user, "access", -time.Minute)
	assert.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenParseWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("testsecret", time.Hour, time.Hour)
	other := NewTokenIssuer("othersecret", time.Hour, time.Hour)

	user := &User{ID: 1, Username: "alice", Email: "alice@example.com"}

	token, err := issuer.Issue(user)
	assert.NoError(t, err)

	_, err = other.Parse(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenParseGarbage(t *testing.T) {
	issuer := NewTokenIssuer("testsecret", time.Hour, time.Hour)

	_, err := issuer.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenIssuerDefaults(t *testing.T) {
	issuer := NewTokenIssuer("testsecret", 0, 0)

	assert.Equal(t, AccessTokenTime, issuer.accessTTL)
	assert.Equal(t, RefreshTokenTime, issuer.refreshTTL)
}
