package userservice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blogverse/blogverse/internal/common"
)

func TestValidateUsername(t *testing.T) {
	testCases := []struct {
		name     string
		username string
		valid    bool
	}{
		{"valid", "alice42", true},
		{"empty", "", false},
		{"too short", "ab", false},
		{"too long", "abcdefghijklmnopqrstuvwxyz", false},
		{"invalid characters", "alice-42", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateUsername(v, tc.username)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestValidateEmail(t *testing.T) {
	testCases := []struct {
		name  string
		email string
		valid bool
	}{
		{"valid", "alice@example.com", true},
		{"empty", "", false},
		{"no domain", "alice@", false},
		{"no at sign", "alice.example.com", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateEmail(v, tc.email)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"valid", "Password123!", true},
		{"empty", "", false},
		{"too short", "short", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validatePassword(v, tc.password)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestPasswordSetAndCompare(t *testing.T) {
	var p Password

	err := p.set("Password123!")
	assert.NoError(t, err)

	ok, err := p.compare("Password123!")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.compare("WrongPassword1!")
	assert.NoError(t, err)
	assert.False(t, ok)
}
