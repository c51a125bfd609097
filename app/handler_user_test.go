package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterUserHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	testCases := []struct {
		name       string
		fields     map[string]string
		fileField  string
		setup      func()
		wantStatus int
	}{
		{
			name: "valid request",
			fields: map[string]string{
				"name":     "Alice Example",
				"username": "alice",
				"email":    "alice@example.com",
				"password": "Password123!",
			},
			fileField:  "avatar",
			wantStatus: http.StatusOK,
		},
		{
			name: "missing name",
			fields: map[string]string{
				"username": "alice",
				"email":    "alice@example.com",
				"password": "Password123!",
			},
			fileField:  "avatar",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "missing avatar file",
			fields: map[string]string{
				"name":     "Alice Example",
				"username": "alice",
				"email":    "alice@example.com",
				"password": "Password123!",
			},
			fileField:  "",
			wantStatus: http.StatusBadRequest,
		},
		{
			// the missing-field code wins over the missing-file code
			name: "missing name and avatar",
			fields: map[string]string{
				"username": "alice",
				"email":    "alice@example.com",
				"password": "Password123!",
			},
			fileField:  "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			// the duplicate code wins over the missing-file code
			name: "duplicate username without avatar",
			fields: map[string]string{
				"name":     "Other Alice",
				"username": "alice",
				"email":    "other@example.com",
				"password": "Password123!",
			},
			fileField: "",
			setup: func() {
				ts.registerTestUser(t, "alice", "alice@example.com")
			},
			wantStatus: http.StatusPaymentRequired,
		},
		{
			name: "duplicate username",
			fields: map[string]string{
				"name":     "Other Alice",
				"username": "alice",
				"email":    "other@example.com",
				"password": "Password123!",
			},
			fileField: "avatar",
			setup: func() {
				ts.registerTestUser(t, "alice", "alice@example.com")
			},
			wantStatus: http.StatusPaymentRequired,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setup != nil {
				tc.setup()
			}

			status, _, env := ts.postForm(t, "/v1/users/register", tc.fields, tc.fileField)

			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantStatus, env.StatusCode)
			assert.Equal(t, tc.wantStatus < 400, env.Success)

			if tc.wantStatus >= 400 {
				var count int
				err := db.QueryRow("SELECT COUNT(*) FROM users WHERE email = $1", tc.fields["email"]).Scan(&count)
				assert.NoError(t, err)

				// the duplicate case keeps the original record untouched
				if tc.name == "duplicate username" {
					assert.Equal(t, 0, count)
				}
			}

			t.Cleanup(func() {
				_, err := db.Exec("DELETE FROM users")
				assert.NoError(t, err)
			})
		})
	}
}

func TestLoginUserHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())
	ts.registerTestUser(t, "alice", "alice@example.com")

	t.Run("valid login", func(t *testing.T) {
		status, headers, env := ts.postJSON(t, "/v1/users/login", map[string]any{
			"email":    "alice@example.com",
			"password": "Password123!",
		})

		assert.Equal(t, http.StatusOK, status)
		assert.True(t, env.Success)

		data, ok := env.Data.(map[string]any)
		assert.True(t, ok)
		assert.NotEmpty(t, data["access_token"])
		assert.NotEmpty(t, data["refresh_token"])

		// the persisted refresh token equals the returned one
		var stored string
		err := db.QueryRow("SELECT refresh_token FROM users WHERE email = $1", "alice@example.com").Scan(&stored)
		assert.NoError(t, err)
		assert.Equal(t, data["refresh_token"], stored)

		cookies := strings.Join(headers.Values("Set-Cookie"), "; ")
		assert.Contains(t, cookies, accessTokenCookie)
		assert.Contains(t, cookies, refreshTokenCookie)
	})

	t.Run("wrong password", func(t *testing.T) {
		status, _, env := ts.postJSON(t, "/v1/users/login", map[string]any{
			"email":    "alice@example.com",
			"password": "WrongPassword1!",
		})

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.False(t, env.Success)
	})

	t.Run("unknown user", func(t *testing.T) {
		status, _, _ := ts.postJSON(t, "/v1/users/login", map[string]any{
			"email":    "nobody@example.com",
			"password": "Password123!",
		})

		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestLogoutUserHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())
	ts.registerTestUser(t, "alice", "alice@example.com")

	status, _, _ := ts.postJSON(t, "/v1/users/login", map[string]any{
		"email":    "alice@example.com",
		"password": "Password123!",
	})
	assert.Equal(t, http.StatusOK, status)

	status, headers, env := ts.postJSON(t, "/v1/users/logout", map[string]any{
		"email": "alice@example.com",
	})

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	cookies := strings.Join(headers.Values("Set-Cookie"), "; ")
	assert.Contains(t, cookies, accessTokenCookie+"=;")
	assert.Contains(t, cookies, refreshTokenCookie+"=;")

	var stored *string
	err := db.QueryRow("SELECT refresh_token FROM users WHERE email = $1", "alice@example.com").Scan(&stored)
	assert.NoError(t, err)
	assert.Nil(t, stored)

	// unknown email is a silent no-op
	status, _, _ = ts.postJSON(t, "/v1/users/logout", map[string]any{
		"email": "nobody@example.com",
	})
	assert.Equal(t, http.StatusOK, status)
}

func TestUpdateUserNameHandler(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())
	ts.registerTestUser(t, "alice", "alice@example.com")

	t.Run("valid update", func(t *testing.T) {
		status, _, env := ts.putJSON(t, "/v1/users/name", map[string]any{
			"email": "alice@example.com",
			"name":  "Alice Renamed",
		})

		assert.Equal(t, http.StatusOK, status)

		data, ok := env.Data.(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, "Alice Renamed", data["name"])
	})

	t.Run("missing name", func(t *testing.T) {
		status, _, env := ts.putJSON(t, "/v1/users/name", map[string]any{
			"email": "alice@example.com",
		})

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "must be provided", env.Errors["name"])
	})
}

func TestUpdateUserPasswordHandler(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())
	ts.registerTestUser(t, "alice", "alice@example.com")

	t.Run("wrong old password", func(t *testing.T) {
		status, _, _ := ts.putJSON(t, "/v1/users/password", map[string]any{
			"email":       "alice@example.com",
			"oldPassword": "WrongPassword1!",
			"newPassword": "NewPassword123!",
		})

		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("valid update", func(t *testing.T) {
		status, _, _ := ts.putJSON(t, "/v1/users/password", map[string]any{
			"email":       "alice@example.com",
			"oldPassword": "Password123!",
			"newPassword": "NewPassword123!",
		})

		assert.Equal(t, http.StatusOK, status)

		// the new password is live
		status, _, _ = ts.postJSON(t, "/v1/users/login", map[string]any{
			"email":    "alice@example.com",
			"password": "NewPassword123!",
		})
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestDeleteUserHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())
	ts.registerTestUser(t, "alice", "alice@example.com")

	t.Run("wrong password", func(t *testing.T) {
		status, _, _ := ts.deleteJSON(t, "/v1/users", map[string]any{
			"email":    "alice@example.com",
			"password": "WrongPassword1!",
		})

		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("unknown user", func(t *testing.T) {
		status, _, _ := ts.deleteJSON(t, "/v1/users", map[string]any{
			"email":    "nobody@example.com",
			"password": "Password123!",
		})

		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("valid delete", func(t *testing.T) {
		status, _, _ := ts.deleteJSON(t, "/v1/users", map[string]any{
			"email":    "alice@example.com",
			"password": "Password123!",
		})

		assert.Equal(t, http.StatusOK, status)

		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
		assert.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestFollowUserHandler(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())
	ts.registerTestUser(t, "alice", "alice@example.com")
	ts.registerTestUser(t, "bob", "bob@example.com")

	t.Run("valid follow", func(t *testing.T) {
		status, _, env := ts.postJSON(t, "/v1/users/follow", map[string]any{
			"userToBeFollowed": "bob",
			"follower":         "alice",
		})

		assert.Equal(t, http.StatusOK, status)
		assert.True(t, env.Success)
	})

	t.Run("follow twice", func(t *testing.T) {
		status, _, _ := ts.postJSON(t, "/v1/users/follow", map[string]any{
			"userToBeFollowed": "bob",
			"follower":         "alice",
		})

		assert.Equal(t, http.StatusUnauthorized, status)

		// bob appears at most once in alice's followings
		status, _, env := ts.get(t, "/v1/users")
		assert.Equal(t, http.StatusOK, status)

		users, ok := env.Data.([]any)
		assert.True(t, ok)

		for _, u := range users {
			user := u.(map[string]any)
			if user["username"] == "alice" {
				assert.Equal(t, []any{"bob"}, user["followings"])
			}
			if user["username"] == "bob" {
				assert.Equal(t, []any{"alice"}, user["followers"])
			}
		}
	})

	t.Run("unknown target", func(t *testing.T) {
		status, _, _ := ts.postJSON(t, "/v1/users/follow", map[string]any{
			"userToBeFollowed": "charlie",
			"follower":         "alice",
		})

		assert.Equal(t, http.StatusPaymentRequired, status)
	})

	t.Run("missing target", func(t *testing.T) {
		status, _, _ := ts.postJSON(t, "/v1/users/follow", map[string]any{
			"follower": "alice",
		})

		assert.Equal(t, http.StatusPaymentRequired, status)
	})

	t.Run("unfollow", func(t *testing.T) {
		status, _, _ := ts.postJSON(t, "/v1/users/unfollow", map[string]any{
			"userToBeUnfollowed": "bob",
			"follower":           "alice",
		})

		assert.Equal(t, http.StatusOK, status)

		status, _, env := ts.get(t, "/v1/users")
		assert.Equal(t, http.StatusOK, status)

		users, ok := env.Data.([]any)
		assert.True(t, ok)

		for _, u := range users {
			user := u.(map[string]any)
			if user["username"] == "alice" {
				assert.Equal(t, []any{}, user["followings"])
			}
		}
	})
}

func TestGetAllUsersHandler(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	t.Run("no users", func(t *testing.T) {
		status, _, _ := ts.get(t, "/v1/users")
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("with users", func(t *testing.T) {
		ts.registerTestUser(t, "alice", "alice@example.com")

		status, _, env := ts.get(t, "/v1/users")
		assert.Equal(t, http.StatusOK, status)

		users, ok := env.Data.([]any)
		assert.True(t, ok)
		assert.Len(t, users, 1)

		user := users[0].(map[string]any)
		assert.Equal(t, "alice", user["username"])

		// the password hash is never serialized
		_, exists := user["password"]
		assert.False(t, exists)
	})
}
