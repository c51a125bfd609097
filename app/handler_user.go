package main

import (
	"errors"
	"net/http"

	"github.com/blogverse/blogverse/internal/common"
	"github.com/blogverse/blogverse/internal/userservice"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"

	// Non-standard codes kept from the original API contract: 401 for
	// missing registration fields, 402 for duplicate users and failed
	// follow lookups.
	statusMissingField  = http.StatusUnauthorized
	statusUserConflict  = http.StatusPaymentRequired
	statusFollowFailure = http.StatusPaymentRequired
)

func (app *application) getAllUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := app.userService.GetAllUsers(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeResponse(w, http.StatusOK, users, "Users fetched successfully")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// registerUserHandler accepts a multipart form with the user fields and an
// avatar file. The avatar is spooled to a temporary path and handed to the
// media upload service.
func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	avatarPath, err := app.saveMultipartFile(r, "avatar")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	req := userservice.RegisterUserRequest{
		Name:       r.FormValue("name"),
		Username:   r.FormValue("username"),
		Email:      r.FormValue("email"),
		Password:   r.FormValue("password"),
		AvatarPath: avatarPath,
	}

	user, err := app.userService.RegisterUser(r.Context(), req)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, statusMissingField, validationErr.Errors)
		case errors.Is(err, userservice.ErrDuplicateUsername):
			app.errorResponse(w, r, statusUserConflict, "this username is already taken")
		case errors.Is(err, userservice.ErrDuplicateEmail):
			app.errorResponse(w, r, statusUserConflict, "a user with this email address already exists")
		case errors.Is(err, userservice.ErrMissingFile):
			app.errorResponse(w, r, http.StatusBadRequest, "avatar file not found")
		case errors.Is(err, userservice.ErrUploadFailed):
			app.errorResponse(w, r, http.StatusBadRequest, "could not upload avatar image")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeResponse(w, http.StatusOK, user, "User created successfully")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type loginUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) loginUserHandler(w http.ResponseWriter, r *http.Request) {
	var input loginUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user, token, err := app.userService.LoginUser(r.Context(), input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrNotFound):
			app.invalidCredentialsErrorResponse(w, r)
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			app.invalidCredentialsErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, http.StatusUnauthorized, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.setTokenCookie(w, accessTokenCookie, token.AccessToken)
	app.setTokenCookie(w, refreshTokenCookie, token.RefreshToken)

	data := map[string]any{
		"user":          user,
		"access_token":  token.AccessToken,
		"refresh_token": token.RefreshToken,
	}

	err = app.writeResponse(w, http.StatusOK, data, "User logged in successfully")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type logoutUserRequest struct {
	Email string `json:"email"`
}

// logoutUserHandler clears the refresh token and both cookies. An unknown
// email is a silent no-op.
func (app *application) logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	var input logoutUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.userService.LogoutUser(r.Context(), input.Email)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.clearTokenCookie(w, accessTokenCookie)
	app.clearTokenCookie(w, refreshTokenCookie)

	err = app.writeResponse(w, http.StatusOK, nil, "User logged out")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type updateUserNameRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (app *application) updateUserNameHandler(w http.ResponseWriter, r *http.Request) {
	var input updateUserNameRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user, err := app.userService.UpdateUserName(r.Context(), input.Email, input.Name)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, statusMissingField, validationErr.Errors)
		case errors.Is(err, userservice.ErrNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeResponse(w, http.StatusOK, user, "Name updated successfully")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type updateUserPasswordRequest struct {
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (app *application) updateUserPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var input updateUserPasswordRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.userService.UpdateUserPassword(r.Context(), input.Email, input.OldPassword, input.NewPassword)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, statusMissingField, validationErr.Errors)
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			app.errorResponse(w, r, http.StatusBadRequest, "password incorrect")
		case errors.Is(err, userservice.ErrNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeResponse(w, http.StatusOK, nil, "Password updated successfully")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type deleteUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	var input deleteUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.userService.DeleteUser(r.Context(), input.Email, input.Password)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, http.StatusUnauthorized, validationErr.Errors)
		case errors.Is(err, userservice.ErrNotFound):
			// unknown account and wrong password are reported alike
			app.invalidCredentialsErrorResponse(w, r)
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			app.invalidCredentialsErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeResponse(w, http.StatusOK, nil, "User deleted successfully")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type followUserRequest struct {
	UserToBeFollowed string `json:"userToBeFollowed"`
	Follower         string `json:"follower"`
}

func (app *application) followUserHandler(w http.ResponseWriter, r *http.Request) {
	var input followUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.userService.FollowUser(r.Context(), input.UserToBeFollowed, input.Follower)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, statusFollowFailure, validationErr.Errors)
		case errors.Is(err, userservice.ErrNotFound):
			app.errorResponse(w, r, statusFollowFailure, "username did not match any user")
		case errors.Is(err, userservice.ErrAlreadyFollowing):
			app.errorResponse(w, r, http.StatusUnauthorized, "you already follow that user")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeResponse(w, http.StatusOK, nil, "User followed successfully")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type unfollowUserRequest struct {
	UserToBeUnfollowed string `json:"userToBeUnfollowed"`
	Follower           string `json:"follower"`
}

func (app *application) unfollowUserHandler(w http.ResponseWriter, r *http.Request) {
	var input unfollowUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.userService.UnfollowUser(r.Context(), input.UserToBeUnfollowed, input.Follower)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, statusFollowFailure, validationErr.Errors)
		case errors.Is(err, userservice.ErrNotFound):
			app.errorResponse(w, r, statusFollowFailure, "username did not match any user")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeResponse(w, http.StatusOK, nil, "User unfollowed successfully")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) setTokenCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (app *application) clearTokenCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
