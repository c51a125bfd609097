package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blogverse/blogverse/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("invalid authentication credentials")
	ErrUploadFailed          = errors.New("media upload failed")
	ErrMissingFile           = errors.New("no file provided")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, media MediaUploader, tokens *TokenIssuer) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		media:  media,
		tokens: tokens,
	}
}

// GetAllUsers returns every user record with its derived blog, follower and
// following lists. An empty table is reported as ErrNotFound.
func (s *UserService) GetAllUsers(ctx context.Context) ([]User, error) {
	users, err := s.m.getAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, ErrNotFound
	}

	for i := range users {
		if err := s.m.attachLists(ctx, &users[i]); err != nil {
			return nil, err
		}
	}

	return users, nil
}

type RegisterUserRequest struct {
	Name       string
	Username   string
	Email      string
	Password   string
	AvatarPath string
}

// RegisterUser creates a new user account. The avatar is uploaded to the
// media host before the record is created, and a user.registered event is
// published on success.
func (s *UserService) RegisterUser(ctx context.Context, req RegisterUserRequest) (*User, error) {
	v := common.NewValidator()
	validateName(v, req.Name)
	validateUsername(v, req.Username)
	validateEmail(v, req.Email)
	validatePassword(v, req.Password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	_, err := s.m.getUserByUsername(ctx, req.Username)
	if err == nil {
		return nil, ErrDuplicateUsername
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// the file check comes after field validation and the duplicate check so
	// their error codes win when several things are wrong at once
	if req.AvatarPath == "" {
		return nil, ErrMissingFile
	}

	avatarURL, err := s.media.Upload(ctx, req.AvatarPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	u := User{
		Username:  req.Username,
		Name:      req.Name,
		Email:     req.Email,
		Password:  Password{Plain: req.Password},
		AvatarURL: avatarURL,
	}

	if err := u.Password.set(u.Password.Plain); err != nil {
		return nil, err
	}

	if err := s.m.insertUser(ctx, &u); err != nil {
		return nil, err
	}

	created, err := s.m.getUserByID(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	if err := s.m.attachLists(ctx, created); err != nil {
		return nil, err
	}

	data := struct {
		Email    string
		Username string
		Name     string
	}{
		Email:    created.Email,
		Username: created.Username,
		Name:     created.Name,
	}

	eventData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	if err := s.mb.Publish(ctx, eventData, common.UserRegisteredKey, common.UserExchange); err != nil {
		return nil, err
	}

	return created, nil
}

// LoginUser verifies the credentials, issues an access/refresh token pair
// and persists the refresh token on the user record.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*User, *AuthToken, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	user, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrAuthenticationFailure
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.m.setRefreshToken(ctx, user.Email, &token.RefreshToken); err != nil {
		return nil, nil, err
	}

	if err := s.m.attachLists(ctx, user); err != nil {
		return nil, nil, err
	}

	return user, token, nil
}

// LogoutUser clears the refresh token of the matching user. An unknown email
// is a silent no-op.
func (s *UserService) LogoutUser(ctx context.Context, email string) error {
	return s.m.setRefreshToken(ctx, email, nil)
}

// UpdateUserName sets the display name of the matching user.
func (s *UserService) UpdateUserName(ctx context.Context, email, name string) (*User, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	validateName(v, name)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.updateName(ctx, email, name)
	if err != nil {
		return nil, err
	}

	if err := s.m.attachLists(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUserPassword re-verifies the old password and stores a fresh hash of
// the new one.
func (s *UserService) UpdateUserPassword(ctx context.Context, email, oldPassword, newPassword string) error {
	v := common.NewValidator()
	validateEmail(v, email)
	v.Check(oldPassword != "", "oldPassword", "must be provided")
	validatePassword(v, newPassword)
	if !v.Valid() {
		return v.ValidationError()
	}

	user, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	ok, err := user.Password.compare(oldPassword)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAuthenticationFailure
	}

	var pwd Password
	if err := pwd.set(newPassword); err != nil {
		return err
	}

	return s.m.updatePassword(ctx, pwd, user.ID, user.Version)
}

// DeleteUser removes the user account after re-verifying the password.
func (s *UserService) DeleteUser(ctx context.Context, email, password string) error {
	v := common.NewValidator()
	validateEmail(v, email)
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return v.ValidationError()
	}

	user, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAuthenticationFailure
	}

	return s.m.deleteUser(ctx, user.ID)
}

// FollowUser records that follower now follows target. Following the same
// user twice is an error.
func (s *UserService) FollowUser(ctx context.Context, target, follower string) error {
	v := common.NewValidator()
	v.Check(target != "", "userToBeFollowed", "must be provided")
	v.Check(follower != "", "follower", "must be provided")
	if !v.Valid() {
		return v.ValidationError()
	}

	followerUser, err := s.m.getUserByUsername(ctx, follower)
	if err != nil {
		return err
	}

	targetUser, err := s.m.getUserByUsername(ctx, target)
	if err != nil {
		return err
	}

	return s.m.insertFollow(ctx, followerUser.ID, targetUser.ID)
}

// UnfollowUser removes the follow edge between follower and target.
// Unfollowing a user that is not followed is a no-op.
func (s *UserService) UnfollowUser(ctx context.Context, target, follower string) error {
	v := common.NewValidator()
	v.Check(target != "", "userToBeUnfollowed", "must be provided")
	v.Check(follower != "", "follower", "must be provided")
	if !v.Valid() {
		return v.ValidationError()
	}

	followerUser, err := s.m.getUserByUsername(ctx, follower)
	if err != nil {
		return err
	}

	targetUser, err := s.m.getUserByUsername(ctx, target)
	if err != nil {
		return err
	}

	return s.m.deleteFollow(ctx, followerUser.ID, targetUser.ID)
}
