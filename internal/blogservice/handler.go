package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blogverse/blogverse/internal/common"
)

var (
	ErrUploadFailed = errors.New("media upload failed")
	ErrMissingFile  = errors.New("no file provided")
)

func NewBlogService(db *sql.DB, c *common.Cache, media MediaUploader) *BlogService {
	return &BlogService{
		m:     newBlogModel(db),
		c:     c,
		media: media,
	}
}

// GetAllBlogs returns every blog post, newest first. An empty table is
// reported as ErrRecordNotFound. The result is cached until the next
// mutation.
func (s *BlogService) GetAllBlogs(ctx context.Context) ([]Blog, error) {
	if cached, ok := s.c.Get(common.CacheKeyBlogs()); ok {
		if blogs, ok := cached.([]Blog); ok {
			return blogs, nil
		}
	}

	blogs, err := s.m.getBlogs(ctx)
	if err != nil {
		return nil, err
	}

	if len(blogs) == 0 {
		return nil, ErrRecordNotFound
	}

	s.c.Set(common.CacheKeyBlogs(), blogs)

	return blogs, nil
}

type AddBlogRequest struct {
	Postname    string
	Title       string
	Description string
	Username    string
	ImagePath   string
}

// AddBlog uploads the image to the media host and creates a blog post owned
// by the named user.
func (s *BlogService) AddBlog(ctx context.Context, req *AddBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validatePostname(v, req.Postname)
	validateTitle(v, req.Title)
	validateDescription(v, req.Description)
	validateUsername(v, req.Username)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	userID, err := s.m.getUserIDByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	// the file check comes after field validation and the author lookup so
	// their error codes win when several things are wrong at once
	if req.ImagePath == "" {
		return nil, ErrMissingFile
	}

	imageURL, err := s.media.Upload(ctx, req.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	blog := Blog{
		Postname:    req.Postname,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    imageURL,
		UserID:      userID,
	}

	if err := s.m.insert(ctx, &blog); err != nil {
		return nil, err
	}

	created, err := s.m.getBlogByPostname(ctx, blog.Postname)
	if err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlogs())

	return created, nil
}

// UpdateBlog sets the title and/or description of the matching post. At
// least one of them must be provided.
func (s *BlogService) UpdateBlog(ctx context.Context, postname string, title, description *string) (*Blog, error) {
	v := common.NewValidator()
	v.Check(postname != "", "postname", "must be provided")
	v.Check(title != nil || description != nil, "title", "either title or description must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.updateBlog(ctx, postname, title, description)
	if err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlogs())

	return blog, nil
}

// DeleteBlog removes the post. The owning user's blog list loses the
// reference and the liker set is dropped with the post.
func (s *BlogService) DeleteBlog(ctx context.Context, postname, username string) error {
	v := common.NewValidator()
	v.Check(postname != "", "postname", "must be provided")
	v.Check(username != "", "username", "must be provided")
	if !v.Valid() {
		return v.ValidationError()
	}

	userID, err := s.m.getUserIDByUsername(ctx, username)
	if err != nil {
		return err
	}

	blog, err := s.m.getBlogByPostname(ctx, postname)
	if err != nil {
		return err
	}

	if err := s.m.deleteBlog(ctx, blog.ID, userID); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlogs())

	return nil
}

// LikeBlog adds the user to the post's liker set and returns the new like
// count. Liking an already liked post leaves the set unchanged.
func (s *BlogService) LikeBlog(ctx context.Context, postname, username string) (int, error) {
	blogID, userID, err := s.resolveLike(ctx, postname, username)
	if err != nil {
		return 0, err
	}

	if err := s.m.insertLike(ctx, blogID, userID); err != nil {
		return 0, err
	}

	s.c.Delete(common.CacheKeyBlogs())

	return s.m.countLikes(ctx, blogID)
}

// DislikeBlog removes the user from the post's liker set and returns the new
// like count. Disliking by a non-liker leaves the set unchanged.
func (s *BlogService) DislikeBlog(ctx context.Context, postname, username string) (int, error) {
	blogID, userID, err := s.resolveLike(ctx, postname, username)
	if err != nil {
		return 0, err
	}

	if err := s.m.deleteLike(ctx, blogID, userID); err != nil {
		return 0, err
	}

	s.c.Delete(common.CacheKeyBlogs())

	return s.m.countLikes(ctx, blogID)
}

func (s *BlogService) resolveLike(ctx context.Context, postname, username string) (blogID, userID int, err error) {
	v := common.NewValidator()
	v.Check(postname != "", "postname", "must be provided")
	v.Check(username != "", "username", "must be provided")
	if !v.Valid() {
		return 0, 0, v.ValidationError()
	}

	userID, err = s.m.getUserIDByUsername(ctx, username)
	if err != nil {
		return 0, 0, err
	}

	blog, err := s.m.getBlogByPostname(ctx, postname)
	if err != nil {
		return 0, 0, err
	}

	return blog.ID, userID, nil
}
