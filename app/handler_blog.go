package main

import (
	"errors"
	"net/http"

	"github.com/blogverse/blogverse/internal/blogservice"
	"github.com/blogverse/blogverse/internal/common"
)

func (app *application) getAllBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.GetAllBlogs(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeResponse(w, http.StatusOK, blogs, "Blogs fetched successfully")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// addBlogHandler accepts a multipart form with the post fields and an image
// file.
func (app *application) addBlogHandler(w http.ResponseWriter, r *http.Request) {
	imagePath, err := app.saveMultipartFile(r, "image")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	req := &blogservice.AddBlogRequest{
		Postname:    r.FormValue("postname"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Username:    r.FormValue("username"),
		ImagePath:   imagePath,
	}

	blog, err := app.blogService.AddBlog(r.Context(), req)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, statusMissingField, validationErr.Errors)
		case errors.Is(err, blogservice.ErrUserNotFound):
			app.errorResponse(w, r, http.StatusBadRequest, "username did not match any user")
		case errors.Is(err, blogservice.ErrDuplicatePostname):
			app.errorResponse(w, r, http.StatusBadRequest, "this postname is already taken")
		case errors.Is(err, blogservice.ErrMissingFile):
			app.errorResponse(w, r, http.StatusBadRequest, "image file not found")
		case errors.Is(err, blogservice.ErrUploadFailed):
			app.errorResponse(w, r, http.StatusBadRequest, "could not upload blog image")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeResponse(w, http.StatusOK, blog, "Blog created successfully")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type updateBlogRequest struct {
	Postname    string  `json:"postname"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (app *application) updateBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input updateBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blog, err := app.blogService.UpdateBlog(r.Context(), input.Postname, input.Title, input.Description)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, statusMissingField, validationErr.Errors)
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeResponse(w, http.StatusOK, blog, "Blog updated successfully")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type deleteBlogRequest struct {
	Postname string `json:"postname"`
	Username string `json:"username"`
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input deleteBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.blogService.DeleteBlog(r.Context(), input.Postname, input.Username)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, http.StatusPaymentRequired, validationErr.Errors)
		case errors.Is(err, blogservice.ErrUserNotFound), errors.Is(err, blogservice.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusPaymentRequired, "user or post not found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeResponse(w, http.StatusOK, nil, "Post deleted successfully")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type likeBlogRequest struct {
	Postname string `json:"postname"`
	Username string `json:"username"`
}

func (app *application) likeBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input likeBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	count, err := app.blogService.LikeBlog(r.Context(), input.Postname, input.Username)
	if err != nil {
		app.likeErrorResponse(w, r, err)
		return
	}

	err = app.writeResponse(w, http.StatusOK, count, "Liked the post")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) dislikeBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input likeBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	count, err := app.blogService.DislikeBlog(r.Context(), input.Postname, input.Username)
	if err != nil {
		app.likeErrorResponse(w, r, err)
		return
	}

	err = app.writeResponse(w, http.StatusOK, count, "Disliked the post")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// likeErrorResponse maps like/dislike failures. Both missing fields and
// missing records are 400s in this API.
func (app *application) likeErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.As(err, &common.ValidationError{}):
		validationErr := err.(common.ValidationError)
		app.failedValidationErrorResponse(w, r, http.StatusBadRequest, validationErr.Errors)
	case errors.Is(err, blogservice.ErrUserNotFound), errors.Is(err, blogservice.ErrRecordNotFound):
		app.errorResponse(w, r, http.StatusBadRequest, "blog or user not found")
	default:
		app.serverErrorResponse(w, r, err)
	}
}
