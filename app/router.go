package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	// user service
	router.HandlerFunc(http.MethodGet, "/v1/users", app.getAllUsersHandler)
	router.HandlerFunc(http.MethodPost, "/v1/users/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/users/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/users/logout", app.logoutUserHandler)
	router.HandlerFunc(http.MethodPut, "/v1/users/name", app.updateUserNameHandler)
	router.HandlerFunc(http.MethodPut, "/v1/users/password", app.updateUserPasswordHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/users", app.deleteUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/users/follow", app.followUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/users/unfollow", app.unfollowUserHandler)

	// blog service
	router.HandlerFunc(http.MethodGet, "/v1/blogs", app.getAllBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/blogs/new", app.addBlogHandler)
	router.HandlerFunc(http.MethodPut, "/v1/blogs", app.updateBlogHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/blogs", app.deleteBlogHandler)
	router.HandlerFunc(http.MethodPost, "/v1/blogs/like", app.likeBlogHandler)
	router.HandlerFunc(http.MethodPost, "/v1/blogs/dislike", app.dislikeBlogHandler)

	return app.recoverPanic(app.logRequest(app.rateLimit(router)))
}
