package handlers

import (
	"yatube/auth"
	"yatube/models"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined errors
	NotFoundResponse   = Response{"not found"}
	BadRequestResponse = Response{"bad request"}
	DBErrorResponse    = Response{"DB Error"}
)

// PageData starts the template data of a page, loading the current user from the session
func PageData(c *gin.Context, title string) gin.H {
	user := auth.LoadSession(c).User()
	if user.ID == 0 {
		return PageDataFor(nil, title)
	}
	return PageDataFor(&user, title)
}

// PageDataFor is PageData for handlers that already have the user
func PageDataFor(user *models.User, title string) gin.H {
	data := gin.H{"title": title, "user": nil}
	if user != nil {
		data["user"] = user
	}
	return data
}

// SafeRedirect only allows local paths, anything else goes to "/"
func SafeRedirect(next string) string {
	if len(next) == 0 || next[0] != '/' || (len(next) > 1 && (next[1] == '/' || next[1] == '\\')) {
		return "/"
	}
	return next
}
