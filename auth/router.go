package auth

import (
	"net/http"
	"net/url"
	"yatube/models"

	"github.com/gin-gonic/gin"
)

const LoginURL = "/auth/login/"

// User is authenticated
type HandlerFunc func(c *gin.Context, user *models.User)

// Router is a wrapper class that adds auth checks + User pre-loading
type Router struct {
	Base gin.IRouter
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	session := LoadSession(c)
	user := session.User()
	if user.ID == 0 {
		c.Redirect(http.StatusFound, LoginRedirectURL(c.Request.URL.RequestURI()))
		return
	}
	handler(c, &user)
}

// LoginRedirectURL is the login page that returns to `next` afterwards
func LoginRedirectURL(next string) string {
	return LoginURL + "?next=" + url.QueryEscape(next)
}

func (cr *Router) POST(path string, handler HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) GET(path string, handler HandlerFunc) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}
