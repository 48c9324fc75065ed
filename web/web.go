// Package web serves the Yatube pages: the feeds, post pages and the post form.
package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"yatube/feed"
	"yatube/handlers"
	"yatube/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	feeds *feed.Cache
	pages *template.Template
	media storage.StorageAPI
)

func Init(feedCache *feed.Cache, templates *template.Template, mediaStorage storage.StorageAPI) {
	feeds = feedCache
	pages = templates
	media = mediaStorage
}

func wantsJSON(c *gin.Context) bool {
	return c.Query("format") == "json"
}

// pageNumber reads ?page=, defaulting to 1
func pageNumber(c *gin.Context) (int, error) {
	s := c.Query("page")
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: page must be a positive number, got %q", feed.ErrInvalidArgument, s)
	}
	return n, nil
}

// abortWithError maps errors from the feed and the models to a response
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, feed.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c)
	case errors.Is(err, feed.ErrInvalidArgument):
		if wantsJSON(c) {
			c.JSON(http.StatusBadRequest, handlers.Response{Error: err.Error()})
			return
		}
		data := handlers.PageData(c, "Bad request")
		data["error"] = err.Error()
		c.HTML(http.StatusBadRequest, "400.tmpl", data)
	default:
		zap.L().Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, handlers.DBErrorResponse)
	}
}

func NotFound(c *gin.Context) {
	if wantsJSON(c) {
		c.JSON(http.StatusNotFound, handlers.NotFoundResponse)
		return
	}
	data := handlers.PageData(c, "Page not found")
	data["path"] = c.Request.URL.Path
	c.HTML(http.StatusNotFound, "404.tmpl", data)
}
