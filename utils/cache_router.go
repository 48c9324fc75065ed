package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	NoCache     = 0
	MediaMaxAge = 30 * 86400 // post images are stored under fresh names and never change
)

// CacheControl sets the cache-control header of every response, maxAge is in seconds.
// Handlers registered later may override it
func CacheControl(maxAge int) gin.HandlerFunc {
	value := "no-cache"
	if maxAge > NoCache {
		value = "public, max-age=" + strconv.Itoa(maxAge)
	}
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}
