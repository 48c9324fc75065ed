package utils

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// failedResponseWriter copies the body of 4xx/5xx responses into the log
type failedResponseWriter struct {
	gin.ResponseWriter
	request *gin.Context
}

func (w failedResponseWriter) Write(body []byte) (int, error) {
	if status := w.Status(); status >= 400 {
		log := zap.L().Debug
		if status >= 500 {
			log = zap.L().Warn
		}
		log("Failed response",
			zap.Int("status", status),
			zap.String("method", w.request.Request.Method),
			zap.String("path", w.request.Request.URL.Path),
			zap.ByteString("body", body),
		)
	}
	return w.ResponseWriter.Write(body)
}

// ErrorLogMiddleware logs compressed bodies when gzip is on, main only enables it in debug mode
func ErrorLogMiddleware(c *gin.Context) {
	c.Writer = failedResponseWriter{ResponseWriter: c.Writer, request: c}
	c.Next()
}
