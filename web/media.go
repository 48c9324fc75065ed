package web

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"yatube/config"
	"yatube/storage"
	"yatube/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errInvalidImage = errors.New("invalid image")

// saveUploadedImage stores the optional "image" form file and returns its storage path ("" when absent)
func saveUploadedImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", errInvalidImage
	}
	reader, err := file.Open()
	if err != nil {
		return "", err
	}
	defer reader.Close()

	buf := bytes.Buffer{}
	if _, err = utils.NormalizePostImage(uint(config.IMAGE_MAX_SIZE), reader, &buf); err != nil {
		return "", errInvalidImage
	}
	path := storage.StorageLocationPosts + "/" + uuid.NewString() + ".jpg"
	if _, err = media.Save(path, &buf); err != nil {
		return "", err
	}
	return path, nil
}

// removeImage deletes a stored image that no post refers to any more
func removeImage(path string) {
	if err := media.Delete(path); err != nil {
		zap.L().Warn("Unused image not deleted", zap.String("path", path), zap.Error(err))
	}
}

func Media(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("filepath"), "/")
	if path == "" {
		NotFound(c)
		return
	}
	media.Serve(path, c.Request, c.Writer)
}
