package storage

import (
	"fmt"
	"io"
	"net/http"
	"yatube/config"

	"go.uber.org/zap"
)

type StorageType string

const (
	StorageTypeFile StorageType = "disk"
	StorageTypeS3   StorageType = "s3"
)

// StorageLocationPosts is the directory (or key prefix) of post images
const StorageLocationPosts = "posts"

type StorageAPI interface {
	Save(path string, reader io.Reader) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
}

var Default StorageAPI

// Init creates the storage configured by STORAGE_TYPE
func Init() {
	storage, err := New(StorageType(config.STORAGE_TYPE))
	if err != nil {
		panic(err)
	}
	Default = storage
}

func New(storageType StorageType) (StorageAPI, error) {
	switch storageType {
	case StorageTypeFile:
		zap.L().Info("Media storage on disk", zap.String("dir", config.MEDIA_DIR))
		return NewDiskStorage(config.MEDIA_DIR), nil
	case StorageTypeS3:
		zap.L().Info("Media storage on S3", zap.String("bucket", config.S3_BUCKET), zap.String("prefix", config.S3_PREFIX))
		return NewS3Storage(S3Bucket{
			Name:     config.S3_BUCKET,
			Region:   config.S3_REGION,
			Endpoint: config.S3_ENDPOINT,
			Key:      config.S3_KEY,
			Secret:   config.S3_SECRET,
			Prefix:   config.S3_PREFIX,
		})
	}
	return nil, fmt.Errorf("storage type unavailable: %q", storageType)
}
