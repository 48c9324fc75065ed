package storage

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"go.uber.org/zap"
)

type S3Bucket struct {
	Name     string
	Region   string
	Endpoint string
	Key      string
	Secret   string
	Prefix   string // Prefix in the S3 bucket
}

type S3Storage struct {
	Bucket   S3Bucket
	s3Client *s3.S3
}

func NewS3Storage(bucket S3Bucket) (*S3Storage, error) {
	svc, err := bucket.CreateSVC()
	if err != nil {
		return nil, err
	}
	return &S3Storage{
		Bucket:   bucket,
		s3Client: svc,
	}, nil
}

func (b *S3Bucket) CreateSVC() (*s3.S3, error) {
	if b.Name == "" {
		return nil, errors.New("S3 bucket name is not configured")
	}
	cfg := aws.NewConfig().WithRegion(b.Region)
	if b.Key != "" {
		cfg = cfg.WithCredentials(credentials.NewStaticCredentials(b.Key, b.Secret, ""))
	}
	if b.Endpoint != "" {
		cfg = cfg.WithEndpoint(b.Endpoint).WithS3ForcePathStyle(true)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return s3.New(sess), nil
}

func (b *S3Bucket) GetRemotePath(path string) string {
	path = strings.TrimPrefix(path, "/")
	if b.Prefix == "" {
		return path
	}
	return strings.TrimSuffix(b.Prefix, "/") + "/" + path
}

func (s *S3Storage) Save(path string, reader io.Reader) (int64, error) {
	counter := &countingReader{Reader: reader}
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      &s.Bucket.Name,
		Key:         aws.String(s.Bucket.GetRemotePath(path)),
		ContentType: aws.String("image/jpeg"),
		Body:        counter,
	})
	return counter.n, err
}

func (s *S3Storage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	resp, err := s.s3Client.GetObjectWithContext(request.Context(), &s3.GetObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(path)),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			http.NotFound(writer, request)
			return
		}
		zap.L().Error("S3 GetObject failed", zap.String("path", path), zap.Error(err))
		http.Error(writer, "storage error", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()
	if resp.ContentType != nil {
		writer.Header().Set("Content-Type", *resp.ContentType)
	}
	if resp.ContentLength != nil {
		writer.Header().Set("Content-Length", strconv.FormatInt(*resp.ContentLength, 10))
	}
	writer.WriteHeader(http.StatusOK)
	_, _ = io.Copy(writer, resp.Body)
}

func (s *S3Storage) Delete(path string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(path)),
	})
	return err
}

type countingReader struct {
	io.Reader
	n int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	r.n += int64(n)
	return n, err
}
