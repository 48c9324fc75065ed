package config

import (
	"errors"
	"log"
	"strings"

	"github.com/spf13/viper"
)

var (
	BIND_ADDRESS   = "0.0.0.0:8080"
	TLS_DOMAINS    = ""          // e.g. "example.com,example2.com"
	MYSQL_DSN      = ""          // MySQL will be used if this is set
	SQLITE_FILE    = "yatube.db" // SQLite will be used if MYSQL_DSN is not configured
	DEBUG_MODE     = true
	SESSION_KEY    = "this is a long key"
	PAGE_SIZE      = 10 // Posts per page on every feed
	REDIS_ADDR     = "" // Rendered home page fragments go to Redis if this is set, in-process memory otherwise
	REDIS_PASSWORD = ""
	REDIS_DB       = 0
	// Post images
	STORAGE_TYPE   = "disk" // "disk" or "s3"
	MEDIA_DIR      = "media"
	S3_BUCKET      = ""
	S3_REGION      = "us-east-1"
	S3_ENDPOINT    = "" // Leave empty for AWS, set for S3-compatible services (minio, etc)
	S3_KEY         = ""
	S3_SECRET      = ""
	S3_PREFIX      = "" // Prefix added to every object key
	IMAGE_MAX_SIZE = 960
	// Per client IP, applies to POST requests only
	MAX_REQUESTS_PER_MIN = 100
)

var v = viper.New()

func init() {
	Load()
}

// Load (re)reads the configuration: defaults, then yatube.yaml (if present), then environment variables
func Load() {
	v.SetConfigName("yatube")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("Config file ignored: %v", err)
		}
	}
	readString("BIND_ADDRESS", &BIND_ADDRESS)
	readString("TLS_DOMAINS", &TLS_DOMAINS)
	readString("MYSQL_DSN", &MYSQL_DSN)
	readString("SQLITE_FILE", &SQLITE_FILE)
	readBool("DEBUG_MODE", &DEBUG_MODE)
	readString("SESSION_KEY", &SESSION_KEY)
	readInt("PAGE_SIZE", &PAGE_SIZE)
	readString("REDIS_ADDR", &REDIS_ADDR)
	readString("REDIS_PASSWORD", &REDIS_PASSWORD)
	readInt("REDIS_DB", &REDIS_DB)
	readString("STORAGE_TYPE", &STORAGE_TYPE)
	readString("MEDIA_DIR", &MEDIA_DIR)
	readString("S3_BUCKET", &S3_BUCKET)
	readString("S3_REGION", &S3_REGION)
	readString("S3_ENDPOINT", &S3_ENDPOINT)
	readString("S3_KEY", &S3_KEY)
	readString("S3_SECRET", &S3_SECRET)
	readString("S3_PREFIX", &S3_PREFIX)
	readInt("IMAGE_MAX_SIZE", &IMAGE_MAX_SIZE)
	readInt("MAX_REQUESTS_PER_MIN", &MAX_REQUESTS_PER_MIN)
}

func readString(name string, value *string) {
	s := v.GetString(name)
	if s == "" {
		return
	}
	*value = s
}

func readBool(name string, value *bool) {
	s := strings.ToLower(v.GetString(name))
	if s == "true" || s == "1" || s == "yes" || s == "on" {
		*value = true
	} else if s == "false" || s == "0" || s == "no" || s == "off" {
		*value = false
	}
}

func readInt(name string, value *int) {
	if !v.IsSet(name) {
		return
	}
	i := v.GetInt(name)
	if i <= 0 {
		return
	}
	*value = i
}
