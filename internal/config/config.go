// Package config loads configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Env holds the configuration values for the application.
type Env struct {
	Region      string
	Table       string
	Bucket      string
	TopicARN    string // empty disables event publishing
	UploadTTL   time.Duration
	DownloadTTL time.Duration
	CallTimeout time.Duration // bound on every store/blob/publish call
	Port        int           // local dev server only
}

// MustLoad reads the environment variables and returns an Env struct.
func MustLoad() Env {
	uploadSec, _ := strconv.Atoi(get("UPLOAD_TTL_SECONDS", "300"))
	downloadSec, _ := strconv.Atoi(get("DOWNLOAD_TTL_SECONDS", "3600"))
	timeoutSec, _ := strconv.Atoi(get("CALL_TIMEOUT_SECONDS", "10"))
	port, _ := strconv.Atoi(get("PORT", "8080"))
	return Env{
		Region:      get("AWS_REGION", "us-east-1"),
		Table:       get("TABLE_NAME", "InspectionsTable"),
		Bucket:      get("IMAGE_BUCKET_NAME", "inspection-images-bucket"),
		TopicARN:    os.Getenv("SNS_TOPIC_ARN"),
		UploadTTL:   time.Duration(uploadSec) * time.Second,
		DownloadTTL: time.Duration(downloadSec) * time.Second,
		CallTimeout: time.Duration(timeoutSec) * time.Second,
		Port:        port,
	}
}

// get returns the value of the environment variable k or def if not set.
func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
