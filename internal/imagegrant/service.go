// Package imagegrant issues short-lived, scoped upload and download grants
// for the image blob store. It only names keys and signs requests; attaching
// the resulting reference to an inspection is the caller's responsibility.
package imagegrant

import (
	"context"
	"fmt"
	"time"

	"github.com/propertypulse/inspection-platform/internal/apperr"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Presigner defines the interface for presigning S3 requests.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Request is the grant request body.
type Request struct {
	InspectionID string `json:"inspectionId"`
	FileName     string `json:"fileName"`
	ContentType  string `json:"contentType"`
	Operation    string `json:"operation"` // "upload" (default) or "download"
	S3Key        string `json:"s3Key"`     // optional existing key for download
}

// Grant is a time-limited authorization for one object.
type Grant struct {
	UploadURL   string `json:"uploadUrl,omitempty"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	S3Key       string `json:"s3Key"`
	ImageID     string `json:"imageId"`
	ExpiresIn   int    `json:"expiresIn"` // seconds
}

// Service signs grants against one bucket.
type Service struct {
	Presign     Presigner
	Bucket      string
	UploadTTL   time.Duration
	DownloadTTL time.Duration
}

// Issue validates the request and dispatches on operation. Anything but
// "download" issues an upload grant, matching the browser client's default.
func (s *Service) Issue(ctx context.Context, req Request) (*Grant, error) {
	if req.InspectionID == "" || req.FileName == "" {
		return nil, apperr.Validation("Missing required fields: inspectionId, fileName")
	}
	if req.Operation == "download" {
		return s.IssueDownloadGrant(ctx, req)
	}
	return s.IssueUploadGrant(ctx, req)
}

// IssueUploadGrant names a fresh object key under the inspection and signs a
// PUT for it.
func (s *Service) IssueUploadGrant(ctx context.Context, req Request) (*Grant, error) {
	contentType := req.ContentType
	if contentType == "" {
		contentType = DefaultContentType
	}
	imageID := NewImageID()
	key := BuildKey(req.InspectionID, imageID, req.FileName)

	out, err := s.Presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(o *s3.PresignOptions) { o.Expires = s.UploadTTL })
	if err != nil {
		return nil, fmt.Errorf("presign put %s: %w", key, err)
	}
	return &Grant{
		UploadURL: out.URL,
		S3Key:     key,
		ImageID:   imageID,
		ExpiresIn: int(s.UploadTTL.Seconds()),
	}, nil
}

// IssueDownloadGrant signs a GET for an existing object. When the caller
// names no key, one is derived the same way an upload would be.
func (s *Service) IssueDownloadGrant(ctx context.Context, req Request) (*Grant, error) {
	imageID := NewImageID()
	key := req.S3Key
	if key == "" {
		key = BuildKey(req.InspectionID, imageID, req.FileName)
	}

	out, err := s.Presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) { o.Expires = s.DownloadTTL })
	if err != nil {
		return nil, fmt.Errorf("presign get %s: %w", key, err)
	}
	return &Grant{
		DownloadURL: out.URL,
		S3Key:       key,
		ImageID:     imageID,
		ExpiresIn:   int(s.DownloadTTL.Seconds()),
	}, nil
}
