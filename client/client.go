// Package client is a thin HTTP client for the inspection API, the Go
// counterpart of the browser UI's api service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/propertypulse/inspection-platform/internal/imagegrant"
	"github.com/propertypulse/inspection-platform/internal/inspection"
	"github.com/propertypulse/inspection-platform/internal/models"
)

// APIError is a non-2xx response decoded from the structured error body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client calls one inspection API deployment.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New builds a Client on http.DefaultClient.
func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTP: http.DefaultClient}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// inspectionEnvelope matches the {message, inspection} response wrapper.
type inspectionEnvelope struct {
	Inspection models.Inspection `json:"inspection"`
}

// CreateInspection creates a new inspection.
func (c *Client) CreateInspection(ctx context.Context, in inspection.CreateInput) (*models.Inspection, error) {
	var env inspectionEnvelope
	if err := c.do(ctx, http.MethodPost, "/inspections", in, &env); err != nil {
		return nil, err
	}
	return &env.Inspection, nil
}

// GetInspection fetches one inspection by id.
func (c *Client) GetInspection(ctx context.Context, inspectionID string) (*models.Inspection, error) {
	var env inspectionEnvelope
	if err := c.do(ctx, http.MethodGet, "/inspections/"+url.PathEscape(inspectionID), nil, &env); err != nil {
		return nil, err
	}
	return &env.Inspection, nil
}

// ListInspections lists inspections; status may be empty for all.
func (c *Client) ListInspections(ctx context.Context, status string) (*inspection.ListResult, error) {
	path := "/inspections"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var result inspection.ListResult
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateInspection applies a partial update and returns the full record.
func (c *Client) UpdateInspection(ctx context.Context, inspectionID string, p models.Patch) (*models.Inspection, error) {
	var env inspectionEnvelope
	if err := c.do(ctx, http.MethodPut, "/inspections/"+url.PathEscape(inspectionID), p, &env); err != nil {
		return nil, err
	}
	return &env.Inspection, nil
}

// GenerateReport triggers report generation for an inspection.
func (c *Client) GenerateReport(ctx context.Context, inspectionID string) (*models.Report, error) {
	var env struct {
		Report models.Report `json:"report"`
	}
	path := "/inspections/" + url.PathEscape(inspectionID) + "/report"
	if err := c.do(ctx, http.MethodPost, path, nil, &env); err != nil {
		return nil, err
	}
	return &env.Report, nil
}

// PresignedURL requests an upload or download grant.
func (c *Client) PresignedURL(ctx context.Context, req imagegrant.Request) (*imagegrant.Grant, error) {
	var grant imagegrant.Grant
	if err := c.do(ctx, http.MethodPost, "/presigned-url", req, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

// UploadImage requests an upload grant, PUTs the bytes to the blob store, and
// returns the reference the caller attaches via UpdateInspection.
func (c *Client) UploadImage(ctx context.Context, inspectionID, fileName, contentType string, data io.Reader, uploadedAt string) (*models.ImageRef, error) {
	grant, err := c.PresignedURL(ctx, imagegrant.Request{
		InspectionID: inspectionID,
		FileName:     fileName,
		ContentType:  contentType,
		Operation:    "upload",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, grant.UploadURL, data)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: "image upload failed"}
	}

	return &models.ImageRef{
		ImageID:     grant.ImageID,
		S3Key:       grant.S3Key,
		Description: fileName,
		UploadedAt:  uploadedAt,
	}, nil
}
