// Package main issues presigned upload and download grants for inspection
// images.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/propertypulse/inspection-platform/internal/awsutil"
	"github.com/propertypulse/inspection-platform/internal/config"
	"github.com/propertypulse/inspection-platform/internal/httpx"
	"github.com/propertypulse/inspection-platform/internal/imagegrant"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// App holds the application state, including configuration and AWS clients.
type App struct {
	env    config.Env
	grants *imagegrant.Service
}

func main() {
	env := config.MustLoad()
	cfg, endpoint, err := awsutil.Load(context.Background(), env.Region)
	if err != nil {
		log.Fatal(err)
	}

	// S3 client: use path-style when hitting LocalStack
	s3c := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.UsePathStyle = true
		}
	})

	app := &App{
		env: env,
		grants: &imagegrant.Service{
			Presign:     s3.NewPresignClient(s3c),
			Bucket:      env.Bucket,
			UploadTTL:   env.UploadTTL,
			DownloadTTL: env.DownloadTTL,
		},
	}
	lambda.Start(app.handler)
}

func (a *App) handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, a.env.CallTimeout)
	defer cancel()

	var in imagegrant.Request
	if err := json.Unmarshal([]byte(req.Body), &in); err != nil {
		return httpx.Error(http.StatusBadRequest, "invalid json")
	}

	grant, err := a.grants.Issue(ctx, in)
	if err != nil {
		log.Printf("presign error: %v", err)
		return httpx.FromError(err)
	}
	return httpx.JSON(http.StatusOK, grant)
}
