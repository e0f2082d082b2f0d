// Package main lists inspections, optionally filtered by status.
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/propertypulse/inspection-platform/internal/awsutil"
	"github.com/propertypulse/inspection-platform/internal/config"
	"github.com/propertypulse/inspection-platform/internal/ddb"
	"github.com/propertypulse/inspection-platform/internal/httpx"
	"github.com/propertypulse/inspection-platform/internal/inspection"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// App holds the application state, including configuration and AWS clients.
type App struct {
	env config.Env
	svc *inspection.Service
}

func main() {
	env := config.MustLoad()
	cfg, _, err := awsutil.Load(context.Background(), env.Region)
	if err != nil {
		log.Fatal(err)
	}
	repo := &ddb.Repo{DB: dynamodb.NewFromConfig(cfg), Table: env.Table}
	app := &App{env: env, svc: inspection.New(repo)}
	lambda.Start(app.handler)
}

func (a *App) handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, a.env.CallTimeout)
	defer cancel()

	result, err := a.svc.List(ctx, req.QueryStringParameters["status"])
	if err != nil {
		log.Printf("list error: %v", err)
		return httpx.FromError(err)
	}
	return httpx.JSON(http.StatusOK, result)
}
