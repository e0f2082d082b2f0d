// Package main generates the derived report for a completed inspection and
// publishes the notification event.
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/propertypulse/inspection-platform/internal/awsutil"
	"github.com/propertypulse/inspection-platform/internal/config"
	"github.com/propertypulse/inspection-platform/internal/ddb"
	"github.com/propertypulse/inspection-platform/internal/httpx"
	"github.com/propertypulse/inspection-platform/internal/notify"
	"github.com/propertypulse/inspection-platform/internal/report"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// App holds the application state, including configuration and AWS clients.
type App struct {
	env config.Env
	gen *report.Generator
}

func main() {
	env := config.MustLoad()
	cfg, _, err := awsutil.Load(context.Background(), env.Region)
	if err != nil {
		log.Fatal(err)
	}
	repo := &ddb.Repo{DB: dynamodb.NewFromConfig(cfg), Table: env.Table}

	// No topic configured means generation still works, just without
	// notifications.
	var publisher report.Publisher
	if env.TopicARN != "" {
		publisher = &notify.SNSPublisher{SNS: sns.NewFromConfig(cfg), TopicARN: env.TopicARN}
	}

	app := &App{env: env, gen: report.New(repo, publisher)}
	lambda.Start(app.handler)
}

func (a *App) handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, a.env.CallTimeout)
	defer cancel()

	id := req.PathParameters["inspectionId"]
	if id == "" {
		return httpx.Error(http.StatusBadRequest, "Missing inspectionId parameter")
	}

	rep, err := a.gen.Generate(ctx, id)
	if err != nil {
		log.Printf("report %s error: %v", id, err)
		return httpx.FromError(err)
	}
	return httpx.JSON(http.StatusOK, map[string]any{
		"message": "Report generated successfully",
		"report":  rep,
	})
}
