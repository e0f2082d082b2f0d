// Package main consumes queued report events and resolves them to outbound
// notifications.
package main

import (
	"context"
	"log"

	"github.com/propertypulse/inspection-platform/internal/notify"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

// App holds the application state.
type App struct {
	dispatcher *notify.Dispatcher
}

func main() {
	// Sender is nil: resolved messages are logged. Wiring an email provider
	// happens here once one exists.
	app := &App{dispatcher: &notify.Dispatcher{}}
	lambda.Start(app.handler)
}

// handler processes one SQS batch. Per-record failures land in the result
// list; the batch itself always succeeds so healthy records are not redriven.
func (a *App) handler(ctx context.Context, batch events.SQSEvent) (map[string]any, error) {
	results := a.dispatcher.ProcessBatch(ctx, batch)
	for _, r := range results {
		log.Printf("notify: record=%s inspection=%s status=%s", r.MessageID, r.InspectionID, r.Status)
	}
	return map[string]any{"processed": len(results), "results": results}, nil
}
