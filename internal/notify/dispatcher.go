package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/propertypulse/inspection-platform/internal/models"

	"github.com/aws/aws-lambda-go/events"
)

// Message is one resolved outbound notification, ready for an external
// delivery collaborator. This component's contract ends here.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sender transmits a resolved message. Delivery must tolerate the same event
// arriving twice; the channel is at-least-once.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// Result records the outcome for one queue record.
type Result struct {
	MessageID    string   `json:"messageId,omitempty"`
	InspectionID string   `json:"inspectionId,omitempty"`
	Status       string   `json:"status"`
	Recipients   []string `json:"recipients,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// Result statuses.
const (
	StatusSent    = "notifications_sent"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

// Dispatcher resolves queued report events into outbound messages. Sender may
// be nil; resolved messages are then only logged, which is the demo-mode
// behavior.
type Dispatcher struct {
	Sender Sender
}

// ProcessBatch handles one SQS delivery. Records are processed independently:
// a failure is captured in that record's result and never aborts siblings.
func (d *Dispatcher) ProcessBatch(ctx context.Context, batch events.SQSEvent) []Result {
	results := make([]Result, 0, len(batch.Records))
	for _, rec := range batch.Records {
		results = append(results, d.processRecord(ctx, rec))
	}
	return results
}

func (d *Dispatcher) processRecord(ctx context.Context, rec events.SQSMessage) Result {
	ev, err := decodeEvent(rec.Body)
	if err != nil {
		log.Printf("notify: record %s: %v", rec.MessageId, err)
		return Result{MessageID: rec.MessageId, Status: StatusError, Error: err.Error()}
	}
	if ev.Type != models.EventTypeReportGenerated {
		return Result{MessageID: rec.MessageId, InspectionID: ev.InspectionID, Status: StatusSkipped}
	}

	msgs := ResolveMessages(ev)
	recipients := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if d.Sender != nil {
			if err := d.Sender.Send(ctx, m); err != nil {
				log.Printf("notify: record %s: send to %s: %v", rec.MessageId, m.To, err)
				return Result{
					MessageID:    rec.MessageId,
					InspectionID: ev.InspectionID,
					Status:       StatusError,
					Error:        err.Error(),
				}
			}
		} else {
			log.Printf("notify: would send to %s: %s", m.To, m.Subject)
		}
		recipients = append(recipients, m.To)
	}
	return Result{
		MessageID:    rec.MessageId,
		InspectionID: ev.InspectionID,
		Status:       StatusSent,
		Recipients:   recipients,
	}
}

// snsEnvelope is the wrapper SNS puts around messages delivered through SQS.
type snsEnvelope struct {
	Message string `json:"Message"`
}

// decodeEvent accepts both the SNS-over-SQS envelope and a bare event body;
// redrive tooling produces the latter.
func decodeEvent(body string) (models.Event, error) {
	var env snsEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return models.Event{}, fmt.Errorf("decode body: %w", err)
	}
	raw := env.Message
	if raw == "" {
		raw = body
	}
	var ev models.Event
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return models.Event{}, fmt.Errorf("decode event: %w", err)
	}
	return ev, nil
}

// ResolveMessages builds the inspector and client notifications for one
// event. Recipients without an email address are dropped.
func ResolveMessages(ev models.Event) []Message {
	var msgs []Message
	if ev.InspectorEmail != "" {
		msgs = append(msgs, Message{
			To:      ev.InspectorEmail,
			Subject: fmt.Sprintf("Inspection Report Ready - %s", ev.PropertyAddress),
			Body: fmt.Sprintf(
				"Your inspection report for %s has been generated.\n\nInspection ID: %s\nGenerated At: %s\n\nYou can view the full report in the inspection platform.",
				ev.PropertyAddress, ev.InspectionID, ev.GeneratedAt),
		})
	}
	if ev.ClientEmail != "" {
		msgs = append(msgs, Message{
			To:      ev.ClientEmail,
			Subject: fmt.Sprintf("Property Inspection Report Available - %s", ev.PropertyAddress),
			Body: fmt.Sprintf(
				"The inspection report for %s is now available.\n\nInspection ID: %s\nGenerated At: %s\n\nPlease log in to view the detailed report.",
				ev.PropertyAddress, ev.InspectionID, ev.GeneratedAt),
		})
	}
	return msgs
}
