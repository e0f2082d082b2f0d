// Package notify carries both ends of the report notification channel: the
// SNS publisher fed by the report generator and the SQS-batch dispatcher
// that resolves events into outbound messages.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/propertypulse/inspection-platform/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSAPI is the subset of the SNS client the publisher uses.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher publishes report events to one topic.
type SNSPublisher struct {
	SNS      SNSAPI
	TopicARN string
}

// Publish sends one event. Delivery is at-least-once downstream; callers
// treat failures as fire-and-forget.
func (p *SNSPublisher) Publish(ctx context.Context, ev models.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	_, err = p.SNS.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.TopicARN),
		Subject:  aws.String("Inspection Report Generated"),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"eventType": {
				DataType:    aws.String("String"),
				StringValue: aws.String(ev.Type),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s event: %w", ev.Type, err)
	}
	return nil
}
