// Package eventbridge publishes domain events to an EventBridge bus.
// Publishing is best-effort; the state change that produced an event is
// already durable before the event leaves the process.
package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"

	"cinegraph-backend/application/ports"
	"cinegraph-backend/domain/events"
)

const eventSource = "cinegraph.engine"

// Publisher implements the EventPublisher port on EventBridge
type Publisher struct {
	client  *eventbridge.Client
	busName string
	logger  *zap.Logger
}

// NewPublisher creates a new EventBridge publisher
func NewPublisher(client *eventbridge.Client, busName string, logger *zap.Logger) ports.EventPublisher {
	return &Publisher{
		client:  client,
		busName: busName,
		logger:  logger,
	}
}

// Publish sends a single domain event
func (p *Publisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return p.PublishBatch(ctx, []events.DomainEvent{event})
}

// PublishBatch sends up to ten events per PutEvents call
func (p *Publisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	const maxEntries = 10

	for start := 0; start < len(batch); start += maxEntries {
		end := start + maxEntries
		if end > len(batch) {
			end = len(batch)
		}

		entries := make([]types.PutEventsRequestEntry, 0, end-start)
		for _, event := range batch[start:end] {
			detail, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("failed to marshal event %s: %w", event.GetEventType(), err)
			}
			entries = append(entries, types.PutEventsRequestEntry{
				EventBusName: aws.String(p.busName),
				Source:       aws.String(eventSource),
				DetailType:   aws.String(event.GetEventType()),
				Detail:       aws.String(string(detail)),
			})
		}

		output, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
			Entries: entries,
		})
		if err != nil {
			return fmt.Errorf("failed to publish events: %w", err)
		}
		if output.FailedEntryCount > 0 {
			p.logger.Warn("some events failed to publish",
				zap.Int32("failed", output.FailedEntryCount),
				zap.Int("total", len(entries)),
			)
		}
	}

	return nil
}
