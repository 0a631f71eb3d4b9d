// Package pubsub publishes domain events to Google Pub/Sub, a local push endpoint, or nowhere.
package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/pkg/errors"

	"schoolapp/internal/domain/service"
)

const (
	// ProviderLocal pushes events to an HTTP endpoint in the Pub/Sub push format.
	ProviderLocal = "local"
	// ProviderGoogle publishes events to a Google Cloud Pub/Sub topic.
	ProviderGoogle = "google"

	eventTypeUserRegistered = "user.registered"
)

// message is an encoded event ready for a sink.
type message struct {
	id         string
	requestID  string
	data       []byte
	attributes map[string]string
}

// sink delivers encoded messages to one transport.
type sink interface {
	// send delivers msg and returns the transport's message id, if it assigns one.
	send(ctx context.Context, msg message) (string, error)
	close() error
	name() string
}

// eventPublisher encodes domain events once and hands them to its sink.
type eventPublisher struct {
	sink   sink
	logger *slog.Logger
}

func newEventPublisher(s sink, logger *slog.Logger) *eventPublisher {
	return &eventPublisher{sink: s, logger: logger}
}

// PublishUserRegistered implements service.EventPublisher.
func (p *eventPublisher) PublishUserRegistered(ctx context.Context, event *service.UserRegisteredEvent) error {
	msg, err := encodeUserRegistered(event)
	if err != nil {
		return err
	}

	messageID, err := p.sink.send(ctx, msg)
	if err != nil {
		return errors.Wrapf(err, "publish %s via %s", eventTypeUserRegistered, p.sink.name())
	}

	p.logger.Debug("Event published",
		slog.String("sink", p.sink.name()),
		slog.String("event_type", eventTypeUserRegistered),
		slog.String("event_id", event.EventID),
		slog.String("message_id", messageID),
	)

	return nil
}

// Close implements service.EventPublisher.
func (p *eventPublisher) Close() error {
	return p.sink.close()
}

// encodeUserRegistered serialises the event and derives the message attributes
// subscribers filter on.
func encodeUserRegistered(event *service.UserRegisteredEvent) (message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return message{}, errors.WithStack(err)
	}

	attributes := map[string]string{
		"event_type": eventTypeUserRegistered,
		"event_id":   event.EventID,
		"user_id":    strconv.FormatInt(event.UserID, 10),
		"role":       event.Role,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return message{
		id:         event.EventID,
		requestID:  event.RequestID,
		data:       data,
		attributes: attributes,
	}, nil
}

// noopSink drops every message. It backs the publisher when no provider is configured.
type noopSink struct{}

func (noopSink) send(context.Context, message) (string, error) { return "", nil }
func (noopSink) close() error                                  { return nil }
func (noopSink) name() string                                  { return "noop" }
