package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"schoolapp/internal/domain/service"
)

const (
	localSubscription   = "projects/local/subscriptions/user-registered"
	localPublishTimeout = 30 * time.Second
	headerRequestID     = "X-Request-Id"
)

// PushMessage is the envelope Google Pub/Sub uses when pushing to HTTP endpoints.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// localPushSink emulates a push subscription by POSTing each message to an endpoint,
// for development without the emulator.
type localPushSink struct {
	endpoint string
	client   *http.Client
	now      func() time.Time
}

func newLocalPushSink(endpoint string) *localPushSink {
	return &localPushSink{
		endpoint: endpoint,
		client:   &http.Client{Timeout: localPublishTimeout},
		now:      time.Now,
	}
}

// NewLocalHTTPPublisher returns a publisher pushing events to endpoint.
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return newEventPublisher(newLocalPushSink(endpoint), logger)
}

func (s *localPushSink) send(ctx context.Context, msg message) (string, error) {
	var push PushMessage
	push.Subscription = localSubscription
	push.Message.Data = base64.StdEncoding.EncodeToString(msg.data)
	push.Message.Attributes = msg.attributes
	push.Message.MessageID = msg.id
	push.Message.PublishTime = s.now().UTC().Format(time.RFC3339)

	body, err := json.Marshal(push)
	if err != nil {
		return "", errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if msg.requestID != "" {
		req.Header.Set(headerRequestID, msg.requestID)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", errors.Errorf("push endpoint %s answered %d", s.endpoint, resp.StatusCode)
	}

	return msg.id, nil
}

func (s *localPushSink) close() error { return nil }

func (s *localPushSink) name() string { return ProviderLocal }
