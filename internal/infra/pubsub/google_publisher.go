package pubsub

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// googleSink publishes to a Cloud Pub/Sub topic and waits for the server acknowledgement.
type googleSink struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
}

// newGoogleSink connects to projectID and fails fast when topicID does not exist,
// so a misconfigured deployment stops at startup instead of on the first signup.
func newGoogleSink(ctx context.Context, projectID, topicID string) (*googleSink, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "create pubsub client")
	}

	topic := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topic}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "get topic %s", topic)
	}

	return &googleSink{client: client, publisher: client.Publisher(topicID)}, nil
}

func (s *googleSink) send(ctx context.Context, msg message) (string, error) {
	serverID, err := s.publisher.Publish(ctx, &pubsub.Message{
		Data:       msg.data,
		Attributes: msg.attributes,
	}).Get(ctx)

	return serverID, errors.WithStack(err)
}

// close flushes pending messages before releasing the client.
func (s *googleSink) close() error {
	s.publisher.Stop()

	return errors.WithStack(s.client.Close())
}

func (s *googleSink) name() string { return ProviderGoogle }
