package pubsub

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"schoolapp/config"
	"schoolapp/internal/domain/lifecycle"
	"schoolapp/internal/domain/service"
)

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher picks the sink named by pubsub.provider. Without a provider,
// events are dropped.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	s, err := newSink(params.Config.PubSub)
	if err != nil {
		return nil, err
	}

	params.Logger.Info("Event publisher configured", slog.String("sink", s.name()))
	publisher := newEventPublisher(s, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}

func newSink(cfg *config.PubSubConfig) (sink, error) {
	if cfg == nil || cfg.Provider == "" {
		return noopSink{}, nil
	}

	switch cfg.Provider {
	case ProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("pubsub.localEndpoint is required for the local provider")
		}

		return newLocalPushSink(cfg.LocalEndpoint), nil

	case ProviderGoogle:
		if cfg.ProjectID == "" || cfg.TopicID == "" {
			return nil, errors.New("pubsub.projectId and pubsub.topicId are required for the google provider")
		}

		ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		gs, err := newGoogleSink(ctx, cfg.ProjectID, cfg.TopicID)
		if err != nil {
			return nil, err
		}

		return gs, nil

	default:
		return nil, errors.Errorf("unknown pubsub provider %q", cfg.Provider)
	}
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
