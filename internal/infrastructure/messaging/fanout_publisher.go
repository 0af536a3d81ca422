package messaging

import (
	"context"
	"errors"

	"github.com/eskiturk2021/api-gateway/internal/domain/events"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// FanoutPublisher forwards every event to all of its sinks.
// Sink failures are logged and never reported to the caller.
type FanoutPublisher struct {
	sinks   []events.Publisher
	counter *prometheus.CounterVec
	logger  logger.Logger
}

// NewFanoutPublisher creates a publisher over sinks; nil sinks are skipped and counter may be nil
func NewFanoutPublisher(logger logger.Logger, counter *prometheus.CounterVec, sinks ...events.Publisher) *FanoutPublisher {
	active := make([]events.Publisher, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			active = append(active, sink)
		}
	}
	return &FanoutPublisher{sinks: active, counter: counter, logger: logger}
}

func (p *FanoutPublisher) Publish(ctx context.Context, event events.Event) error {
	if p.counter != nil {
		p.counter.WithLabelValues(event.Name).Inc()
	}
	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			p.logger.Warn("Failed to publish event ", event.Name, ": ", err)
		}
	}
	return nil
}

// Close closes every sink and joins their errors
func (p *FanoutPublisher) Close() error {
	var errs []error
	for _, sink := range p.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
