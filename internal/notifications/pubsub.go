package notifications

import (
	"context"
	"errors"
	"sync"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/angelmondragon/rocketshoes-cart/pkg/logger"
)

const defaultPublishTimeout = 10 * time.Second

type publisher interface {
	Publish(context.Context, *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(context.Context) (string, error)
}

// PubSubSink publishes each notification to a Pub/Sub topic. Notify never blocks on the ack.
type PubSubSink struct {
	pub     publisher
	logg    *logger.Logger
	locale  string
	timeout time.Duration
	now     func() time.Time
	wg      sync.WaitGroup
}

// NewPubSubSink wraps a v2 publisher handle.
func NewPubSubSink(p *gcppubsub.Publisher, locale string, logg *logger.Logger) (*PubSubSink, error) {
	if p == nil {
		return nil, errors.New("pubsub publisher required")
	}
	return newPubSubSink(&gcpPublisher{Publisher: p}, locale, logg), nil
}

func newPubSubSink(pub publisher, locale string, logg *logger.Logger) *PubSubSink {
	return &PubSubSink{
		pub:     pub,
		logg:    logg,
		locale:  locale,
		timeout: defaultPublishTimeout,
		now:     time.Now,
	}
}

func (s *PubSubSink) Notify(ctx context.Context, message string) {
	msg := &gcppubsub.Message{
		Data: []byte(message),
		Attributes: map[string]string{
			"source":     "cart",
			"locale":     s.locale,
			"created_at": s.now().UTC().Format(time.RFC3339Nano),
		},
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	result := s.pub.Publish(publishCtx, msg)
	if result == nil {
		cancel()
		s.logFailure(ctx, errors.New("publisher returned nil result"))
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		if _, err := result.Get(publishCtx); err != nil {
			s.logFailure(ctx, err)
		}
	}()
}

// Wait blocks until in-flight publishes settle.
func (s *PubSubSink) Wait() {
	s.wg.Wait()
}

func (s *PubSubSink) logFailure(ctx context.Context, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Error(ctx, "cart notification publish failed", err)
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if p == nil || p.Publisher == nil {
		return nil
	}
	return &gcpPublishResult{PublishResult: p.Publisher.Publish(ctx, msg)}
}

type gcpPublishResult struct {
	*gcppubsub.PublishResult
}

func (r *gcpPublishResult) Get(ctx context.Context) (string, error) {
	if r == nil || r.PublishResult == nil {
		return "", errors.New("publish result is nil")
	}
	return r.PublishResult.Get(ctx)
}
