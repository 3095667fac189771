package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/rocketshoes-cart/pkg/logger"
)

// Sink receives user-facing text. Delivery is fire-and-forget.
type Sink interface {
	Notify(ctx context.Context, message string)
}

// LogSink writes every notification as a warning.
type LogSink struct {
	logg *logger.Logger
}

func NewLogSink(logg *logger.Logger) *LogSink {
	return &LogSink{logg: logg}
}

func (s *LogSink) Notify(ctx context.Context, message string) {
	if s == nil || s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "notification", message), "cart.notification")
}

// Notification is one entry in the Feed.
type Notification struct {
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Feed keeps the most recent notifications in a bounded ring until drained.
type Feed struct {
	mu    sync.Mutex
	items []Notification
	start int
	size  int
	now   func() time.Time
}

const defaultFeedCapacity = 50

func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = defaultFeedCapacity
	}
	return &Feed{items: make([]Notification, capacity), now: time.Now}
}

func (f *Feed) Notify(_ context.Context, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry := Notification{Message: message, CreatedAt: f.now().UTC()}
	capacity := len(f.items)
	if f.size < capacity {
		f.items[(f.start+f.size)%capacity] = entry
		f.size++
		return
	}
	// full: overwrite the oldest
	f.items[f.start] = entry
	f.start = (f.start + 1) % capacity
}

// Drain returns pending notifications oldest first and empties the feed.
func (f *Feed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Notification, 0, f.size)
	capacity := len(f.items)
	for i := 0; i < f.size; i++ {
		out = append(out, f.items[(f.start+i)%capacity])
	}
	f.start, f.size = 0, 0
	return out
}

// Len reports how many notifications are pending.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.size
}

// Fanout forwards each notification to every sink.
type Fanout struct {
	sinks []Sink
	logg  *logger.Logger
}

func NewFanout(logg *logger.Logger, sinks ...Sink) *Fanout {
	kept := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Fanout{sinks: kept, logg: logg}
}

func (f *Fanout) Notify(ctx context.Context, message string) {
	for _, sink := range f.sinks {
		f.deliver(ctx, sink, message)
	}
}

func (f *Fanout) deliver(ctx context.Context, sink Sink, message string) {
	defer func() {
		if r := recover(); r != nil && f.logg != nil {
			f.logg.Warn(f.logg.WithField(ctx, "panic", r), "notification sink panicked")
		}
	}()
	sink.Notify(ctx, message)
}
