package production

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/comalice/hsm"
)

// ErrQueueFull is returned by TrySend when the source buffer is full.
var ErrQueueFull = errors.New("event queue full (backpressure)")

// Event is an hsm event with its parameter, as carried over a channel.
type Event struct {
	ID    hsm.EventID
	Param any
}

// EventSource feeds events to Pump.
type EventSource interface {
	Events() <-chan Event
}

// ChannelSource is an EventSource backed by a buffered Go channel. Any number
// of goroutines may send; Pump is the single consumer.
type ChannelSource struct {
	ch chan Event
}

// NewChannelSource creates a source buffering up to size events.
func NewChannelSource(size int) *ChannelSource {
	return &ChannelSource{ch: make(chan Event, size)}
}

func (s *ChannelSource) Events() <-chan Event { return s.ch }

// Send queues evt, blocking until there is room or ctx is done.
func (s *ChannelSource) Send(ctx context.Context, evt Event) error {
	select {
	case s.ch <- evt:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySend queues evt without blocking.
func (s *ChannelSource) TrySend(evt Event) error {
	select {
	case s.ch <- evt:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close ends the stream; Pump returns once the buffer is drained.
func (s *ChannelSource) Close() { close(s.ch) }

// Pump runs every event from src through m, one at a time, until src is
// closed or ctx is done. It is the only goroutine that may touch m while it
// runs. Run errors are logged and do not stop the pump.
func Pump(ctx context.Context, m *hsm.Machine, src EventSource, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("machine", m.Name()))
	for {
		select {
		case evt, ok := <-src.Events():
			if !ok {
				return nil
			}
			if err := m.Run(evt.ID, evt.Param); err != nil {
				logger.Warn("event processing failed",
					zap.String("event", m.EventName(evt.ID)),
					zap.String("state", m.State().Name()),
					zap.Error(err),
				)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
