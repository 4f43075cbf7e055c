package queue

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const defaultBackoff = 2 * time.Second

type Poller struct {
	receiver    Receiver
	log         *zap.Logger
	maxMessages int
	waitSeconds int
	backoff     time.Duration
	received    prometheus.Counter
}

type Option func(*Poller)

// WithCounter counts every received message.
func WithCounter(c prometheus.Counter) Option {
	return func(p *Poller) { p.received = c }
}

// WithBackoff sets the pause after a failed receive.
func WithBackoff(d time.Duration) Option {
	return func(p *Poller) { p.backoff = d }
}

func NewPoller(receiver Receiver, log *zap.Logger, maxMessages, waitSeconds int, opts ...Option) *Poller {
	p := &Poller{
		receiver:    receiver,
		log:         log.Named("queue"),
		maxMessages: maxMessages,
		waitSeconds: waitSeconds,
		backoff:     defaultBackoff,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls until ctx is cancelled. It only returns nil: receive failures are
// logged and retried.
func (p *Poller) Run(ctx context.Context) error {
	defer p.log.Info("queue poller done")

	for ctx.Err() == nil {
		msgs, err := p.receiver.Receive(ctx, p.maxMessages, p.waitSeconds)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			p.log.Error("receive failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(p.backoff):
			}
			continue
		}

		for _, msg := range msgs {
			p.log.Sugar().Infof(`Got SQS message: id=%s body="%s"`, msg.ID, msg.Body)
			if p.received != nil {
				p.received.Inc()
			}
		}
	}
	return nil
}
