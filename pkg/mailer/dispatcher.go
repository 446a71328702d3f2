package mailer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher sends messages in the background. Failures are logged and never
// reach the caller.
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	log     *zap.Logger
	wg      sync.WaitGroup
}

func NewDispatcher(sender Sender, timeout time.Duration, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		timeout: timeout,
		log:     log.With(zap.String("component", "mail_dispatcher")),
	}
}

// Dispatch queues msg for delivery and returns immediately. The send runs on
// its own context so it outlives the request that triggered it.
func (d *Dispatcher) Dispatch(msg Message) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.sender.Send(ctx, msg); err != nil {
			d.log.Error("Failed to send email",
				zap.Error(err),
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
			)
			return
		}

		d.log.Debug("Email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	}()
}

// Wait blocks until every dispatched message has been handled.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
