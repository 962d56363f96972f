package notify

import (
	"context"
	"log"
)

// Transport delivers one message over one channel. Delivery is
// at-most-once; implementations must not retry.
type Transport interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Notifier fans a message out to every configured transport. Dispatch is
// fire-and-forget: a transport failure is logged and never propagated,
// so workflow correctness cannot depend on delivery.
type Notifier struct {
	transports []Transport
	logger     *log.Logger
}

func NewNotifier(logger *log.Logger, transports ...Transport) *Notifier {
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{transports: transports, logger: logger}
}

func (n *Notifier) Dispatch(ctx context.Context, msg Message) {
	if n == nil {
		return
	}
	for _, t := range n.transports {
		if t == nil {
			continue
		}
		if err := t.Send(ctx, msg); err != nil {
			n.logger.Printf("notify dispatch failed | transport=%s kind=%s recipient=%s err=%v",
				t.Name(), msg.Kind, msg.RecipientExternalID, err)
		}
	}
}
