package notifier

import "context"

// Notifier delivers run reports to an operator channel.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// NoopNotifier is used when no Telegram channel is configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (n *NoopNotifier) SendWithRetry(_ context.Context, _ string, _ int) error { return nil }
