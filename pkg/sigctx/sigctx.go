// Package sigctx derives a context that ends on shutdown signals.
package sigctx

import (
	"context"
	"os/signal"
	"syscall"
)

// NotifyContext returns a context cancelled on SIGINT, SIGTERM or
// SIGQUIT. The cancel func releases the signal watch.
func NotifyContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
}
