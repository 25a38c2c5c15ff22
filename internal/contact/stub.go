package contact

import (
	"context"
	"time"

	"go.uber.org/zap"

	"finitefield.org/marketing-web/internal/observability"
)

// DefaultStubDelay simulates network latency for the stub submitter.
const DefaultStubDelay = 500 * time.Millisecond

// StubSubmitter logs submissions and succeeds after a fixed delay.
// It is used when no endpoint is configured.
type StubSubmitter struct {
	Delay time.Duration
}

// Submit waits for the delay or for ctx to end.
func (s StubSubmitter) Submit(ctx context.Context, sub Submission) error {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	observability.FromContext(ctx).Info("stub contact submission",
		zap.String("submissionID", sub.ID),
		zap.String("kind", string(sub.Kind)),
		zap.String("subject", sub.Message.Subject),
	)
	return nil
}
