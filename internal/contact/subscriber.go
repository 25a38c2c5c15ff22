package contact

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"finitefield.org/marketing-web/internal/observability"
)

// Subscriber adds an email address to the newsletter list.
type Subscriber interface {
	Subscribe(ctx context.Context, email, locale string) error
}

// StubSubscriber logs signups instead of calling a provider.
type StubSubscriber struct {
	Provider string
}

func (s StubSubscriber) Subscribe(ctx context.Context, email, locale string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	observability.FromContext(ctx).Info("stub newsletter signup",
		zap.String("provider", s.Provider),
		zap.String("locale", locale),
		zap.String("emailDomain", emailDomain(email)),
	)
	return nil
}

// NewSubscriber returns the subscriber for provider. Provider integrations
// (mailchimp, convertkit, resend) are not wired yet and fall back to the stub.
func NewSubscriber(provider string, logger *zap.Logger) Subscriber {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider != "" && logger != nil {
		logger.Warn("newsletter provider not implemented, using stub", zap.String("provider", provider))
	}
	return StubSubscriber{Provider: provider}
}

// SubscribeNewsletter validates the signup and hands it to sub.
func SubscribeNewsletter(ctx context.Context, sub Subscriber, locale string, n Newsletter) State {
	if errs := n.Validate(); len(errs) > 0 {
		return State{Status: StatusIdle, Errors: errs}
	}
	if sub == nil {
		return State{Status: StatusError, ErrorKey: KeyNewsletterFailed}
	}
	if err := sub.Subscribe(ctx, n.Email, locale); err != nil {
		observability.FromContext(ctx).Warn("newsletter signup failed", zap.Error(err))
		return State{Status: StatusError, ErrorKey: KeyNewsletterFailed}
	}
	return State{Status: StatusSuccess}
}

// KeyNewsletterFailed is shown when a signup cannot be completed.
const KeyNewsletterFailed = "common.newsletter.error"

func emailDomain(email string) string {
	if i := strings.LastIndex(email, "@"); i != -1 {
		return email[i+1:]
	}
	return ""
}
