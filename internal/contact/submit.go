package contact

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"finitefield.org/marketing-web/internal/observability"
)

// Status is the form submission state shown to the visitor.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// KeySubmitFailed is shown when the submitter rejects a valid payload.
const KeySubmitFailed = "forms.contact.errorMessage"

// Kind identifies which form produced a submission.
type Kind string

const (
	KindContact Kind = "contact"
	KindQuote   Kind = "quote"
)

// ErrDisabled is returned when the contact form feature is off.
var ErrDisabled = errors.New("contact: form disabled")

// Submission is a validated payload ready for delivery.
type Submission struct {
	ID         string        `json:"id"`
	Kind       Kind          `json:"kind"`
	Locale     string        `json:"locale"`
	ReceivedAt time.Time     `json:"receivedAt"`
	Message    Message       `json:"message"`
	Quote      *QuoteDetails `json:"quote,omitempty"`
}

// QuoteDetails are the quote-only fields of a submission.
type QuoteDetails struct {
	Company  string   `json:"company,omitempty"`
	Budget   string   `json:"budget,omitempty"`
	Timeline string   `json:"timeline,omitempty"`
	Services []string `json:"services,omitempty"`
}

// Submitter delivers a validated submission.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, sub Submission) error

func (f SubmitterFunc) Submit(ctx context.Context, sub Submission) error { return f(ctx, sub) }

// State is the outcome of one submit transition.
type State struct {
	Status Status
	Errors FieldErrors
	// ErrorKey is the translation key of the form-level error, if any.
	ErrorKey     string
	SubmissionID string
}

// Service runs the submit transition: invalid input stays idle with field
// errors, a delivered submission succeeds, a failed delivery errors.
type Service struct {
	submitter Submitter
	disabled  bool
	idGen     func() string
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator overrides submission id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.idGen = fn
		}
	}
}

// WithClock overrides the submission timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithEnabled switches the service off when enabled is false.
func WithEnabled(enabled bool) Option {
	return func(s *Service) { s.disabled = !enabled }
}

// NewService returns a Service delivering through submitter.
func NewService(submitter Submitter, opts ...Option) *Service {
	s := &Service{
		submitter: submitter,
		idGen:     func() string { return ulid.Make().String() },
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available returns ErrDisabled when the form feature is off.
func (s *Service) Available() error {
	if s.disabled {
		return ErrDisabled
	}
	return nil
}

// SubmitMessage validates and delivers a contact message.
func (s *Service) SubmitMessage(ctx context.Context, locale string, m Message) State {
	if errs := m.Validate(); len(errs) > 0 {
		return State{Status: StatusIdle, Errors: errs}
	}
	return s.deliver(ctx, Submission{Kind: KindContact, Locale: locale, Message: m})
}

// SubmitQuote validates and delivers a quote request.
func (s *Service) SubmitQuote(ctx context.Context, locale string, q QuoteRequest) State {
	if errs := q.Validate(); len(errs) > 0 {
		return State{Status: StatusIdle, Errors: errs}
	}
	return s.deliver(ctx, Submission{
		Kind:    KindQuote,
		Locale:  locale,
		Message: q.Message,
		Quote: &QuoteDetails{
			Company:  q.Company,
			Budget:   q.Budget,
			Timeline: q.Timeline,
			Services: q.Services,
		},
	})
}

func (s *Service) deliver(ctx context.Context, sub Submission) State {
	sub.ID = s.idGen()
	sub.ReceivedAt = s.now().UTC()
	logger := observability.FromContext(ctx).With(
		zap.String("submissionID", sub.ID),
		zap.String("kind", string(sub.Kind)),
		zap.String("locale", sub.Locale),
	)
	if err := s.Available(); err != nil {
		logger.Warn("contact submission rejected", zap.Error(err))
		return State{Status: StatusError, ErrorKey: KeySubmitFailed, SubmissionID: sub.ID}
	}
	if s.submitter == nil {
		logger.Error("contact submitter not configured")
		return State{Status: StatusError, ErrorKey: KeySubmitFailed, SubmissionID: sub.ID}
	}
	if err := s.submitter.Submit(ctx, sub); err != nil {
		logger.Warn("contact submission failed", zap.Error(err))
		return State{Status: StatusError, ErrorKey: KeySubmitFailed, SubmissionID: sub.ID}
	}
	logger.Info("contact submission delivered")
	return State{Status: StatusSuccess, SubmissionID: sub.ID}
}
