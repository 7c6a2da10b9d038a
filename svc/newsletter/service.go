package newsletter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/dmitrymomot/newsroom/pkg/async"
	"github.com/dmitrymomot/newsroom/pkg/email"
	"github.com/dmitrymomot/newsroom/pkg/logger"
	"github.com/dmitrymomot/newsroom/pkg/sanitizer"
	"github.com/dmitrymomot/newsroom/pkg/validator"
)

const (
	ConfirmPath = "/subscriptions/confirm"
	TokenParam  = "subscription_token"

	confirmationTag = "subscription-confirmation"
	issueTag        = "newsletter-issue"
)

const (
	deliveryDelivered = "delivered"
	deliverySkipped   = "skipped"
	deliveryFailed    = "failed"
)

// Issue is a newsletter issue. At least one of HTML and Text must be set.
type Issue struct {
	Title string
	HTML  string
	Text  string
}

// Report counts the outcome of a Publish call.
type Report struct {
	Delivered int
	Skipped   int
}

type Service struct {
	store      Store
	sender     email.EmailSender
	baseURL    string
	batchSize  int
	now        func() time.Time
	tracer     trace.Tracer
	deliveries *prometheus.CounterVec
	logger     *slog.Logger
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithRegisterer registers newsroom_newsletter_deliveries_total on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Service) {
		if reg == nil {
			return
		}
		s.deliveries = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newsroom_newsletter_deliveries_total",
				Help: "Newsletter issue deliveries by outcome.",
			},
			[]string{"outcome"},
		)
		reg.MustRegister(s.deliveries)
	}
}

func withClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(store Store, sender email.EmailSender, cfg Config, opts ...Option) *Service {
	s := &Service{
		store:     store,
		sender:    sender,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		batchSize: max(cfg.PublishBatchSize, 1),
		now:       time.Now,
		tracer:    noop.NewTracerProvider().Tracer(""),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe stores a pending subscription and emails its confirmation link.
// Invalid input yields validator.ValidationErrors.
func (s *Service) Subscribe(ctx context.Context, name, addr string) (Subscription, error) {
	subscriber, err := NewSubscriber(name, addr)
	if err != nil {
		return Subscription{}, err
	}

	token, err := NewToken()
	if err != nil {
		return Subscription{}, fmt.Errorf("generate subscription token: %w", err)
	}

	sub := Subscription{
		ID:           uuid.New(),
		Email:        subscriber.Email,
		Name:         subscriber.Name,
		SubscribedAt: s.now().UTC(),
		Status:       StatusPendingConfirmation,
	}
	if err := s.store.CreateSubscription(ctx, sub, token); err != nil {
		if errors.Is(err, ErrAlreadySubscribed) {
			return Subscription{}, err
		}
		return Subscription{}, errors.Join(ErrStore, err)
	}

	if err := s.sender.SendEmail(ctx, s.confirmationEmail(sub.Email, token)); err != nil {
		return Subscription{}, errors.Join(ErrDelivery, err)
	}

	s.logger.InfoContext(ctx, "subscription created",
		slog.String("subscription_id", sub.ID.String()),
		slog.String("email", sanitizer.MaskEmail(sub.Email)),
		logger.Component("newsletter"),
	)
	return sub, nil
}

// ConfirmationLink returns the URL a subscriber follows to confirm token.
func (s *Service) ConfirmationLink(token string) string {
	return s.baseURL + ConfirmPath + "?" + url.Values{TokenParam: {token}}.Encode()
}

func (s *Service) confirmationEmail(to, token string) email.SendEmailParams {
	link := s.ConfirmationLink(token)
	return email.SendEmailParams{
		SendTo:   to,
		Subject:  "Welcome!",
		BodyHTML: fmt.Sprintf(`Welcome to our newsletter!<br />Click <a href="%s">here</a> to confirm your subscription.`, sanitizer.EscapeHTML(link)),
		BodyText: fmt.Sprintf("Welcome to our newsletter!\nVisit %s to confirm your subscription.", link),
		Tag:      confirmationTag,
	}
}

// Confirm marks the subscription owning token as confirmed.
func (s *Service) Confirm(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrMissingToken
	}
	if !IsWellFormedToken(token) {
		return ErrTokenNotFound
	}

	id, err := s.store.ConfirmSubscription(ctx, token)
	switch {
	case errors.Is(err, ErrTokenNotFound):
		return err
	case err != nil:
		return errors.Join(ErrStore, err)
	}

	s.logger.InfoContext(ctx, "subscription confirmed",
		slog.String("subscription_id", id.String()),
		logger.Component("newsletter"),
	)
	return nil
}

func validateIssue(issue Issue) error {
	return validator.Apply(
		validator.RequiredString("title", issue.Title),
		validator.Rule{
			Check: func() bool {
				return strings.TrimSpace(issue.HTML) != "" || strings.TrimSpace(issue.Text) != ""
			},
			Error: validator.ValidationError{
				Field:          "content",
				Message:        "html or text content is required",
				TranslationKey: "validation.required",
				TranslationValues: map[string]any{
					"field": "content",
				},
			},
		},
	)
}

// Publish sends issue to every confirmed subscriber, PublishBatchSize at a
// time. Stored addresses that fail validation are skipped and logged. The
// first batch containing a failed delivery stops publishing; the returned
// Report counts what was done up to that point.
func (s *Service) Publish(ctx context.Context, issue Issue) (Report, error) {
	ctx, span := s.tracer.Start(ctx, "newsletter.publish")
	defer span.End()

	report, err := s.publish(ctx, issue)

	span.SetAttributes(
		attribute.Int("newsletter.delivered", report.Delivered),
		attribute.Int("newsletter.skipped", report.Skipped),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "newsletter publish failed")
	}
	return report, err
}

func (s *Service) publish(ctx context.Context, issue Issue) (Report, error) {
	var report Report

	issue.Title = sanitizer.SingleLine(issue.Title)
	if err := validateIssue(issue); err != nil {
		return report, err
	}

	stored, err := s.store.ConfirmedSubscriberEmails(ctx)
	if err != nil {
		return report, errors.Join(ErrStore, err)
	}

	recipients := make([]string, 0, len(stored))
	for _, raw := range stored {
		addr, err := ParseSubscriberEmail(raw)
		if err != nil {
			report.Skipped++
			s.observe(deliverySkipped)
			s.logger.WarnContext(ctx, "skipping a confirmed subscriber, stored contact details are invalid",
				slog.String("email", sanitizer.MaskEmail(raw)),
				logger.Error(err),
				logger.Component("newsletter"),
			)
			continue
		}
		recipients = append(recipients, addr)
	}

	for start := 0; start < len(recipients); start += s.batchSize {
		batch := recipients[start:min(start+s.batchSize, len(recipients))]

		futures := make([]*async.Future[bool], 0, len(batch))
		for _, addr := range batch {
			futures = append(futures, async.Async(ctx, addr, func(ctx context.Context, to string) (bool, error) {
				return s.deliver(ctx, issue, to)
			}))
		}

		results, err := async.WaitAll(futures...)
		for _, ok := range results {
			if ok {
				report.Delivered++
			}
		}
		if err != nil {
			return report, errors.Join(ErrDelivery, err)
		}
	}

	s.logger.InfoContext(ctx, "newsletter issue published",
		slog.String("title", issue.Title),
		slog.Int("delivered", report.Delivered),
		slog.Int("skipped", report.Skipped),
		logger.Component("newsletter"),
	)
	return report, nil
}

func (s *Service) deliver(ctx context.Context, issue Issue, to string) (bool, error) {
	err := s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   to,
		Subject:  issue.Title,
		BodyHTML: issue.HTML,
		BodyText: issue.Text,
		Tag:      issueTag,
	})
	if err != nil {
		s.observe(deliveryFailed)
		return false, fmt.Errorf("send to %s: %w", sanitizer.MaskEmail(to), err)
	}
	s.observe(deliveryDelivered)
	return true, nil
}

func (s *Service) observe(outcome string) {
	if s.deliveries != nil {
		s.deliveries.WithLabelValues(outcome).Inc()
	}
}
