package services

import (
	"context"
	"encoding/json"

	"github.com/avunculargroup/avuncular-web/config"
	"github.com/avunculargroup/avuncular-web/internal/models"
	apperrors "github.com/avunculargroup/avuncular-web/pkg/errors"
	"github.com/avunculargroup/avuncular-web/pkg/logger"
	"github.com/avunculargroup/avuncular-web/pkg/mailjet"
	"github.com/avunculargroup/avuncular-web/pkg/metrics"
	"github.com/avunculargroup/avuncular-web/pkg/tracing"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EmailProvider delivers a batch of messages in one call
type EmailProvider interface {
	Send(ctx context.Context, creds mailjet.Credentials, messages []mailjet.Message) error
}

// ContactService relays contact form submissions to the email provider
type ContactService struct {
	contact  config.ContactConfig
	source   config.MailjetSource
	provider EmailProvider
	validate *validator.Validate
}

// NewContactService creates a new contact service instance
func NewContactService(contact config.ContactConfig, source config.MailjetSource, provider EmailProvider) *ContactService {
	// Same tag gin uses, so models keep one set of rules
	v := validator.New()
	v.SetTagName("binding")

	return &ContactService{
		contact:  contact,
		source:   source,
		provider: provider,
		validate: v,
	}
}

// Submit runs the pipeline for one raw JSON body: parse, validate, load
// delivery configuration, compose, dispatch. Exactly one Outcome is returned
// and the provider is contacted at most once.
func (s *ContactService) Submit(ctx context.Context, body []byte) Outcome {
	ctx, span := tracing.StartSpan(ctx, "contact.submit")

	outcome := OutcomeFromError(s.submit(ctx, body))
	tracing.EndSpan(span, outcome.Err)

	metrics.ContactFormSubmissions.WithLabelValues(outcome.Kind.String()).Inc()
	s.logOutcome(ctx, outcome)
	return outcome
}

func (s *ContactService) submit(ctx context.Context, body []byte) error {
	sub, err := s.Parse(body)
	if err != nil {
		return err
	}
	if err := s.Validate(sub); err != nil {
		return err
	}

	mj, err := s.loadMailjet()
	if err != nil {
		return err
	}

	composer := Composer{
		From:  models.EmailAddress{Email: mj.FromEmail, Name: mj.FromName},
		Inbox: models.EmailAddress{Email: s.contact.InboxEmail, Name: s.contact.InboxName},
	}
	messages, err := composer.Compose(sub)
	if err != nil {
		return err
	}

	// Tags both messages so provider events can be matched to this log line
	submissionID := uuid.New().String()
	logger.Debug("Dispatching contact submission",
		append(logger.ContextFields(ctx), zap.String("submission_id", submissionID))...)

	creds := mailjet.Credentials{APIKey: mj.APIKey, APISecret: mj.APISecret}
	return s.provider.Send(ctx, creds, toMailjet(messages, submissionID))
}

// Parse decodes a submission. Malformed JSON is invalid input.
func (s *ContactService) Parse(body []byte) (*models.ContactSubmission, error) {
	var sub models.ContactSubmission
	if err := json.Unmarshal(body, &sub); err != nil {
		return nil, apperrors.InvalidInputError("decode submission", err)
	}
	return &sub, nil
}

// Validate applies the authoritative schema. It has no side effects, so a
// valid submission stays valid however often it is checked.
func (s *ContactService) Validate(sub *models.ContactSubmission) error {
	if err := s.validate.Struct(sub); err != nil {
		return apperrors.InvalidInputError("validate submission", err)
	}
	return nil
}

func (s *ContactService) loadMailjet() (config.MailjetConfig, error) {
	mj := s.source.Mailjet()
	if missing := mj.Missing(); len(missing) > 0 {
		return mj, apperrors.ConfigMissingError(missing...)
	}
	if mj.FromName == "" {
		mj.FromName = config.DefaultFromName
	}
	return mj, nil
}

func (s *ContactService) logOutcome(ctx context.Context, outcome Outcome) {
	fields := append(logger.ContextFields(ctx), zap.String("outcome", outcome.Kind.String()))

	switch outcome.Kind {
	case OutcomeSent:
		logger.Info("Contact submission delivered", fields...)
	case OutcomeInvalidInput:
		logger.Warn("Contact submission rejected", append(fields, zap.Error(outcome.Err))...)
	case OutcomeConfigMissing:
		logger.Error("Mailjet configuration missing", append(fields, zap.Error(outcome.Err))...)
	case OutcomeProviderFailed:
		var apiErr *mailjet.APIError
		if apperrors.As(outcome.Err, &apiErr) {
			fields = append(fields,
				zap.Int("status_code", apiErr.StatusCode),
				zap.String("response_body", apiErr.Body))
		}
		logger.Error("Mailjet error", append(fields, zap.Error(outcome.Err))...)
	default:
		logger.Error("Contact form error", append(fields, zap.Error(outcome.Err))...)
	}
}

func toMailjet(messages []models.OutboundEmailMessage, submissionID string) []mailjet.Message {
	out := make([]mailjet.Message, 0, len(messages))
	for _, m := range messages {
		msg := mailjet.Message{
			From:     mailjet.Address{Email: m.From.Email, Name: m.From.Name},
			To:       []mailjet.Address{{Email: m.To.Email, Name: m.To.Name}},
			Subject:  m.Subject,
			HTMLPart: m.HTMLBody,
			CustomID: "contact-" + submissionID,
		}
		if m.ReplyTo != nil {
			msg.ReplyTo = &mailjet.Address{Email: m.ReplyTo.Email, Name: m.ReplyTo.Name}
		}
		out = append(out, msg)
	}
	return out
}
