// Package mailjet sends transactional email through the Mailjet v3.1 send API.
//
// Every call is a single batched request: Mailjet either accepts the whole
// batch (2xx) or the call is a failure. There is no per-message retry.
package mailjet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/avunculargroup/avuncular-web/pkg/errors"
	"github.com/avunculargroup/avuncular-web/pkg/httpclient"
	"github.com/avunculargroup/avuncular-web/pkg/logger"
	"github.com/avunculargroup/avuncular-web/pkg/metrics"
	"github.com/avunculargroup/avuncular-web/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DefaultSendURL is the v3.1 batch send endpoint
const DefaultSendURL = "https://api.mailjet.com/v3.1/send"

const (
	providerName = "mailjet"
	maxErrorBody = 64 * 1024
)

// Credentials are the API key pair used for HTTP Basic auth
type Credentials struct {
	APIKey    string
	APISecret string
}

// Address is an email/name pair
type Address struct {
	Email string `json:"Email"`
	Name  string `json:"Name,omitempty"`
}

// Message is one entry of the Messages batch
type Message struct {
	From     Address   `json:"From"`
	To       []Address `json:"To"`
	ReplyTo  *Address  `json:"ReplyTo,omitempty"`
	Subject  string    `json:"Subject"`
	HTMLPart string    `json:"HTMLPart"`
	TextPart string    `json:"TextPart,omitempty"`
	CustomID string    `json:"CustomID,omitempty"`
}

type sendRequest struct {
	Messages []Message `json:"Messages"`
}

// APIError is returned when Mailjet answers with a non-2xx status
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mailjet request failed with status %d", e.StatusCode)
}

// Unwrap lets callers match the generic provider fault
func (e *APIError) Unwrap() error {
	return apperrors.ErrProvider
}

// Client talks to the send endpoint
type Client struct {
	sendURL    string
	httpClient httpclient.Client
}

// NewClient creates a Mailjet client. An empty sendURL uses DefaultSendURL.
func NewClient(sendURL string, httpClient httpclient.Client) *Client {
	if sendURL == "" {
		sendURL = DefaultSendURL
	}
	return &Client{
		sendURL:    sendURL,
		httpClient: httpClient,
	}
}

// Send delivers all messages in one request. Any non-2xx status yields an
// *APIError; transport failures are wrapped with ErrProvider.
func (c *Client) Send(ctx context.Context, creds Credentials, messages []Message) (err error) {
	ctx, span := tracing.StartSpan(ctx, "mailjet.send", attribute.Int("mailjet.messages", len(messages)))
	defer func() { tracing.EndSpan(span, err) }()

	payload, err := json.Marshal(sendRequest{Messages: messages})
	if err != nil {
		return apperrors.InternalError("encode mailjet payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sendURL, bytes.NewReader(payload))
	if err != nil {
		return apperrors.InternalError("build mailjet request", err)
	}
	req.SetBasicAuth(creds.APIKey, creds.APISecret)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		c.record(ctx, "error", duration, len(messages), zap.Error(err))
		return fmt.Errorf("%w: send: %w", apperrors.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.record(ctx, "error", duration, len(messages),
			zap.Int("status_code", resp.StatusCode),
			zap.String("response_body", string(body)))
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	c.record(ctx, "success", duration, len(messages), zap.Int("status_code", resp.StatusCode))
	return nil
}

func (c *Client) record(ctx context.Context, status string, duration float64, count int, fields ...zap.Field) {
	metrics.EmailProviderRequestDuration.WithLabelValues(providerName, "send", status).Observe(duration)
	metrics.EmailProviderRequestTotal.WithLabelValues(providerName, "send", status).Inc()
	metrics.EmailMessagesSent.WithLabelValues(providerName, status).Add(float64(count))

	fields = append(fields, zap.Int("messages", count))
	logger.LogAPICall(ctx, providerName, "send", status, duration, fields...)
}
