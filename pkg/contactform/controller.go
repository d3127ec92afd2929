// Package contactform is the client side of the contact pipeline: it checks
// the four fields against the client schema, posts them as JSON to the
// submission endpoint and turns the outcome into a user notification.
package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/avunculargroup/avuncular-web/pkg/httpclient"
	"github.com/avunculargroup/avuncular-web/pkg/logger"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrSubmitInFlight is returned while a previous submission is still pending
var ErrSubmitInFlight = errors.New("contact form submission already in flight")

// Variant styles a notification
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is the toast shown after a submission attempt
type Notification struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// SuccessNotification is shown when the endpoint accepted the submission
func SuccessNotification() Notification {
	return Notification{
		Title:       "Message sent",
		Description: "We’ll be in touch shortly.",
		Variant:     VariantDefault,
	}
}

// FailureNotification names the address to use when the form cannot deliver
func FailureNotification(fallbackEmail string) Notification {
	return Notification{
		Title:       "Something went wrong",
		Description: fmt.Sprintf("Please try again or email %s.", fallbackEmail),
		Variant:     VariantDestructive,
	}
}

// Result is what the form shows after Submit returns. Values holds the field
// contents to display next: empty after success, untouched otherwise.
type Result struct {
	Submitted    bool
	FieldErrors  FieldErrors
	Notification *Notification
	Values       Values
}

// Controller submits contact forms to one endpoint
type Controller struct {
	endpoint      string
	fallbackEmail string
	httpClient    httpclient.Client
	validate      *validator.Validate
	inFlight      atomic.Bool
}

// NewController creates a controller posting to endpoint
func NewController(endpoint, fallbackEmail string, httpClient httpclient.Client) *Controller {
	return &Controller{
		endpoint:      endpoint,
		fallbackEmail: fallbackEmail,
		httpClient:    httpClient,
		validate:      validator.New(),
	}
}

// Validate applies the client schema. A nil result means every field passed.
func (c *Controller) Validate(values Values) FieldErrors {
	return validate(c.validate, values)
}

// InFlight reports whether a submission is pending
func (c *Controller) InFlight() bool {
	return c.inFlight.Load()
}

// Submit validates and, if valid, posts values once. The only error returned
// is ErrSubmitInFlight; delivery failures are reported via the notification.
func (c *Controller) Submit(ctx context.Context, values Values) (Result, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return Result{Values: values}, ErrSubmitInFlight
	}
	defer c.inFlight.Store(false)

	if errs := c.Validate(values); errs != nil {
		return Result{FieldErrors: errs, Values: values}, nil
	}

	if err := c.post(ctx, values); err != nil {
		logger.Warn("Contact form submission failed", zap.String("endpoint", c.endpoint), zap.Error(err))
		failure := FailureNotification(c.fallbackEmail)
		return Result{Notification: &failure, Values: values}, nil
	}

	success := SuccessNotification()
	return Result{Submitted: true, Notification: &success, Values: Values{}}, nil
}

func (c *Controller) post(ctx context.Context, values Values) error {
	body, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("endpoint responded with status %d", resp.StatusCode)
	}
	return nil
}
