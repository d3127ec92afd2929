package handlers

import (
	"fmt"
	"net/http"

	"github.com/avunculargroup/avuncular-web/internal/models"
	"github.com/avunculargroup/avuncular-web/internal/services"
	apperrors "github.com/avunculargroup/avuncular-web/pkg/errors"
	"github.com/avunculargroup/avuncular-web/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Client-facing messages. Nothing else about a failure reaches the browser.
const (
	MessageUnableToSend  = "Unable to send message"
	MessageConfigMissing = "Email configuration missing"
)

type ContactHandler struct {
	service services.ContactServiceInterface
}

func NewContactHandler(service services.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			outcome := services.OutcomeFromError(fmt.Errorf("contact handler panic: %w", err))
			if outcome.Kind != services.OutcomeInvalidInput {
				outcome = services.Outcome{Kind: services.OutcomeInternal, Err: outcome.Err}
			}
			metrics.ContactFormSubmissions.WithLabelValues(outcome.Kind.String()).Inc()
			h.respond(c, outcome)
		}
	}()

	body, err := c.GetRawData()
	if err != nil {
		// Oversized or truncated bodies cannot be parsed
		outcome := services.OutcomeFromError(apperrors.InvalidInputError("read request body", err))
		metrics.ContactFormSubmissions.WithLabelValues(outcome.Kind.String()).Inc()
		h.respond(c, outcome)
		return
	}

	h.respond(c, h.service.Submit(c.Request.Context(), body))
}

func (h *ContactHandler) respond(c *gin.Context, outcome services.Outcome) {
	switch outcome.Kind {
	case services.OutcomeSent:
		c.JSON(http.StatusOK, models.ContactResponse{OK: true})
	case services.OutcomeInvalidInput:
		respondError(c, http.StatusBadRequest, MessageUnableToSend, outcome.Err)
	case services.OutcomeConfigMissing:
		respondError(c, http.StatusInternalServerError, MessageConfigMissing, outcome.Err)
	case services.OutcomeProviderFailed, services.OutcomeInternal:
		respondError(c, http.StatusInternalServerError, MessageUnableToSend, outcome.Err)
	default:
		respondError(c, http.StatusInternalServerError, MessageUnableToSend,
			fmt.Errorf("unknown outcome %d: %w", outcome.Kind, apperrors.ErrInternal))
	}
}
