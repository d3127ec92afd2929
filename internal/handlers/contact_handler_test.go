package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avunculargroup/avuncular-web/config"
	"github.com/avunculargroup/avuncular-web/internal/middleware"
	"github.com/avunculargroup/avuncular-web/internal/services"
	apperrors "github.com/avunculargroup/avuncular-web/pkg/errors"
	"github.com/avunculargroup/avuncular-web/pkg/mailjet"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockContactService struct {
	mock.Mock
}

func (m *mockContactService) Submit(ctx context.Context, body []byte) services.Outcome {
	args := m.Called(ctx, body)
	return args.Get(0).(services.Outcome)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Send(ctx context.Context, creds mailjet.Credentials, messages []mailjet.Message) error {
	args := m.Called(ctx, creds, messages)
	return args.Error(0)
}

func newContactRouter(service services.ContactServiceInterface) *gin.Engine {
	router := gin.New()
	router.POST("/api/contact", middleware.BodySizeLimitMiddleware(middleware.ContactBodyLimit), NewContactHandler(service).Submit)
	return router
}

func postContact(router http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestContactHandler_OutcomeMapping(t *testing.T) {
	tests := []struct {
		name       string
		outcome    services.Outcome
		wantStatus int
		wantBody   string
	}{
		{
			name:       "sent",
			outcome:    services.Outcome{Kind: services.OutcomeSent},
			wantStatus: http.StatusOK,
			wantBody:   `{"ok":true}`,
		},
		{
			name:       "invalid input",
			outcome:    services.Outcome{Kind: services.OutcomeInvalidInput, Err: apperrors.ErrInvalidInput},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Unable to send message"}`,
		},
		{
			name:       "configuration missing",
			outcome:    services.Outcome{Kind: services.OutcomeConfigMissing, Err: apperrors.ErrConfigMissing},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Email configuration missing"}`,
		},
		{
			name:       "provider failed",
			outcome:    services.Outcome{Kind: services.OutcomeProviderFailed, Err: apperrors.ErrProvider},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Unable to send message"}`,
		},
		{
			name:       "internal",
			outcome:    services.Outcome{Kind: services.OutcomeInternal, Err: apperrors.ErrInternal},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Unable to send message"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockContactService)
			service.On("Submit", mock.Anything, []byte(`{"name":"Jo"}`)).Return(tt.outcome).Once()

			w := postContact(newContactRouter(service), `{"name":"Jo"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			service.AssertExpectations(t)
		})
	}
}

func TestContactHandler_PanicIsInternalError(t *testing.T) {
	service := new(mockContactService)
	service.On("Submit", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("unexpected")
	}).Return(services.Outcome{})

	w := postContact(newContactRouter(service), `{}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Unable to send message"}`, w.Body.String())
}

func TestContactHandler_PanicWithValidationFaultIsBadRequest(t *testing.T) {
	service := new(mockContactService)
	service.On("Submit", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic(apperrors.InvalidInputError("decode", nil))
	}).Return(services.Outcome{})

	w := postContact(newContactRouter(service), `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Unable to send message"}`, w.Body.String())
}

func TestContactHandler_OversizedBody(t *testing.T) {
	service := new(mockContactService)

	body := `{"name":"` + strings.Repeat("a", int(middleware.ContactBodyLimit)) + `"}`
	w := postContact(newContactRouter(service), body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Unable to send message"}`, w.Body.String())
	service.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

// End to end through the real service with a stubbed provider

func newPipelineRouter(source config.MailjetSource, provider services.EmailProvider) *gin.Engine {
	contact := config.ContactConfig{
		InboxEmail:    "info@avunculargroup.com",
		InboxName:     "Avuncular Group",
		FallbackEmail: "info@avunculargroup.com",
	}
	return newContactRouter(services.NewContactService(contact, source, provider))
}

func validSource() config.StaticMailjetSource {
	return config.StaticMailjetSource{
		APIKey:    "key",
		APISecret: "secret",
		FromEmail: "web@avunculargroup.com",
		FromName:  "Avuncular Group",
	}
}

func TestContactPipeline_Delivered(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Send", mock.Anything, mock.Anything, mock.MatchedBy(func(msgs []mailjet.Message) bool {
		return len(msgs) == 2 &&
			msgs[0].To[0].Email == "info@avunculargroup.com" &&
			msgs[0].Subject == "[Website] Hi" &&
			msgs[1].To[0].Email == "jo@example.com"
	})).Return(nil).Once()

	w := postContact(newPipelineRouter(validSource(), provider),
		`{"name":"Jo Lee","email":"jo@example.com","subject":"Hi","message":"Hello there"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	provider.AssertExpectations(t)
	provider.AssertNumberOfCalls(t, "Send", 1)
}

func TestContactPipeline_InvalidSubmission(t *testing.T) {
	provider := new(mockProvider)

	w := postContact(newPipelineRouter(validSource(), provider),
		`{"name":"A","email":"not-an-email","subject":"","message":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Unable to send message"}`, w.Body.String())
	provider.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestContactPipeline_SecretUnset(t *testing.T) {
	provider := new(mockProvider)
	source := validSource()
	source.APISecret = ""

	w := postContact(newPipelineRouter(source, provider),
		`{"name":"Jo Lee","email":"jo@example.com","subject":"Hi","message":"Hello there"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Email configuration missing"}`, w.Body.String())
	provider.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestContactPipeline_ProviderRejects(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Send", mock.Anything, mock.Anything, mock.Anything).
		Return(&mailjet.APIError{StatusCode: 500, Body: "upstream"}).Once()

	w := postContact(newPipelineRouter(validSource(), provider),
		`{"name":"Jo Lee","email":"jo@example.com","subject":"Hi","message":"Hello there"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Unable to send message"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "upstream")
}
