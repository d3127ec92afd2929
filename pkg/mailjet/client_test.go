package mailjet_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/avunculargroup/avuncular-web/pkg/errors"
	"github.com/avunculargroup/avuncular-web/pkg/httpclient"
	"github.com/avunculargroup/avuncular-web/pkg/mailjet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = mailjet.Credentials{APIKey: "key", APISecret: "secret"}

func testMessages() []mailjet.Message {
	from := mailjet.Address{Email: "web@avunculargroup.com", Name: "Avuncular Group"}
	return []mailjet.Message{
		{
			From:     from,
			To:       []mailjet.Address{{Email: "info@avunculargroup.com", Name: "Avuncular Group"}},
			ReplyTo:  &mailjet.Address{Email: "jo@example.com", Name: "Jo Lee"},
			Subject:  "[Website] Hi",
			HTMLPart: "<p>Hello there</p>",
		},
		{
			From:     from,
			To:       []mailjet.Address{{Email: "jo@example.com", Name: "Jo Lee"}},
			Subject:  "We received your message",
			HTMLPart: "<p>Hi Jo Lee,</p>",
		},
	}
}

func TestClient_Send_Success(t *testing.T) {
	var got struct {
		Messages []map[string]any `json:"Messages"`
	}
	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("key:secret"))
		assert.Equal(t, expected, r.Header.Get("Authorization"))

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Messages":[{"Status":"success"},{"Status":"success"}]}`))
	}))
	defer server.Close()

	client := mailjet.NewClient(server.URL, httpclient.NewStandardClient(time.Second))
	err := client.Send(context.Background(), testCreds, testMessages())

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "[Website] Hi", got.Messages[0]["Subject"])
	assert.Equal(t, map[string]any{"Email": "jo@example.com", "Name": "Jo Lee"}, got.Messages[0]["ReplyTo"])
	assert.NotContains(t, got.Messages[1], "ReplyTo")
}

func TestClient_Send_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ErrorMessage":"API key authentication/authorization failure"}`))
	}))
	defer server.Close()

	client := mailjet.NewClient(server.URL, httpclient.NewStandardClient(time.Second))
	err := client.Send(context.Background(), testCreds, testMessages())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrProvider))

	var apiErr *mailjet.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "authentication/authorization failure")
}

func TestClient_Send_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := mailjet.NewClient(url, httpclient.NewStandardClient(time.Second))
	err := client.Send(context.Background(), testCreds, testMessages())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrProvider))

	var apiErr *mailjet.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestNewClient_DefaultURL(t *testing.T) {
	// A default client must be constructible without a URL
	assert.NotNil(t, mailjet.NewClient("", httpclient.NewStandardClient(0)))
}
