package services_test

import (
	"context"

	"github.com/avunculargroup/avuncular-web/config"
	"github.com/avunculargroup/avuncular-web/pkg/mailjet"
	"github.com/stretchr/testify/mock"
)

// MockEmailProvider is a mock implementation of services.EmailProvider
type MockEmailProvider struct {
	mock.Mock
}

func (m *MockEmailProvider) Send(ctx context.Context, creds mailjet.Credentials, messages []mailjet.Message) error {
	args := m.Called(ctx, creds, messages)
	return args.Error(0)
}

func validMailjetConfig() config.StaticMailjetSource {
	return config.StaticMailjetSource{
		APIKey:    "key",
		APISecret: "secret",
		FromEmail: "web@avunculargroup.com",
		FromName:  "Avuncular Group",
	}
}

func contactConfig() config.ContactConfig {
	return config.ContactConfig{
		InboxEmail:    "info@avunculargroup.com",
		InboxName:     "Avuncular Group",
		FallbackEmail: "info@avunculargroup.com",
	}
}
