package services

import (
	"context"
)

// ContactServiceInterface defines the interface for contact service operations
type ContactServiceInterface interface {
	Submit(ctx context.Context, body []byte) Outcome
}

var _ ContactServiceInterface = (*ContactService)(nil)
