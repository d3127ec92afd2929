package services

import (
	apperrors "github.com/avunculargroup/avuncular-web/pkg/errors"
)

// OutcomeKind classifies how a submission ended
type OutcomeKind int

const (
	OutcomeSent OutcomeKind = iota
	OutcomeInvalidInput
	OutcomeConfigMissing
	OutcomeProviderFailed
	OutcomeInternal
)

// String is used as the metrics label
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSent:
		return "success"
	case OutcomeInvalidInput:
		return "invalid"
	case OutcomeConfigMissing:
		return "config_missing"
	case OutcomeProviderFailed:
		return "provider_error"
	default:
		return "error"
	}
}

// Outcome is the single result of a submission. Err is nil only for OutcomeSent.
type Outcome struct {
	Kind OutcomeKind
	Err  error
}

// Sent reports whether both messages were accepted by the provider
func (o Outcome) Sent() bool {
	return o.Kind == OutcomeSent
}

// OutcomeFromError classifies err by its fault kind
func OutcomeFromError(err error) Outcome {
	switch {
	case err == nil:
		return Outcome{Kind: OutcomeSent}
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return Outcome{Kind: OutcomeInvalidInput, Err: err}
	case apperrors.Is(err, apperrors.ErrConfigMissing):
		return Outcome{Kind: OutcomeConfigMissing, Err: err}
	case apperrors.Is(err, apperrors.ErrProvider):
		return Outcome{Kind: OutcomeProviderFailed, Err: err}
	default:
		return Outcome{Kind: OutcomeInternal, Err: err}
	}
}
