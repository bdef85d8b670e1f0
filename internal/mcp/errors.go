package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/visitdesk/internal/domain/review"
	"github.com/rpggio/visitdesk/internal/domain/session"
	"github.com/rpggio/visitdesk/internal/domain/visit"
	"github.com/rpggio/visitdesk/internal/schedule"
)

var (
	// ErrUnknownCustomer is returned when a customer id is not in the directory.
	ErrUnknownCustomer = errors.New("unknown customer")
	// ErrInvalidInput is returned for malformed tool arguments.
	ErrInvalidInput = errors.New("invalid input")
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrUnknownCustomer):
		return &APIError{Code: "UNKNOWN_CUSTOMER", Message: err.Error(), RecoveryHint: "Call list_customers for valid ids"}
	case errors.Is(err, schedule.ErrEmptyInput), errors.Is(err, schedule.ErrUnrecognized):
		return &APIError{Code: "INVALID_SCHEDULE", Message: err.Error(), RecoveryHint: "Use now, YYYY-MM-DD HH:MM or +2d"}
	case errors.Is(err, visit.ErrInvalidMode),
		errors.Is(err, session.ErrInvalidTab),
		errors.Is(err, review.ErrInvalidAction),
		errors.Is(err, ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return nil
	}
}

func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
