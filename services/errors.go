package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Dosada05/football-clinic/validation"
)

var (
	// Registration form
	ErrValidationFailed     = errors.New("validation failed")
	ErrSubmissionInProgress = errors.New("registration submission already in progress")
	ErrSubmissionFailed     = errors.New("registration submission failed")
	ErrFormClosed           = errors.New("registration form is already closed")
	ErrUnknownField         = errors.New("unknown registration field")

	// Payment flow
	ErrInvalidAmount       = errors.New("payment amount must be positive")
	ErrPaymentInitFailed   = errors.New("failed to initialize payment")
	ErrPaymentNotReady     = errors.New("payment intent is not ready")
	ErrPaymentInProgress   = errors.New("payment confirmation already in progress")
	ErrPaymentInvalidState = errors.New("action not allowed in the current payment state")
	ErrPaymentUnverified   = errors.New("payment could not be verified")

	// Checkout tokens
	ErrCheckoutTokenInvalid = errors.New("checkout token is invalid")
	ErrCheckoutTokenExpired = errors.New("checkout token has expired")

	// Receipts
	ErrPaymentReferenceMissing = errors.New("payment reference is missing")

	// Admin table
	ErrInvalidStatus          = errors.New("invalid registration status")
	ErrRegistrationIDRequired = errors.New("registration id is required")
	ErrDeleteNotConfirmed     = errors.New("registration deletion was not confirmed")
	ErrListFailed             = errors.New("failed to fetch registrations")
	ErrStatusUpdateFailed     = errors.New("failed to update registration status")
	ErrDeleteFailed           = errors.New("failed to delete registration")
	ErrArchiveNotConfigured   = errors.New("export archive storage is not configured")
)

// ValidationError carries the per-field messages of a rejected draft.
type ValidationError struct {
	Fields validation.FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
