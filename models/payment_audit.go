package models

import "time"

// PaymentAuditOutcome describes what happened at one step of a checkout.
type PaymentAuditOutcome string

const (
	AuditIntentCreated     PaymentAuditOutcome = "intent_created"
	AuditIntentFailed      PaymentAuditOutcome = "intent_failed"
	AuditPaymentSucceeded  PaymentAuditOutcome = "payment_succeeded"
	AuditPaymentFailed     PaymentAuditOutcome = "payment_failed"
	AuditStatusPatchFailed PaymentAuditOutcome = "status_patch_failed"
)

// PaymentAuditEntry is a local, append-only trace of checkout events. It is
// never read back into the workflow; operators use it to reconcile
// registrations whose payment flag could not be patched.
type PaymentAuditEntry struct {
	ID              int64               `json:"id"`
	RegistrationID  string              `json:"registration_id,omitempty"`
	PaymentIntentID string              `json:"payment_intent_id,omitempty"`
	Outcome         PaymentAuditOutcome `json:"outcome"`
	Amount          int64               `json:"amount"`
	Currency        string              `json:"currency"`
	Message         string              `json:"message,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

func (o PaymentAuditOutcome) Valid() bool {
	switch o {
	case AuditIntentCreated, AuditIntentFailed, AuditPaymentSucceeded, AuditPaymentFailed, AuditStatusPatchFailed:
		return true
	}
	return false
}
