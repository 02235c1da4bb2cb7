package models

// PaymentIntentStatus mirrors the provider-side status of a payment intent.
// Anything that is neither succeeded nor failed is treated as pending.
type PaymentIntentStatus string

const (
	IntentSucceeded      PaymentIntentStatus = "succeeded"
	IntentFailed         PaymentIntentStatus = "failed"
	IntentProcessing     PaymentIntentStatus = "processing"
	IntentRequiresAction PaymentIntentStatus = "requires_action"
)

// PaymentIntent is the local mirror of a provider-owned intent. Card data
// never passes through here.
type PaymentIntent struct {
	ID           string              `json:"id"`
	ClientSecret string              `json:"-"`
	Amount       int64               `json:"amount"`
	Currency     string              `json:"currency"`
	Status       PaymentIntentStatus `json:"status"`
	ErrorMessage string              `json:"error_message,omitempty"`
}

// PaymentMetadata is attached to a create-payment-intent request.
type PaymentMetadata struct {
	PlayerName     string `json:"playerName"`
	Email          string `json:"email"`
	Tournament     string `json:"tournament"`
	RegistrationID string `json:"registrationId"`
	PaymentAmount  string `json:"paymentAmount"`
}

type CreatePaymentIntentInput struct {
	Amount   int64           `json:"amount"`
	Currency string          `json:"currency"`
	Metadata PaymentMetadata `json:"metadata"`
}

// PaymentDetails is what the payment-status endpoint reports. Metadata is
// kept loose because the API echoes whatever the intent carries.
type PaymentDetails struct {
	Amount   float64           `json:"amount"`
	Status   string            `json:"status"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

// PaymentUpdate marks a registration as paid.
type PaymentUpdate struct {
	PaymentStatus         PaymentStatus `json:"paymentStatus"`
	StripePaymentIntentID string        `json:"stripePaymentIntentId"`
}

// Provider error classes that carry a message safe to show the payer.
const (
	ProviderCardError       = "card_error"
	ProviderValidationError = "validation_error"
)

// ConfirmError is the error half of a hosted widget confirmation result.
type ConfirmError struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ConfirmedIntent is the intent half of a confirmation result.
type ConfirmedIntent struct {
	ID     string              `json:"id"`
	Status PaymentIntentStatus `json:"status"`
}

// ConfirmResult has the shape emitted by the hosted widget: either Error
// or PaymentIntent is set.
type ConfirmResult struct {
	Error         *ConfirmError    `json:"error,omitempty"`
	PaymentIntent *ConfirmedIntent `json:"paymentIntent,omitempty"`
}
