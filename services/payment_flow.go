package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/Dosada05/football-clinic/metrics"
	"github.com/Dosada05/football-clinic/models"
	"github.com/Dosada05/football-clinic/payments"
	"github.com/Dosada05/football-clinic/repositories"
)

const (
	MsgPaymentInitFailed = "Failed to initialize payment. Please try again."
	MsgPaymentUnexpected = "An unexpected error occurred."

	// PaymentSuccessPath is where the provider sends the payer back after a redirect.
	PaymentSuccessPath = "/payment-success"
	// DefaultCurrency of every trial payment.
	DefaultCurrency = "aed"
	// PendingRegistrationID is sent when payment starts before the registration exists.
	PendingRegistrationID = "pending"
)

// CheckoutState is the outer payment container state.
type CheckoutState string

const (
	CheckoutInvalidAmount CheckoutState = "invalid-amount"
	CheckoutLoading       CheckoutState = "loading"
	CheckoutReady         CheckoutState = "ready"
	CheckoutError         CheckoutState = "error"
)

// PaymentDeps are shared by the controller and the sessions it creates.
type PaymentDeps struct {
	Payments      repositories.PaymentRepository
	Registrations repositories.RegistrationRepository
	Audit         repositories.PaymentAuditRepository
	Notifier      Notifier
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
	Currency      string
	// PublicURL is the site origin used to build the widget return URL.
	PublicURL string
}

func (d *PaymentDeps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func (d *PaymentDeps) currency() string {
	if d.Currency == "" {
		return DefaultCurrency
	}
	return d.Currency
}

// audit records a checkout event. The audit log is a trace only, so a
// failed write is logged and otherwise ignored.
func (d *PaymentDeps) audit(ctx context.Context, entry models.PaymentAuditEntry) {
	if d.Audit == nil {
		return
	}
	if entry.Currency == "" {
		entry.Currency = d.currency()
	}
	if err := d.Audit.Record(context.WithoutCancel(ctx), &entry); err != nil {
		d.logger().Warn("payment audit write failed", "outcome", entry.Outcome, "error", err)
	}
}

// PaymentController creates the payment intent for one amount and holds
// its client secret until the session mounts.
type PaymentController struct {
	deps PaymentDeps

	mu           sync.Mutex
	state        CheckoutState
	amount       int64
	registration models.Registration
	intent       *models.PaymentIntent
}

func NewPaymentController(deps PaymentDeps) *PaymentController {
	return &PaymentController{deps: deps, state: CheckoutLoading}
}

func (c *PaymentController) State() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Intent returns the created intent, or nil before Start succeeds.
func (c *PaymentController) Intent() *models.PaymentIntent {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.intent == nil {
		return nil
	}
	intent := *c.intent
	return &intent
}

// Start issues exactly one create-payment-intent call for a positive amount.
func (c *PaymentController) Start(ctx context.Context, amount int64, reg models.Registration) error {
	c.mu.Lock()
	c.amount = amount
	c.registration = reg
	c.intent = nil
	if amount <= 0 {
		c.state = CheckoutInvalidAmount
		c.mu.Unlock()
		return ErrInvalidAmount
	}
	c.state = CheckoutLoading
	c.mu.Unlock()

	registrationID := reg.ID
	if registrationID == "" {
		registrationID = PendingRegistrationID
	}
	input := models.CreatePaymentIntentInput{
		Amount:   amount,
		Currency: c.deps.currency(),
		Metadata: models.PaymentMetadata{
			PlayerName:     reg.PlayerName(),
			Email:          reg.Email,
			Tournament:     models.PaymentTournamentTag,
			RegistrationID: registrationID,
			PaymentAmount:  strconv.FormatInt(amount, 10),
		},
	}

	intent, err := c.deps.Payments.CreatePaymentIntent(ctx, input)
	if err != nil {
		c.mu.Lock()
		c.state = CheckoutError
		c.mu.Unlock()

		c.deps.logger().Error("payment intent creation failed", "registration_id", reg.ID, "amount", amount, "error", err)
		c.deps.audit(ctx, models.PaymentAuditEntry{
			RegistrationID: reg.ID,
			Outcome:        models.AuditIntentFailed,
			Amount:         amount,
			Message:        err.Error(),
		})
		notifyError(c.deps.Notifier, MsgPaymentInitFailed)
		return fmt.Errorf("%w: %w", ErrPaymentInitFailed, err)
	}

	c.mu.Lock()
	c.intent = intent
	c.state = CheckoutReady
	c.mu.Unlock()

	c.deps.audit(ctx, models.PaymentAuditEntry{
		RegistrationID:  reg.ID,
		PaymentIntentID: intent.ID,
		Outcome:         models.AuditIntentCreated,
		Amount:          amount,
	})
	return nil
}

// NewSession mounts the payment input for the ready intent.
func (c *PaymentController) NewSession(onSuccess func(models.ConfirmedIntent), onCancel func()) (*PaymentSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != CheckoutReady || c.intent == nil {
		return nil, ErrPaymentNotReady
	}
	s := NewPaymentSession(c.deps, c.intent.ClientSecret, c.amount, c.registration)
	s.OnSuccess = onSuccess
	s.OnCancel = onCancel
	return s, nil
}

// PaymentStatus is the inner payment form state.
type PaymentStatus string

const (
	PaymentInput      PaymentStatus = "input"
	PaymentProcessing PaymentStatus = "processing"
	PaymentSucceeded  PaymentStatus = "success"
	PaymentFailed     PaymentStatus = "failed"
)

// PaymentView is a snapshot of a session for rendering.
type PaymentView struct {
	Status          PaymentStatus `json:"status"`
	Amount          int64         `json:"amount"`
	Currency        string        `json:"currency"`
	PaymentIntentID string        `json:"paymentIntentId,omitempty"`
	ErrorMessage    string        `json:"errorMessage,omitempty"`
}

// PaymentSession confirms one intent through the hosted widget.
type PaymentSession struct {
	deps         PaymentDeps
	clientSecret string
	amount       int64
	registration models.Registration

	OnSuccess func(models.ConfirmedIntent)
	OnCancel  func()

	mu       sync.Mutex
	status   PaymentStatus
	errorMsg string
	intent   *models.ConfirmedIntent
}

func NewPaymentSession(deps PaymentDeps, clientSecret string, amount int64, reg models.Registration) *PaymentSession {
	return &PaymentSession{
		deps:         deps,
		clientSecret: clientSecret,
		amount:       amount,
		registration: reg,
		status:       PaymentInput,
	}
}

func (s *PaymentSession) View() PaymentView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *PaymentSession) viewLocked() PaymentView {
	v := PaymentView{
		Status:       s.status,
		Amount:       s.amount,
		Currency:     s.deps.currency(),
		ErrorMessage: s.errorMsg,
	}
	if s.intent != nil {
		v.PaymentIntentID = s.intent.ID
	}
	return v
}

// ConfirmParams are the widget parameters for this site.
func (s *PaymentSession) ConfirmParams() payments.ConfirmParams {
	return payments.ConfirmParams{
		ReturnURL: s.deps.PublicURL + PaymentSuccessPath,
		Redirect:  payments.RedirectIfRequired,
	}
}

// Submit runs one widget confirmation. Only one may be in flight.
func (s *PaymentSession) Submit(ctx context.Context, widget payments.Widget) (PaymentView, error) {
	s.mu.Lock()
	switch s.status {
	case PaymentProcessing:
		s.mu.Unlock()
		return PaymentView{}, ErrPaymentInProgress
	case PaymentInput:
	default:
		v := s.viewLocked()
		s.mu.Unlock()
		return v, ErrPaymentInvalidState
	}
	s.status = PaymentProcessing
	s.errorMsg = ""
	s.mu.Unlock()

	result, err := widget.Confirm(ctx, s.clientSecret, s.ConfirmParams())
	if err != nil {
		s.deps.logger().Error("payment confirmation failed", "registration_id", s.registration.ID, "error", err)
		return s.fail(ctx, "", MsgPaymentUnexpected, err.Error()), nil
	}

	switch {
	case result.Error != nil:
		msg := MsgPaymentUnexpected
		if result.Error.Type == models.ProviderCardError || result.Error.Type == models.ProviderValidationError {
			msg = result.Error.Message
		}
		return s.fail(ctx, result.Error.Type, msg, result.Error.Message), nil

	case result.PaymentIntent != nil && result.PaymentIntent.Status == models.IntentSucceeded:
		pending, err := s.verifyIntent(ctx, result.PaymentIntent.ID)
		if err != nil {
			s.deps.logger().Warn("payment intent not verified",
				"registration_id", s.registration.ID, "payment_intent_id", result.PaymentIntent.ID, "error", err)
			return s.fail(ctx, "unverified", MsgPaymentUnexpected, err.Error()), nil
		}
		if !pending {
			return s.succeed(ctx, *result.PaymentIntent), nil
		}
	}

	// Still pending on the provider side; hand the form back.
	s.mu.Lock()
	s.status = PaymentInput
	v := s.viewLocked()
	s.mu.Unlock()
	s.deps.Metrics.IncPaymentOutcome("pending")
	return v, nil
}

// verifyIntent looks the reported intent up through the payments API. The
// browser result is only trusted once the API agrees on the intent, the
// registration and the amount. pending is true while the API still reports
// a non-final status.
func (s *PaymentSession) verifyIntent(ctx context.Context, intentID string) (pending bool, err error) {
	if intentID == "" || intentIDFromSecret(s.clientSecret) != intentID {
		return false, fmt.Errorf("%w: intent %q does not belong to the client secret", ErrPaymentUnverified, intentID)
	}
	if s.deps.Payments == nil {
		return false, fmt.Errorf("%w: payments API is not configured", ErrPaymentUnverified)
	}

	details, err := s.deps.Payments.GetPaymentStatus(ctx, intentID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrPaymentUnverified, err)
	}
	if details == nil {
		return false, fmt.Errorf("%w: empty payment status", ErrPaymentUnverified)
	}

	wantReg := s.registration.ID
	if wantReg == "" {
		wantReg = PendingRegistrationID
	}
	if got := details.Metadata["registrationId"]; got != wantReg {
		return false, fmt.Errorf("%w: intent belongs to registration %q", ErrPaymentUnverified, got)
	}
	if details.Amount > 0 && int64(math.Round(details.Amount)) != s.amount {
		return false, fmt.Errorf("%w: amount %v does not match %d", ErrPaymentUnverified, details.Amount, s.amount)
	}

	switch models.PaymentIntentStatus(details.Status) {
	case models.IntentSucceeded:
		return false, nil
	case models.IntentProcessing, models.IntentRequiresAction:
		return true, nil
	default:
		return false, fmt.Errorf("%w: intent status is %q", ErrPaymentUnverified, details.Status)
	}
}

// intentIDFromSecret returns the pi_... prefix of a client secret.
func intentIDFromSecret(secret string) string {
	id, _, ok := strings.Cut(secret, "_secret_")
	if !ok {
		return ""
	}
	return id
}

func (s *PaymentSession) fail(ctx context.Context, class, shown, raw string) PaymentView {
	s.mu.Lock()
	s.status = PaymentFailed
	s.errorMsg = shown
	v := s.viewLocked()
	s.mu.Unlock()

	if class == "" {
		class = "unexpected"
	}
	s.deps.Metrics.IncPaymentOutcome(class)
	s.deps.audit(ctx, models.PaymentAuditEntry{
		RegistrationID: s.registration.ID,
		Outcome:        models.AuditPaymentFailed,
		Amount:         s.amount,
		Message:        raw,
	})
	return v
}

func (s *PaymentSession) succeed(ctx context.Context, intent models.ConfirmedIntent) PaymentView {
	s.mu.Lock()
	s.status = PaymentSucceeded
	s.intent = &intent
	v := s.viewLocked()
	s.mu.Unlock()

	s.deps.Metrics.IncPaymentOutcome("succeeded")
	s.deps.logger().Info("payment succeeded", "registration_id", s.registration.ID, "payment_intent_id", intent.ID, "amount", s.amount)
	s.deps.audit(ctx, models.PaymentAuditEntry{
		RegistrationID:  s.registration.ID,
		PaymentIntentID: intent.ID,
		Outcome:         models.AuditPaymentSucceeded,
		Amount:          s.amount,
	})

	if s.registration.ID != "" && s.deps.Registrations != nil {
		s.markPaid(context.WithoutCancel(ctx), intent.ID)
	}
	return v
}

// markPaid flags the registration as paid. Failure never undoes the success.
func (s *PaymentSession) markPaid(ctx context.Context, intentID string) {
	err := s.deps.Registrations.UpdatePayment(ctx, s.registration.ID, models.PaymentUpdate{
		PaymentStatus:         models.PaymentCompleted,
		StripePaymentIntentID: intentID,
	})
	if err == nil {
		return
	}
	s.deps.logger().Error("failed to mark registration as paid",
		"registration_id", s.registration.ID, "payment_intent_id", intentID, "error", err)
	s.deps.audit(ctx, models.PaymentAuditEntry{
		RegistrationID:  s.registration.ID,
		PaymentIntentID: intentID,
		Outcome:         models.AuditStatusPatchFailed,
		Amount:          s.amount,
		Message:         err.Error(),
	})
}

// Retry returns a failed session to the input form.
func (s *PaymentSession) Retry() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != PaymentFailed {
		return ErrPaymentInvalidState
	}
	s.status = PaymentInput
	s.errorMsg = ""
	return nil
}

// Cancel abandons the payment and fires OnCancel.
func (s *PaymentSession) Cancel() error {
	s.mu.Lock()
	switch s.status {
	case PaymentInput, PaymentFailed:
	case PaymentProcessing:
		s.mu.Unlock()
		return ErrPaymentInProgress
	default:
		s.mu.Unlock()
		return ErrPaymentInvalidState
	}
	s.status = PaymentInput
	s.errorMsg = ""
	cb := s.OnCancel
	s.mu.Unlock()

	if cb != nil {
		cb()
	}
	return nil
}

// Continue hands the succeeded intent to OnSuccess and resets the session.
func (s *PaymentSession) Continue() error {
	s.mu.Lock()
	if s.status != PaymentSucceeded || s.intent == nil {
		s.mu.Unlock()
		return ErrPaymentInvalidState
	}
	intent := *s.intent
	s.status = PaymentInput
	s.intent = nil
	cb := s.OnSuccess
	s.mu.Unlock()

	if cb != nil {
		cb(intent)
	}
	return nil
}
