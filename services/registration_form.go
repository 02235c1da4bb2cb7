package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/football-clinic/metrics"
	"github.com/Dosada05/football-clinic/models"
	"github.com/Dosada05/football-clinic/repositories"
	"github.com/Dosada05/football-clinic/validation"
)

type FormState string

const (
	FormEditing    FormState = "editing"
	FormSubmitting FormState = "submitting"
	FormClosed     FormState = "closed"
)

const (
	MsgFixFormErrors       = "Please fix the errors in the form before submitting."
	MsgRegistrationSuccess = "Registration submitted successfully! You will receive a confirmation shortly."
	MsgSubmitRejected      = "Failed to submit registration."
	MsgSubmitUnavailable   = "An error occurred while submitting your registration."
)

// RegistrationForm holds one player's draft and drives it through
// editing → submitting → closed. A failed submit returns to editing.
type RegistrationForm struct {
	repo     repositories.RegistrationRepository
	notifier Notifier
	logger   *slog.Logger
	metrics  *metrics.Metrics

	// Now and PickTrialDate are replaceable in tests.
	Now           func() time.Time
	PickTrialDate func(n int) int
	// OnClose is called with the created registration after a successful submit.
	OnClose func(reg *models.Registration)

	mu     sync.Mutex
	state  FormState
	draft  models.RegistrationDraft
	errors validation.FieldErrors
}

func NewRegistrationForm(repo repositories.RegistrationRepository, notifier Notifier, logger *slog.Logger, m *metrics.Metrics) *RegistrationForm {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegistrationForm{
		repo:          repo,
		notifier:      notifier,
		logger:        logger,
		metrics:       m,
		Now:           time.Now,
		PickTrialDate: rand.IntN,
		state:         FormEditing,
		errors:        validation.FieldErrors{},
	}
}

func (f *RegistrationForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *RegistrationForm) Draft() models.RegistrationDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.draft
	d.PreferredLocations = append([]string(nil), f.draft.PreferredLocations...)
	return d
}

// Errors returns a copy of the current per-field messages.
func (f *RegistrationForm) Errors() validation.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(validation.FieldErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// SetField updates one text field of the draft and clears only that
// field's error.
func (f *RegistrationForm) SetField(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	d := &f.draft
	switch field {
	case models.FieldPlayerFirstName:
		d.PlayerFirstName = value
	case models.FieldPlayerLastName:
		d.PlayerLastName = value
	case models.FieldTeamName:
		d.TeamName = value
	case models.FieldDateOfBirth:
		d.DateOfBirth = value
	case models.FieldPlayingPosition:
		d.PlayingPosition = value
	case models.FieldDivisionLastSeason:
		d.DivisionLastSeason = value
	case models.FieldStrengthWeakness:
		d.StrengthWeakness = value
	case models.FieldMobileNumber:
		d.MobileNumber = value
	case models.FieldEmail:
		d.Email = value
	case models.FieldAcademyClub:
		d.AcademyClub = value
	case models.FieldTrialDate:
		d.TrialDate = value
	case models.FieldPreferredLocations:
		d.PreferredLocations = []string{value}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	f.errors.Clear(field)
	return nil
}

// SelectLocation makes id the only preferred location.
func (f *RegistrationForm) SelectLocation(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.PreferredLocations = []string{id}
	f.errors.Clear(models.FieldPreferredLocations)
}

// Load replaces the whole draft, as when a page posts the form in one go.
func (f *RegistrationForm) Load(d models.RegistrationDraft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = d
	f.draft.PreferredLocations = append([]string(nil), d.PreferredLocations...)
	f.errors = validation.FieldErrors{}
}

// Close abandons the form (the Cancel button).
func (f *RegistrationForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormEditing {
		f.state = FormClosed
	}
}

// Submit validates the draft and, when valid, creates the registration.
// At most one Create call is in flight per form.
func (f *RegistrationForm) Submit(ctx context.Context) (*models.Registration, error) {
	f.mu.Lock()
	switch f.state {
	case FormSubmitting:
		f.mu.Unlock()
		return nil, ErrSubmissionInProgress
	case FormClosed:
		f.mu.Unlock()
		return nil, ErrFormClosed
	}

	errs := validation.ValidateRegistration(f.draft)
	f.errors = errs
	if len(errs) > 0 {
		fields := make(validation.FieldErrors, len(errs))
		for k, v := range errs {
			fields[k] = v
		}
		f.mu.Unlock()
		f.metrics.IncSubmission("invalid")
		notifyError(f.notifier, MsgFixFormErrors)
		return nil, &ValidationError{Fields: fields}
	}

	payload := f.buildRegistration()
	f.state = FormSubmitting
	f.mu.Unlock()

	created, err := f.repo.Create(ctx, payload)

	f.mu.Lock()
	if err != nil {
		f.state = FormEditing
		f.mu.Unlock()

		f.metrics.IncSubmission("failed")
		f.logger.Error("registration submit failed", "email", payload.Email, "error", err)
		notifyError(f.notifier, submitErrorMessage(err))
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	f.state = FormClosed
	f.mu.Unlock()

	f.metrics.IncSubmission("created")
	f.logger.Info("registration submitted", "registration_id", created.ID, "trial_date", created.TrialDate)
	notifySuccess(f.notifier, MsgRegistrationSuccess)
	if f.OnClose != nil {
		f.OnClose(created)
	}
	return created, nil
}

// buildRegistration resolves the trial date and attaches the tournament
// metadata. Caller holds f.mu.
func (f *RegistrationForm) buildRegistration() *models.Registration {
	reg := &models.Registration{RegistrationDraft: f.draft}
	reg.PreferredLocations = append([]string(nil), f.draft.PreferredLocations...)

	if strings.TrimSpace(reg.TrialDate) == "" {
		reg.TrialDate = models.TrialDates[f.PickTrialDate(len(models.TrialDates))].Date
	}
	reg.TrialDateLabel = models.RandomlyAssignedLabel
	if td, ok := models.FindTrialDate(reg.TrialDate); ok {
		reg.TrialDateLabel = td.Label
	}

	reg.Tournament = models.PreseasonCup.Name
	reg.CupDates = models.PreseasonCup.CupDates
	reg.Timings = models.PreseasonCup.Timings
	reg.Location = models.PreseasonCup.Location
	reg.RegistrationDate = f.Now().UTC().Truncate(time.Millisecond)
	return reg
}

// submitErrorMessage picks the notice for a failed Create: the API's own
// message when it sent one, a generic text otherwise.
func submitErrorMessage(err error) string {
	if errors.Is(err, repositories.ErrAPIRejected) || errors.Is(err, repositories.ErrNotFound) {
		if msg := repositories.ServerMessage(err); msg != "" {
			return msg
		}
		return MsgSubmitRejected
	}
	return MsgSubmitUnavailable
}
