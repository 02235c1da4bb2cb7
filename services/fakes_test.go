package services

import (
	"context"
	"sync"

	"github.com/Dosada05/football-clinic/models"
)

type fakeRegistrations struct {
	mu sync.Mutex

	createFn func(reg *models.Registration) (*models.Registration, error)
	listFn   func(filter models.RegistrationFilter) (*models.RegistrationPage, error)
	statsErr error
	mutErr   error
	// block, when set, holds Create until closed.
	block chan struct{}

	created    []*models.Registration
	filters    []models.RegistrationFilter
	statsCalls int
	statuses   map[string]models.RegistrationStatus
	deleted    []string
	payments   map[string]models.PaymentUpdate
}

func newFakeRegistrations() *fakeRegistrations {
	return &fakeRegistrations{
		statuses: map[string]models.RegistrationStatus{},
		payments: map[string]models.PaymentUpdate{},
	}
}

func (f *fakeRegistrations) Create(ctx context.Context, reg *models.Registration) (*models.Registration, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, reg)
	if f.createFn != nil {
		return f.createFn(reg)
	}
	out := *reg
	out.ID = "reg-1"
	out.Status = models.RegistrationPending
	return &out, nil
}

func (f *fakeRegistrations) List(ctx context.Context, filter models.RegistrationFilter) (*models.RegistrationPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	if f.listFn != nil {
		return f.listFn(filter)
	}
	return &models.RegistrationPage{
		Registrations: []models.Registration{},
		Pagination:    models.Pagination{Page: filter.Page, Limit: filter.Limit, TotalPages: 1},
	}, nil
}

func (f *fakeRegistrations) Stats(ctx context.Context) (*models.RegistrationStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsCalls++
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return &models.RegistrationStats{Overview: models.RegistrationOverview{TotalRegistrations: 3}}, nil
}

func (f *fakeRegistrations) UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return f.mutErr
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeRegistrations) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return f.mutErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRegistrations) UpdatePayment(ctx context.Context, id string, update models.PaymentUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments[id] = update
	return f.mutErr
}

type fakePayments struct {
	mu      sync.Mutex
	inputs  []models.CreatePaymentIntentInput
	lookups []string
	err     error
	details *models.PaymentDetails
}

func (f *fakePayments) CreatePaymentIntent(ctx context.Context, input models.CreatePaymentIntentInput) (*models.PaymentIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return &models.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret_abc", Amount: input.Amount, Currency: input.Currency}, nil
}

func (f *fakePayments) GetPaymentStatus(ctx context.Context, id string) (*models.PaymentDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, id)
	if f.err != nil {
		return nil, f.err
	}
	return f.details, nil
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []models.PaymentAuditEntry
}

func (f *fakeAudit) Record(ctx context.Context, entry *models.PaymentAuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAudit) ListRecent(ctx context.Context, limit int) ([]models.PaymentAuditEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.PaymentAuditEntry(nil), f.entries...), nil
}

func (f *fakeAudit) ListByOutcome(ctx context.Context, outcomes []models.PaymentAuditOutcome, limit int) ([]models.PaymentAuditEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PaymentAuditEntry
	for _, e := range f.entries {
		for _, o := range outcomes {
			if e.Outcome == o {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (f *fakeAudit) outcomes() []models.PaymentAuditOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.PaymentAuditOutcome, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.Outcome
	}
	return out
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (b *recordingBroadcaster) RegistrationsChanged(action, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, action+":"+id)
}
