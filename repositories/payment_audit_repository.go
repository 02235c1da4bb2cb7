package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/football-clinic/models"
	"github.com/lib/pq"
)

type PaymentAuditRepository interface {
	Record(ctx context.Context, entry *models.PaymentAuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]models.PaymentAuditEntry, error)
	ListByOutcome(ctx context.Context, outcomes []models.PaymentAuditOutcome, limit int) ([]models.PaymentAuditEntry, error)
}

type postgresPaymentAuditRepository struct {
	db *sql.DB
}

func NewPostgresPaymentAuditRepository(db *sql.DB) PaymentAuditRepository {
	return &postgresPaymentAuditRepository{db: db}
}

func (r *postgresPaymentAuditRepository) Record(ctx context.Context, entry *models.PaymentAuditEntry) error {
	query := `
		INSERT INTO payment_audit (registration_id, payment_intent_id, outcome, amount, currency, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.RegistrationID,
		entry.PaymentIntentID,
		entry.Outcome,
		entry.Amount,
		entry.Currency,
		entry.Message,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment audit entry: %w", err)
	}
	return nil
}

func (r *postgresPaymentAuditRepository) ListRecent(ctx context.Context, limit int) ([]models.PaymentAuditEntry, error) {
	query := `
		SELECT id, registration_id, payment_intent_id, outcome, amount, currency, message, created_at
		FROM payment_audit
		ORDER BY created_at DESC
		LIMIT $1`
	return r.list(ctx, query, limit)
}

// ListByOutcome is mostly used to find status_patch_failed entries.
func (r *postgresPaymentAuditRepository) ListByOutcome(ctx context.Context, outcomes []models.PaymentAuditOutcome, limit int) ([]models.PaymentAuditEntry, error) {
	names := make([]string, len(outcomes))
	for i, o := range outcomes {
		names[i] = string(o)
	}
	query := `
		SELECT id, registration_id, payment_intent_id, outcome, amount, currency, message, created_at
		FROM payment_audit
		WHERE outcome = ANY($2)
		ORDER BY created_at DESC
		LIMIT $1`
	return r.list(ctx, query, limit, pq.Array(names))
}

func (r *postgresPaymentAuditRepository) list(ctx context.Context, query string, limit int, extra ...interface{}) ([]models.PaymentAuditEntry, error) {
	args := append([]interface{}{limit}, extra...)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment audit: %w", err)
	}
	defer rows.Close()

	entries := make([]models.PaymentAuditEntry, 0, limit)
	for rows.Next() {
		var e models.PaymentAuditEntry
		if err := rows.Scan(&e.ID, &e.RegistrationID, &e.PaymentIntentID, &e.Outcome, &e.Amount, &e.Currency, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment audit row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// nopPaymentAuditRepository is used when no database is configured.
type nopPaymentAuditRepository struct{}

func NewNopPaymentAuditRepository() PaymentAuditRepository {
	return nopPaymentAuditRepository{}
}

func (nopPaymentAuditRepository) Record(context.Context, *models.PaymentAuditEntry) error {
	return nil
}

func (nopPaymentAuditRepository) ListRecent(context.Context, int) ([]models.PaymentAuditEntry, error) {
	return []models.PaymentAuditEntry{}, nil
}

func (nopPaymentAuditRepository) ListByOutcome(context.Context, []models.PaymentAuditOutcome, int) ([]models.PaymentAuditEntry, error) {
	return []models.PaymentAuditEntry{}, nil
}
