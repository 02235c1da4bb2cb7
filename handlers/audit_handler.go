package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dosada05/football-clinic/models"
	"github.com/Dosada05/football-clinic/repositories"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditHandler struct {
	audit  repositories.PaymentAuditRepository
	logger *slog.Logger
}

func NewAuditHandler(audit repositories.PaymentAuditRepository, logger *slog.Logger) *AuditHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditHandler{audit: audit, logger: logger}
}

// ListPaymentAudit godoc
// @Summary Журнал платежей
// @Tags admin
// @Description Latest checkout events, newest first. Use outcome=status_patch_failed to find paid registrations whose flag was not updated.
// @Produce json
// @Param outcome query string false "Comma-separated outcomes"
// @Param limit query int false "Max entries (default 50, max 200)"
// @Success 200 {object} map[string]interface{} "entries"
// @Failure 400 {object} map[string]string "Invalid outcome or limit"
// @Router /api/admin/payment-audit [get]
func (h *AuditHandler) ListPaymentAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := defaultAuditLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequestResponse(w, r, fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = min(n, maxAuditLimit)
	}

	var outcomes []models.PaymentAuditOutcome
	for _, part := range strings.Split(q.Get("outcome"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		o := models.PaymentAuditOutcome(part)
		if !o.Valid() {
			badRequestResponse(w, r, fmt.Errorf("invalid outcome %q", part))
			return
		}
		outcomes = append(outcomes, o)
	}

	var (
		entries []models.PaymentAuditEntry
		err     error
	)
	if len(outcomes) > 0 {
		entries, err = h.audit.ListByOutcome(r.Context(), outcomes, limit)
	} else {
		entries, err = h.audit.ListRecent(r.Context(), limit)
	}
	if err != nil {
		h.logger.Error("failed to list payment audit", "error", err)
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"entries": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
