package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Dosada05/football-clinic/metrics"
	"github.com/Dosada05/football-clinic/models"
	"github.com/Dosada05/football-clinic/repositories"
	"github.com/Dosada05/football-clinic/services"
)

// SubmissionKeyHeader identifies one press of the submit button.
const SubmissionKeyHeader = "X-Submission-Key"

type RegistrationHandler struct {
	registrations repositories.RegistrationRepository
	tokens        *services.CheckoutTokens
	inflight      *services.InFlight
	fee           int64
	logger        *slog.Logger
	metrics       *metrics.Metrics
}

// NewRegistrationHandler wires the form endpoint. With fee > 0 a
// successful registration is handed to checkout with a signed token.
func NewRegistrationHandler(registrations repositories.RegistrationRepository, tokens *services.CheckoutTokens, fee int64, logger *slog.Logger, m *metrics.Metrics) *RegistrationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegistrationHandler{
		registrations: registrations,
		tokens:        tokens,
		inflight:      services.NewInFlight(),
		fee:           fee,
		logger:        logger,
		metrics:       m,
	}
}

// Submit godoc
// @Summary Отправить заявку на пробную тренировку
// @Tags registrations
// @Description Validates the draft, resolves the trial date and creates the registration in the registrations API.
// @Accept json
// @Produce json
// @Param X-Submission-Key header string false "Idempotency key of this submit"
// @Param input body models.RegistrationDraft true "Registration draft"
// @Success 201 {object} map[string]interface{} "registration, notice, optional checkoutToken/checkoutUrl"
// @Failure 400 {object} map[string]string "Malformed body"
// @Failure 409 {object} map[string]string "Same submission already in progress"
// @Failure 422 {object} map[string]interface{} "Field errors"
// @Failure 502 {object} map[string]interface{} "Registrations API rejected the submission"
// @Failure 503 {object} map[string]interface{} "Registrations API unreachable"
// @Router /api/registrations [post]
func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if key := r.Header.Get(SubmissionKeyHeader); key != "" {
		release, ok := h.inflight.Acquire(key)
		if !ok {
			conflictResponse(w, r, services.ErrSubmissionInProgress.Error())
			return
		}
		defer release()
	}

	var draft models.RegistrationDraft
	if err := readJSON(w, r, &draft); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	notices := &services.NoticeRecorder{}
	form := services.NewRegistrationForm(h.registrations, notices, h.logger, h.metrics)
	form.Load(draft)

	reg, err := form.Submit(r.Context())
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			failedValidationResponse(w, r, verr.Fields, notices.Last())
			return
		}
		serviceErrorResponse(w, r, err, jsonResponse{"notice": notices.Last()})
		return
	}

	response := jsonResponse{
		"registration": reg,
		"notice":       notices.Last(),
	}
	if h.fee > 0 && h.tokens != nil {
		token, err := h.tokens.Issue(reg, h.fee)
		if err != nil {
			// Регистрация уже создана; оплату можно пройти позже.
			h.logger.Error("failed to issue checkout token", "registration_id", reg.ID, "error", err)
		} else {
			response["checkoutToken"] = token
			response["checkoutUrl"] = "/checkout?token=" + url.QueryEscape(token)
		}
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
