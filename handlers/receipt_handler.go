package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Dosada05/football-clinic/models"
	"github.com/Dosada05/football-clinic/services"
	"github.com/Dosada05/football-clinic/storage"
	"github.com/Dosada05/football-clinic/web"
)

type ReceiptHandler struct {
	receipts *services.ReceiptService
	archive  *storage.Archive
	pages    *web.Renderer
	logger   *slog.Logger
	now      func() time.Time
}

// NewReceiptHandler serves the payment-success page. archive may be nil.
func NewReceiptHandler(receipts *services.ReceiptService, archive *storage.Archive, pages *web.Renderer, logger *slog.Logger) *ReceiptHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptHandler{
		receipts: receipts,
		archive:  archive,
		pages:    pages,
		logger:   logger,
		now:      time.Now,
	}
}

type paymentSuccessPage struct {
	TournamentName string
	View           services.ReceiptView
	PaymentID      string
	DownloadURL    string
	ArchiveURL     string
	MailtoURL      string
	HomeURL        string
	ArchiveEnabled bool
}

func referenceQuery(ref string) string {
	return "?payment_intent=" + url.QueryEscape(ref)
}

// Page renders the confirmation page; it is shown even when the payment
// lookup fails.
func (h *ReceiptHandler) Page(w http.ResponseWriter, r *http.Request) {
	view := h.receipts.Load(r.Context(), r.URL.Query())
	now := h.now()

	page := paymentSuccessPage{
		TournamentName: models.PreseasonCup.Name,
		View:           view,
		HomeURL:        services.HomeRoute,
		ArchiveEnabled: h.archive != nil,
	}
	if view.Reference != "" {
		page.DownloadURL = "/payment-success/receipt" + referenceQuery(view.Reference)
		page.ArchiveURL = "/payment-success/receipt/archive" + referenceQuery(view.Reference)
		page.PaymentID = view.Reference
		if view.Details != nil {
			if id := view.Details.Metadata["paymentIntentId"]; id != "" {
				page.PaymentID = id
			}
			page.MailtoURL = services.MailtoURL(view.Details, view.Reference, now)
		}
	}

	if err := h.pages.Render(w, http.StatusOK, web.PagePaymentSuccess, page); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DownloadReceipt godoc
// @Summary Скачать квитанцию
// @Tags receipts
// @Description Plain-text receipt for the payment in ?payment_intent=.
// @Produce plain
// @Param payment_intent query string true "Payment intent id"
// @Success 200 {string} string "payment-receipt-<unix ms>.txt"
// @Router /payment-success/receipt [get]
func (h *ReceiptHandler) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
	view := h.receipts.Load(r.Context(), r.URL.Query())
	now := h.now()

	w.Header().Set("Content-Type", storage.ContentTypeText)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.ReceiptFilename(now)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(services.ReceiptText(view.Details, view.Reference, now)))
}

// ArchiveReceipt godoc
// @Summary Сохранить копию квитанции
// @Tags receipts
// @Description Uploads the receipt to object storage and returns its public URL.
// @Produce json
// @Param payment_intent query string true "Payment intent id"
// @Success 201 {object} map[string]interface{} "receipt upload result"
// @Failure 400 {object} map[string]string "Missing payment reference"
// @Failure 503 {object} map[string]string "Archive storage not configured"
// @Router /payment-success/receipt/archive [post]
func (h *ReceiptHandler) ArchiveReceipt(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		mapServiceErrorToHTTP(w, r, services.ErrArchiveNotConfigured)
		return
	}

	view := h.receipts.Load(r.Context(), r.URL.Query())
	if view.Reference == "" {
		mapServiceErrorToHTTP(w, r, services.ErrPaymentReferenceMissing)
		return
	}

	now := h.now()
	body := services.ReceiptText(view.Details, view.Reference, now)
	res, err := h.archive.StoreReceipt(r.Context(), services.ReceiptFilename(now), []byte(body))
	if err != nil {
		h.logger.Error("failed to archive receipt", "payment_intent_id", view.Reference, "error", err)
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"receipt": res, "notice": view.Notice}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
