package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/football-clinic/live"
	"github.com/Dosada05/football-clinic/models"
	"github.com/Dosada05/football-clinic/repositories"
	"github.com/Dosada05/football-clinic/services"
	"github.com/Dosada05/football-clinic/storage"
	"github.com/Dosada05/football-clinic/web"
)

var errInvalidPage = errors.New("invalid page")

type AdminHandler struct {
	registrations repositories.RegistrationRepository
	broadcaster   services.ChangeBroadcaster
	archive       *storage.Archive
	pages         *web.Renderer
	logger        *slog.Logger
	now           func() time.Time
}

// NewAdminHandler serves the registrations table. broadcaster and archive
// may be nil.
func NewAdminHandler(registrations repositories.RegistrationRepository, broadcaster services.ChangeBroadcaster, archive *storage.Archive, pages *web.Renderer, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		registrations: registrations,
		broadcaster:   broadcaster,
		archive:       archive,
		pages:         pages,
		logger:        logger,
		now:           time.Now,
	}
}

// table builds the admin table for the page, search and status in the query.
func (h *AdminHandler) table(r *http.Request, n services.Notifier) (*services.AdminTable, error) {
	q := r.URL.Query()
	t := services.NewAdminTable(h.registrations, n, h.broadcaster, h.logger)

	if err := t.SetStatusFilter(models.RegistrationStatus(q.Get("status"))); err != nil {
		return nil, err
	}
	t.SetSearch(strings.TrimSpace(q.Get("search")))

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return nil, fmt.Errorf("%w %q", errInvalidPage, raw)
		}
		t.SetPage(page)
	}
	return t, nil
}

func viewWithNotices(t *services.AdminTable, notices *services.NoticeRecorder) services.AdminView {
	v := t.View()
	v.Notices = notices.Notices()
	return v
}

type adminPage struct {
	View           services.AdminView
	Statuses       []models.RegistrationStatus
	ConfirmText    string
	Event          string
	ArchiveEnabled bool
}

var adminStatuses = []models.RegistrationStatus{
	models.RegistrationPending, models.RegistrationConfirmed, models.RegistrationCancelled,
}

// Page renders the admin table with its first load already done.
func (h *AdminHandler) Page(w http.ResponseWriter, r *http.Request) {
	notices := &services.NoticeRecorder{}
	t, err := h.table(r, notices)
	if err != nil {
		t = services.NewAdminTable(h.registrations, notices, h.broadcaster, h.logger)
	}
	// Ошибка загрузки уже попала в уведомления; страница всё равно отображается.
	_ = t.Refresh(r.Context())

	page := adminPage{
		View:           viewWithNotices(t, notices),
		Statuses:       adminStatuses,
		ConfirmText:    services.MsgDeleteConfirm,
		Event:          live.EventRegistrationsChanged,
		ArchiveEnabled: h.archive != nil,
	}
	if err := h.pages.Render(w, http.StatusOK, web.PageAdmin, page); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListRegistrations godoc
// @Summary Список заявок
// @Tags admin
// @Description One page (10 rows) of registrations plus the status overview.
// @Produce json
// @Param page query int false "Page, from 1"
// @Param search query string false "Search text"
// @Param status query string false "pending, confirmed or cancelled"
// @Success 200 {object} map[string]interface{} "view"
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 502 {object} map[string]interface{} "Registrations API rejected the request"
// @Router /api/admin/registrations [get]
func (h *AdminHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	notices := &services.NoticeRecorder{}
	t, err := h.table(r, notices)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := t.Refresh(r.Context()); err != nil {
		serviceErrorResponse(w, r, err, jsonResponse{"view": viewWithNotices(t, notices), "notices": notices.Notices()})
		return
	}
	h.writeView(w, r, t, notices)
}

func (h *AdminHandler) writeView(w http.ResponseWriter, r *http.Request, t *services.AdminTable, notices *services.NoticeRecorder) {
	response := jsonResponse{"view": viewWithNotices(t, notices), "notices": notices.Notices()}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// mutationResult answers a status change or delete. A failed reload after
// a successful mutation is still a success; its notice says what happened.
func (h *AdminHandler) mutationResult(w http.ResponseWriter, r *http.Request, t *services.AdminTable, notices *services.NoticeRecorder, err error) {
	if err != nil && !errors.Is(err, services.ErrListFailed) {
		serviceErrorResponse(w, r, err, jsonResponse{"notices": notices.Notices()})
		return
	}
	h.writeView(w, r, t, notices)
}

type statusInput struct {
	Status models.RegistrationStatus `json:"status"`
}

// UpdateStatus godoc
// @Summary Изменить статус заявки
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Registration ID"
// @Param input body statusInput true "New status"
// @Success 200 {object} map[string]interface{} "view after reload"
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 404 {object} map[string]interface{} "Registration not found"
// @Router /api/admin/registrations/{id}/status [put]
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input statusInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	notices := &services.NoticeRecorder{}
	t, err := h.table(r, notices)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	err = t.UpdateStatus(r.Context(), id, input.Status)
	h.mutationResult(w, r, t, notices, err)
}

// DeleteRegistration godoc
// @Summary Удалить заявку
// @Tags admin
// @Description Requires confirm=true; without it nothing is deleted.
// @Produce json
// @Param id path string true "Registration ID"
// @Param confirm query bool true "Operator confirmed the deletion"
// @Success 200 {object} map[string]interface{} "view after reload"
// @Failure 400 {object} map[string]string "Not confirmed"
// @Failure 404 {object} map[string]interface{} "Registration not found"
// @Router /api/admin/registrations/{id} [delete]
func (h *AdminHandler) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	notices := &services.NoticeRecorder{}
	t, err := h.table(r, notices)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	confirmed := func(context.Context, string) bool {
		ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
		return ok
	}
	err = t.Delete(r.Context(), id, confirmed)
	h.mutationResult(w, r, t, notices, err)
}

// exportCSV loads the requested page and renders it as CSV.
func (h *AdminHandler) exportCSV(r *http.Request) ([]byte, error) {
	t, err := h.table(r, nil)
	if err != nil {
		return nil, err
	}
	if err := t.Refresh(r.Context()); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := t.ExportCSV(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportCSV godoc
// @Summary Выгрузить текущую страницу в CSV
// @Tags admin
// @Description Only the rows of the requested page are exported.
// @Produce text/csv
// @Param page query int false "Page, from 1"
// @Param search query string false "Search text"
// @Param status query string false "Status filter"
// @Success 200 {string} string "tournament-registrations-YYYY-MM-DD.csv"
// @Router /api/admin/registrations/export.csv [get]
func (h *AdminHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.exportCSV(r)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", storage.ContentTypeCSV)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.ExportFilename(h.now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ArchiveExport godoc
// @Summary Сохранить выгрузку в хранилище
// @Tags admin
// @Description Uploads the CSV of the requested page to object storage and returns its public URL.
// @Produce json
// @Success 201 {object} map[string]interface{} "export upload result"
// @Failure 503 {object} map[string]string "Archive storage not configured"
// @Router /api/admin/registrations/export [post]
func (h *AdminHandler) ArchiveExport(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		mapServiceErrorToHTTP(w, r, services.ErrArchiveNotConfigured)
		return
	}

	data, err := h.exportCSV(r)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	res, err := h.archive.StoreExport(r.Context(), services.ExportFilename(h.now()), data)
	if err != nil {
		h.logger.Error("failed to archive export", "error", err)
		serverErrorResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"export": res}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
