package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/football-clinic/models"
	"github.com/Dosada05/football-clinic/repositories"
)

// AdminPageSize is the fixed number of rows per admin page.
const AdminPageSize = 10

const (
	MsgListRejected    = "Failed to fetch registrations"
	MsgListUnavailable = "Error fetching registrations"
	MsgStatusUpdated   = "Status updated successfully"
	MsgStatusRejected  = "Failed to update status"
	MsgStatusError     = "Error updating status"
	MsgDeleted         = "Registration deleted successfully"
	MsgDeleteRejected  = "Failed to delete registration"
	MsgDeleteError     = "Error deleting registration"
	MsgDeleteConfirm   = "Are you sure you want to delete this registration?"
	csvDateLayout      = "1/2/2006"
	csvFileDateLayout  = "2006-01-02"
)

// ConfirmFunc asks the operator to confirm deleting the registration id.
type ConfirmFunc func(ctx context.Context, id string) bool

// ChangeBroadcaster is told about every successful admin mutation.
type ChangeBroadcaster interface {
	RegistrationsChanged(action, id string)
}

// AdminView is a snapshot of the admin table.
type AdminView struct {
	Rows        []models.Registration     `json:"rows"`
	Page        int                       `json:"page"`
	TotalPages  int                       `json:"totalPages"`
	Search      string                    `json:"search"`
	Status      models.RegistrationStatus `json:"status"`
	Stats       *models.RegistrationStats `json:"stats,omitempty"`
	Loading     bool                      `json:"loading"`
	HasPrev     bool                      `json:"hasPrev"`
	HasNext     bool                      `json:"hasNext"`
	ShowSpinner bool                      `json:"showSpinner"`
	Notices     []Notice                  `json:"notices,omitempty"`
}

// AdminTable is the paginated, filterable registrations table.
type AdminTable struct {
	repo        repositories.RegistrationRepository
	notifier    Notifier
	broadcaster ChangeBroadcaster
	logger      *slog.Logger

	mu         sync.Mutex
	page       int
	totalPages int
	search     string
	status     models.RegistrationStatus
	rows       []models.Registration
	stats      *models.RegistrationStats
	loading    bool
}

func NewAdminTable(repo repositories.RegistrationRepository, notifier Notifier, broadcaster ChangeBroadcaster, logger *slog.Logger) *AdminTable {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminTable{
		repo:        repo,
		notifier:    notifier,
		broadcaster: broadcaster,
		logger:      logger,
		page:        1,
		totalPages:  1,
	}
}

func (t *AdminTable) View() AdminView {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows := make([]models.Registration, len(t.rows))
	copy(rows, t.rows)
	return AdminView{
		Rows:        rows,
		Page:        t.page,
		TotalPages:  t.totalPages,
		Search:      t.search,
		Status:      t.status,
		Stats:       t.stats,
		Loading:     t.loading,
		HasPrev:     t.page > 1,
		HasNext:     t.page < t.totalPages,
		ShowSpinner: t.loading && len(t.rows) == 0,
	}
}

func (t *AdminTable) HasPrev() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page > 1
}

func (t *AdminTable) HasNext() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page < t.totalPages
}

// ShowSpinner is true only while loading an empty table.
func (t *AdminTable) ShowSpinner() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading && len(t.rows) == 0
}

func (t *AdminTable) SetPage(page int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if page < 1 {
		page = 1
	}
	t.page = page
}

func (t *AdminTable) PrevPage() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.page = max(1, t.page-1)
}

func (t *AdminTable) NextPage() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.page = min(t.totalPages, t.page+1)
}

// SetSearch changes the search text and goes back to page 1.
func (t *AdminTable) SetSearch(search string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.search = search
	t.page = 1
}

// SetStatusFilter changes the status filter and goes back to page 1. An
// empty status means all.
func (t *AdminTable) SetStatusFilter(status models.RegistrationStatus) error {
	if status != "" && !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = status
	t.page = 1
	return nil
}

// Refresh loads the current page and the stats together. Stats are
// best-effort; only a list failure is reported.
func (t *AdminTable) Refresh(ctx context.Context) error {
	t.mu.Lock()
	filter := models.RegistrationFilter{
		Page:   t.page,
		Limit:  AdminPageSize,
		Search: t.search,
		Status: t.status,
	}
	t.loading = true
	t.mu.Unlock()

	var (
		page     *models.RegistrationPage
		stats    *models.RegistrationStats
		statsErr error
		g        errgroup.Group
	)
	g.Go(func() error {
		var err error
		page, err = t.repo.List(ctx, filter)
		return err
	})
	g.Go(func() error {
		stats, statsErr = t.repo.Stats(ctx)
		return nil
	})
	listErr := g.Wait()

	t.mu.Lock()
	t.loading = false
	if listErr == nil {
		t.rows = page.Registrations
		t.totalPages = max(1, page.Pagination.TotalPages)
	}
	if statsErr == nil {
		t.stats = stats
	}
	t.mu.Unlock()

	if statsErr != nil {
		t.logger.Warn("failed to fetch registration stats", "error", statsErr)
	}
	if listErr != nil {
		t.logger.Error("failed to fetch registrations", "page", filter.Page, "status", filter.Status, "error", listErr)
		notifyError(t.notifier, pickMessage(listErr, MsgListRejected, MsgListUnavailable))
		return fmt.Errorf("%w: %w", ErrListFailed, listErr)
	}
	return nil
}

// UpdateStatus changes one registration's status and reloads the table.
func (t *AdminTable) UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) error {
	if id == "" {
		return ErrRegistrationIDRequired
	}
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if err := t.repo.UpdateStatus(ctx, id, status); err != nil {
		t.logger.Error("failed to update registration status", "registration_id", id, "status", status, "error", err)
		notifyError(t.notifier, pickMessage(err, MsgStatusRejected, MsgStatusError))
		return fmt.Errorf("%w: %w", ErrStatusUpdateFailed, err)
	}

	notifySuccess(t.notifier, MsgStatusUpdated)
	t.broadcast("status_updated", id)
	return t.Refresh(ctx)
}

// Delete removes a registration after confirm agrees. A declined or
// missing confirmation issues no request.
func (t *AdminTable) Delete(ctx context.Context, id string, confirm ConfirmFunc) error {
	if id == "" {
		return ErrRegistrationIDRequired
	}
	if confirm == nil || !confirm(ctx, id) {
		return ErrDeleteNotConfirmed
	}

	if err := t.repo.Delete(ctx, id); err != nil {
		t.logger.Error("failed to delete registration", "registration_id", id, "error", err)
		notifyError(t.notifier, pickMessage(err, MsgDeleteRejected, MsgDeleteError))
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}

	notifySuccess(t.notifier, MsgDeleted)
	t.broadcast("deleted", id)
	return t.Refresh(ctx)
}

func (t *AdminTable) broadcast(action, id string) {
	if t.broadcaster != nil {
		t.broadcaster.RegistrationsChanged(action, id)
	}
}

var csvHeaders = []string{"Player Name", "Team", "Position", "Mobile", "Trial Date", "Status", "Registration Date"}

// ExportCSV writes the rows currently loaded (one page, not the whole
// collection). Every cell is quoted.
func (t *AdminTable) ExportCSV(w io.Writer) error {
	t.mu.Lock()
	rows := make([]models.Registration, len(t.rows))
	copy(rows, t.rows)
	t.mu.Unlock()

	if err := writeQuotedRow(w, csvHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		regDate := ""
		if !r.RegistrationDate.IsZero() {
			regDate = r.RegistrationDate.Format(csvDateLayout)
		}
		trial := r.TrialDateLabel
		if trial == "" {
			trial = r.TrialDate
		}
		record := []string{
			r.PlayerName(),
			r.TeamName,
			r.PlayingPosition,
			r.MobileNumber,
			trial,
			string(r.Status),
			regDate,
		}
		if err := writeQuotedRow(w, record); err != nil {
			return err
		}
	}
	return nil
}

// ExportFilename is tournament-registrations-YYYY-MM-DD.csv.
func ExportFilename(now time.Time) string {
	return "tournament-registrations-" + now.Format(csvFileDateLayout) + ".csv"
}

func writeQuotedRow(w io.Writer, cells []string) error {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	if _, err := io.WriteString(w, strings.Join(quoted, ",")+"\n"); err != nil {
		return fmt.Errorf("failed to write csv row: %w", err)
	}
	return nil
}

// pickMessage returns rejected for an answer from the API and unavailable
// when the API could not be reached.
func pickMessage(err error, rejected, unavailable string) string {
	if errors.Is(err, repositories.ErrAPIUnavailable) {
		return unavailable
	}
	return rejected
}
