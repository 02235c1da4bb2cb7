package repositories

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Dosada05/football-clinic/models"
)

const registrationsPath = "/api/tournament-registrations"

// RegistrationRepository is the registrations collection of the external API.
// It is the only source of truth for registration data.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.Registration) (*models.Registration, error)
	List(ctx context.Context, filter models.RegistrationFilter) (*models.RegistrationPage, error)
	Stats(ctx context.Context) (*models.RegistrationStats, error)
	UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) error
	Delete(ctx context.Context, id string) error
	UpdatePayment(ctx context.Context, id string, update models.PaymentUpdate) error
}

type httpRegistrationRepository struct {
	client *APIClient
}

func NewHTTPRegistrationRepository(client *APIClient) RegistrationRepository {
	return &httpRegistrationRepository{client: client}
}

func (r *httpRegistrationRepository) Create(ctx context.Context, reg *models.Registration) (*models.Registration, error) {
	var resp struct {
		Data *models.Registration `json:"data"`
	}
	if err := r.client.do(ctx, "create_registration", http.MethodPost, registrationsPath, nil, reg, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		// API acknowledged without echoing the record.
		created := *reg
		return &created, nil
	}
	return resp.Data, nil
}

func (r *httpRegistrationRepository) List(ctx context.Context, filter models.RegistrationFilter) (*models.RegistrationPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(filter.Page))
	query.Set("limit", strconv.Itoa(filter.Limit))
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}

	var page models.RegistrationPage
	if err := r.client.do(ctx, "list_registrations", http.MethodGet, registrationsPath, query, nil, &page); err != nil {
		return nil, err
	}
	if page.Registrations == nil {
		page.Registrations = []models.Registration{}
	}
	return &page, nil
}

func (r *httpRegistrationRepository) Stats(ctx context.Context) (*models.RegistrationStats, error) {
	var resp struct {
		Data models.RegistrationStats `json:"data"`
	}
	if err := r.client.do(ctx, "registration_stats", http.MethodGet, registrationsPath+"/stats", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (r *httpRegistrationRepository) UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) error {
	body := struct {
		Status models.RegistrationStatus `json:"status"`
	}{Status: status}
	return r.client.do(ctx, "update_registration_status", http.MethodPut, registrationPath(id), nil, body, nil)
}

func (r *httpRegistrationRepository) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, "delete_registration", http.MethodDelete, registrationPath(id), nil, nil, nil)
}

func (r *httpRegistrationRepository) UpdatePayment(ctx context.Context, id string, update models.PaymentUpdate) error {
	return r.client.do(ctx, "update_registration_payment", http.MethodPut, registrationPath(id)+"/payment", nil, update, nil)
}

func registrationPath(id string) string {
	return registrationsPath + "/" + url.PathEscape(id)
}
