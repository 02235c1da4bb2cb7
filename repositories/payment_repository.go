package repositories

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Dosada05/football-clinic/models"
)

type PaymentRepository interface {
	CreatePaymentIntent(ctx context.Context, input models.CreatePaymentIntentInput) (*models.PaymentIntent, error)
	GetPaymentStatus(ctx context.Context, paymentIntentID string) (*models.PaymentDetails, error)
}

type httpPaymentRepository struct {
	client *APIClient
}

func NewHTTPPaymentRepository(client *APIClient) PaymentRepository {
	return &httpPaymentRepository{client: client}
}

func (r *httpPaymentRepository) CreatePaymentIntent(ctx context.Context, input models.CreatePaymentIntentInput) (*models.PaymentIntent, error) {
	var resp struct {
		ClientSecret    string `json:"clientSecret"`
		PaymentIntentID string `json:"paymentIntentId"`
	}
	if err := r.client.do(ctx, "create_payment_intent", http.MethodPost, "/api/payments/create-payment-intent", nil, input, &resp); err != nil {
		return nil, err
	}
	if resp.ClientSecret == "" {
		return nil, &APIError{Operation: "create_payment_intent", StatusCode: http.StatusOK, Message: "no client secret in response"}
	}

	return &models.PaymentIntent{
		ID:           resp.PaymentIntentID,
		ClientSecret: resp.ClientSecret,
		Amount:       input.Amount,
		Currency:     input.Currency,
	}, nil
}

func (r *httpPaymentRepository) GetPaymentStatus(ctx context.Context, paymentIntentID string) (*models.PaymentDetails, error) {
	var details models.PaymentDetails
	path := "/api/payments/payment-status/" + url.PathEscape(paymentIntentID)
	if err := r.client.do(ctx, "payment_status", http.MethodGet, path, nil, nil, &details); err != nil {
		return nil, err
	}
	if details.Metadata == nil {
		details.Metadata = map[string]string{}
	}
	return &details, nil
}
