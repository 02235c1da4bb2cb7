package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/football-clinic/handlers"
	"github.com/Dosada05/football-clinic/live"
	"github.com/Dosada05/football-clinic/metrics"
	"github.com/Dosada05/football-clinic/repositories"
	"github.com/Dosada05/football-clinic/services"
	"github.com/Dosada05/football-clinic/web"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	pages, err := web.NewRenderer()
	require.NoError(t, err)

	client := repositories.NewAPIClient("http://127.0.0.1:0", nil, nil)
	registrations := repositories.NewHTTPRegistrationRepository(client)
	paymentRepo := repositories.NewHTTPPaymentRepository(client)
	tokens := services.NewCheckoutTokens("secret", 0)
	hub := live.NewHub()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	r := chi.NewRouter()
	SetupRoutes(r,
		Options{AllowedOrigins: []string{"https://clinic.example.com"}, Tokens: tokens, Metrics: m, Gatherer: registry},
		handlers.NewSiteHandler(pages),
		handlers.NewRegistrationHandler(registrations, tokens, 0, nil, m),
		handlers.NewPaymentHandler(services.PaymentDeps{Payments: paymentRepo, Registrations: registrations}, tokens, pages),
		handlers.NewReceiptHandler(services.NewReceiptService(paymentRepo, nil), nil, pages, nil),
		handlers.NewAdminHandler(registrations, hub, nil, pages, nil),
		handlers.NewAuditHandler(repositories.NewNopPaymentAuditRepository(), nil),
		handlers.NewWebSocketHandler(hub, nil),
	)
	return r
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestUnknownPathServesLanding(t *testing.T) {
	h := newRouter(t)

	rec := get(h, "/no/such/page")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestMetricsEndpointCountsRoutes(t *testing.T) {
	h := newRouter(t)

	require.Equal(t, http.StatusOK, get(h, "/api/clinic").Code)

	rec := get(h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `clinic_http_requests_total{method="GET",route="/api/clinic",status="200"} 1`)
}

func TestClinicAliasAndAudit(t *testing.T) {
	h := newRouter(t)

	assert.Equal(t, http.StatusOK, get(h, "/football-clinic").Code)

	rec := get(h, "/api/admin/payment-audit")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"entries": []`)
}

func TestSwaggerDoc(t *testing.T) {
	h := newRouter(t)

	rec := get(h, "/swagger/doc.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/registrations")
}

func TestCheckoutAPIRequiresToken(t *testing.T) {
	h := newRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/checkout/intent", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := newRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/registrations", nil)
	req.Header.Set("Origin", "https://clinic.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://clinic.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
