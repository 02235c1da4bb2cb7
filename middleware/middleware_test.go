package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/football-clinic/metrics"
	"github.com/Dosada05/football-clinic/models"
	"github.com/Dosada05/football-clinic/services"
)

func issueToken(t *testing.T, tokens *services.CheckoutTokens) string {
	t.Helper()
	reg := &models.Registration{
		ID:                "reg-1",
		RegistrationDraft: models.RegistrationDraft{PlayerFirstName: "Omar", PlayerLastName: "Haddad", Email: "o@example.com"},
	}
	tok, err := tokens.Issue(reg, 250)
	require.NoError(t, err)
	return tok
}

func TestCheckoutToken(t *testing.T) {
	tokens := services.NewCheckoutTokens("secret", time.Hour)
	var seen *services.CheckoutClaims
	h := CheckoutToken(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := GetCheckoutClaimsFromContext(r.Context())
		require.NoError(t, err)
		seen = claims
	}))
	tok := issueToken(t, tokens)

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }, http.StatusOK},
		{"header", func(r *http.Request) { r.Header.Set(CheckoutTokenHeader, tok) }, http.StatusOK},
		{"query", func(r *http.Request) { r.URL.RawQuery = "token=" + tok }, http.StatusOK},
		{"missing", func(r *http.Request) {}, http.StatusUnauthorized},
		{"tampered", func(r *http.Request) { r.Header.Set(CheckoutTokenHeader, tok+"x") }, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			r := httptest.NewRequest(http.MethodPost, "/api/checkout/intent", nil)
			tt.setup(r)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, "reg-1", seen.RegistrationID)
				assert.Equal(t, int64(250), seen.Amount)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestGetCheckoutClaimsFromContext_Missing(t *testing.T) {
	_, err := GetCheckoutClaimsFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.Error(t, err)
}

func TestRequestMetrics_UsesRoutePattern(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(RequestMetrics(m))
	r.Delete("/api/admin/registrations/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/admin/registrations/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/api/admin/registrations/{id}", "DELETE", "204")))
}
