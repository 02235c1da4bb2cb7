package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/football-clinic/metrics"
	"github.com/Dosada05/football-clinic/models"
)

func newTestRepo(t *testing.T, h http.HandlerFunc) (RegistrationRepository, *metrics.Metrics) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	m := metrics.New(prometheus.NewRegistry())
	return NewHTTPRegistrationRepository(NewAPIClient(srv.URL+"/", srv.Client(), m)), m
}

func TestCreate_PostsFullPayload(t *testing.T) {
	var got map[string]interface{}
	repo, m := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tournament-registrations", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"_id":"reg-1","playerFirstName":"Omar","status":"pending","registrationDate":"2025-08-01T10:00:00.000Z"}}`))
	})

	reg := &models.Registration{
		RegistrationDraft: models.RegistrationDraft{
			PlayerFirstName:    "Omar",
			PreferredLocations: []string{"saadiyat"},
			TrialDate:          "2025-08-27",
		},
		TrialDateLabel: "Wednesday, 27th August",
		Tournament:     models.PreseasonCup.Name,
	}

	created, err := repo.Create(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, "reg-1", created.ID)
	assert.Equal(t, models.RegistrationPending, created.Status)

	assert.Equal(t, "Omar", got["playerFirstName"])
	assert.Equal(t, "2025-08-27", got["trialDate"])
	assert.Equal(t, "Wednesday, 27th August", got["trialDateLabel"])
	assert.Equal(t, "ATOMICS PRESEASON CUP", got["tournament"])
	assert.Equal(t, []interface{}{"saadiyat"}, got["preferredLocations"])
	_, hasID := got["_id"]
	assert.False(t, hasID, "new registrations must not carry an id")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("create_registration", "success")))
}

func TestCreate_SuccessFalseCarriesServerMessage(t *testing.T) {
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"Email already registered"}`))
	})

	_, err := repo.Create(context.Background(), &models.Registration{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAPIRejected))
	assert.Equal(t, "Email already registered", ServerMessage(err))
}

func TestCreate_Non2xxWithoutBody(t *testing.T) {
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := repo.Create(context.Background(), &models.Registration{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAPIRejected))
	assert.Empty(t, ServerMessage(err))
}

func TestCreate_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	repo := NewHTTPRegistrationRepository(NewAPIClient(srv.URL, nil, nil))

	_, err := repo.Create(context.Background(), &models.Registration{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAPIUnavailable))
}

func TestList_SendsFilterAndDecodesPage(t *testing.T) {
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "omar", q.Get("search"))
		assert.Equal(t, "confirmed", q.Get("status"))
		_, _ = w.Write([]byte(`{"success":true,"data":[{"_id":"a","status":"confirmed","registrationDate":"2025-08-01T10:00:00Z"}],"pagination":{"totalPages":4}}`))
	})

	page, err := repo.List(context.Background(), models.RegistrationFilter{Page: 2, Limit: 10, Search: "omar", Status: models.RegistrationConfirmed})
	require.NoError(t, err)
	require.Len(t, page.Registrations, 1)
	assert.Equal(t, "a", page.Registrations[0].ID)
	assert.Equal(t, 4, page.Pagination.TotalPages)
}

func TestList_OmitsEmptyFilters(t *testing.T) {
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		_, hasSearch := q["search"]
		_, hasStatus := q["status"]
		assert.False(t, hasSearch)
		assert.False(t, hasStatus)
		_, _ = w.Write([]byte(`{"success":true,"data":null,"pagination":{"totalPages":0}}`))
	})

	page, err := repo.List(context.Background(), models.RegistrationFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, page.Registrations)
	assert.Empty(t, page.Registrations)
}

func TestStats(t *testing.T) {
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tournament-registrations/stats", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{"overview":{"totalRegistrations":7,"pendingRegistrations":3,"confirmedRegistrations":2,"cancelledRegistrations":2}}}`))
	})

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, stats.Overview.TotalRegistrations)
	assert.Equal(t, 3, stats.Overview.PendingRegistrations)
}

func TestUpdateStatusDeleteAndPayment(t *testing.T) {
	type call struct {
		method, path string
		body         map[string]interface{}
	}
	var calls []call
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		c := call{method: r.Method, path: r.URL.Path}
		if r.Body != nil && r.ContentLength > 0 {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&c.body))
		}
		calls = append(calls, c)
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	ctx := context.Background()

	require.NoError(t, repo.UpdateStatus(ctx, "r1", models.RegistrationConfirmed))
	require.NoError(t, repo.Delete(ctx, "r2"))
	require.NoError(t, repo.UpdatePayment(ctx, "r3", models.PaymentUpdate{PaymentStatus: models.PaymentCompleted, StripePaymentIntentID: "pi_123"}))

	require.Len(t, calls, 3)
	assert.Equal(t, call{http.MethodPut, "/api/tournament-registrations/r1", map[string]interface{}{"status": "confirmed"}}, calls[0])
	assert.Equal(t, http.MethodDelete, calls[1].method)
	assert.Equal(t, "/api/tournament-registrations/r2", calls[1].path)
	assert.Equal(t, http.MethodPut, calls[2].method)
	assert.Equal(t, "/api/tournament-registrations/r3/payment", calls[2].path)
	assert.Equal(t, map[string]interface{}{"paymentStatus": "completed", "stripePaymentIntentId": "pi_123"}, calls[2].body)
}

func TestDelete_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Registration not found"}`))
	})

	err := repo.Delete(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}
