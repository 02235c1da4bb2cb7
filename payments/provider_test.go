package payments

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/football-clinic/models"
)

// The handle is process-wide, so this is the only test that touches Init.
func TestInit_OnlyFirstCallTakesEffect(t *testing.T) {
	var wg sync.WaitGroup
	handles := make([]*Handle, 8)
	for i := range handles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, err := Init("pk_test_first")
			assert.NoError(t, err)
			handles[i] = h
		}(i)
	}
	wg.Wait()

	again, err := Init("pk_live_second")
	require.NoError(t, err)
	for _, h := range handles {
		assert.Same(t, again, h)
	}
	assert.Equal(t, "pk_test_first", again.PublishableKey())
	assert.Equal(t, "test", again.Mode())

	p, err := Provider()
	require.NoError(t, err)
	assert.Same(t, again, p)
}

func TestReportedResult(t *testing.T) {
	res := ReportedResult{PaymentIntent: &models.ConfirmedIntent{ID: "pi_123", Status: models.IntentSucceeded}}

	got, err := res.Confirm(context.Background(), "secret", ConfirmParams{ReturnURL: "https://x/payment-success", Redirect: RedirectIfRequired})
	require.NoError(t, err)
	require.NotNil(t, got.PaymentIntent)
	assert.Equal(t, "pi_123", got.PaymentIntent.ID)
	assert.Nil(t, got.Error)
}

func TestHandleMode(t *testing.T) {
	assert.Equal(t, "live", (&Handle{publishableKey: "pk_live_x"}).Mode())
	assert.Equal(t, "test", (&Handle{publishableKey: "pk_test_x"}).Mode())
}
