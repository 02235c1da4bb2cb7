package payments

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Dosada05/football-clinic/models"
)

// ErrProviderNotConfigured is returned when the publishable key is empty.
var ErrProviderNotConfigured = errors.New("payment provider publishable key is not configured")

// RedirectIfRequired asks the provider to stay on the page unless the
// payment method needs a redirect (3DS and similar).
const RedirectIfRequired = "if_required"

// ConfirmParams is passed to the hosted widget on submit.
type ConfirmParams struct {
	ReturnURL string `json:"return_url"`
	Redirect  string `json:"redirect"`
}

// Widget is the provider-owned payment input. The host never sees card
// data; it only hands over the client secret and reads back the result.
type Widget interface {
	Confirm(ctx context.Context, clientSecret string, params ConfirmParams) (models.ConfirmResult, error)
}

// WidgetFunc adapts a function to Widget.
type WidgetFunc func(ctx context.Context, clientSecret string, params ConfirmParams) (models.ConfirmResult, error)

func (f WidgetFunc) Confirm(ctx context.Context, clientSecret string, params ConfirmParams) (models.ConfirmResult, error) {
	return f(ctx, clientSecret, params)
}

// ReportedResult is the widget as seen from the server: the browser ran the
// provider's confirmPayment and posted the outcome back.
type ReportedResult models.ConfirmResult

func (r ReportedResult) Confirm(context.Context, string, ConfirmParams) (models.ConfirmResult, error) {
	return models.ConfirmResult(r), nil
}

// Handle is the process-wide provider client. Pages embed its publishable
// key to mount the hosted widget.
type Handle struct {
	publishableKey string
}

func (h *Handle) PublishableKey() string {
	return h.publishableKey
}

// Mode reports "test" or "live" from the key prefix.
func (h *Handle) Mode() string {
	if strings.HasPrefix(h.publishableKey, "pk_live_") {
		return "live"
	}
	return "test"
}

var (
	providerOnce   sync.Once
	providerHandle *Handle
	providerErr    error
)

// Init creates the provider handle on first call. Later calls return the
// same handle and ignore their argument.
func Init(publishableKey string) (*Handle, error) {
	providerOnce.Do(func() {
		key := strings.TrimSpace(publishableKey)
		if key == "" {
			providerErr = ErrProviderNotConfigured
			return
		}
		providerHandle = &Handle{publishableKey: key}
	})
	return providerHandle, providerErr
}

// Provider returns the handle created by Init. Calling it before Init
// settles the handle as unconfigured for the life of the process.
func Provider() (*Handle, error) {
	providerOnce.Do(func() {
		providerErr = ErrProviderNotConfigured
	})
	return providerHandle, providerErr
}
