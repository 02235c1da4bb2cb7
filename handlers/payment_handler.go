package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/Dosada05/football-clinic/middleware"
	"github.com/Dosada05/football-clinic/models"
	"github.com/Dosada05/football-clinic/payments"
	"github.com/Dosada05/football-clinic/services"
	"github.com/Dosada05/football-clinic/web"
)

type PaymentHandler struct {
	deps     services.PaymentDeps
	tokens   *services.CheckoutTokens
	inflight *services.InFlight
	pages    *web.Renderer
}

// NewPaymentHandler serves the checkout page and its API. deps.Notifier is
// ignored; each request collects its own notices.
func NewPaymentHandler(deps services.PaymentDeps, tokens *services.CheckoutTokens, pages *web.Renderer) *PaymentHandler {
	return &PaymentHandler{
		deps:     deps,
		tokens:   tokens,
		inflight: services.NewInFlight(),
		pages:    pages,
	}
}

func (h *PaymentHandler) requestDeps(n services.Notifier) services.PaymentDeps {
	deps := h.deps
	deps.Notifier = n
	return deps
}

type checkoutPage struct {
	Error      string
	Ready      bool
	PlayerName string
	Amount     int64
	Currency   string
	Script     checkoutScript
}

type checkoutScript struct {
	PublishableKey string `json:"publishableKey"`
	Token          string `json:"token"`
	ReturnURL      string `json:"returnUrl"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
}

// CheckoutPage renders the payment container for the registration in ?token=.
func (h *PaymentHandler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	page := checkoutPage{}
	status := http.StatusOK

	provider, providerErr := payments.Provider()
	token := strings.TrimSpace(r.URL.Query().Get("token"))

	switch {
	case h.tokens == nil || providerErr != nil:
		page.Error = "Online payment is not available at the moment."
		status = http.StatusServiceUnavailable
	case token == "":
		page.Error = "This payment link is invalid or has expired."
		status = http.StatusUnauthorized
	default:
		claims, err := h.tokens.Parse(token)
		if err != nil {
			page.Error = "This payment link is invalid or has expired."
			if errors.Is(err, services.ErrCheckoutTokenExpired) {
				page.Error = "This payment link has expired."
			}
			status = http.StatusUnauthorized
			break
		}
		currency := strings.ToUpper(h.deps.Currency)
		if currency == "" {
			currency = strings.ToUpper(services.DefaultCurrency)
		}
		page.Ready = true
		page.PlayerName = claims.PlayerName
		page.Amount = claims.Amount
		page.Currency = currency
		page.Script = checkoutScript{
			PublishableKey: provider.PublishableKey(),
			Token:          token,
			ReturnURL:      h.deps.PublicURL + services.PaymentSuccessPath,
			Amount:         claims.Amount,
			Currency:       currency,
		}
	}

	if err := h.pages.Render(w, status, web.PageCheckout, page); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateIntent godoc
// @Summary Создать платёжное намерение
// @Tags checkout
// @Description Creates the payment intent for the amount carried by the checkout token and returns its client secret.
// @Produce json
// @Param X-Checkout-Token header string true "Checkout token"
// @Success 200 {object} map[string]interface{} "clientSecret, state, amount, currency, returnUrl"
// @Failure 400 {object} map[string]interface{} "Invalid amount"
// @Failure 401 {object} map[string]string "Missing or invalid checkout token"
// @Failure 502 {object} map[string]interface{} "Payments API rejected the request"
// @Router /api/checkout/intent [post]
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.GetCheckoutClaimsFromContext(r.Context())
	if err != nil {
		errorResponse(w, r, http.StatusUnauthorized, err.Error())
		return
	}

	notices := &services.NoticeRecorder{}
	controller := services.NewPaymentController(h.requestDeps(notices))
	if err := controller.Start(r.Context(), claims.Amount, claims.Registration()); err != nil {
		serviceErrorResponse(w, r, err, jsonResponse{"state": controller.State(), "notice": notices.Last()})
		return
	}

	intent := controller.Intent()
	response := jsonResponse{
		"state":        controller.State(),
		"clientSecret": intent.ClientSecret,
		"amount":       intent.Amount,
		"currency":     intent.Currency,
		"returnUrl":    h.deps.PublicURL + services.PaymentSuccessPath,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type confirmationInput struct {
	ClientSecret string               `json:"clientSecret"`
	Result       models.ConfirmResult `json:"result"`
}

// Confirm godoc
// @Summary Передать результат подтверждения платежа
// @Tags checkout
// @Description Runs the payment state machine on the result the hosted widget returned in the browser. A reported success is checked against the payments API before the registration is marked paid.
// @Accept json
// @Produce json
// @Param X-Checkout-Token header string true "Checkout token"
// @Param input body confirmationInput true "Client secret and widget result"
// @Success 200 {object} map[string]interface{} "payment view, optional redirect"
// @Failure 400 {object} map[string]string "Malformed body"
// @Failure 401 {object} map[string]string "Missing or invalid checkout token"
// @Failure 409 {object} map[string]string "Confirmation already in progress"
// @Router /api/checkout/confirmation [post]
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.GetCheckoutClaimsFromContext(r.Context())
	if err != nil {
		errorResponse(w, r, http.StatusUnauthorized, err.Error())
		return
	}

	var input confirmationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.ClientSecret == "" {
		badRequestResponse(w, r, errors.New("clientSecret is required"))
		return
	}

	// Одна регистрация подтверждается один раз, каким бы ни был присланный секрет.
	key := input.ClientSecret
	if claims.RegistrationID != "" {
		key = "registration:" + claims.RegistrationID
	}
	release, ok := h.inflight.Acquire(key)
	if !ok {
		conflictResponse(w, r, services.ErrPaymentInProgress.Error())
		return
	}
	defer release()

	notices := &services.NoticeRecorder{}
	session := services.NewPaymentSession(h.requestDeps(notices), input.ClientSecret, claims.Amount, claims.Registration())

	var redirect string
	session.OnSuccess = func(intent models.ConfirmedIntent) {
		redirect = services.PaymentSuccessPath + "?payment_intent=" + url.QueryEscape(intent.ID)
	}

	view, err := session.Submit(r.Context(), payments.ReportedResult(input.Result))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if view.Status == services.PaymentSucceeded {
		if err := session.Continue(); err != nil {
			serverErrorResponse(w, r, err)
			return
		}
	}

	response := jsonResponse{"payment": view, "notice": notices.Last()}
	if redirect != "" {
		response["redirect"] = redirect
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
