package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Dosada05/football-clinic/services"
)

// CheckoutTokenHeader carries the checkout token on API calls from the
// checkout page.
const CheckoutTokenHeader = "X-Checkout-Token"

// CheckoutToken requires a valid checkout token (Bearer, X-Checkout-Token
// or ?token=) and puts its claims into the request context.
func CheckoutToken(tokens *services.CheckoutTokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokens == nil {
				unauthorized(w, "checkout is not configured")
				return
			}
			raw := tokenFromRequest(r)
			if raw == "" {
				unauthorized(w, "checkout token is required")
				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				msg := services.ErrCheckoutTokenInvalid.Error()
				if errors.Is(err, services.ErrCheckoutTokenExpired) {
					msg = services.ErrCheckoutTokenExpired.Error()
				}
				unauthorized(w, msg)
				return
			}

			next.ServeHTTP(w, r.WithContext(withCheckoutClaims(r.Context(), claims)))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if h := r.Header.Get(CheckoutTokenHeader); h != "" {
		return strings.TrimSpace(h)
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
