package middleware

import (
	"context"
	"errors"

	"github.com/Dosada05/football-clinic/services"
)

type contextKey string

const checkoutContextKey contextKey = "checkout"

func withCheckoutClaims(ctx context.Context, claims *services.CheckoutClaims) context.Context {
	return context.WithValue(ctx, checkoutContextKey, claims)
}

// GetCheckoutClaimsFromContext returns the claims stored by CheckoutToken.
func GetCheckoutClaimsFromContext(ctx context.Context) (*services.CheckoutClaims, error) {
	claims, ok := ctx.Value(checkoutContextKey).(*services.CheckoutClaims)
	if !ok || claims == nil {
		return nil, errors.New("checkout claims not found in context")
	}
	return claims, nil
}
