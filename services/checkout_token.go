package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/football-clinic/models"
	"github.com/golang-jwt/jwt/v4"
)

// CheckoutTokenTTL is how long a player has to pay after registering.
const CheckoutTokenTTL = 2 * time.Hour

// CheckoutClaims hand a fresh registration over to the checkout page.
type CheckoutClaims struct {
	RegistrationID string `json:"registrationId,omitempty"`
	PlayerName     string `json:"playerName"`
	Email          string `json:"email"`
	Amount         int64  `json:"amount"`
	jwt.RegisteredClaims
}

// Registration rebuilds the parts of the registration the payment flow needs.
func (c *CheckoutClaims) Registration() models.Registration {
	first, last := splitName(c.PlayerName)
	return models.Registration{
		ID: c.RegistrationID,
		RegistrationDraft: models.RegistrationDraft{
			PlayerFirstName: first,
			PlayerLastName:  last,
			Email:           c.Email,
		},
	}
}

type CheckoutTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCheckoutTokens(secret string, ttl time.Duration) *CheckoutTokens {
	if ttl <= 0 {
		ttl = CheckoutTokenTTL
	}
	return &CheckoutTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *CheckoutTokens) Issue(reg *models.Registration, amount int64) (string, error) {
	if reg == nil {
		return "", errors.New("registration is required")
	}
	if amount <= 0 {
		return "", ErrInvalidAmount
	}
	now := t.now()
	claims := CheckoutClaims{
		RegistrationID: reg.ID,
		PlayerName:     reg.PlayerName(),
		Email:          reg.Email,
		Amount:         amount,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   reg.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign checkout token: %w", err)
	}
	return signed, nil
}

func (t *CheckoutTokens) Parse(tokenString string) (*CheckoutClaims, error) {
	claims := &CheckoutClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrCheckoutTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrCheckoutTokenInvalid, err)
	}
	if !token.Valid || claims.Amount <= 0 {
		return nil, ErrCheckoutTokenInvalid
	}
	return claims, nil
}

func splitName(full string) (first, last string) {
	for i := 0; i < len(full); i++ {
		if full[i] == ' ' {
			return full[:i], full[i+1:]
		}
	}
	return full, ""
}
