package services

import (
	"fmt"
	"time"

	"storeapi/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const exportTokenPurpose = "order_csv_export"

// TokenService issues and verifies short-lived export tokens bound to a
// single order id. Tokens are reusable until expiry; issuing a new token
// does not invalidate older ones.
type TokenService struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time // test override
}

func (s TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s TokenService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 24 * time.Hour
}

// Issue creates a signed token usable only for exporting the given order.
func (s TokenService) Issue(orderID int64) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"purpose":  exportTokenPurpose,
		"order_id": orderID,
		"iat":      now.Unix(),
		"exp":      now.Add(s.ttl()).Unix(),
	})
	return token.SignedString(s.Secret)
}

// Verify checks signature, expiry and the order binding. Any failure is
// reported as InvalidTokenError so callers need no jwt knowledge.
func (s TokenService) Verify(tokenString string, orderID int64) error {
	if tokenString == "" {
		return domain.InvalidTokenError{}
	}

	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return domain.InvalidTokenError{Err: err}
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return domain.InvalidTokenError{}
	}
	if purpose, _ := claims["purpose"].(string); purpose != exportTokenPurpose {
		return domain.InvalidTokenError{Err: fmt.Errorf("unexpected purpose")}
	}
	boundID, ok := claims["order_id"].(float64)
	if !ok || int64(boundID) != orderID {
		return domain.InvalidTokenError{Err: fmt.Errorf("token bound to different order")}
	}
	return nil
}
