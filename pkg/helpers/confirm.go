package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ConfirmTokenManager issues and verifies the signed tokens embedded in
// email-confirmation links. Tokens carry only the user id and an expiry, so
// confirmation needs no server-side token state and stays idempotent.
type ConfirmTokenManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewConfirmTokenManager(secret string, ttl time.Duration) *ConfirmTokenManager {
	return &ConfirmTokenManager{Secret: []byte(secret), TTL: ttl}
}

type confirmClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Generate returns a signed token identifying userID, valid for the
// configured TTL.
func (m *ConfirmTokenManager) Generate(userID string) (string, error) {
	now := time.Now()
	claims := &confirmClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.Secret)
}

// Parse validates a confirmation token and returns the user id it names.
func (m *ConfirmTokenManager) Parse(tokenStr string) (string, error) {
	claims := &confirmClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return "", err
	}
	if !tkn.Valid || claims.UserID == "" {
		return "", errors.New("invalid token")
	}
	return claims.UserID, nil
}
