package relay

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// pairingIssuer names tokens minted by this CLI.
const pairingIssuer = "cpqscope-relay"

// MintPairingToken issues a signed token the companion extension presents on
// its WebSocket handshake. The secret never leaves the local machine.
func MintPairingToken(secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    pairingIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyPairingToken checks a handshake token against the relay secret.
func VerifyPairingToken(token string, secret []byte) error {
	if token == "" {
		return fmt.Errorf("missing pairing token")
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(pairingIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("invalid pairing token: %w", err)
	}
	if !parsed.Valid {
		return fmt.Errorf("invalid pairing token")
	}
	return nil
}
