package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// The OAuth state parameter is a short-lived signed token, so a callback can
// only complete a login this server started.

const stateTTL = 10 * time.Minute

// GenerateState issues a signed state token
func GenerateState(secret string) (string, error) {
	claims := jwt.MapClaims{
		"nonce": uuid.NewString(),
		"exp":   time.Now().Add(stateTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyState checks the signature and expiry of a state token
func VerifyState(secret, tokenString string) error {
	jwtToken, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return err
	}

	if !jwtToken.Valid {
		return errors.New("state token invalid")
	}

	return nil
}
