package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_RoundTrip(t *testing.T) {
	state, err := GenerateState("secret")
	require.NoError(t, err)
	require.NotEmpty(t, state)

	assert.NoError(t, VerifyState("secret", state))
}

func TestState_WrongSecret(t *testing.T) {
	state, err := GenerateState("secret")
	require.NoError(t, err)

	assert.Error(t, VerifyState("other-secret", state))
}

func TestState_Garbage(t *testing.T) {
	assert.Error(t, VerifyState("secret", "not-a-token"))
	assert.Error(t, VerifyState("secret", ""))
}

func TestState_Expired(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"nonce": "n",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	assert.Error(t, VerifyState("secret", signed))
}

func TestState_Unique(t *testing.T) {
	a, err := GenerateState("secret")
	require.NoError(t, err)
	b, err := GenerateState("secret")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
