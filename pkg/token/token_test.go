package token_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"

	"github.com/hserranome/drawaday-api/pkg/token"
)

const testSecret = "test_jwt_secret"

// reverse flips a token string, simulating a tampered credential.
func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func TestManager_IssueAndVerify(t *testing.T) {
	manager := token.NewManager(testSecret, time.Hour)

	tokenString, err := manager.Issue("user-123", "test@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := manager.Verify(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
}

func TestManager_Verify_Tampered(t *testing.T) {
	manager := token.NewManager(testSecret, time.Hour)

	tokenString, err := manager.Issue("user-123", "test@example.com")
	assert.NoError(t, err)

	_, err = manager.Verify(reverse(tokenString))
	assert.ErrorIs(t, err, token.ErrInvalidToken)

	_, err = manager.Verify("not.a.token")
	assert.ErrorIs(t, err, token.ErrInvalidToken)

	_, err = manager.Verify("")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestManager_Verify_WrongSecret(t *testing.T) {
	manager := token.NewManager(testSecret, time.Hour)
	otherManager := token.NewManager("some_other_secret", time.Hour)

	tokenString, err := otherManager.Issue("user-123", "test@example.com")
	assert.NoError(t, err)

	_, err = manager.Verify(tokenString)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestManager_Verify_Expired(t *testing.T) {
	// A negative TTL issues tokens that are already expired.
	manager := token.NewManager(testSecret, -time.Hour)

	tokenString, err := manager.Issue("user-123", "test@example.com")
	assert.NoError(t, err)

	_, err = manager.Verify(tokenString)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestManager_ZeroTTLOmitsExpiry(t *testing.T) {
	manager := token.NewManager(testSecret, 0)

	tokenString, err := manager.Issue("user-123", "test@example.com")
	assert.NoError(t, err)

	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(testSecret), nil
	})
	assert.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.NotContains(t, claims, "exp")

	_, err = manager.Verify(tokenString)
	assert.NoError(t, err)
}

func TestManager_Verify_RejectsUnsignedToken(t *testing.T) {
	manager := token.NewManager(testSecret, time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":   "user-123",
		"email": "test@example.com",
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = manager.Verify(tokenString)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}
