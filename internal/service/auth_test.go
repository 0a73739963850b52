package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid", "Sup3r!secret", ""},
		{"too short", "Ab1!", "at least 8 characters"},
		{"no uppercase", "sup3r!secret", "uppercase letter"},
		{"no digit", "Super!secret", "digit"},
		{"no special", "Sup3rsecret", "special character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	signed := signTestToken(t, "other-secret", time.Now().Add(time.Hour))

	svc := NewAuthService(nil, "test-secret", 24)
	_, err := svc.ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	signed := signTestToken(t, "test-secret", time.Now().Add(-time.Hour))

	svc := NewAuthService(nil, "test-secret", 24)
	_, err := svc.ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateTokenReturnsClaims(t *testing.T) {
	signed := signTestToken(t, "test-secret", time.Now().Add(time.Hour))

	svc := NewAuthService(nil, "test-secret", 24)
	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims["email"])
	assert.Equal(t, "free", claims["plan"])
}

func signTestToken(t *testing.T, secret string, expiry time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "5bd9d1cb-7bf1-4f8e-a660-57bd9ead1c5e",
		"email":   "user@example.com",
		"plan":    "free",
		"exp":     expiry.Unix(),
		"iat":     time.Now().Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}
