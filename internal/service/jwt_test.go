package service

import (
	"strings"
	"testing"
	"time"

	apperrors "github.com/Payphone-Digital/accounts/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", 7*24*time.Hour)

	token, err := svc.GenerateToken("user-1")
	require.NoError(t, err)

	userID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestJWTService_ExpiresAfterSevenDays(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewJWTService("secret", 7*24*time.Hour)
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateToken("user-1")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(7*24*time.Hour - time.Minute) }
	_, err = svc.ValidateToken(token)
	assert.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(7*24*time.Hour + time.Minute) }
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	valid, err := svc.GenerateToken("user-1")
	require.NoError(t, err)

	// Flip the first signature character; it carries full bits so the
	// decoded signature always changes.
	parts := strings.Split(valid, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	altered := parts[0] + "." + parts[1] + "." + string(sig)

	otherSecret, err := NewJWTService("other", time.Hour).GenerateToken("user-1")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user-1",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"altered signature": altered,
		"other secret":      otherSecret,
		"alg none":          none,
		"no subject":        noSubject,
		"no expiry":         noExpiry,
		"garbage":           "not.a.token",
		"empty":             "",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
			assert.Equal(t, 401, apperrors.ToHTTPStatus(err))
		})
	}
}
