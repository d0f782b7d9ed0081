package services_test

import (
	"testing"
	"time"

	"tasktracker/internal/services"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := services.NewTokenService("test-secret", time.Hour)
	userID := uuid.Must(uuid.NewV4())

	token, err := svc.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, subject)
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc := services.NewTokenService("test-secret", 0)
	userID := uuid.Must(uuid.NewV4())

	token, err := svc.Issue(userID)
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	iat := time.Unix(int64(claims["iat"].(float64)), 0)
	assert.Equal(t, services.DefaultTokenTTL, exp.Sub(iat))
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := services.NewTokenService("secret-a", time.Hour)
	verifier := services.NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(uuid.Must(uuid.NewV4()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestTokenService_Expired(t *testing.T) {
	svc := services.NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue(uuid.Must(uuid.NewV4()))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestTokenService_Malformed(t *testing.T) {
	svc := services.NewTokenService("test-secret", time.Hour)

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(bad)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	}
}

func TestTokenService_RejectsUnsignedToken(t *testing.T) {
	svc := services.NewTokenService("test-secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": uuid.Must(uuid.NewV4()).String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
