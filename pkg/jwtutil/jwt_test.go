package jwtutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-service/internal/model"
)

const testSigningKey = "test-signing-key"

func testUtil() *JWTUtil {
	return NewJWTUtil(&JWTConfig{
		SigningKey:      testSigningKey,
		ExpirationHours: 24,
	})
}

func testIdentity() model.Identity {
	return model.Identity{
		UserID:   7,
		Email:    "admin@acme.test",
		Role:     model.RoleAdmin,
		TenantID: "acme",
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	util := testUtil()

	token, err := util.GenerateToken(testIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := util.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, testIdentity(), identity)
}

func TestValidateTokenRejectsMalformed(t *testing.T) {
	util := testUtil()

	_, err := util.ValidateToken("not-a-token")
	assert.Error(t, err)

	_, err = util.ValidateToken("")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	other := NewJWTUtil(&JWTConfig{SigningKey: "other-key", ExpirationHours: 24})

	token, err := other.GenerateToken(testIdentity())
	require.NoError(t, err)

	_, err = testUtil().ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	// Sign a claim whose expiry is already in the past with the right key,
	// so only the expiry check can fail.
	claims := UserClaims{
		UserID:   7,
		Email:    "admin@acme.test",
		Role:     model.RoleAdmin,
		TenantID: "acme",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSigningKey))
	require.NoError(t, err)

	_, err = testUtil().ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSigningMethod(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, UserClaims{
		UserID:   7,
		TenantID: "acme",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = testUtil().ValidateToken(token)
	assert.Error(t, err)
}
