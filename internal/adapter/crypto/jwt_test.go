package crypto

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/markorv.net/isaharness/internal/config"
)

func newService() JWTServiceImpl {
	return JWTServiceImpl{HMACSecretKey: "test-secret", TTL: time.Minute}
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	token, err := svc.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, map[string]interface{}{
		"username":   "harness",
		"permission": []string{"harness.read"},
	})
	require.NoError(t, err)

	valid, err := svc.VerifyTokenHMAC(ctx, token, jwt.SigningMethodHS256.Name)
	require.NoError(t, err)
	assert.True(t, valid)

	payload, err := svc.DecodeTokenPayload(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "harness", payload.Username)
	assert.Equal(t, []string{"harness.read"}, payload.Permission)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	ctx := context.Background()
	token, err := newService().GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, map[string]interface{}{})
	require.NoError(t, err)

	other := JWTServiceImpl{HMACSecretKey: "other"}
	valid, err := other.VerifyTokenHMAC(ctx, token, jwt.SigningMethodHS256.Name)
	assert.Error(t, err)
	assert.False(t, valid)
}

func TestVerifyRejectsExpired(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	token, err := svc.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, map[string]interface{}{
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	require.NoError(t, err)

	valid, err := svc.VerifyTokenHMAC(ctx, token, jwt.SigningMethodHS256.Name)
	assert.Error(t, err)
	assert.False(t, valid)
}

func TestUnsupportedMethod(t *testing.T) {
	_, err := newService().GenerateTokenHMAC(context.Background(), "none-such", map[string]interface{}{})
	assert.Error(t, err)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := newService().DecodeTokenPayload(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHash(t *testing.T) {
	ctx := context.Background()
	svc := NewJWTService(&config.JwtConfig{Secret: "s", TTL: time.Minute})

	hash, err := svc.EncryptPassword(ctx, "hunter2")
	require.NoError(t, err)

	ok, err := svc.VerifyPassword(ctx, hash, "hunter2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.VerifyPassword(ctx, hash, "wrong")
	assert.Error(t, err)
	assert.False(t, ok)
}
