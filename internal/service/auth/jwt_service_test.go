package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planitapp/planit-api/internal/config"
)

const testSecret = "test-secret-key-thats-long-enough-for-hmac"

func newTestService(t *testing.T, now time.Time) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:                   testSecret,
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	require.NoError(t, err)

	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)
	impl.timeFunc = func() time.Time { return now }
	return impl
}

func TestNewJWTService_RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{
		JWTSecret:                   "too-short",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	userID := uuid.New()
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.WithinDuration(t, now.Add(60*time.Minute), claims.ExpiresAt, time.Second)
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, issued)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	// Move past the lifetime plus the clock skew allowance.
	svc.timeFunc = func() time.Time { return issued.Add(63 * time.Minute) }

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WithinClockSkew(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, issued)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	// One minute past expiry is still inside the 2-minute leeway.
	svc.timeFunc = func() time.Time { return issued.Add(61 * time.Minute) }

	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, time.Now())

	_, err := svc.ValidateToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSigningKey(t *testing.T) {
	t.Parallel()

	now := time.Now()
	svc := newTestService(t, now)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	other := newTestService(t, now)
	other.signingKey = []byte("a-completely-different-signing-key-here")

	_, err = other.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsRefreshToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, time.Now())
	ctx := context.Background()

	refresh, err := svc.GenerateRefreshToken(ctx, uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateRefreshToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	userID := uuid.New()
	ctx := context.Background()

	refresh, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
	assert.WithinDuration(t, now.Add(10080*time.Minute), claims.ExpiresAt, time.Second)
}

func TestValidateRefreshToken_RejectsAccessToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, time.Now())
	ctx := context.Background()

	access, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(ctx, access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateRefreshToken_Expired(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, issued)
	ctx := context.Background()

	refresh, err := svc.GenerateRefreshToken(ctx, uuid.New())
	require.NoError(t, err)

	svc.timeFunc = func() time.Time { return issued.Add(10083 * time.Minute) }

	_, err = svc.ValidateRefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}

func TestBcryptHasherAndVerifier(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(4) // Low cost keeps the test fast.
	verifier := NewBcryptVerifier()

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NoError(t, verifier.Compare(hash, "correct horse battery staple"))
	assert.Error(t, verifier.Compare(hash, "wrong password"))
}
