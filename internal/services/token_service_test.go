package services_test

import (
	"testing"
	"time"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services"
	"jobboard_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService() services.TokenService {
	return services.NewTokenService(
		auth.NewJWTManager("unit-test-secret", 15*time.Minute),
		7*24*time.Hour,
		repositories.NewRefreshTokenRepository(),
		repositories.NewAuthTokenRepository(),
	)
}

func TestTokenService_AccessToken(t *testing.T) {
	tokens := newTokenService()
	email := "a@test.com"

	raw, err := tokens.IssueAccessToken("user-1", &email)
	require.NoError(t, err)

	claims, err := tokens.VerifyAccessToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, email, claims.Email)

	_, err = tokens.VerifyAccessToken(raw + "x")
	assert.Error(t, err)
}

func TestTokenService_RefreshRotationIsSingleUse(t *testing.T) {
	db := helpers.NewTestDB(t)
	tokens := newTokenService()
	user := helpers.CreateUser(t, db, "A", "a@test.com", helpers.TestPassword, models.UserRoleUser)

	raw, err := tokens.IssueRefreshToken(db, user.ID, "ua")
	require.NoError(t, err)

	var stored models.RefreshToken
	require.NoError(t, db.First(&stored).Error)
	assert.NotEqual(t, raw, stored.TokenHash, "сырой токен не хранится")
	assert.Equal(t, auth.HashToken(raw), stored.TokenHash)

	rotated, err := tokens.VerifyAndRotateRefreshToken(db, raw, "ua")
	require.NoError(t, err)
	require.NotNil(t, rotated)
	assert.Equal(t, user.ID, rotated.UserID)
	assert.NotEqual(t, raw, rotated.NewRefreshToken)

	again, err := tokens.VerifyAndRotateRefreshToken(db, raw, "ua")
	require.NoError(t, err)
	assert.Nil(t, again, "старый токен после ротации отклоняется")

	var count int64
	db.Model(&models.RefreshToken{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestTokenService_ExpiredRefreshRejected(t *testing.T) {
	db := helpers.NewTestDB(t)
	tokens := newTokenService()
	user := helpers.CreateUser(t, db, "A", "a@test.com", helpers.TestPassword, models.UserRoleUser)

	raw, err := auth.GenerateSecureToken()
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.RefreshToken{
		UserID:    user.ID,
		TokenHash: auth.HashToken(raw),
		ExpiresAt: time.Now().Add(-time.Minute),
	}).Error)

	rotated, err := tokens.VerifyAndRotateRefreshToken(db, raw, "")
	require.NoError(t, err)
	assert.Nil(t, rotated)
}

func TestTokenService_RevokeIsIdempotent(t *testing.T) {
	db := helpers.NewTestDB(t)
	tokens := newTokenService()
	user := helpers.CreateUser(t, db, "A", "a@test.com", helpers.TestPassword, models.UserRoleUser)

	raw, err := tokens.IssueRefreshToken(db, user.ID, "")
	require.NoError(t, err)

	revoked, err := tokens.RevokeRefreshToken(db, raw)
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = tokens.RevokeRefreshToken(db, raw)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenService_OneTimeTokensConsumedOnce(t *testing.T) {
	db := helpers.NewTestDB(t)
	tokens := newTokenService()

	raw, err := tokens.CreateEmailVerifyToken(db, " A@Test.com ")
	require.NoError(t, err)

	// Токен другого назначения не подходит
	_, ok, err := tokens.ConsumePasswordResetToken(db, raw)
	require.NoError(t, err)
	assert.False(t, ok)

	identifier, ok, err := tokens.ConsumeEmailVerifyToken(db, raw)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a@test.com", identifier)

	_, ok, err = tokens.ConsumeEmailVerifyToken(db, raw)
	require.NoError(t, err)
	assert.False(t, ok, "повторное использование отклоняется")
}

func TestTokenService_PhoneOTPBoundToPhone(t *testing.T) {
	db := helpers.NewTestDB(t)
	tokens := newTokenService()

	code, err := tokens.CreatePhoneOTP(db, "+919876543210")
	require.NoError(t, err)
	assert.Len(t, code, 6)

	ok, err := tokens.ConsumePhoneOTP(db, "+910000000000", code)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = tokens.ConsumePhoneOTP(db, "+919876543210", code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTokenService_EmailChangeOTPBoundToUserAndEmail(t *testing.T) {
	db := helpers.NewTestDB(t)
	tokens := newTokenService()

	code, err := tokens.CreateEmailChangeOTP(db, "user-1", "new@test.com")
	require.NoError(t, err)

	ok, err := tokens.ConsumeEmailChangeOTP(db, "user-2", "new@test.com", code)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = tokens.ConsumeEmailChangeOTP(db, "user-1", "other@test.com", code)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = tokens.ConsumeEmailChangeOTP(db, "user-1", "NEW@test.com", code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTokenService_CleanupExpired(t *testing.T) {
	db := helpers.NewTestDB(t)
	tokens := newTokenService()
	user := helpers.CreateUser(t, db, "A", "a@test.com", helpers.TestPassword, models.UserRoleUser)

	_, err := tokens.IssueRefreshToken(db, user.ID, "")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.RefreshToken{
		UserID:    user.ID,
		TokenHash: auth.HashToken("expired"),
		ExpiresAt: time.Now().Add(-time.Hour),
	}).Error)
	require.NoError(t, db.Create(&models.AuthToken{
		Type:       models.TokenTypePasswordReset,
		Identifier: "a@test.com",
		TokenHash:  auth.HashToken("old"),
		ExpiresAt:  time.Now().Add(-time.Hour),
	}).Error)

	deleted, err := tokens.CleanupExpired(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var remaining int64
	db.Model(&models.RefreshToken{}).Count(&remaining)
	assert.Equal(t, int64(1), remaining)
}
