package auth

import (
	"testing"
	"time"

	"jobboard_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, "password123", hash)
	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestJWTManager_IssueAndVerify(t *testing.T) {
	m := NewJWTManager("test-access-secret", 15*time.Minute)

	token, err := m.Issue("user-1", "a@test.com")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "a@test.com", claims.Email)
	assert.Equal(t, "access", claims.Type)
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	m := NewJWTManager("test-access-secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.Issue("user-1", "a@test.com")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidAccessToken)
}

func TestJWTManager_RejectsWrongSecretAndType(t *testing.T) {
	issuer := NewJWTManager("secret-one-xxxx", time.Minute)
	verifier := NewJWTManager("secret-two-xxxx", time.Minute)

	token, err := issuer.Issue("user-1", "a@test.com")
	require.NoError(t, err)
	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidAccessToken)

	refreshLike := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Type: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	signed, err := refreshLike.SignedString([]byte("secret-one-xxxx"))
	require.NoError(t, err)
	_, err = issuer.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidAccessToken)
}

func TestJWTManager_RejectsOtherAlgorithms(t *testing.T) {
	m := NewJWTManager("test-access-secret", time.Minute)
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	signed, err := token.SignedString([]byte("test-access-secret"))
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidAccessToken)
}

func TestTokenPrimitives(t *testing.T) {
	a, err := GenerateSecureToken()
	require.NoError(t, err)
	b, err := GenerateSecureToken()
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)

	assert.Equal(t, HashToken(a), HashToken(a))
	assert.Len(t, HashToken(a), 64)
	assert.NotEqual(t, a, HashToken(a))

	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP()
		require.NoError(t, err)
		assert.Regexp(t, `^[1-9]\d{5}$`, otp)
	}
}

func TestIsAdminRole(t *testing.T) {
	assert.True(t, IsAdminRole("admin"))
	assert.True(t, IsAdminRole("ADMIN"))
	assert.True(t, IsAdminRole(models.UserRole("Admin")))
	assert.False(t, IsAdminRole(models.UserRoleUser))
	assert.False(t, IsOwner("", ""))
	assert.True(t, IsOwner("u1", "u1"))
	assert.False(t, IsOwner("u1", "u2"))
}
