package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const accessTokenType = "access"

var ErrInvalidAccessToken = errors.New("invalid access token")

// Claims - полезная нагрузка access-токена
type Claims struct {
	Email string `json:"email"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// UserID - субъект токена
func (c *Claims) UserID() string {
	return c.Subject
}

// JWTManager подписывает и проверяет access-токены (HS256)
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL - срок жизни access-токена
func (m *JWTManager) TTL() time.Duration {
	return m.ttl
}

// Issue выпускает access-токен для пользователя
func (m *JWTManager) Issue(userID, email string) (string, error) {
	now := m.now()
	claims := Claims{
		Email: email,
		Type:  accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify проверяет подпись, срок и тип токена
func (m *JWTManager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidAccessToken
	}
	if claims.Type != accessTokenType || claims.Subject == "" {
		return nil, ErrInvalidAccessToken
	}
	return claims, nil
}
