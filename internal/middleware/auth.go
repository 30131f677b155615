package middleware

import (
	"errors"
	"strings"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/pkg/apperrors"
	"jobboard_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccessTokenVerifier - проверка access-токена (реализует services.TokenService)
type AccessTokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

// AuthMiddleware - middleware проверки JWT
func AuthMiddleware(verifier AccessTokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c.GetHeader("Authorization"))
		if tokenStr == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Unauthorized").WithDetails([]string{"Missing or invalid token"}))
			return
		}

		claims, err := verifier.VerifyAccessToken(tokenStr)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Unauthorized").WithDetails([]string{"Invalid or expired token"}))
			return
		}

		// Сохраняем claims в контекст
		c.Set(contextkeys.GinUserIDKey, claims.UserID())
		c.Set(contextkeys.GinUserEmailKey, claims.Email)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID()))
		c.Next()
	}
}

// bearerToken принимает "Bearer <token>" и голый токен
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return header
}

// OwnerMiddleware - :param пути должен совпадать с вызывающим пользователем
func OwnerMiddleware(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.IsOwner(GetUserID(c), c.Param(param)) {
			apperrors.HandleError(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// AdminMiddleware - роль читается из БД на каждый запрос, сравнение без учета регистра
func AdminMiddleware(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Unauthorized"))
			return
		}

		db, ok := c.Get(contextkeys.GinDBKey)
		if !ok {
			apperrors.HandleError(c, apperrors.InternalError(errors.New("db not found in context")))
			return
		}

		user, err := userRepo.FindByID(db.(*gorm.DB), userID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				apperrors.HandleError(c, apperrors.ErrAdminRequired)
				return
			}
			apperrors.HandleError(c, apperrors.InternalError(err))
			return
		}

		if !auth.IsAdminRole(user.Role) {
			logger.CtxWarn(c.Request.Context(), "Admin access denied", "user_id", userID)
			apperrors.HandleError(c, apperrors.ErrAdminRequired)
			return
		}
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.GinUserIDKey)
}
