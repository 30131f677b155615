package handlers

import (
	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// userIDParam - параметр пути с ID владельца ресурса
const userIDParam = "userId"

// Guards - middleware, которые хендлеры навешивают на свои группы
type Guards struct {
	Auth    gin.HandlerFunc
	Admin   gin.HandlerFunc
	Limiter ratelimit.Limiter
}

// Owner - :userId должен совпадать с вызывающим пользователем
func (g Guards) Owner() gin.HandlerFunc {
	return middleware.OwnerMiddleware(userIDParam)
}

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler       *AuthHandler
	MasterHandler     *MasterHandler
	OnboardingHandler *OnboardingHandler
	ProfileHandler    *ProfileHandler
	JobHandler        *JobHandler
	AdminHandler      *AdminHandler
	HealthHandler     *HealthHandler
}
