package routes

import (
	"jobboard_backend/internal/handlers"
	"jobboard_backend/internal/logger"
	"jobboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options - необязательные маршруты платформы
type Options struct {
	UploadsDir    string // пусто: файлы отдает внешнее хранилище
	EnableSwagger bool
}

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	guards handlers.Guards,
	opts Options,
) {
	ginRouter.GET("/health", appHandlers.HealthHandler.Health)

	api := ginRouter.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, guards)
		appHandlers.MasterHandler.RegisterRoutes(api, guards)
		appHandlers.OnboardingHandler.RegisterRoutes(api, guards)
		appHandlers.ProfileHandler.RegisterRoutes(api, guards)
		appHandlers.JobHandler.RegisterRoutes(api, guards)
		appHandlers.AdminHandler.RegisterRoutes(api, guards)
	}

	if opts.UploadsDir != "" {
		ginRouter.Static("/uploads", opts.UploadsDir)
	}

	if opts.EnableSwagger {
		ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		logger.Info("Swagger UI enabled", "path", "/swagger/index.html")
	}

	ginRouter.NoRoute(func(c *gin.Context) {
		apperrors.HandleError(c, apperrors.NewNotFoundError("route", "Route not found"))
	})
}
