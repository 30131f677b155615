package integration_test

import (
	"os"
	"testing"

	"jobboard_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// Каждый тест поднимает свой сервер и свою in-memory БД, поэтому общего состояния нет
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	os.Exit(m.Run())
}
