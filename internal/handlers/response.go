package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse - конверт успешного ответа
type SuccessResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, SuccessResponse{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

func OK(c *gin.Context, message string, data any) {
	respond(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data any) {
	respond(c, http.StatusCreated, message, data)
}
