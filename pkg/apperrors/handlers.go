package apperrors

import (
	"net/http"
	"sort"

	"jobboard_backend/internal/logger"
	"jobboard_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - конверт ответа с ошибкой
type ErrorResponse struct {
	Success    bool     `json:"success"`
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Data       any      `json:"data"`
	Errors     []string `json:"errors,omitempty"`
	Stack      []string `json:"stack,omitempty"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError - единственная точка формирования конверта ошибки
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		if IsUniqueViolation(err) {
			appErr = ErrAlreadyExists(err)
		} else {
			appErr = InternalError(err)
		}
	}

	if appErr.HTTPCode >= http.StatusInternalServerError {
		logger.CtxWithError(c.Request.Context(), "Server error", err, "path", c.Request.URL.Path)
	}

	resp := ErrorResponse{
		Success:    false,
		StatusCode: appErr.HTTPCode,
		Message:    appErr.Message,
		Errors:     detailsToList(appErr.Details),
	}
	if h.Debug {
		resp.Stack = errorChain(err)
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, resp)
}

// HandleError - режим отладки берется из gin.Context (выставляется middleware по окружению)
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: c.GetBool(contextkeys.GinErrorDebugKey)}
	handler.HandleGinError(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func detailsToList(details interface{}) []string {
	switch d := details.(type) {
	case nil:
		return nil
	case []string:
		return d
	case map[string]string:
		out := make([]string, 0, len(d))
		for field, msg := range d {
			out = append(out, field+": "+msg)
		}
		sort.Strings(out)
		return out
	case string:
		return []string{d}
	default:
		return nil
	}
}

// errorChain разворачивает цепочку обернутых ошибок
func errorChain(err error) []string {
	var chain []string
	for err != nil {
		chain = append(chain, err.Error())
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return chain
}
