package auth

import (
	"strings"

	"jobboard_backend/internal/models"
)

// IsAdminRole сравнивает роль из БД без учета регистра
func IsAdminRole(role models.UserRole) bool {
	return strings.EqualFold(strings.TrimSpace(string(role)), string(models.UserRoleAdmin))
}

// IsOwner - вызывающий пользователь совпадает с :userId из пути
func IsOwner(callerID, pathUserID string) bool {
	return callerID != "" && callerID == pathUserID
}
