package repositories

import "jobboard_backend/pkg/apperrors"

func isUniqueViolation(err error) bool {
	return apperrors.IsUniqueViolation(err)
}
