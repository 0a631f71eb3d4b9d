package postgres

import (
	"strings"

	"gorm.io/gorm"

	"schoolapp/internal/errors"
)

// Dialects that do not translate their driver errors still surface the
// violation in the message text; PostgreSQL reports SQLSTATE codes.
var uniqueViolationMarkers = []string{
	"duplicate key",
	"unique constraint failed",
	"23505",
}

func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	for _, marker := range uniqueViolationMarkers {
		if strings.Contains(errMsg, marker) {
			return true
		}
	}

	return false
}

func isForeignKeyConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "foreign key constraint") ||
		strings.Contains(errMsg, "23503") // PostgreSQL foreign_key_violation error code
}
