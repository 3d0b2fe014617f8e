package persistence

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/societyhub/backend/internal/domain/shared"
)

// isDuplicateKey reports whether err is a unique constraint violation.
// GORM's TranslateError covers postgres; the string check covers the
// sqlite driver used in tests, which predates translation support.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translateError maps storage errors to domain error kinds so driver
// detail never leaks past the repository boundary.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if isDuplicateKey(err) {
		return shared.ErrConflict
	}
	return err
}
