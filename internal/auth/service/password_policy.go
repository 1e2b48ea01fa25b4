package service

import (
	"fmt"
	"strings"

	"github.com/aturganbekov/prime-sieve/backend/internal/common/constants"
	commonerrors "github.com/aturganbekov/prime-sieve/backend/internal/common/errors"
)

// ValidatePassword enforces the registration policy: at least
// PasswordMinLength characters, one digit and one symbol from the fixed
// class. The returned error keeps the stable WEAK_PASSWORD code but the
// message names the first rule that failed, so clients can mirror the
// check without a round-trip.
func ValidatePassword(password string) error {
	if len(password) < constants.PasswordMinLength {
		return commonerrors.ErrWeakPassword.WithMessage(
			fmt.Sprintf("password must be at least %d characters long", constants.PasswordMinLength))
	}

	if len(password) > constants.PasswordMaxLength {
		return commonerrors.ErrWeakPassword.WithMessage(
			fmt.Sprintf("password must be at most %d characters long", constants.PasswordMaxLength))
	}

	if !strings.ContainsFunc(password, isDigit) {
		return commonerrors.ErrWeakPassword.WithMessage("password must contain at least one digit")
	}

	if !strings.ContainsAny(password, constants.PasswordSymbolClass) {
		return commonerrors.ErrWeakPassword.WithMessage("password must contain at least one special character")
	}

	return nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
