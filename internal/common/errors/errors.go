package commonerrors

import "net/http"

var (
	ErrUsernameTaken = NewDomainError(
		"USERNAME_TAKEN",
		CategoryConflict,
		http.StatusConflict,
		"username already exists",
	)

	ErrWeakPassword = NewDomainError(
		"WEAK_PASSWORD",
		CategoryValidation,
		http.StatusBadRequest,
		"password does not meet the policy",
	)

	ErrUnknownUser = NewDomainError(
		"UNKNOWN_USER",
		CategoryValidation,
		http.StatusBadRequest,
		"user not found",
	)

	ErrWrongPassword = NewDomainError(
		"WRONG_PASSWORD",
		CategoryValidation,
		http.StatusBadRequest,
		"wrong password",
	)

	ErrMissingCredentials = NewDomainError(
		"MISSING_CREDENTIALS",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"missing authentication headers",
	)

	ErrUnknownClaimUser = NewDomainError(
		"UNKNOWN_USER",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"user does not exist",
	)

	ErrInvalidToken = NewDomainError(
		"INVALID_TOKEN",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid authentication token",
	)

	ErrInvalidLimit = NewDomainError(
		"INVALID_LIMIT",
		CategoryValidation,
		http.StatusBadRequest,
		"limit must be greater than 1",
	)

	ErrHistoryEmpty = NewDomainError(
		"HISTORY_EMPTY",
		CategoryNotFound,
		http.StatusNotFound,
		"no sieve history recorded",
	)

	ErrServerBusy = NewDomainError(
		"SERVER_BUSY",
		CategoryInternal,
		http.StatusServiceUnavailable,
		"no computation slot became available",
	)

	ErrStorageUnavailable = NewDomainError(
		"STORAGE_UNAVAILABLE",
		CategoryInternal,
		http.StatusInternalServerError,
		"storage unavailable",
	)

	ErrInternalError = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)
)
