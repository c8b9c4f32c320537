package errors

import "fmt"

// Domain-specific error codes for the recommendation engine.
const (
	CodeUserNotFound     = "USER_NOT_FOUND"
	CodeMovieNotFound    = "MOVIE_NOT_FOUND"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeEmptyCatalog     = "EMPTY_CATALOG"
)

// NewUserNotFoundError reports a username with no User node behind it.
// Read paths treat this as zero affinity instead of failing; only
// preference writes surface it to the caller.
func NewUserNotFoundError(username string) *AppError {
	return NewNotFoundError(fmt.Sprintf("user %q", username)).
		WithCode(CodeUserNotFound).
		WithDetails(map[string]interface{}{"username": username})
}

// NewMovieNotFoundError reports a movie name with no Movie node behind it.
func NewMovieNotFoundError(movieName string) *AppError {
	return NewNotFoundError(fmt.Sprintf("movie %q", movieName)).
		WithCode(CodeMovieNotFound).
		WithDetails(map[string]interface{}{"movieName": movieName})
}

// NewStoreUnavailableError reports that the graph store could not be reached
// or a transaction failed mid-flight. Always retryable; callers are
// guaranteed no partial edge mutation remained visible.
func NewStoreUnavailableError(operation string, err error) *AppError {
	appErr := NewUnavailableError("graph store").
		WithCode(CodeStoreUnavailable).
		WithCause(err)
	appErr.Message = fmt.Sprintf("graph store unreachable during '%s'", operation)
	return appErr
}

// IsUserNotFound checks for the unknown-user error code
func IsUserNotFound(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == CodeUserNotFound
}

// IsMovieNotFound checks for the unknown-movie error code
func IsMovieNotFound(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == CodeMovieNotFound
}

// IsStoreUnavailable checks for the retryable store failure code
func IsStoreUnavailable(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == CodeStoreUnavailable
}
