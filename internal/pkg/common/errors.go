package common

import (
	"errors"
	"net/http"
)

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CustomError carries an error code, a user-facing message and the HTTP
// status to report it with.
type CustomError struct {
	Code    string
	Message string
	Details string
	Status  int
	Err     error
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError creates a new CustomError.
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Error codes. The extraction and planning pipelines map onto the five
// failure classes; everything else is generic.
const (
	ErrCodeValidation     = "VALIDATION_ERROR"    // 400
	ErrCodeConfiguration  = "CONFIGURATION_ERROR" // 503
	ErrCodeUpstreamFetch  = "UPSTREAM_FETCH_ERROR"
	ErrCodeParse          = "PARSE_ERROR"       // 500
	ErrCodePersistence    = "PERSISTENCE_ERROR" // 500
	ErrCodeNotFound       = "NOT_FOUND"         // 404
	ErrCodeForbidden      = "FORBIDDEN"         // 403
	ErrCodeInternalError  = "INTERNAL_ERROR"    // 500
	ErrCodeRequestTimeout = "REQUEST_TIMEOUT"   // 408
	ErrCodeTooManyReqs    = "TOO_MANY_REQUESTS" // 429
)

// NewValidationError reports bad or missing input.
func NewValidationError(message string) *CustomError {
	return NewError(ErrCodeValidation, message, http.StatusBadRequest, nil)
}

// NewConfigurationError reports a missing credential or collaborator.
func NewConfigurationError(message string) *CustomError {
	return NewError(ErrCodeConfiguration, message, http.StatusServiceUnavailable, nil)
}

// NewUpstreamFetchError reports an unreachable or non-2xx upstream. The
// status distinguishes a failed page fetch (400) from a failed provider
// call (502).
func NewUpstreamFetchError(message string, status int, err error) *CustomError {
	return NewError(ErrCodeUpstreamFetch, message, status, err)
}

// NewParseError reports an AI response that is not valid JSON after fence
// stripping. The first 200 characters of the raw text are kept for
// diagnostics.
func NewParseError(message string, raw string, err error) *CustomError {
	e := NewError(ErrCodeParse, message, http.StatusInternalServerError, err)
	e.Details = Truncate(raw, 200)
	return e
}

// NewPersistenceError reports a failed datastore write.
func NewPersistenceError(message string, err error) *CustomError {
	return NewError(ErrCodePersistence, message, http.StatusInternalServerError, err)
}

// StatusOf returns the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Status
	}
	return http.StatusInternalServerError
}

// ResponseOf turns any error into the structured error body. Nothing is
// allowed to escape a handler unformatted.
func ResponseOf(err error) ErrorResponse {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ErrorResponse{Error: ce.Message, Details: ce.Details}
	}
	return ErrorResponse{Error: err.Error()}
}

// Truncate bounds s to max characters.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
