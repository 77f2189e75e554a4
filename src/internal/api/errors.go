package api

import (
	"encoding/json"
	"net/http"

	"github.com/m3tools/m3cd/src/internal/errors"
)

// ErrorCode represents standard API error codes.
type ErrorCode string

const (
	// ErrCodeInvalidRequest indicates malformed or invalid request data.
	ErrCodeInvalidRequest ErrorCode = "invalid_request"

	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"

	// ErrCodeForbidden indicates a request from a client that is not allowed.
	ErrCodeForbidden ErrorCode = "forbidden"

	// ErrCodeInternalError indicates an internal server error.
	ErrCodeInternalError ErrorCode = "internal_error"

	// ErrCodeValidationFailed indicates merge job validation failed.
	ErrCodeValidationFailed ErrorCode = "validation_failed"

	// ErrCodeMalformedStruct indicates a struct string that could not be parsed.
	ErrCodeMalformedStruct ErrorCode = "malformed_struct"

	// ErrCodeInvalidDelta indicates a delta document that could not be decoded.
	ErrCodeInvalidDelta ErrorCode = "invalid_delta"

	// ErrCodeUnsupportedGame indicates a game without loose config files.
	ErrCodeUnsupportedGame ErrorCode = "unsupported_game"

	// ErrCodeStorageError indicates config files could not be read or written.
	ErrCodeStorageError ErrorCode = "storage_error"
)

// APIError represents a structured API error response.
type APIError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps an APIError for JSON responses.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code ErrorCode, message string) APIError {
	return APIError{Code: code, Message: message}
}

// WithDetails adds details to an APIError.
func (e APIError) WithDetails(details map[string]interface{}) APIError {
	e.Details = details
	return e
}

// WriteError writes an error response to the HTTP response writer.
func WriteError(w http.ResponseWriter, statusCode int, err APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err})
}

// WriteInvalidRequest writes a 400 Bad Request error.
func WriteInvalidRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, NewAPIError(ErrCodeInvalidRequest, message))
}

// WriteNotFound writes a 404 Not Found error.
func WriteNotFound(w http.ResponseWriter, resource string) {
	WriteError(w, http.StatusNotFound, NewAPIError(ErrCodeNotFound, resource+" not found"))
}

// WriteInternalError writes a 500 Internal Server Error.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// WriteForbidden writes a 403 Forbidden error.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// WriteDomainError maps an error from the merge services to a status code
// and API error code by its errors.ErrorCode.
func WriteDomainError(w http.ResponseWriter, err error) {
	status, code := statusFor(errors.CodeOf(err))
	WriteError(w, status, NewAPIError(code, err.Error()))
}

func statusFor(code errors.ErrorCode) (int, ErrorCode) {
	switch code {
	case errors.ErrCodeValidation, errors.ErrCodeConfig:
		return http.StatusBadRequest, ErrCodeValidationFailed
	case errors.ErrCodeMalformedStruct:
		return http.StatusBadRequest, ErrCodeMalformedStruct
	case errors.ErrCodeDelta:
		return http.StatusBadRequest, ErrCodeInvalidDelta
	case errors.ErrCodeUnsupportedGame:
		return http.StatusUnprocessableEntity, ErrCodeUnsupportedGame
	case errors.ErrCodeStorage:
		return http.StatusInternalServerError, ErrCodeStorageError
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}
