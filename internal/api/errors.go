package api

import (
	"errors"
	"net/http"

	"items-backend/internal/auth"
)

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeUpstream           = "UPSTREAM_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
	CodeRateLimited        = "RATE_LIMITED"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
)

// APIError is an error with a fixed HTTP status and envelope code. Err, when
// set, is logged but only shown to clients outside production.
type APIError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func validationError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: CodeValidation, Message: message}
}

func invalidCredentials() *APIError {
	return &APIError{Status: http.StatusUnauthorized, Code: CodeInvalidCredentials, Message: "Invalid email or password"}
}

func forbidden(message string) *APIError {
	return &APIError{Status: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

func notFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

func conflict(message string) *APIError {
	return &APIError{Status: http.StatusConflict, Code: CodeConflict, Message: message}
}

func upstreamFailure(message string, err error) *APIError {
	return &APIError{Status: http.StatusBadGateway, Code: CodeUpstream, Message: message, Err: err}
}

// writeError renders err as a failure envelope. Anything that is not an
// *APIError or *auth.Error becomes a 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		writeErrorBody(w, http.StatusUnauthorized, authErr.Code(), authErr.Message())
		return
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if apiErr.Err != nil {
			if apiErr.Status >= http.StatusInternalServerError {
				s.logger.Error(r.Context(), apiErr.Message, "error", apiErr.Err, "path", r.URL.Path)
			}
			if !s.config.IsProduction() {
				message = apiErr.Error()
			}
		}
		writeErrorBody(w, apiErr.Status, apiErr.Code, message)
		return
	}

	s.logger.Error(r.Context(), "unhandled request error", "error", err, "method", r.Method, "path", r.URL.Path)
	message := "Internal server error"
	if !s.config.IsProduction() {
		message = err.Error()
	}
	writeErrorBody(w, http.StatusInternalServerError, CodeInternal, message)
}
