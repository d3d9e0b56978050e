package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// envelope is the body of every successful response; "success" is added by
// writeJSON.
type envelope map[string]any

type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Item not found"`
	Code    string `json:"code" example:"NOT_FOUND"`
}

const maxJSONBodyBytes = 1 << 20

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, data envelope) {
	if data == nil {
		data = envelope{}
	}
	data["success"] = true

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn(r.Context(), "failed to encode response", "error", err)
	}
}

func writeErrorBody(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Success: false, Error: message, Code: code})
}

// decodeJSON reads a single JSON object into target. limit caps the body
// size; zero means the default.
func decodeJSON(w http.ResponseWriter, r *http.Request, target any, limit int64) error {
	if limit <= 0 {
		limit = maxJSONBodyBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(target); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return validationError("Request body must not be empty")
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return validationError("Request body contains malformed JSON")
		case errors.As(err, &typeErr):
			return validationError(fmt.Sprintf("Invalid value for field %q", typeErr.Field))
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return validationError("Unknown field " + strings.TrimPrefix(err.Error(), "json: unknown field "))
		case errors.As(err, &maxErr):
			return &APIError{
				Status:  http.StatusRequestEntityTooLarge,
				Code:    CodeValidation,
				Message: fmt.Sprintf("Request body must not exceed %d bytes", maxErr.Limit),
			}
		default:
			return validationError("Invalid request body")
		}
	}

	if dec.More() {
		return validationError("Request body must contain a single JSON object")
	}
	return nil
}

type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Logged out"`
}
