// Package api implements the JSON HTTP handlers for the sales API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ostlund/vanir/internal/domain"
	"github.com/ostlund/vanir/internal/middleware"
)

// validate is the shared request validator. Struct tags on request DTOs
// drive it; it is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps a domain error onto an HTTP status and writes the JSON
// error body. Internal error details never reach the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := statusFromCode(code)

	if status >= http.StatusInternalServerError {
		middleware.GetLogger(r.Context()).Error("request failed",
			"code", code,
			"error", err,
		)
	}

	writeJSON(w, status, errorResponse{
		Error: errorBody{
			Code:    code,
			Message: domain.ErrorMessage(err),
		},
	})
}

// writeValidationError reports the first failed field of a request DTO.
func writeValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		writeError(w, r, domain.Errorf(domain.EINVALID, "api.validate",
			"field %q failed validation on %q", first.Field(), first.Tag()))
		return
	}
	writeError(w, r, domain.Invalid("api.validate", "invalid request body"))
}

func statusFromCode(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ETOOLARGE:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func invalidField(op, field, value string) error {
	return domain.Errorf(domain.EINVALID, op, "invalid %s: %s", field, value)
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.Invalid("api.decode", "invalid JSON body")
	}
	return nil
}
