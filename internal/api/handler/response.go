package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
)

const unexpectedErrorMessage = "An unexpected error occurred."

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// classify maps err to an HTTP status, a public message and, for validation
// failures, the offending field.
func classify(err error) (status int, message, code, field string) {
	var validationError *apperrors.ValidationError
	var customerErr *customer.Error

	switch {
	case errors.As(err, &validationError):
		return http.StatusBadRequest, validationError.Error(), "VALIDATION_ERROR", validationError.Field
	case customer.Classified(err) && errors.As(err, &customerErr):
		return kindStatus(customerErr.Kind), customerErr.Message, customerErr.Kind.String(), ""
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return http.StatusBadRequest, err.Error(), "INVALID_ARGUMENT", ""
	case errors.Is(err, apperrors.ErrStoreTimeout):
		return http.StatusGatewayTimeout, "The customer store did not respond in time.", "STORE_TIMEOUT", ""
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "The customer store is unavailable.", "STORE_UNAVAILABLE", ""
	case errors.As(err, &customerErr) && customerErr.Kind == customer.KindServiceFailure:
		return http.StatusInternalServerError, customerErr.Message, customerErr.Kind.String(), ""
	}
	return http.StatusInternalServerError, unexpectedErrorMessage, "INTERNAL_ERROR", ""
}

func kindStatus(k customer.Kind) int {
	switch k {
	case customer.KindEmptyIdentifier, customer.KindInvalidDocument:
		return http.StatusBadRequest
	case customer.KindNotFound:
		return http.StatusNotFound
	case customer.KindAlreadyExists, customer.KindAlreadyInactive:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func respondError(w http.ResponseWriter, err error) int {
	status, message, code, field := classify(err)
	if status == http.StatusInternalServerError && code == "INTERNAL_ERROR" {
		slog.Default().Error("Unhandled internal error", "error", err)
	}
	respondJSON(w, status, dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
	})
	return status
}

// respondListError keeps the list shape: an empty data array with the
// failure message in the sibling error field.
func respondListError(w http.ResponseWriter, err error) int {
	status, message, _, _ := classify(err)
	respondJSON(w, status, customer.ToErrorList(message))
	return status
}

func respondOperationError(w http.ResponseWriter, err error) int {
	status, message, _, _ := classify(err)
	respondJSON(w, status, customer.ToError(message))
	return status
}

func logLevelFor(status int) slog.Level {
	if status >= http.StatusInternalServerError {
		return slog.LevelError
	}
	return slog.LevelWarn
}
