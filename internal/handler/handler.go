package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"inventory-dashboard/internal/middleware"
	"inventory-dashboard/internal/model"

	"github.com/rs/zerolog"
)

// storeUnavailableMessage is shown for every store failure that is not a
// recognised constraint violation.
const storeUnavailableMessage = "the inventory store is unavailable, please try again"

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, error
// code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	requestID := middleware.GetRequestID(r.Context())
	logger.Error().
		Str("error", message).
		Str("code", code).
		Int("status", status).
		Str("request_id", requestID).
		Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: requestID,
	})
}

// classifyError maps a service error to an HTTP status, an error code and a
// message that is safe to show.
func classifyError(err error) (int, string, string) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case model.ErrCodeInvalidID, model.ErrCodeInvalidJSON:
			return http.StatusBadRequest, domainErr.Code, domainErr.Message
		case model.ErrCodeValidation:
			return http.StatusUnprocessableEntity, domainErr.Code, domainErr.Message
		case model.ErrCodeCategoryInUse:
			return http.StatusConflict, domainErr.Code, domainErr.Message
		case model.ErrCodeCategoryNotFound, model.ErrCodeProductNotFound:
			return http.StatusNotFound, domainErr.Code, domainErr.Message
		case model.ErrCodeSnapshotsDisabled:
			return http.StatusServiceUnavailable, domainErr.Code, domainErr.Message
		}
	}

	var storeErr *model.StoreError
	if errors.As(err, &storeErr) {
		return http.StatusBadGateway, model.ErrCodeStore, storeUnavailableMessage
	}

	return http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error"
}

// writeServiceError classifies err and writes it as a JSON error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	status, code, message := classifyError(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("service call failed")
	}
	writeError(w, r, status, code, message, logger)
}

// parseID reads the {id} path segment.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewDomainError(model.ErrCodeInvalidID, "id must be a positive integer")
	}
	return id, nil
}
