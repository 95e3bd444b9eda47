package rest

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/artbid/auction-marketplace-backend/internal/domain/errors"
)

type errorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// writeError renders an AppError with its mapped status code. Unclassified
// errors collapse to 500 without leaking internals.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := errors.GetStatusCode(err)

	body := errorResponse{Error: errorBody{
		Code:    "INTERNAL_ERROR",
		Message: "An internal error occurred",
	}}

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Type != errors.ErrorTypeInternal {
		body.Error.Code = appErr.Code
		body.Error.Message = appErr.Message
		body.Error.Details = appErr.Details
	}

	if status >= 500 {
		logger.Error("request failed", zap.Error(err))
	}

	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
