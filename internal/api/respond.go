package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/safar/pos-backend/internal/auth"
	"github.com/safar/pos-backend/internal/database"
	"github.com/safar/pos-backend/internal/pricing"
	"github.com/safar/pos-backend/internal/store"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps an error to the HTTP status reported to the client.
func statusFor(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity
	case errors.Is(err, database.ErrEmptyOrder),
		errors.Is(err, pricing.ErrInvalidPaymentAmount),
		errors.Is(err, store.ErrInvalidCursor),
		errors.Is(err, database.ErrAmountOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, database.ErrUserMismatch):
		return http.StatusForbidden
	case errors.Is(err, database.ErrProductUnavailable),
		errors.Is(err, database.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, database.ErrOrderNumberConflict),
		errors.Is(err, database.ErrSKUExists),
		errors.Is(err, database.ErrEmailExists):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case database.IsUnavailable(err):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// handleError writes err to the client. Server-side failures are logged and
// their details are not exposed.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		zctx.From(r.Context()).Error("Request failed", zap.Error(err), zap.Int("status", status))
		respondError(w, status, http.StatusText(status))
		return
	}
	respondError(w, status, err.Error())
}
