package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"smartone-ap/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps domain sentinel errors to HTTP responses.
// Not-found sentinels become 404, validation and conflict sentinels 400,
// ledger misconfiguration (no open period, missing control accounts) 500 —
// those are operator problems, not caller problems.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrBillNotFound),
		errors.Is(err, core.ErrVendorNotFound),
		errors.Is(err, core.ErrPeriodNotFound),
		errors.Is(err, core.ErrAccountNotFound):
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, core.ErrDuplicateBillNumber),
		errors.Is(err, core.ErrDuplicateVendorCode),
		errors.Is(err, core.ErrDuplicateAccountCode):
		writeError(w, r, err.Error(), "DUPLICATE", http.StatusBadRequest)
	case errors.Is(err, core.ErrInvalidBill),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrOverpayment):
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
	case errors.Is(err, core.ErrNoOpenPeriod),
		errors.Is(err, core.ErrMissingAPAccount),
		errors.Is(err, core.ErrMissingCashAccount):
		writeError(w, r, err.Error(), "CONFIGURATION_ERROR", http.StatusInternalServerError)
	default:
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
