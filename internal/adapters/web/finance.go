package web

import (
	"net/http"
	"strconv"

	"smartone-ap/internal/app"
	"smartone-ap/internal/core"

	"github.com/go-chi/chi/v5"
)

// listVendors handles GET /api/finance/vendors.
func (h *Handler) listVendors(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListVendors(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Vendors)
}

// createVendor handles POST /api/finance/vendors.
// Body: { code, name, contactPerson?, email?, phone?, address?, paymentTermsDays? }
func (h *Handler) createVendor(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code             string `json:"code"`
		Name             string `json:"name"`
		ContactPerson    string `json:"contactPerson"`
		Email            string `json:"email"`
		Phone            string `json:"phone"`
		Address          string `json:"address"`
		PaymentTermsDays int    `json:"paymentTermsDays"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	if body.Code == "" {
		writeError(w, r, "code is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.Name == "" {
		writeError(w, r, "name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.CreateVendor(r.Context(), app.CreateVendorRequest{
		Code:             body.Code,
		Name:             body.Name,
		ContactPerson:    body.ContactPerson,
		Email:            body.Email,
		Phone:            body.Phone,
		Address:          body.Address,
		PaymentTermsDays: body.PaymentTermsDays,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result.Vendor)
}

// getVendor handles GET /api/finance/vendors/{id}.
func (h *Handler) getVendor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "invalid vendor id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.ListVendors(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	for _, v := range result.Vendors {
		if v.ID == id {
			writeJSON(w, v)
			return
		}
	}
	writeError(w, r, "vendor not found", "NOT_FOUND", http.StatusNotFound)
}

// listAccounts handles GET /api/finance/accounts.
func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListAccounts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Accounts)
}

// createAccount handles POST /api/finance/accounts.
// Body: { code, name, type, subtype? }
func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code    string `json:"code"`
		Name    string `json:"name"`
		Type    string `json:"type"`
		Subtype string `json:"subtype"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	if body.Code == "" || body.Name == "" {
		writeError(w, r, "code and name are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	switch core.AccountType(body.Type) {
	case core.Asset, core.Liability, core.Equity, core.Revenue, core.Expense:
	default:
		writeError(w, r, "type must be one of ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.CreateAccount(r.Context(), app.CreateAccountRequest{
		Code:    body.Code,
		Name:    body.Name,
		Type:    core.AccountType(body.Type),
		Subtype: body.Subtype,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result.Account)
}

// listPeriods handles GET /api/finance/periods.
func (h *Handler) listPeriods(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListPeriods(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Periods)
}

// createPeriod handles POST /api/finance/periods.
// Body: { name, startDate, endDate, type?, year, quarter?, month? }
func (h *Handler) createPeriod(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name      string `json:"name"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		Type      string `json:"type"`
		Year      int    `json:"year"`
		Quarter   *int   `json:"quarter"`
		Month     *int   `json:"month"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	if body.Name == "" || body.StartDate == "" || body.EndDate == "" {
		writeError(w, r, "name, startDate, and endDate are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.CreatePeriod(r.Context(), app.CreatePeriodRequest{
		Name:      body.Name,
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
		Type:      body.Type,
		Year:      body.Year,
		Quarter:   body.Quarter,
		Month:     body.Month,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result.Period)
}

// closePeriod handles POST /api/finance/periods/{id}/close.
func (h *Handler) closePeriod(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "invalid period id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.ClosePeriod(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Period)
}

// listJournalEntries handles GET /api/finance/journal-entries?billId=.
func (h *Handler) listJournalEntries(w http.ResponseWriter, r *http.Request) {
	billIDStr := r.URL.Query().Get("billId")
	if billIDStr == "" {
		writeError(w, r, "billId is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	billID, err := strconv.Atoi(billIDStr)
	if err != nil {
		writeError(w, r, "invalid billId", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.GetJournalEntriesForBill(r.Context(), billID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Entries)
}

// listTransactions handles GET /api/finance/transactions?billId=.
func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	billIDStr := r.URL.Query().Get("billId")
	if billIDStr == "" {
		writeError(w, r, "billId is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	billID, err := strconv.Atoi(billIDStr)
	if err != nil {
		writeError(w, r, "invalid billId", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.GetTransactionsForBill(r.Context(), billID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Transactions)
}
