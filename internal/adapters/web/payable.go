package web

import (
	"fmt"
	"net/http"
	"strconv"

	"smartone-ap/internal/app"
	"smartone-ap/internal/core"

	"github.com/shopspring/decimal"
)

// getPayable handles GET /api/finance/payable.
// With ?id= it returns a single hydrated bill; otherwise a filtered page of
// bills plus the AP summary, top vendors, and aging analysis.
func (h *Handler) getPayable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if idStr := q.Get("id"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			writeError(w, r, "invalid bill id", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		result, err := h.svc.GetBill(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, result.Bill)
		return
	}

	req := app.ListBillsRequest{
		Status:       core.BillStatus(q.Get("status")),
		DueDateStart: q.Get("dueDateStart"),
		DueDateEnd:   q.Get("dueDateEnd"),
		Search:       q.Get("search"),
	}
	if v := q.Get("vendorId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, r, "invalid vendorId", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		req.VendorID = id
	}
	if v := q.Get("page"); v != "" {
		req.Page, _ = strconv.Atoi(v)
	}
	if v := q.Get("pageSize"); v != "" {
		req.PageSize, _ = strconv.Atoi(v)
	}

	result, err := h.svc.ListBills(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	type response struct {
		Bills       []core.Bill              `json:"bills"`
		Pagination  core.Pagination          `json:"pagination"`
		Summary     core.APSummary           `json:"summary"`
		TopVendors  []core.VendorOutstanding `json:"topVendors"`
		AgeAnalysis core.AgeAnalysis         `json:"ageAnalysis"`
	}
	writeJSON(w, response{
		Bills:       result.Bills,
		Pagination:  result.Pagination,
		Summary:     result.Summary,
		TopVendors:  result.TopVendors,
		AgeAnalysis: result.AgeAnalysis,
	})
}

// createBill handles POST /api/finance/payable.
// Body: { vendorId, billNumber?, billDate?, dueDate?, reference?, description?,
//         notes?, items: [{description, quantity, unitPrice, accountId, taxRate?}],
//         attachments?: [{fileName, fileUrl}] }
func (h *Handler) createBill(w http.ResponseWriter, r *http.Request) {
	var body struct {
		VendorID    int    `json:"vendorId"`
		BillNumber  string `json:"billNumber"`
		BillDate    string `json:"billDate"`
		DueDate     string `json:"dueDate"`
		Reference   string `json:"reference"`
		Description string `json:"description"`
		Notes       string `json:"notes"`
		Items       []struct {
			Description string          `json:"description"`
			Quantity    decimal.Decimal `json:"quantity"`
			UnitPrice   decimal.Decimal `json:"unitPrice"`
			AccountID   int             `json:"accountId"`
			TaxRate     decimal.Decimal `json:"taxRate"`
		} `json:"items"`
		Attachments []struct {
			FileName string `json:"fileName"`
			FileURL  string `json:"fileUrl"`
		} `json:"attachments"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	if body.VendorID == 0 {
		writeError(w, r, "vendorId is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if len(body.Items) == 0 {
		writeError(w, r, "at least one item is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	req := app.CreateBillRequest{
		VendorID:    body.VendorID,
		BillNumber:  body.BillNumber,
		BillDate:    body.BillDate,
		DueDate:     body.DueDate,
		Reference:   body.Reference,
		Description: body.Description,
		Notes:       body.Notes,
	}
	for i, item := range body.Items {
		if item.AccountID == 0 {
			writeError(w, r, fmt.Sprintf("item %d: accountId is required", i+1), "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		if !item.Quantity.IsPositive() {
			writeError(w, r, fmt.Sprintf("item %d: quantity must be positive", i+1), "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		if item.UnitPrice.IsNegative() {
			writeError(w, r, fmt.Sprintf("item %d: unitPrice cannot be negative", i+1), "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		req.Items = append(req.Items, app.BillLineInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			AccountID:   item.AccountID,
			TaxRate:     item.TaxRate,
		})
	}
	for _, att := range body.Attachments {
		req.Attachments = append(req.Attachments, app.AttachmentInput{
			FileName: att.FileName,
			FileURL:  att.FileURL,
		})
	}

	result, err := h.svc.CreateBill(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result.Bill)
}

// payBill handles PUT /api/finance/payable.
// Body: { id, paymentAmount, paymentDate?, paymentMethod, paymentReference?, notes? }
func (h *Handler) payBill(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID               int             `json:"id"`
		PaymentAmount    decimal.Decimal `json:"paymentAmount"`
		PaymentDate      string          `json:"paymentDate"`
		PaymentMethod    string          `json:"paymentMethod"`
		PaymentReference string          `json:"paymentReference"`
		Notes            string          `json:"notes"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	if body.ID == 0 {
		writeError(w, r, "id is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.PaymentMethod == "" {
		writeError(w, r, "paymentMethod is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.PayBill(r.Context(), app.PayBillRequest{
		BillID:           body.ID,
		Amount:           body.PaymentAmount,
		PaymentDate:      body.PaymentDate,
		PaymentMethod:    body.PaymentMethod,
		PaymentReference: body.PaymentReference,
		Notes:            body.Notes,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Bill)
}
