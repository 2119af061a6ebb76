package app

import (
	"smartone-ap/internal/core"

	"github.com/shopspring/decimal"
)

// CreateBillRequest is the input for posting a new vendor bill.
// Dates are YYYY-MM-DD strings; BillNumber is optional.
type CreateBillRequest struct {
	VendorID    int
	BillNumber  string
	BillDate    string
	DueDate     string
	Reference   string
	Description string
	Notes       string
	Items       []BillLineInput
	Attachments []AttachmentInput
}

// BillLineInput is a single line within a CreateBillRequest.
type BillLineInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	AccountID   int
	TaxRate     decimal.Decimal
}

// AttachmentInput references an uploaded file attached to a bill.
type AttachmentInput struct {
	FileName string
	FileURL  string
}

// PayBillRequest is the input for applying a payment to a bill.
// PaymentDate is a YYYY-MM-DD string; empty means today.
type PayBillRequest struct {
	BillID           int
	Amount           decimal.Decimal
	PaymentDate      string
	PaymentMethod    string
	PaymentReference string
	Notes            string
}

// ListBillsRequest narrows and pages the bill list. Zero values mean "no filter".
type ListBillsRequest struct {
	VendorID     int
	Status       core.BillStatus
	DueDateStart string
	DueDateEnd   string
	Search       string
	Page         int
	PageSize     int
}

// CreateVendorRequest is the input for creating a new vendor.
type CreateVendorRequest struct {
	Code             string
	Name             string
	ContactPerson    string
	Email            string
	Phone            string
	Address          string
	PaymentTermsDays int
}

// CreateAccountRequest is the input for adding an account to the chart of accounts.
type CreateAccountRequest struct {
	Code    string
	Name    string
	Type    core.AccountType
	Subtype string
}

// CreatePeriodRequest is the input for opening a new financial period.
// Dates are YYYY-MM-DD strings.
type CreatePeriodRequest struct {
	Name      string
	StartDate string
	EndDate   string
	Type      string
	Year      int
	Quarter   *int
	Month     *int
}
