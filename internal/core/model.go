package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Well-known account subtypes resolved by the automatic posting legs.
const (
	SubtypeAccountsPayable = "ACCOUNTS_PAYABLE"
	SubtypeCash            = "CASH"
)

// Account is one entry in the chart of accounts.
type Account struct {
	ID       int         `json:"id"`
	Code     string      `json:"code"`
	Name     string      `json:"name"`
	Type     AccountType `json:"type"`
	Subtype  string      `json:"subtype"`
	IsActive bool        `json:"is_active"`
}

type Vendor struct {
	ID               int       `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	ContactPerson    *string   `json:"contact_person,omitempty"`
	Email            *string   `json:"email,omitempty"`
	Phone            *string   `json:"phone,omitempty"`
	Address          *string   `json:"address,omitempty"`
	PaymentTermsDays int       `json:"payment_terms_days"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

type BillStatus string

const (
	BillPending BillStatus = "PENDING"
	BillPartial BillStatus = "PARTIAL"
	BillPaid    BillStatus = "PAID"
)

// Bill is a vendor invoice payable by the business. Dates are plain
// YYYY-MM-DD strings, matching their DATE columns.
type Bill struct {
	ID          int             `json:"id"`
	BillNumber  string          `json:"bill_number"`
	VendorID    int             `json:"vendor_id"`
	VendorName  string          `json:"vendor_name"`
	IssueDate   string          `json:"issue_date"`
	DueDate     string          `json:"due_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Status      BillStatus      `json:"status"`
	Reference   *string         `json:"reference,omitempty"`
	Description *string         `json:"description,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`

	Items       []BillItem       `json:"items,omitempty"`
	Payments    []Payment        `json:"payments,omitempty"`
	Attachments []BillAttachment `json:"attachments,omitempty"`
}

// BillItem is one line of a bill. Lines are created atomically with the
// parent bill and never mutated afterwards.
type BillItem struct {
	ID          int             `json:"id"`
	BillID      int             `json:"bill_id"`
	LineNumber  int             `json:"line_number"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   int             `json:"account_id"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// Payment is one cash application against a bill. Append-only.
type Payment struct {
	ID               int             `json:"id"`
	BillID           int             `json:"bill_id"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentDate      string          `json:"payment_date"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentReference *string         `json:"payment_reference,omitempty"`
	Notes            *string         `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// BillAttachment records an uploaded document tied to a bill. The upload
// transport lives outside this service; only the metadata row is kept here.
type BillAttachment struct {
	ID        int       `json:"id"`
	BillID    int       `json:"bill_id"`
	FileName  string    `json:"file_name"`
	FileURL   string    `json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
}

type TransactionType string

const (
	TransactionAP      TransactionType = "AP"
	TransactionPayment TransactionType = "PAYMENT"
)

// FinancialTransaction is the flat transaction log row written alongside
// every bill and payment.
type FinancialTransaction struct {
	ID          int             `json:"id"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description *string         `json:"description,omitempty"`
	Reference   *string         `json:"reference,omitempty"`
	BillID      *int            `json:"bill_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type PeriodStatus string

const (
	PeriodOpen    PeriodStatus = "OPEN"
	PeriodClosed  PeriodStatus = "CLOSED"
	PeriodPending PeriodStatus = "PENDING"
)

// FinancialPeriod is a bounded date range that must be OPEN to accept
// new journal postings.
type FinancialPeriod struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Type      string       `json:"type"`
	Year      int          `json:"year"`
	Quarter   *int         `json:"quarter,omitempty"`
	Month     *int         `json:"month,omitempty"`
	Status    PeriodStatus `json:"status"`
}

type EntryStatus string

// Entries are only ever written POSTED; the schema reserves DRAFT and
// REVERSED for future workflows.
const EntryPosted EntryStatus = "POSTED"

// JournalEntry is a posted double-entry bookkeeping record.
type JournalEntry struct {
	ID          int                `json:"id"`
	EntryNumber string             `json:"entry_number"`
	Date        string             `json:"date"`
	Description string             `json:"description"`
	Reference   *string            `json:"reference,omitempty"`
	Status      EntryStatus        `json:"status"`
	PeriodID    int                `json:"period_id"`
	BillID      *int               `json:"bill_id,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	Items       []JournalEntryItem `json:"items,omitempty"`
}

// JournalEntryItem is one debit or credit leg of a journal entry.
// Exactly one of Debit/Credit is non-zero.
type JournalEntryItem struct {
	ID          int             `json:"id"`
	EntryID     int             `json:"entry_id"`
	AccountID   int             `json:"account_id"`
	Description *string         `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
