package app

import (
	"context"
)

// ApplicationService is the single interface all transport adapters call.
// It decouples presentation from business logic. Implementations must contain
// no HTTP types and no display logic of any kind.
type ApplicationService interface {
	// CreateBill posts a vendor bill together with its mirroring journal entry.
	CreateBill(ctx context.Context, req CreateBillRequest) (*BillResult, error)

	// GetBill returns a single bill hydrated with items, payments, and attachments.
	GetBill(ctx context.Context, id int) (*BillResult, error)

	// ListBills returns a filtered page of bills plus the AP summary,
	// top vendors by outstanding amount, and the aging analysis.
	ListBills(ctx context.Context, req ListBillsRequest) (*BillsResult, error)

	// PayBill applies a payment to a bill, posts the cash journal entry, and
	// returns the bill with its recomputed status.
	PayBill(ctx context.Context, req PayBillRequest) (*BillResult, error)

	// ListVendors returns all active vendors.
	ListVendors(ctx context.Context) (*VendorsResult, error)

	// CreateVendor creates a new vendor record.
	CreateVendor(ctx context.Context, req CreateVendorRequest) (*VendorResult, error)

	// ListAccounts returns the active chart of accounts.
	ListAccounts(ctx context.Context) (*AccountsResult, error)

	// CreateAccount adds an account to the chart of accounts.
	CreateAccount(ctx context.Context, req CreateAccountRequest) (*AccountResult, error)

	// ListPeriods returns all financial periods, newest first.
	ListPeriods(ctx context.Context) (*PeriodsResult, error)

	// CreatePeriod opens a new financial period.
	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (*PeriodResult, error)

	// ClosePeriod transitions an OPEN period to CLOSED. Closing an already
	// closed period is a no-op.
	ClosePeriod(ctx context.Context, id int) (*PeriodResult, error)

	// GetJournalEntriesForBill returns the journal entries posted for a bill,
	// in posting order.
	GetJournalEntriesForBill(ctx context.Context, billID int) (*JournalEntriesResult, error)

	// GetTransactionsForBill returns the flat transaction log of a bill.
	GetTransactionsForBill(ctx context.Context, billID int) (*TransactionsResult, error)
}
