package core

import "errors"

// Sentinel errors returned by the AP services. Callers match with errors.Is
// to choose an HTTP status; everything else is treated as a storage failure.
var (
	ErrVendorNotFound       = errors.New("vendor not found")
	ErrBillNotFound         = errors.New("bill not found")
	ErrPeriodNotFound       = errors.New("financial period not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrDuplicateBillNumber  = errors.New("bill number already exists")
	ErrDuplicateVendorCode  = errors.New("vendor code already exists")
	ErrDuplicateAccountCode = errors.New("account code already exists")

	// Configuration errors: the ledger cannot mirror a posting because the
	// books are not set up for it. These abort the whole transaction.
	ErrNoOpenPeriod       = errors.New("no open financial period covers the posting date")
	ErrMissingAPAccount   = errors.New("chart of accounts has no accounts payable account")
	ErrMissingCashAccount = errors.New("chart of accounts has no cash account")

	ErrInvalidBill   = errors.New("invalid bill")
	ErrInvalidAmount = errors.New("payment amount must be a positive number")
	ErrOverpayment   = errors.New("payment exceeds the bill's outstanding balance")
)
