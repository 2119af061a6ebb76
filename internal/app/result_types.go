package app

import "smartone-ap/internal/core"

// BillResult is returned by bill lifecycle operations.
type BillResult struct {
	Bill *core.Bill
}

// BillsResult is returned by ListBills.
type BillsResult struct {
	Bills       []core.Bill
	Pagination  core.Pagination
	Summary     core.APSummary
	TopVendors  []core.VendorOutstanding
	AgeAnalysis core.AgeAnalysis
}

// VendorResult is returned by CreateVendor.
type VendorResult struct {
	Vendor *core.Vendor
}

// VendorsResult is returned by ListVendors.
type VendorsResult struct {
	Vendors []core.Vendor
}

// AccountResult is returned by CreateAccount.
type AccountResult struct {
	Account *core.Account
}

// AccountsResult is returned by ListAccounts.
type AccountsResult struct {
	Accounts []core.Account
}

// PeriodResult is returned by CreatePeriod and ClosePeriod.
type PeriodResult struct {
	Period *core.FinancialPeriod
}

// PeriodsResult is returned by ListPeriods.
type PeriodsResult struct {
	Periods []core.FinancialPeriod
}

// JournalEntriesResult is returned by GetJournalEntriesForBill.
type JournalEntriesResult struct {
	Entries []core.JournalEntry
}

// TransactionsResult is returned by GetTransactionsForBill.
type TransactionsResult struct {
	Transactions []core.FinancialTransaction
}
