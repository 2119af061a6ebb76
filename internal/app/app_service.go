package app

import (
	"context"
	"fmt"
	"time"

	"smartone-ap/internal/core"
)

type appService struct {
	bills    core.BillService
	vendors  core.VendorService
	accounts core.AccountService
	periods  core.PeriodService
	ledger   *core.Ledger
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	bills core.BillService,
	vendors core.VendorService,
	accounts core.AccountService,
	periods core.PeriodService,
	ledger *core.Ledger,
) ApplicationService {
	return &appService{
		bills:    bills,
		vendors:  vendors,
		accounts: accounts,
		periods:  periods,
		ledger:   ledger,
	}
}

// CreateBill posts a vendor bill together with its mirroring journal entry.
// An empty bill date means today; an empty due date defaults to the bill date
// plus the vendor's payment terms.
func (s *appService) CreateBill(ctx context.Context, req CreateBillRequest) (*BillResult, error) {
	billDate, err := parseDate(req.BillDate, time.Now())
	if err != nil {
		return nil, fmt.Errorf("invalid bill date: %w", err)
	}

	var dueDate time.Time
	if req.DueDate == "" {
		vendor, err := s.vendors.GetVendor(ctx, req.VendorID)
		if err != nil {
			return nil, err
		}
		dueDate = billDate.AddDate(0, 0, vendor.PaymentTermsDays)
	} else {
		if dueDate, err = parseDate(req.DueDate, time.Time{}); err != nil {
			return nil, fmt.Errorf("invalid due date: %w", err)
		}
	}

	items := make([]core.BillItemInput, len(req.Items))
	for i, line := range req.Items {
		items[i] = core.BillItemInput{
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			AccountID:   line.AccountID,
			TaxRate:     line.TaxRate,
		}
	}

	attachments := make([]core.AttachmentInput, len(req.Attachments))
	for i, att := range req.Attachments {
		attachments[i] = core.AttachmentInput{FileName: att.FileName, FileURL: att.FileURL}
	}

	bill, err := s.bills.CreateBill(ctx, core.CreateBillInput{
		VendorID:    req.VendorID,
		BillNumber:  req.BillNumber,
		BillDate:    billDate,
		DueDate:     dueDate,
		Reference:   req.Reference,
		Description: req.Description,
		Notes:       req.Notes,
		Items:       items,
		Attachments: attachments,
	})
	if err != nil {
		return nil, err
	}
	return &BillResult{Bill: bill}, nil
}

// GetBill returns a single bill, fully hydrated.
func (s *appService) GetBill(ctx context.Context, id int) (*BillResult, error) {
	bill, err := s.bills.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}
	return &BillResult{Bill: bill}, nil
}

// ListBills returns a filtered page of bills plus the AP aggregates.
func (s *appService) ListBills(ctx context.Context, req ListBillsRequest) (*BillsResult, error) {
	list, err := s.bills.ListBills(ctx, core.BillFilter{
		VendorID:     req.VendorID,
		Status:       req.Status,
		DueDateStart: req.DueDateStart,
		DueDateEnd:   req.DueDateEnd,
		Search:       req.Search,
		Page:         req.Page,
		PageSize:     req.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return &BillsResult{
		Bills:       list.Bills,
		Pagination:  list.Pagination,
		Summary:     list.Summary,
		TopVendors:  list.TopVendors,
		AgeAnalysis: list.AgeAnalysis,
	}, nil
}

// PayBill applies a payment to a bill. An empty payment date means today.
func (s *appService) PayBill(ctx context.Context, req PayBillRequest) (*BillResult, error) {
	paymentDate, err := parseDate(req.PaymentDate, time.Now())
	if err != nil {
		return nil, fmt.Errorf("invalid payment date: %w", err)
	}

	bill, err := s.bills.ApplyPayment(ctx, core.PaymentInput{
		BillID:           req.BillID,
		Amount:           req.Amount,
		PaymentDate:      paymentDate,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		Notes:            req.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &BillResult{Bill: bill}, nil
}

// ListVendors returns all active vendors.
func (s *appService) ListVendors(ctx context.Context) (*VendorsResult, error) {
	vendors, err := s.vendors.GetVendors(ctx)
	if err != nil {
		return nil, err
	}
	return &VendorsResult{Vendors: vendors}, nil
}

// CreateVendor creates a new vendor record.
func (s *appService) CreateVendor(ctx context.Context, req CreateVendorRequest) (*VendorResult, error) {
	vendor, err := s.vendors.CreateVendor(ctx, core.VendorInput{
		Code:             req.Code,
		Name:             req.Name,
		ContactPerson:    req.ContactPerson,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		PaymentTermsDays: req.PaymentTermsDays,
	})
	if err != nil {
		return nil, err
	}
	return &VendorResult{Vendor: vendor}, nil
}

// ListAccounts returns the active chart of accounts.
func (s *appService) ListAccounts(ctx context.Context) (*AccountsResult, error) {
	accounts, err := s.accounts.GetAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return &AccountsResult{Accounts: accounts}, nil
}

// CreateAccount adds an account to the chart of accounts.
func (s *appService) CreateAccount(ctx context.Context, req CreateAccountRequest) (*AccountResult, error) {
	account, err := s.accounts.CreateAccount(ctx, core.AccountInput{
		Code:    req.Code,
		Name:    req.Name,
		Type:    req.Type,
		Subtype: req.Subtype,
	})
	if err != nil {
		return nil, err
	}
	return &AccountResult{Account: account}, nil
}

// ListPeriods returns all financial periods, newest first.
func (s *appService) ListPeriods(ctx context.Context) (*PeriodsResult, error) {
	periods, err := s.periods.GetPeriods(ctx)
	if err != nil {
		return nil, err
	}
	return &PeriodsResult{Periods: periods}, nil
}

// CreatePeriod opens a new financial period.
func (s *appService) CreatePeriod(ctx context.Context, req CreatePeriodRequest) (*PeriodResult, error) {
	period, err := s.periods.CreatePeriod(ctx, core.PeriodInput{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Type:      req.Type,
		Year:      req.Year,
		Quarter:   req.Quarter,
		Month:     req.Month,
	})
	if err != nil {
		return nil, err
	}
	return &PeriodResult{Period: period}, nil
}

// ClosePeriod transitions an OPEN period to CLOSED.
func (s *appService) ClosePeriod(ctx context.Context, id int) (*PeriodResult, error) {
	period, err := s.periods.ClosePeriod(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PeriodResult{Period: period}, nil
}

// GetJournalEntriesForBill returns the journal entries posted for a bill.
func (s *appService) GetJournalEntriesForBill(ctx context.Context, billID int) (*JournalEntriesResult, error) {
	entries, err := s.ledger.GetEntriesForBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	return &JournalEntriesResult{Entries: entries}, nil
}

// GetTransactionsForBill returns the flat transaction log of a bill.
func (s *appService) GetTransactionsForBill(ctx context.Context, billID int) (*TransactionsResult, error) {
	transactions, err := s.bills.GetTransactionsForBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	return &TransactionsResult{Transactions: transactions}, nil
}

// parseDate parses a YYYY-MM-DD string, returning fallback when s is empty.
func parseDate(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	return time.Parse("2006-01-02", s)
}
