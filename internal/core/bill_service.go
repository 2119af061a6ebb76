package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// BillItemInput is a single line within a CreateBillInput.
type BillItemInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	AccountID   int
	TaxRate     decimal.Decimal
}

// AttachmentInput is an attachment reference within a CreateBillInput.
type AttachmentInput struct {
	FileName string
	FileURL  string
}

// CreateBillInput is the input for posting a new vendor bill.
// BillNumber is optional: when empty the next AP-YYYYMM-NNN number for the
// bill date's month is assigned.
type CreateBillInput struct {
	VendorID    int
	BillNumber  string
	BillDate    time.Time
	DueDate     time.Time
	Reference   string
	Description string
	Notes       string
	Items       []BillItemInput
	Attachments []AttachmentInput
}

// PaymentInput is the input for applying a payment to a bill.
type PaymentInput struct {
	BillID           int
	Amount           decimal.Decimal
	PaymentDate      time.Time
	PaymentMethod    string
	PaymentReference string
	Notes            string
}

// BillFilter narrows a ListBills query. Zero values mean "no filter".
type BillFilter struct {
	VendorID     int
	Status       BillStatus
	DueDateStart string
	DueDateEnd   string
	Search       string
	Page         int
	PageSize     int
}

// Pagination describes the page window of a ListBills result.
type Pagination struct {
	TotalCount  int `json:"totalCount"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

// APSummary aggregates the filtered bill set.
type APSummary struct {
	TotalBilled      decimal.Decimal `json:"totalBilled"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	DueWithin30Days  decimal.Decimal `json:"dueWithin30Days"`
	Overdue          decimal.Decimal `json:"overdue"`
}

// VendorOutstanding is one row of the top-vendors-by-outstanding list.
type VendorOutstanding struct {
	VendorID    int             `json:"vendorId"`
	VendorName  string          `json:"vendorName"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// AgeAnalysis buckets outstanding amounts by days past due.
type AgeAnalysis struct {
	Current    decimal.Decimal `json:"current"`
	Days1To30  decimal.Decimal `json:"days1to30"`
	Days31To60 decimal.Decimal `json:"days31to60"`
	Days61To90 decimal.Decimal `json:"days61to90"`
	Over90Days decimal.Decimal `json:"over90days"`
}

// BillList is the full ListBills result: one page of bills plus the
// aggregates computed over the whole filtered set.
type BillList struct {
	Bills       []Bill
	Pagination  Pagination
	Summary     APSummary
	TopVendors  []VendorOutstanding
	AgeAnalysis AgeAnalysis
}

type BillService interface {
	// CreateBill posts a vendor bill: the bill row, its lines, attachments,
	// the AP financial transaction, and the mirroring journal entry (credit
	// accounts payable, one debit per line) — all in a single transaction.
	CreateBill(ctx context.Context, input CreateBillInput) (*Bill, error)

	// ApplyPayment records a payment against a bill, posts the cash journal
	// entry (debit accounts payable, credit cash), and recomputes the bill's
	// paid amount and status — all in a single transaction.
	ApplyPayment(ctx context.Context, input PaymentInput) (*Bill, error)

	// GetBill returns a bill hydrated with vendor, items, payments, and attachments.
	GetBill(ctx context.Context, id int) (*Bill, error)

	// ListBills returns one page of bills matching the filter, plus summary
	// totals, the top five vendors by outstanding amount, and the aging analysis.
	ListBills(ctx context.Context, filter BillFilter) (*BillList, error)

	// GetTransactionsForBill returns the flat transaction log of a bill: one
	// AP row from posting plus one PAYMENT row per applied payment.
	GetTransactionsForBill(ctx context.Context, billID int) ([]FinancialTransaction, error)
}

type billService struct {
	pool   *pgxpool.Pool
	ledger *Ledger
}

// NewBillService constructs a BillService backed by PostgreSQL.
func NewBillService(pool *pgxpool.Pool, ledger *Ledger) BillService {
	return &billService{pool: pool, ledger: ledger}
}

// CreateBill implements the bill posting workflow. Any failure rolls back
// every write: no bill ever exists without its journal mirror.
func (s *billService) CreateBill(ctx context.Context, input CreateBillInput) (*Bill, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: bill must have at least one item", ErrInvalidBill)
	}
	totalAmount := decimal.Zero
	for i, item := range input.Items {
		if item.AccountID == 0 {
			return nil, fmt.Errorf("%w: item %d is missing an expense account", ErrInvalidBill, i+1)
		}
		if !item.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: item %d: quantity must be positive", ErrInvalidBill, i+1)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item %d: unit price cannot be negative", ErrInvalidBill, i+1)
		}
		totalAmount = totalAmount.Add(item.Quantity.Mul(item.UnitPrice))
	}
	// A zero total could not be mirrored: the journal credit leg must be positive.
	if !totalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: bill total must be positive, got %s", ErrInvalidBill, totalAmount.StringFixed(2))
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var vendorName string
	if err := tx.QueryRow(ctx,
		"SELECT name FROM vendors WHERE id = $1 AND is_active = true", input.VendorID,
	).Scan(&vendorName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrVendorNotFound, input.VendorID)
		}
		return nil, fmt.Errorf("resolve vendor %d: %w", input.VendorID, err)
	}

	billNumber := input.BillNumber
	if billNumber == "" {
		billNumber, err = nextDocumentNumber(ctx, tx,
			"SELECT bill_number FROM bills WHERE bill_number LIKE $1 ORDER BY bill_number DESC LIMIT 1",
			DocumentPrefix("AP", input.BillDate))
		if err != nil {
			return nil, fmt.Errorf("assign bill number: %w", err)
		}
	} else {
		var exists bool
		if err := tx.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM bills WHERE bill_number = $1)", billNumber,
		).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check bill number %q: %w", billNumber, err)
		}
		if exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBillNumber, billNumber)
		}
	}

	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	var billID int
	if err := tx.QueryRow(ctx, `
		INSERT INTO bills (bill_number, vendor_id, issue_date, due_date, total_amount,
		                   paid_amount, status, reference, description, notes)
		VALUES ($1, $2, $3, $4, $5, 0, 'PENDING', $6, $7, $8)
		RETURNING id`,
		billNumber, input.VendorID, input.BillDate.Format("2006-01-02"),
		input.DueDate.Format("2006-01-02"), totalAmount,
		toPtr(input.Reference), toPtr(input.Description), toPtr(input.Notes),
	).Scan(&billID); err != nil {
		return nil, fmt.Errorf("insert bill: %w", err)
	}

	for i, item := range input.Items {
		amount := item.Quantity.Mul(item.UnitPrice)
		if _, err := tx.Exec(ctx, `
			INSERT INTO bill_items (bill_id, line_number, description, quantity, unit_price, amount, account_id, tax_rate)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			billID, i+1, item.Description, item.Quantity, item.UnitPrice, amount, item.AccountID, item.TaxRate,
		); err != nil {
			return nil, fmt.Errorf("insert bill item %d: %w", i+1, err)
		}
	}

	for _, att := range input.Attachments {
		if _, err := tx.Exec(ctx, `
			INSERT INTO bill_attachments (bill_id, file_name, file_url)
			VALUES ($1, $2, $3)`,
			billID, att.FileName, att.FileURL,
		); err != nil {
			return nil, fmt.Errorf("insert attachment %q: %w", att.FileName, err)
		}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO financial_transactions (type, category, amount, date, description, reference, bill_id)
		VALUES ($1, 'ACCOUNTS_PAYABLE', $2, $3, $4, $5, $6)`,
		string(TransactionAP), totalAmount, input.BillDate.Format("2006-01-02"),
		fmt.Sprintf("Vendor bill %s (%s)", billNumber, vendorName), billNumber, billID,
	); err != nil {
		return nil, fmt.Errorf("insert financial transaction: %w", err)
	}

	apAccountID, err := findAccountInTx(ctx, tx, Liability, SubtypeAccountsPayable, ErrMissingAPAccount)
	if err != nil {
		return nil, err
	}

	posting := Posting{
		Date:        input.BillDate,
		Description: fmt.Sprintf("Vendor bill %s (%s)", billNumber, vendorName),
		Reference:   billNumber,
		BillID:      &billID,
		Lines: []PostingLine{
			{AccountID: apAccountID, Description: "Accounts payable", IsDebit: false, Amount: totalAmount},
		},
	}
	for _, item := range input.Items {
		amount := item.Quantity.Mul(item.UnitPrice)
		// Zero-priced lines contribute nothing to the mirror; the ledger
		// rejects zero-amount legs.
		if !amount.IsPositive() {
			continue
		}
		posting.Lines = append(posting.Lines, PostingLine{
			AccountID:   item.AccountID,
			Description: item.Description,
			IsDebit:     true,
			Amount:      amount,
		})
	}

	if _, err := s.ledger.CommitInTx(ctx, tx, posting); err != nil {
		return nil, fmt.Errorf("post journal entry for bill %s: %w", billNumber, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit bill: %w", err)
	}

	return s.GetBill(ctx, billID)
}

// ApplyPayment records a payment and keeps the bill's derived status in sync.
func (s *billService) ApplyPayment(ctx context.Context, input PaymentInput) (*Bill, error) {
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, input.Amount)
	}
	if input.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: payment method is required", ErrInvalidBill)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var billNumber string
	var paidAmount, totalAmount decimal.Decimal
	if err := tx.QueryRow(ctx,
		"SELECT bill_number, paid_amount, total_amount FROM bills WHERE id = $1 FOR UPDATE",
		input.BillID,
	).Scan(&billNumber, &paidAmount, &totalAmount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrBillNotFound, input.BillID)
		}
		return nil, fmt.Errorf("fetch bill %d: %w", input.BillID, err)
	}

	// The guard shares statusTolerance with DeriveBillStatus: any accepted
	// payment leaves |paid - total| < tolerance or paid < total, so an
	// accepted overshoot always derives PAID and never strands the bill.
	newPaid := paidAmount.Add(input.Amount)
	if newPaid.Sub(totalAmount).GreaterThanOrEqual(statusTolerance) {
		return nil, fmt.Errorf("%w: paid %s + payment %s exceeds total %s",
			ErrOverpayment, paidAmount.StringFixed(2), input.Amount.StringFixed(2), totalAmount.StringFixed(2))
	}

	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO payments (bill_id, amount, payment_date, payment_method, payment_reference, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		input.BillID, input.Amount, input.PaymentDate.Format("2006-01-02"),
		input.PaymentMethod, toPtr(input.PaymentReference), toPtr(input.Notes),
	); err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO financial_transactions (type, category, amount, date, description, reference, bill_id)
		VALUES ($1, 'ACCOUNTS_PAYABLE', $2, $3, $4, $5, $6)`,
		string(TransactionPayment), input.Amount, input.PaymentDate.Format("2006-01-02"),
		fmt.Sprintf("Payment against bill %s", billNumber), billNumber, input.BillID,
	); err != nil {
		return nil, fmt.Errorf("insert financial transaction: %w", err)
	}

	apAccountID, err := findAccountInTx(ctx, tx, Liability, SubtypeAccountsPayable, ErrMissingAPAccount)
	if err != nil {
		return nil, err
	}
	cashAccountID, err := findAccountInTx(ctx, tx, Asset, SubtypeCash, ErrMissingCashAccount)
	if err != nil {
		return nil, err
	}

	posting := Posting{
		Date:        input.PaymentDate,
		Description: fmt.Sprintf("Payment against bill %s", billNumber),
		Reference:   billNumber,
		BillID:      &input.BillID,
		Lines: []PostingLine{
			{AccountID: apAccountID, Description: "Accounts payable", IsDebit: true, Amount: input.Amount},
			{AccountID: cashAccountID, Description: "Cash", IsDebit: false, Amount: input.Amount},
		},
	}
	if _, err := s.ledger.CommitInTx(ctx, tx, posting); err != nil {
		return nil, fmt.Errorf("post journal entry for payment: %w", err)
	}

	newStatus := DeriveBillStatus(newPaid, totalAmount)
	if _, err := tx.Exec(ctx,
		"UPDATE bills SET paid_amount = $1, status = $2 WHERE id = $3",
		newPaid, string(newStatus), input.BillID,
	); err != nil {
		return nil, fmt.Errorf("update bill %d: %w", input.BillID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit payment: %w", err)
	}

	return s.GetBill(ctx, input.BillID)
}

// GetBill returns a bill by its internal ID, fully hydrated.
func (s *billService) GetBill(ctx context.Context, id int) (*Bill, error) {
	b := &Bill{}
	if err := s.pool.QueryRow(ctx, `
		SELECT b.id, b.bill_number, b.vendor_id, v.name,
		       b.issue_date::text, b.due_date::text,
		       b.total_amount, b.paid_amount, b.status,
		       b.reference, b.description, b.notes, b.created_at
		FROM bills b
		JOIN vendors v ON v.id = b.vendor_id
		WHERE b.id = $1`,
		id,
	).Scan(
		&b.ID, &b.BillNumber, &b.VendorID, &b.VendorName,
		&b.IssueDate, &b.DueDate,
		&b.TotalAmount, &b.PaidAmount, &b.Status,
		&b.Reference, &b.Description, &b.Notes, &b.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrBillNotFound, id)
		}
		return nil, fmt.Errorf("get bill %d: %w", id, err)
	}

	var err error
	if b.Items, err = s.fetchItems(ctx, id); err != nil {
		return nil, err
	}
	if b.Payments, err = s.fetchPayments(ctx, id); err != nil {
		return nil, err
	}
	if b.Attachments, err = s.fetchAttachments(ctx, id); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *billService) fetchItems(ctx context.Context, billID int) ([]BillItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, bill_id, line_number, description, quantity, unit_price, amount, account_id, tax_rate
		FROM bill_items
		WHERE bill_id = $1
		ORDER BY line_number`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch items for bill %d: %w", billID, err)
	}
	defer rows.Close()

	var items []BillItem
	for rows.Next() {
		var it BillItem
		if err := rows.Scan(
			&it.ID, &it.BillID, &it.LineNumber, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.Amount, &it.AccountID, &it.TaxRate,
		); err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *billService) fetchPayments(ctx context.Context, billID int) ([]Payment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, bill_id, amount, payment_date::text, payment_method, payment_reference, notes, created_at
		FROM payments
		WHERE bill_id = $1
		ORDER BY payment_date, id`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch payments for bill %d: %w", billID, err)
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(
			&p.ID, &p.BillID, &p.Amount, &p.PaymentDate,
			&p.PaymentMethod, &p.PaymentReference, &p.Notes, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (s *billService) fetchAttachments(ctx context.Context, billID int) ([]BillAttachment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, bill_id, file_name, file_url, created_at
		FROM bill_attachments
		WHERE bill_id = $1
		ORDER BY id`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch attachments for bill %d: %w", billID, err)
	}
	defer rows.Close()

	var attachments []BillAttachment
	for rows.Next() {
		var a BillAttachment
		if err := rows.Scan(&a.ID, &a.BillID, &a.FileName, &a.FileURL, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}

// billFilterSQL renders the WHERE clause for a filter, appending to args.
func billFilterSQL(filter BillFilter, args []any) (string, []any) {
	where := " WHERE 1=1"
	if filter.VendorID != 0 {
		args = append(args, filter.VendorID)
		where += fmt.Sprintf(" AND b.vendor_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where += fmt.Sprintf(" AND b.status = $%d", len(args))
	}
	if filter.DueDateStart != "" {
		args = append(args, filter.DueDateStart)
		where += fmt.Sprintf(" AND b.due_date >= $%d::date", len(args))
	}
	if filter.DueDateEnd != "" {
		args = append(args, filter.DueDateEnd)
		where += fmt.Sprintf(" AND b.due_date <= $%d::date", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (b.bill_number ILIKE $%d OR v.name ILIKE $%d OR b.reference ILIKE $%d)", n, n, n)
	}
	return where, args
}

// ListBills returns a page of bills plus the aggregates over the whole
// filtered set. The aging buckets and top vendors are computed by walking
// every outstanding bill in the set.
func (s *billService) ListBills(ctx context.Context, filter BillFilter) (*BillList, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	where, args := billFilterSQL(filter, nil)
	base := " FROM bills b JOIN vendors v ON v.id = b.vendor_id" + where

	var totalCount int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*)"+base, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("count bills: %w", err)
	}

	listArgs := append(append([]any{}, args...), pageSize, (page-1)*pageSize)
	listQuery := fmt.Sprintf(`
		SELECT b.id, b.bill_number, b.vendor_id, v.name,
		       b.issue_date::text, b.due_date::text,
		       b.total_amount, b.paid_amount, b.status,
		       b.reference, b.description, b.notes, b.created_at
		%s
		ORDER BY b.issue_date DESC, b.id DESC
		LIMIT $%d OFFSET $%d`, base, len(args)+1, len(args)+2)

	rows, err := s.pool.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var bills []Bill
	for rows.Next() {
		var b Bill
		if err := rows.Scan(
			&b.ID, &b.BillNumber, &b.VendorID, &b.VendorName,
			&b.IssueDate, &b.DueDate,
			&b.TotalAmount, &b.PaidAmount, &b.Status,
			&b.Reference, &b.Description, &b.Notes, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bill iteration: %w", err)
	}

	summary, err := s.summarize(ctx, base, args)
	if err != nil {
		return nil, err
	}

	topVendors, aging, err := s.analyzeOutstanding(ctx, base, args)
	if err != nil {
		return nil, err
	}

	totalPages := (totalCount + pageSize - 1) / pageSize

	return &BillList{
		Bills: bills,
		Pagination: Pagination{
			TotalCount:  totalCount,
			TotalPages:  totalPages,
			CurrentPage: page,
			PageSize:    pageSize,
		},
		Summary:     *summary,
		TopVendors:  topVendors,
		AgeAnalysis: *aging,
	}, nil
}

func (s *billService) summarize(ctx context.Context, base string, args []any) (*APSummary, error) {
	summary := &APSummary{}
	q := `
		SELECT COALESCE(SUM(b.total_amount), 0),
		       COALESCE(SUM(b.paid_amount), 0),
		       COALESCE(SUM(b.total_amount - b.paid_amount), 0),
		       COALESCE(SUM(CASE WHEN b.status <> 'PAID'
		                          AND b.due_date >= CURRENT_DATE
		                          AND b.due_date <= CURRENT_DATE + INTERVAL '30 days'
		                         THEN b.total_amount - b.paid_amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN b.status IN ('PENDING', 'PARTIAL')
		                          AND b.due_date < CURRENT_DATE
		                         THEN b.total_amount - b.paid_amount ELSE 0 END), 0)` + base
	if err := s.pool.QueryRow(ctx, q, args...).Scan(
		&summary.TotalBilled, &summary.TotalPaid, &summary.TotalOutstanding,
		&summary.DueWithin30Days, &summary.Overdue,
	); err != nil {
		return nil, fmt.Errorf("summarize bills: %w", err)
	}
	return summary, nil
}

// analyzeOutstanding walks every outstanding bill in the filtered set,
// bucketing amounts by days past due and accumulating per-vendor totals.
func (s *billService) analyzeOutstanding(ctx context.Context, base string, args []any) ([]VendorOutstanding, *AgeAnalysis, error) {
	q := `
		SELECT b.vendor_id, v.name, b.due_date::text, b.total_amount - b.paid_amount` +
		base + " AND b.status IN ('PENDING', 'PARTIAL') AND b.total_amount > b.paid_amount"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("query outstanding bills: %w", err)
	}
	defer rows.Close()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	aging := &AgeAnalysis{}
	byVendor := map[int]*VendorOutstanding{}

	for rows.Next() {
		var vendorID int
		var vendorName, dueDate string
		var outstanding decimal.Decimal
		if err := rows.Scan(&vendorID, &vendorName, &dueDate, &outstanding); err != nil {
			return nil, nil, fmt.Errorf("scan outstanding bill: %w", err)
		}

		due, err := time.Parse("2006-01-02", dueDate)
		if err != nil {
			return nil, nil, fmt.Errorf("parse due date %q: %w", dueDate, err)
		}
		daysPastDue := int(today.Sub(due).Hours() / 24)

		switch {
		case daysPastDue <= 0:
			aging.Current = aging.Current.Add(outstanding)
		case daysPastDue <= 30:
			aging.Days1To30 = aging.Days1To30.Add(outstanding)
		case daysPastDue <= 60:
			aging.Days31To60 = aging.Days31To60.Add(outstanding)
		case daysPastDue <= 90:
			aging.Days61To90 = aging.Days61To90.Add(outstanding)
		default:
			aging.Over90Days = aging.Over90Days.Add(outstanding)
		}

		vo, ok := byVendor[vendorID]
		if !ok {
			vo = &VendorOutstanding{VendorID: vendorID, VendorName: vendorName}
			byVendor[vendorID] = vo
		}
		vo.Outstanding = vo.Outstanding.Add(outstanding)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("outstanding bill iteration: %w", err)
	}

	vendors := make([]VendorOutstanding, 0, len(byVendor))
	for _, vo := range byVendor {
		vendors = append(vendors, *vo)
	}
	sort.Slice(vendors, func(i, j int) bool {
		if !vendors[i].Outstanding.Equal(vendors[j].Outstanding) {
			return vendors[i].Outstanding.GreaterThan(vendors[j].Outstanding)
		}
		return vendors[i].VendorName < vendors[j].VendorName
	})
	if len(vendors) > 5 {
		vendors = vendors[:5]
	}

	return vendors, aging, nil
}

func (s *billService) GetTransactionsForBill(ctx context.Context, billID int) ([]FinancialTransaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, type, category, amount, date::text, description, reference, bill_id, created_at
		FROM financial_transactions
		WHERE bill_id = $1
		ORDER BY id`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("query transactions for bill %d: %w", billID, err)
	}
	defer rows.Close()

	var transactions []FinancialTransaction
	for rows.Next() {
		var t FinancialTransaction
		if err := rows.Scan(
			&t.ID, &t.Type, &t.Category, &t.Amount, &t.Date,
			&t.Description, &t.Reference, &t.BillID, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// findAccountInTx resolves the first active account of type+subtype inside
// the caller's transaction, returning missing as the given sentinel so the
// whole posting rolls back.
func findAccountInTx(ctx context.Context, tx pgx.Tx, accType AccountType, subtype string, missing error) (int, error) {
	a, err := findAccountBySubtype(ctx, tx, accType, subtype)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return 0, missing
		}
		return 0, err
	}
	return a.ID, nil
}
