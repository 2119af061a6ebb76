package core_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"smartone-ap/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE journal_entry_items, journal_entries, financial_transactions,
		               payments, bill_attachments, bill_items, bills,
		               financial_periods, accounts, vendors
		RESTART IDENTITY CASCADE;

		INSERT INTO vendors (code, name) VALUES
		('V001', 'Acme Supplies'),
		('V002', 'Globex Paper');

		INSERT INTO accounts (code, name, type, subtype) VALUES
		('1000', 'Cash at Bank', 'ASSET', 'CASH'),
		('2000', 'Accounts Payable', 'LIABILITY', 'ACCOUNTS_PAYABLE'),
		('5000', 'Office Expenses', 'EXPENSE', 'OPERATING'),
		('5100', 'Printing Supplies', 'EXPENSE', 'OPERATING');

		INSERT INTO financial_periods (name, start_date, end_date, type, year) VALUES
		('FY2000-2099', '2000-01-01', '2099-12-31', 'ANNUAL', 2024);
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

func newBillService(pool *pgxpool.Pool) core.BillService {
	return core.NewBillService(pool, core.NewLedger(pool))
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func twoLineBill(t *testing.T, vendorID int) core.CreateBillInput {
	return core.CreateBillInput{
		VendorID: vendorID,
		BillDate: date(t, "2024-01-10"),
		DueDate:  date(t, "2024-02-09"),
		Items: []core.BillItemInput{
			{Description: "Paper reams", Quantity: dec(t, "2"), UnitPrice: dec(t, "100"), AccountID: 3},
			{Description: "Toner", Quantity: dec(t, "1"), UnitPrice: dec(t, "50"), AccountID: 4},
		},
	}
}

func TestCreateBill_TotalsAndJournalMirror(t *testing.T) {
	pool := setupTestDB(t)
	svc := newBillService(pool)
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, twoLineBill(t, 1))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	if bill.TotalAmount.StringFixed(2) != "250.00" {
		t.Errorf("total = %s, want 250.00", bill.TotalAmount.StringFixed(2))
	}
	if !bill.PaidAmount.IsZero() {
		t.Errorf("paid = %s, want 0", bill.PaidAmount)
	}
	if bill.Status != core.BillPending {
		t.Errorf("status = %s, want PENDING", bill.Status)
	}
	if bill.BillNumber != "AP-202401-001" {
		t.Errorf("bill number = %s, want AP-202401-001", bill.BillNumber)
	}
	if len(bill.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(bill.Items))
	}

	ledger := core.NewLedger(pool)
	entries, err := ledger.GetEntriesForBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetEntriesForBill failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("journal entries = %d, want 1", len(entries))
	}

	entry := entries[0]
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	creditLines := 0
	for _, item := range entry.Items {
		totalDebit = totalDebit.Add(item.Debit)
		totalCredit = totalCredit.Add(item.Credit)
		if item.Credit.IsPositive() {
			creditLines++
			if item.Credit.StringFixed(2) != "250.00" {
				t.Errorf("credit leg = %s, want 250.00", item.Credit.StringFixed(2))
			}
			if item.AccountID != 2 {
				t.Errorf("credit account = %d, want accounts payable (2)", item.AccountID)
			}
		}
	}
	if creditLines != 1 {
		t.Errorf("credit lines = %d, want 1", creditLines)
	}
	if !totalDebit.Equal(totalCredit) {
		t.Errorf("journal imbalance: debits %s != credits %s", totalDebit, totalCredit)
	}
	if totalCredit.StringFixed(2) != "250.00" {
		t.Errorf("credit total = %s, want 250.00 (the bill total)", totalCredit.StringFixed(2))
	}
}

func TestCreateBill_SequentialNumbering(t *testing.T) {
	pool := setupTestDB(t)
	svc := newBillService(pool)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if _, err := svc.CreateBill(ctx, twoLineBill(t, 1)); err != nil {
			t.Fatalf("CreateBill %d failed: %v", i+1, err)
		}
	}

	bill, err := svc.CreateBill(ctx, twoLineBill(t, 1))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	if bill.BillNumber != "AP-202401-008" {
		t.Errorf("bill number = %s, want AP-202401-008", bill.BillNumber)
	}

	// A new month restarts the series at 001.
	next := twoLineBill(t, 1)
	next.BillDate = date(t, "2024-02-05")
	next.DueDate = date(t, "2024-03-06")
	febBill, err := svc.CreateBill(ctx, next)
	if err != nil {
		t.Fatalf("CreateBill (new month) failed: %v", err)
	}
	if febBill.BillNumber != "AP-202402-001" {
		t.Errorf("bill number = %s, want AP-202402-001", febBill.BillNumber)
	}
}

func TestCreateBill_DuplicateNumberLeavesNoRows(t *testing.T) {
	pool := setupTestDB(t)
	svc := newBillService(pool)
	ctx := context.Background()

	first := twoLineBill(t, 1)
	first.BillNumber = "AP-202401-042"
	if _, err := svc.CreateBill(ctx, first); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	var billsBefore, entriesBefore int
	_ = pool.QueryRow(ctx, "SELECT count(*) FROM bills").Scan(&billsBefore)
	_ = pool.QueryRow(ctx, "SELECT count(*) FROM journal_entries").Scan(&entriesBefore)

	_, err := svc.CreateBill(ctx, first)
	if !errors.Is(err, core.ErrDuplicateBillNumber) {
		t.Fatalf("expected ErrDuplicateBillNumber, got %v", err)
	}

	var billsAfter, entriesAfter int
	_ = pool.QueryRow(ctx, "SELECT count(*) FROM bills").Scan(&billsAfter)
	_ = pool.QueryRow(ctx, "SELECT count(*) FROM journal_entries").Scan(&entriesAfter)
	if billsAfter != billsBefore || entriesAfter != entriesBefore {
		t.Errorf("duplicate submission wrote rows: bills %d→%d, entries %d→%d",
			billsBefore, billsAfter, entriesBefore, entriesAfter)
	}
}

func TestCreateBill_NoOpenPeriodRollsBackEverything(t *testing.T) {
	pool := setupTestDB(t)
	svc := newBillService(pool)
	ctx := context.Background()

	if _, err := pool.Exec(ctx, "UPDATE financial_periods SET status = 'CLOSED'"); err != nil {
		t.Fatalf("close periods: %v", err)
	}

	_, err := svc.CreateBill(ctx, twoLineBill(t, 1))
	if !errors.Is(err, core.ErrNoOpenPeriod) {
		t.Fatalf("expected ErrNoOpenPeriod, got %v", err)
	}

	for _, table := range []string{"bills", "bill_items", "journal_entries", "financial_transactions"} {
		var n int
		if err := pool.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s has %d rows after rollback, want 0", table, n)
		}
	}
}

func TestCreateBill_MissingAPAccountRollsBack(t *testing.T) {
	pool := setupTestDB(t)
	svc := newBillService(pool)
	ctx := context.Background()

	if _, err := pool.Exec(ctx,
		"UPDATE accounts SET is_active = false WHERE subtype = 'ACCOUNTS_PAYABLE'",
	); err != nil {
		t.Fatalf("deactivate AP account: %v", err)
	}

	_, err := svc.CreateBill(ctx, twoLineBill(t, 1))
	if !errors.Is(err, core.ErrMissingAPAccount) {
		t.Fatalf("expected ErrMissingAPAccount, got %v", err)
	}

	var n int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM bills").Scan(&n); err != nil {
		t.Fatalf("count bills: %v", err)
	}
	if n != 0 {
		t.Errorf("bills has %d rows after rollback, want 0", n)
	}
}

func TestCreateBill_UnknownVendor(t *testing.T) {
	pool := setupTestDB(t)
	svc := newBillService(pool)

	input := twoLineBill(t, 999)
	_, err := svc.CreateBill(context.Background(), input)
	if !errors.Is(err, core.ErrVendorNotFound) {
		t.Fatalf("expected ErrVendorNotFound, got %v", err)
	}
}

func TestCreateBill_RejectsInvalidInput(t *testing.T) {
	pool := setupTestDB(t)
	svc := newBillService(pool)
	ctx := context.Background()

	tests := []struct {
		name  string
		items []core.BillItemInput
	}{
		{"no items", nil},
		{"missing account", []core.BillItemInput{
			{Description: "x", Quantity: dec(t, "1"), UnitPrice: dec(t, "5")},
		}},
		{"zero quantity", []core.BillItemInput{
			{Description: "x", Quantity: dec(t, "0"), UnitPrice: dec(t, "5"), AccountID: 3},
		}},
		{"negative unit price", []core.BillItemInput{
			{Description: "x", Quantity: dec(t, "1"), UnitPrice: dec(t, "-5"), AccountID: 3},
		}},
		{"zero total", []core.BillItemInput{
			{Description: "x", Quantity: dec(t, "1"), UnitPrice: dec(t, "0"), AccountID: 3},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := twoLineBill(t, 1)
			input.Items = tt.items
			_, err := svc.CreateBill(ctx, input)
			if !errors.Is(err, core.ErrInvalidBill) {
				t.Fatalf("expected ErrInvalidBill, got %v", err)
			}
		})
	}

	var n int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM bills").Scan(&n); err != nil {
		t.Fatalf("count bills: %v", err)
	}
	if n != 0 {
		t.Errorf("bills has %d rows after rejected input, want 0", n)
	}
}

func TestCreateBill_ZeroPricedLineKeepsMirrorBalanced(t *testing.T) {
	pool := setupTestDB(t)
	svc := newBillService(pool)
	ctx := context.Background()

	input := twoLineBill(t, 1)
	input.Items = append(input.Items, core.BillItemInput{
		Description: "Free sample", Quantity: dec(t, "1"), UnitPrice: dec(t, "0"), AccountID: 3,
	})

	bill, err := svc.CreateBill(ctx, input)
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	if bill.TotalAmount.StringFixed(2) != "250.00" {
		t.Errorf("total = %s, want 250.00", bill.TotalAmount.StringFixed(2))
	}
	if len(bill.Items) != 3 {
		t.Errorf("items = %d, want 3 (zero-priced line is kept on the bill)", len(bill.Items))
	}

	entries, err := core.NewLedger(pool).GetEntriesForBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetEntriesForBill failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("journal entries = %d, want 1", len(entries))
	}
	// Two debit legs plus the credit leg; the zero-priced line posts nothing.
	if len(entries[0].Items) != 3 {
		t.Errorf("journal lines = %d, want 3", len(entries[0].Items))
	}
}

func TestApplyPayment_StatusProgression(t *testing.T) {
	pool := setupTestDB(t)
	svc := newBillService(pool)
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, twoLineBill(t, 1))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	pay := func(amount string) (*core.Bill, error) {
		return svc.ApplyPayment(ctx, core.PaymentInput{
			BillID:        bill.ID,
			Amount:        dec(t, amount),
			PaymentDate:   date(t, "2024-01-20"),
			PaymentMethod: "BANK_TRANSFER",
		})
	}

	updated, err := pay("100.00")
	if err != nil {
		t.Fatalf("first payment failed: %v", err)
	}
	if updated.Status != core.BillPartial {
		t.Errorf("status after partial payment = %s, want PARTIAL", updated.Status)
	}
	if updated.PaidAmount.StringFixed(2) != "100.00" {
		t.Errorf("paid = %s, want 100.00", updated.PaidAmount.StringFixed(2))
	}

	// 100 + 149.995 is within the 0.01 tolerance of 250.00.
	updated, err = pay("149.995")
	if err != nil {
		t.Fatalf("second payment failed: %v", err)
	}
	if updated.Status != core.BillPaid {
		t.Errorf("status after full payment = %s, want PAID", updated.Status)
	}
	if len(updated.Payments) != 2 {
		t.Errorf("payments = %d, want 2", len(updated.Payments))
	}

	// Each payment posts its own DR AP / CR Cash journal entry.
	entries, err := core.NewLedger(pool).GetEntriesForBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetEntriesForBill failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("journal entries = %d, want 3 (bill + two payments)", len(entries))
	}
}

func TestApplyPayment_RejectsNonPositiveAmount(t *testing.T) {
	pool := setupTestDB(t)
	svc := newBillService(pool)
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, twoLineBill(t, 1))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	for _, amount := range []string{"0", "-10.00"} {
		_, err := svc.ApplyPayment(ctx, core.PaymentInput{
			BillID:        bill.ID,
			Amount:        dec(t, amount),
			PaymentDate:   date(t, "2024-01-20"),
			PaymentMethod: "CASH",
		})
		if !errors.Is(err, core.ErrInvalidAmount) {
			t.Errorf("amount %s: expected ErrInvalidAmount, got %v", amount, err)
		}
	}

	var n int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM payments").Scan(&n); err != nil {
		t.Fatalf("count payments: %v", err)
	}
	if n != 0 {
		t.Errorf("payments has %d rows, want 0", n)
	}
}

func TestApplyPayment_RejectsOverpayment(t *testing.T) {
	pool := setupTestDB(t)
	svc := newBillService(pool)
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, twoLineBill(t, 1))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	_, err = svc.ApplyPayment(ctx, core.PaymentInput{
		BillID:        bill.ID,
		Amount:        dec(t, "250.02"),
		PaymentDate:   date(t, "2024-01-20"),
		PaymentMethod: "CASH",
	})
	if !errors.Is(err, core.ErrOverpayment) {
		t.Fatalf("expected ErrOverpayment, got %v", err)
	}
}

func TestApplyPayment_OverpaymentToleranceEdge(t *testing.T) {
	pool := setupTestDB(t)
	svc := newBillService(pool)
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, twoLineBill(t, 1))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	pay := func(amount string) (*core.Bill, error) {
		return svc.ApplyPayment(ctx, core.PaymentInput{
			BillID:        bill.ID,
			Amount:        dec(t, amount),
			PaymentDate:   date(t, "2024-01-20"),
			PaymentMethod: "CASH",
		})
	}

	// An overshoot of exactly the tolerance would leave the bill stuck:
	// accepted but never deriving PAID. It must be rejected.
	if _, err := pay("250.01"); !errors.Is(err, core.ErrOverpayment) {
		t.Fatalf("expected ErrOverpayment at the exact tolerance edge, got %v", err)
	}

	// An overshoot strictly inside the tolerance is accepted and settles
	// the bill.
	updated, err := pay("250.005")
	if err != nil {
		t.Fatalf("within-tolerance payment failed: %v", err)
	}
	if updated.Status != core.BillPaid {
		t.Errorf("status = %s, want PAID", updated.Status)
	}
}

func TestApplyPayment_UnknownBill(t *testing.T) {
	pool := setupTestDB(t)
	svc := newBillService(pool)

	_, err := svc.ApplyPayment(context.Background(), core.PaymentInput{
		BillID:        12345,
		Amount:        dec(t, "10.00"),
		PaymentDate:   date(t, "2024-01-20"),
		PaymentMethod: "CASH",
	})
	if !errors.Is(err, core.ErrBillNotFound) {
		t.Fatalf("expected ErrBillNotFound, got %v", err)
	}
}

func TestApplyPayment_RequiresPaymentMethod(t *testing.T) {
	pool := setupTestDB(t)
	svc := newBillService(pool)
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, twoLineBill(t, 1))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	_, err = svc.ApplyPayment(ctx, core.PaymentInput{
		BillID:      bill.ID,
		Amount:      dec(t, "10.00"),
		PaymentDate: date(t, "2024-01-20"),
	})
	if !errors.Is(err, core.ErrInvalidBill) {
		t.Fatalf("expected ErrInvalidBill, got %v", err)
	}
}

func TestGetTransactionsForBill_LogsBillAndPayments(t *testing.T) {
	pool := setupTestDB(t)
	svc := newBillService(pool)
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, twoLineBill(t, 1))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	if _, err := svc.ApplyPayment(ctx, core.PaymentInput{
		BillID:        bill.ID,
		Amount:        dec(t, "100.00"),
		PaymentDate:   date(t, "2024-01-20"),
		PaymentMethod: "BANK_TRANSFER",
	}); err != nil {
		t.Fatalf("ApplyPayment failed: %v", err)
	}

	transactions, err := svc.GetTransactionsForBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetTransactionsForBill failed: %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("transactions = %d, want 2 (bill + payment)", len(transactions))
	}

	if transactions[0].Type != core.TransactionAP {
		t.Errorf("first transaction type = %s, want AP", transactions[0].Type)
	}
	if transactions[0].Amount.StringFixed(2) != "250.00" {
		t.Errorf("AP amount = %s, want 250.00", transactions[0].Amount.StringFixed(2))
	}
	if transactions[1].Type != core.TransactionPayment {
		t.Errorf("second transaction type = %s, want PAYMENT", transactions[1].Type)
	}
	if transactions[1].Amount.StringFixed(2) != "100.00" {
		t.Errorf("payment amount = %s, want 100.00", transactions[1].Amount.StringFixed(2))
	}
	for i, tr := range transactions {
		if tr.BillID == nil || *tr.BillID != bill.ID {
			t.Errorf("transaction %d bill id = %v, want %d", i, tr.BillID, bill.ID)
		}
		if tr.Reference == nil || *tr.Reference != bill.BillNumber {
			t.Errorf("transaction %d reference = %v, want %s", i, tr.Reference, bill.BillNumber)
		}
	}
}

func TestFindBySubtype_ResolvesControlAccounts(t *testing.T) {
	pool := setupTestDB(t)
	svc := core.NewAccountService(pool)
	ctx := context.Background()

	ap, err := svc.FindBySubtype(ctx, core.Liability, core.SubtypeAccountsPayable)
	if err != nil {
		t.Fatalf("FindBySubtype failed: %v", err)
	}
	if ap.Code != "2000" {
		t.Errorf("AP account code = %s, want 2000", ap.Code)
	}

	cash, err := svc.FindBySubtype(ctx, core.Asset, core.SubtypeCash)
	if err != nil {
		t.Fatalf("FindBySubtype failed: %v", err)
	}
	if cash.Code != "1000" {
		t.Errorf("cash account code = %s, want 1000", cash.Code)
	}

	_, err = svc.FindBySubtype(ctx, core.Revenue, "SALES")
	if !errors.Is(err, core.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestFindOpenPeriod_MatchesDateRange(t *testing.T) {
	pool := setupTestDB(t)
	svc := core.NewPeriodService(pool)
	ctx := context.Background()

	p, err := svc.FindOpenPeriod(ctx, date(t, "2024-01-10"))
	if err != nil {
		t.Fatalf("FindOpenPeriod failed: %v", err)
	}
	if p.Name != "FY2000-2099" {
		t.Errorf("period = %s, want FY2000-2099", p.Name)
	}

	if _, err := pool.Exec(ctx, "UPDATE financial_periods SET status = 'CLOSED'"); err != nil {
		t.Fatalf("close periods: %v", err)
	}
	_, err = svc.FindOpenPeriod(ctx, date(t, "2024-01-10"))
	if !errors.Is(err, core.ErrNoOpenPeriod) {
		t.Fatalf("expected ErrNoOpenPeriod, got %v", err)
	}
}

func TestListBills_SummaryAndAging(t *testing.T) {
	pool := setupTestDB(t)
	svc := newBillService(pool)
	ctx := context.Background()

	now := time.Now().UTC()
	mkBill := func(vendorID int, dueOffsetDays int, amount string) *core.Bill {
		bill, err := svc.CreateBill(ctx, core.CreateBillInput{
			VendorID: vendorID,
			BillDate: now.AddDate(0, 0, -120),
			DueDate:  now.AddDate(0, 0, dueOffsetDays),
			Items: []core.BillItemInput{
				{Description: "Services", Quantity: dec(t, "1"), UnitPrice: dec(t, amount), AccountID: 3},
			},
		})
		if err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		return bill
	}

	mkBill(1, 10, "100.00")   // current
	mkBill(1, -5, "200.00")   // 1-30 days overdue
	mkBill(2, -45, "300.00")  // 31-60
	mkBill(2, -75, "400.00")  // 61-90
	mkBill(2, -120, "500.00") // 90+

	list, err := svc.ListBills(ctx, core.BillFilter{})
	if err != nil {
		t.Fatalf("ListBills failed: %v", err)
	}

	if list.Pagination.TotalCount != 5 {
		t.Errorf("total count = %d, want 5", list.Pagination.TotalCount)
	}
	if list.Summary.TotalBilled.StringFixed(2) != "1500.00" {
		t.Errorf("total billed = %s, want 1500.00", list.Summary.TotalBilled.StringFixed(2))
	}
	if list.Summary.TotalOutstanding.StringFixed(2) != "1500.00" {
		t.Errorf("outstanding = %s, want 1500.00", list.Summary.TotalOutstanding.StringFixed(2))
	}
	if list.Summary.Overdue.StringFixed(2) != "1400.00" {
		t.Errorf("overdue = %s, want 1400.00", list.Summary.Overdue.StringFixed(2))
	}
	if list.Summary.DueWithin30Days.StringFixed(2) != "100.00" {
		t.Errorf("due within 30 days = %s, want 100.00", list.Summary.DueWithin30Days.StringFixed(2))
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"current", list.AgeAnalysis.Current, "100.00"},
		{"1-30", list.AgeAnalysis.Days1To30, "200.00"},
		{"31-60", list.AgeAnalysis.Days31To60, "300.00"},
		{"61-90", list.AgeAnalysis.Days61To90, "400.00"},
		{"90+", list.AgeAnalysis.Over90Days, "500.00"},
	}
	for _, c := range checks {
		if c.got.StringFixed(2) != c.want {
			t.Errorf("aging bucket %s = %s, want %s", c.name, c.got.StringFixed(2), c.want)
		}
	}

	if len(list.TopVendors) != 2 {
		t.Fatalf("top vendors = %d, want 2", len(list.TopVendors))
	}
	if list.TopVendors[0].VendorID != 2 || list.TopVendors[0].Outstanding.StringFixed(2) != "1200.00" {
		t.Errorf("top vendor = %+v, want vendor 2 with 1200.00", list.TopVendors[0])
	}
}

func TestListBills_FiltersAndPagination(t *testing.T) {
	pool := setupTestDB(t)
	svc := newBillService(pool)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateBill(ctx, twoLineBill(t, 1)); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
	}
	other := twoLineBill(t, 2)
	other.Reference = "PO-7781"
	if _, err := svc.CreateBill(ctx, other); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	byVendor, err := svc.ListBills(ctx, core.BillFilter{VendorID: 2})
	if err != nil {
		t.Fatalf("ListBills failed: %v", err)
	}
	if byVendor.Pagination.TotalCount != 1 {
		t.Errorf("vendor filter count = %d, want 1", byVendor.Pagination.TotalCount)
	}

	bySearch, err := svc.ListBills(ctx, core.BillFilter{Search: "PO-7781"})
	if err != nil {
		t.Fatalf("ListBills failed: %v", err)
	}
	if bySearch.Pagination.TotalCount != 1 {
		t.Errorf("search filter count = %d, want 1", bySearch.Pagination.TotalCount)
	}

	byVendorName, err := svc.ListBills(ctx, core.BillFilter{Search: "Globex"})
	if err != nil {
		t.Fatalf("ListBills failed: %v", err)
	}
	if byVendorName.Pagination.TotalCount != 1 {
		t.Errorf("vendor-name search count = %d, want 1", byVendorName.Pagination.TotalCount)
	}

	paged, err := svc.ListBills(ctx, core.BillFilter{Page: 2, PageSize: 3})
	if err != nil {
		t.Fatalf("ListBills failed: %v", err)
	}
	if len(paged.Bills) != 1 {
		t.Errorf("page 2 size = %d, want 1", len(paged.Bills))
	}
	if paged.Pagination.TotalPages != 2 {
		t.Errorf("total pages = %d, want 2", paged.Pagination.TotalPages)
	}
}
