package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostingLine is one debit or credit leg of a Posting. Amount is always
// positive; IsDebit selects the side.
type PostingLine struct {
	AccountID   int
	Description string
	IsDebit     bool
	Amount      decimal.Decimal
}

// Posting is a double-entry journal posting to be mirrored into the ledger.
// Date drives both the financial-period check and the entry-number series.
type Posting struct {
	Date        time.Time
	Description string
	Reference   string
	BillID      *int
	Lines       []PostingLine
}

// Validate enforces the structural accounting rules before any row is
// written: at least two lines, strictly positive amounts, and debits that
// exactly equal credits.
func (p *Posting) Validate() error {
	if p.Description == "" {
		return errors.New("posting must have a description")
	}
	if len(p.Lines) < 2 {
		return errors.New("posting must have at least 2 lines")
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range p.Lines {
		if line.AccountID == 0 {
			return errors.New("posting line is missing an account")
		}
		if !line.Amount.IsPositive() {
			return fmt.Errorf("posting line amount must be > 0 for account %d", line.AccountID)
		}
		if line.IsDebit {
			totalDebit = totalDebit.Add(line.Amount)
		} else {
			totalCredit = totalCredit.Add(line.Amount)
		}
	}

	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("posting imbalance: debits %s != credits %s",
			totalDebit.StringFixed(2), totalCredit.StringFixed(2))
	}
	return nil
}

// Ledger posts validated journal entries. All writes happen inside the
// caller's transaction so that a failed posting rolls back the business
// document it mirrors.
type Ledger struct {
	pool *pgxpool.Pool
}

func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{pool: pool}
}

// CommitInTx validates the posting, resolves the OPEN financial period
// containing its date, assigns the next JE-YYYYMM-NNN entry number, and
// inserts the entry with its items — all inside tx. The caller owns the
// commit/rollback.
func (l *Ledger) CommitInTx(ctx context.Context, tx pgx.Tx, posting Posting) (*JournalEntry, error) {
	if err := posting.Validate(); err != nil {
		return nil, fmt.Errorf("posting validation failed: %w", err)
	}

	periodID, err := resolveOpenPeriod(ctx, tx, posting.Date)
	if err != nil {
		return nil, err
	}

	entryNumber, err := nextDocumentNumber(ctx, tx,
		"SELECT entry_number FROM journal_entries WHERE entry_number LIKE $1 ORDER BY entry_number DESC LIMIT 1",
		DocumentPrefix("JE", posting.Date))
	if err != nil {
		return nil, fmt.Errorf("assign entry number: %w", err)
	}

	var reference *string
	if posting.Reference != "" {
		reference = &posting.Reference
	}

	entry := &JournalEntry{
		EntryNumber: entryNumber,
		Date:        posting.Date.Format("2006-01-02"),
		Description: posting.Description,
		Reference:   reference,
		Status:      EntryPosted,
		PeriodID:    periodID,
		BillID:      posting.BillID,
	}

	if err := tx.QueryRow(ctx, `
		INSERT INTO journal_entries (entry_number, date, description, reference, status, period_id, bill_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		entry.EntryNumber, entry.Date, entry.Description, entry.Reference,
		string(entry.Status), entry.PeriodID, entry.BillID,
	).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert journal entry: %w", err)
	}

	for _, line := range posting.Lines {
		debit, credit := decimal.Zero, decimal.Zero
		if line.IsDebit {
			debit = line.Amount
		} else {
			credit = line.Amount
		}

		var desc *string
		if line.Description != "" {
			d := line.Description
			desc = &d
		}

		item := JournalEntryItem{
			EntryID:     entry.ID,
			AccountID:   line.AccountID,
			Description: desc,
			Debit:       debit,
			Credit:      credit,
		}
		if err := tx.QueryRow(ctx, `
			INSERT INTO journal_entry_items (entry_id, account_id, description, debit, credit)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			item.EntryID, item.AccountID, item.Description, item.Debit, item.Credit,
		).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("insert journal entry item: %w", err)
		}
		entry.Items = append(entry.Items, item)
	}

	return entry, nil
}

// GetEntriesForBill returns the journal entries mirroring a bill, items included.
func (l *Ledger) GetEntriesForBill(ctx context.Context, billID int) ([]JournalEntry, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, entry_number, date::text, description, reference, status, period_id, bill_id, created_at
		FROM journal_entries
		WHERE bill_id = $1
		ORDER BY id`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("query journal entries for bill %d: %w", billID, err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(
			&e.ID, &e.EntryNumber, &e.Date, &e.Description, &e.Reference,
			&e.Status, &e.PeriodID, &e.BillID, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal entry iteration: %w", err)
	}

	for i := range entries {
		items, err := l.fetchItems(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Items = items
	}
	return entries, nil
}

func (l *Ledger) fetchItems(ctx context.Context, entryID int) ([]JournalEntryItem, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, entry_id, account_id, description, debit, credit
		FROM journal_entry_items
		WHERE entry_id = $1
		ORDER BY id`,
		entryID,
	)
	if err != nil {
		return nil, fmt.Errorf("query items for entry %d: %w", entryID, err)
	}
	defer rows.Close()

	var items []JournalEntryItem
	for rows.Next() {
		var it JournalEntryItem
		if err := rows.Scan(&it.ID, &it.EntryID, &it.AccountID, &it.Description, &it.Debit, &it.Credit); err != nil {
			return nil, fmt.Errorf("scan journal entry item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// resolveOpenPeriod finds the OPEN financial period whose date range contains
// date, preferring the most recently started one when ranges overlap.
func resolveOpenPeriod(ctx context.Context, tx pgx.Tx, date time.Time) (int, error) {
	p, err := findOpenPeriod(ctx, tx, date)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

// nextDocumentNumber scans the current maximum number in a series and
// returns its successor. query must select the single greatest number
// matching the prefix pattern; prefix is both the LIKE argument base and
// the parse anchor for the numeric suffix.
func nextDocumentNumber(ctx context.Context, tx pgx.Tx, query, prefix string) (string, error) {
	var last string
	err := tx.QueryRow(ctx, query, prefix+"%").Scan(&last)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("scan last document number: %w", err)
	}

	seq, err := NextSequence(prefix, last)
	if err != nil {
		return "", err
	}
	return FormatDocumentNumber(prefix, seq), nil
}
