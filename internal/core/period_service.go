package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PeriodInput carries the writable financial-period fields. Quarter and
// Month are optional and only meaningful for quarterly/monthly periods.
type PeriodInput struct {
	Name      string
	StartDate string
	EndDate   string
	Type      string
	Year      int
	Quarter   *int
	Month     *int
}

type PeriodService interface {
	CreatePeriod(ctx context.Context, input PeriodInput) (*FinancialPeriod, error)
	GetPeriods(ctx context.Context) ([]FinancialPeriod, error)
	// FindOpenPeriod returns the OPEN period containing date, preferring the
	// most recently started one when ranges overlap.
	FindOpenPeriod(ctx context.Context, date time.Time) (*FinancialPeriod, error)
	// ClosePeriod transitions an OPEN period to CLOSED. Closing an already
	// CLOSED period is a no-op.
	ClosePeriod(ctx context.Context, id int) (*FinancialPeriod, error)
}

type periodService struct {
	pool *pgxpool.Pool
}

// NewPeriodService constructs a PeriodService backed by PostgreSQL.
func NewPeriodService(pool *pgxpool.Pool) PeriodService {
	return &periodService{pool: pool}
}

func (s *periodService) CreatePeriod(ctx context.Context, input PeriodInput) (*FinancialPeriod, error) {
	periodType := input.Type
	if periodType == "" {
		periodType = "MONTHLY"
	}

	p := &FinancialPeriod{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO financial_periods (name, start_date, end_date, type, year, quarter, month)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, start_date::text, end_date::text, type, year, quarter, month, status`,
		input.Name, input.StartDate, input.EndDate, periodType, input.Year, input.Quarter, input.Month,
	).Scan(
		&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.Type,
		&p.Year, &p.Quarter, &p.Month, &p.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("create period %q: %w", input.Name, err)
	}
	return p, nil
}

func (s *periodService) GetPeriods(ctx context.Context) ([]FinancialPeriod, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, start_date::text, end_date::text, type, year, quarter, month, status
		FROM financial_periods
		ORDER BY start_date DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("get periods: %w", err)
	}
	defer rows.Close()

	var periods []FinancialPeriod
	for rows.Next() {
		var p FinancialPeriod
		if err := rows.Scan(
			&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.Type,
			&p.Year, &p.Quarter, &p.Month, &p.Status,
		); err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (s *periodService) FindOpenPeriod(ctx context.Context, date time.Time) (*FinancialPeriod, error) {
	return findOpenPeriod(ctx, s.pool, date)
}

// findOpenPeriod backs both FindOpenPeriod and the ledger's in-transaction
// period resolution when a posting is committed.
func findOpenPeriod(ctx context.Context, q rowQuerier, date time.Time) (*FinancialPeriod, error) {
	p := &FinancialPeriod{}
	err := q.QueryRow(ctx, `
		SELECT id, name, start_date::text, end_date::text, type, year, quarter, month, status
		FROM financial_periods
		WHERE status = 'OPEN' AND start_date <= $1 AND end_date >= $1
		ORDER BY start_date DESC
		LIMIT 1`,
		date.Format("2006-01-02"),
	).Scan(
		&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.Type,
		&p.Year, &p.Quarter, &p.Month, &p.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNoOpenPeriod, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("find open period: %w", err)
	}
	return p, nil
}

func (s *periodService) ClosePeriod(ctx context.Context, id int) (*FinancialPeriod, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status PeriodStatus
	if err := tx.QueryRow(ctx,
		"SELECT status FROM financial_periods WHERE id = $1 FOR UPDATE", id,
	).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrPeriodNotFound, id)
		}
		return nil, fmt.Errorf("fetch period %d: %w", id, err)
	}

	if status == PeriodOpen {
		if _, err := tx.Exec(ctx,
			"UPDATE financial_periods SET status = 'CLOSED' WHERE id = $1", id,
		); err != nil {
			return nil, fmt.Errorf("close period %d: %w", id, err)
		}
	}

	p := &FinancialPeriod{}
	if err := tx.QueryRow(ctx, `
		SELECT id, name, start_date::text, end_date::text, type, year, quarter, month, status
		FROM financial_periods WHERE id = $1`,
		id,
	).Scan(
		&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.Type,
		&p.Year, &p.Quarter, &p.Month, &p.Status,
	); err != nil {
		return nil, fmt.Errorf("reload period %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit period close: %w", err)
	}
	return p, nil
}
