package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountInput carries the writable chart-of-accounts fields.
type AccountInput struct {
	Code    string
	Name    string
	Type    AccountType
	Subtype string
}

type AccountService interface {
	CreateAccount(ctx context.Context, input AccountInput) (*Account, error)
	GetAccounts(ctx context.Context) ([]Account, error)
	// FindBySubtype returns the first active account matching type+subtype,
	// lowest code first. Used to resolve the automatic posting legs.
	FindBySubtype(ctx context.Context, accType AccountType, subtype string) (*Account, error)
}

// rowQuerier is the single-row query surface shared by *pgxpool.Pool and
// pgx.Tx, so lookups can run both standalone and inside a posting transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type accountService struct {
	pool *pgxpool.Pool
}

// NewAccountService constructs an AccountService backed by PostgreSQL.
func NewAccountService(pool *pgxpool.Pool) AccountService {
	return &accountService{pool: pool}
}

func (s *accountService) CreateAccount(ctx context.Context, input AccountInput) (*Account, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM accounts WHERE code = $1)", input.Code,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check account code %q: %w", input.Code, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateAccountCode, input.Code)
	}

	a := &Account{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO accounts (code, name, type, subtype)
		VALUES ($1, $2, $3, $4)
		RETURNING id, code, name, type, subtype, is_active`,
		input.Code, input.Name, string(input.Type), input.Subtype,
	).Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.Subtype, &a.IsActive)
	if err != nil {
		return nil, fmt.Errorf("create account %q: %w", input.Code, err)
	}
	return a, nil
}

func (s *accountService) GetAccounts(ctx context.Context) ([]Account, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, code, name, type, subtype, is_active
		FROM accounts
		WHERE is_active = true
		ORDER BY code`,
	)
	if err != nil {
		return nil, fmt.Errorf("get accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.Subtype, &a.IsActive); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *accountService) FindBySubtype(ctx context.Context, accType AccountType, subtype string) (*Account, error) {
	return findAccountBySubtype(ctx, s.pool, accType, subtype)
}

// findAccountBySubtype backs both FindBySubtype and the in-transaction
// control-account resolution of the posting paths.
func findAccountBySubtype(ctx context.Context, q rowQuerier, accType AccountType, subtype string) (*Account, error) {
	a := &Account{}
	err := q.QueryRow(ctx, `
		SELECT id, code, name, type, subtype, is_active
		FROM accounts
		WHERE type = $1 AND subtype = $2 AND is_active = true
		ORDER BY code
		LIMIT 1`,
		string(accType), subtype,
	).Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.Subtype, &a.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s/%s", ErrAccountNotFound, accType, subtype)
		}
		return nil, fmt.Errorf("find account %s/%s: %w", accType, subtype, err)
	}
	return a, nil
}
