package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VendorInput carries the writable vendor fields.
type VendorInput struct {
	Code             string
	Name             string
	ContactPerson    string
	Email            string
	Phone            string
	Address          string
	PaymentTermsDays int
}

type VendorService interface {
	CreateVendor(ctx context.Context, input VendorInput) (*Vendor, error)
	GetVendor(ctx context.Context, id int) (*Vendor, error)
	GetVendors(ctx context.Context) ([]Vendor, error)
}

type vendorService struct {
	pool *pgxpool.Pool
}

// NewVendorService constructs a VendorService backed by PostgreSQL.
func NewVendorService(pool *pgxpool.Pool) VendorService {
	return &vendorService{pool: pool}
}

// CreateVendor inserts a new vendor record.
func (s *vendorService) CreateVendor(ctx context.Context, input VendorInput) (*Vendor, error) {
	paymentTerms := input.PaymentTermsDays
	if paymentTerms == 0 {
		paymentTerms = 30
	}

	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	var exists bool
	if err := s.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM vendors WHERE code = $1)", input.Code,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check vendor code %q: %w", input.Code, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateVendorCode, input.Code)
	}

	v := &Vendor{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO vendors (code, name, contact_person, email, phone, address, payment_terms_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, code, name, contact_person, email, phone, address,
		          payment_terms_days, is_active, created_at`,
		input.Code, input.Name, toPtr(input.ContactPerson), toPtr(input.Email),
		toPtr(input.Phone), toPtr(input.Address), paymentTerms,
	).Scan(
		&v.ID, &v.Code, &v.Name,
		&v.ContactPerson, &v.Email, &v.Phone, &v.Address,
		&v.PaymentTermsDays, &v.IsActive, &v.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create vendor %q: %w", input.Code, err)
	}
	return v, nil
}

// GetVendor returns a vendor by its internal ID.
func (s *vendorService) GetVendor(ctx context.Context, id int) (*Vendor, error) {
	v := &Vendor{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, code, name, contact_person, email, phone, address,
		       payment_terms_days, is_active, created_at
		FROM vendors
		WHERE id = $1`,
		id,
	).Scan(
		&v.ID, &v.Code, &v.Name,
		&v.ContactPerson, &v.Email, &v.Phone, &v.Address,
		&v.PaymentTermsDays, &v.IsActive, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrVendorNotFound, id)
		}
		return nil, fmt.Errorf("get vendor %d: %w", id, err)
	}
	return v, nil
}

// GetVendors returns all active vendors, ordered by code.
func (s *vendorService) GetVendors(ctx context.Context) ([]Vendor, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, code, name, contact_person, email, phone, address,
		       payment_terms_days, is_active, created_at
		FROM vendors
		WHERE is_active = true
		ORDER BY code`,
	)
	if err != nil {
		return nil, fmt.Errorf("get vendors: %w", err)
	}
	defer rows.Close()

	var vendors []Vendor
	for rows.Next() {
		var v Vendor
		if err := rows.Scan(
			&v.ID, &v.Code, &v.Name,
			&v.ContactPerson, &v.Email, &v.Phone, &v.Address,
			&v.PaymentTermsDays, &v.IsActive, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}
