package core_test

import (
	"testing"
	"time"

	"smartone-ap/internal/core"

	"github.com/shopspring/decimal"
)

func TestPosting_Validate(t *testing.T) {
	amt := func(s string) decimal.Decimal {
		d, _ := decimal.NewFromString(s)
		return d
	}
	date := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		posting   core.Posting
		expectErr bool
	}{
		{
			name: "balanced two-line posting",
			posting: core.Posting{
				Date:        date,
				Description: "Bill AP-202401-001",
				Lines: []core.PostingLine{
					{AccountID: 10, IsDebit: true, Amount: amt("250.00")},
					{AccountID: 20, IsDebit: false, Amount: amt("250.00")},
				},
			},
		},
		{
			name: "balanced multi-debit posting",
			posting: core.Posting{
				Date:        date,
				Description: "Bill with two expense lines",
				Lines: []core.PostingLine{
					{AccountID: 11, IsDebit: true, Amount: amt("200.00")},
					{AccountID: 12, IsDebit: true, Amount: amt("50.00")},
					{AccountID: 20, IsDebit: false, Amount: amt("250.00")},
				},
			},
		},
		{
			name: "imbalanced posting",
			posting: core.Posting{
				Date:        date,
				Description: "bad",
				Lines: []core.PostingLine{
					{AccountID: 10, IsDebit: true, Amount: amt("200.00")},
					{AccountID: 20, IsDebit: false, Amount: amt("100.00")},
				},
			},
			expectErr: true,
		},
		{
			name: "single line",
			posting: core.Posting{
				Date:        date,
				Description: "bad",
				Lines: []core.PostingLine{
					{AccountID: 10, IsDebit: true, Amount: amt("200.00")},
				},
			},
			expectErr: true,
		},
		{
			name: "zero amount line",
			posting: core.Posting{
				Date:        date,
				Description: "bad",
				Lines: []core.PostingLine{
					{AccountID: 10, IsDebit: true, Amount: amt("0.00")},
					{AccountID: 20, IsDebit: false, Amount: amt("0.00")},
				},
			},
			expectErr: true,
		},
		{
			name: "negative amount line",
			posting: core.Posting{
				Date:        date,
				Description: "bad",
				Lines: []core.PostingLine{
					{AccountID: 10, IsDebit: true, Amount: amt("-100.00")},
					{AccountID: 20, IsDebit: false, Amount: amt("-100.00")},
				},
			},
			expectErr: true,
		},
		{
			name: "missing account",
			posting: core.Posting{
				Date:        date,
				Description: "bad",
				Lines: []core.PostingLine{
					{AccountID: 0, IsDebit: true, Amount: amt("100.00")},
					{AccountID: 20, IsDebit: false, Amount: amt("100.00")},
				},
			},
			expectErr: true,
		},
		{
			name: "missing description",
			posting: core.Posting{
				Date: date,
				Lines: []core.PostingLine{
					{AccountID: 10, IsDebit: true, Amount: amt("100.00")},
					{AccountID: 20, IsDebit: false, Amount: amt("100.00")},
				},
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.posting.Validate()
			if tt.expectErr && err == nil {
				t.Errorf("expected error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
