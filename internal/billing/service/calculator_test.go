package service

import (
	"testing"
)

func TestComputeTotals_DiscountThenTax(t *testing.T) {
	items := []LineInput{
		{Description: "Boiler install", Quantity: 1, UnitPriceCents: 15000},
		{Description: "Labour", Quantity: 2, UnitPriceCents: 2500},
	}

	totals := ComputeTotals(items,
		DiscountInput{Type: "percentage", Value: 10},
		TaxInput{Enabled: true, RateBps: 2000},
		DepositInput{},
	)

	if totals.SubtotalCents != 20000 {
		t.Errorf("SubtotalCents = %d, want 20000", totals.SubtotalCents)
	}
	if totals.DiscountAmountCents != 2000 {
		t.Errorf("DiscountAmountCents = %d, want 2000", totals.DiscountAmountCents)
	}
	if totals.AfterDiscountCents != 18000 {
		t.Errorf("AfterDiscountCents = %d, want 18000", totals.AfterDiscountCents)
	}
	// Tax applies to the discounted amount, not the raw subtotal.
	if totals.TaxAmountCents != 3600 {
		t.Errorf("TaxAmountCents = %d, want 3600", totals.TaxAmountCents)
	}
	if totals.GrandTotalCents != 21600 {
		t.Errorf("GrandTotalCents = %d, want 21600", totals.GrandTotalCents)
	}
}

func TestComputeTotals_FixedDiscountClampedToSubtotal(t *testing.T) {
	items := []LineInput{{Description: "Callout", Quantity: 1, UnitPriceCents: 5000}}

	totals := ComputeTotals(items,
		DiscountInput{Type: "fixed", Value: 99999},
		TaxInput{Enabled: true, RateBps: 2000},
		DepositInput{},
	)

	if totals.DiscountAmountCents != 5000 {
		t.Errorf("DiscountAmountCents = %d, want 5000 (clamped)", totals.DiscountAmountCents)
	}
	if totals.AfterDiscountCents != 0 {
		t.Errorf("AfterDiscountCents = %d, want 0", totals.AfterDiscountCents)
	}
	if totals.GrandTotalCents != 0 {
		t.Errorf("GrandTotalCents = %d, want 0", totals.GrandTotalCents)
	}
}

func TestComputeTotals_TaxDisabled(t *testing.T) {
	items := []LineInput{{Description: "Survey", Quantity: 1, UnitPriceCents: 8000}}

	totals := ComputeTotals(items, DiscountInput{}, TaxInput{Enabled: false, RateBps: 2000}, DepositInput{})

	if totals.TaxAmountCents != 0 {
		t.Errorf("TaxAmountCents = %d, want 0 when tax disabled", totals.TaxAmountCents)
	}
	if totals.GrandTotalCents != 8000 {
		t.Errorf("GrandTotalCents = %d, want 8000", totals.GrandTotalCents)
	}
}

func TestComputeTotals_DepositVariants(t *testing.T) {
	items := []LineInput{{Description: "Install", Quantity: 1, UnitPriceCents: 100000}}

	tests := []struct {
		name    string
		deposit DepositInput
		want    int64
	}{
		{"not required", DepositInput{Required: false, Type: "percentage", Value: 25}, 0},
		{"percentage of grand total", DepositInput{Required: true, Type: "percentage", Value: 25}, 25000},
		{"fixed amount", DepositInput{Required: true, Type: "fixed", Value: 30000}, 30000},
		{"fixed clamped to grand total", DepositInput{Required: true, Type: "fixed", Value: 500000}, 100000},
		{"zero value", DepositInput{Required: true, Type: "percentage", Value: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeTotals(items, DiscountInput{}, TaxInput{}, tt.deposit)
			if totals.DepositCalculatedCents != tt.want {
				t.Errorf("DepositCalculatedCents = %d, want %d", totals.DepositCalculatedCents, tt.want)
			}
		})
	}
}

func TestComputeTotals_LineTotalsComputedServerSide(t *testing.T) {
	items := []LineInput{
		{Description: "Pipework", Quantity: 3.5, UnitPriceCents: 1999},
		{Description: "Zero quantity ignored", Quantity: 0, UnitPriceCents: 5000},
	}

	totals := ComputeTotals(items, DiscountInput{}, TaxInput{}, DepositInput{})

	if totals.Lines[0].LineTotalCents != 6997 {
		t.Errorf("line 0 total = %d, want 6997", totals.Lines[0].LineTotalCents)
	}
	if totals.Lines[1].LineTotalCents != 0 {
		t.Errorf("line 1 total = %d, want 0", totals.Lines[1].LineTotalCents)
	}
	if totals.SubtotalCents != 6997 {
		t.Errorf("SubtotalCents = %d, want 6997", totals.SubtotalCents)
	}
}

func TestApplyClientMarkup(t *testing.T) {
	items := []LineInput{{Description: "Install", Quantity: 2, UnitPriceCents: 10000}}

	marked := ApplyClientMarkup(items, 15)

	if marked[0].UnitPriceCents != 11500 {
		t.Errorf("marked-up unit price = %d, want 11500", marked[0].UnitPriceCents)
	}
	// The input slice must stay untouched: internal numbers never see markup.
	if items[0].UnitPriceCents != 10000 {
		t.Errorf("original unit price mutated to %d", items[0].UnitPriceCents)
	}

	totals := ComputeTotals(marked, DiscountInput{}, TaxInput{}, DepositInput{})
	if totals.GrandTotalCents != 23000 {
		t.Errorf("GrandTotalCents = %d, want 23000", totals.GrandTotalCents)
	}
}

func TestApplyClientMarkup_ZeroPercentIsIdentity(t *testing.T) {
	items := []LineInput{{Description: "Install", Quantity: 1, UnitPriceCents: 12345}}

	marked := ApplyClientMarkup(items, 0)

	if marked[0].UnitPriceCents != 12345 {
		t.Errorf("unit price = %d, want 12345", marked[0].UnitPriceCents)
	}
}
