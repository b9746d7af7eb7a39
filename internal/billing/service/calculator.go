package service

import (
	"math"
)

// roundCents rounds a float to the nearest cent (integer)
func roundCents(v float64) int64 {
	return int64(math.Round(v))
}

// LineInput is a priced line as the calculator sees it.
type LineInput struct {
	Description    string
	Quantity       float64
	UnitPriceCents int64
}

// DiscountInput describes an optional order-level discount.
type DiscountInput struct {
	Type  string // percentage | fixed
	Value int64  // whole percent, or cents when fixed
}

// TaxInput describes order-level tax applied after discount.
type TaxInput struct {
	Enabled bool
	RateBps int
}

// DepositInput describes the deposit the client must pay up front.
type DepositInput struct {
	Required bool
	Type     string // percentage | fixed
	Value    int64
}

// Totals is the result of a pricing run. All amounts are cents.
type Totals struct {
	Lines                  []CalculatedLine `json:"lines"`
	SubtotalCents          int64            `json:"subtotalCents"`
	DiscountAmountCents    int64            `json:"discountAmountCents"`
	AfterDiscountCents     int64            `json:"afterDiscountCents"`
	TaxAmountCents         int64            `json:"taxAmountCents"`
	GrandTotalCents        int64            `json:"grandTotalCents"`
	DepositCalculatedCents int64            `json:"depositCalculatedCents"`
}

// CalculatedLine echoes a line with its server-computed total.
type CalculatedLine struct {
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	UnitPriceCents int64   `json:"unitPriceCents"`
	LineTotalCents int64   `json:"lineTotalCents"`
}

// LineTotalCents computes a single line's total. Client-sent totals are
// always discarded in favour of this.
func LineTotalCents(quantity float64, unitPriceCents int64) int64 {
	if quantity <= 0 || unitPriceCents <= 0 {
		return 0
	}
	return roundCents(quantity * float64(unitPriceCents))
}

// computeDiscount returns the discount amount in cents, clamped to [0, subtotal].
func computeDiscount(subtotalCents int64, discount DiscountInput) int64 {
	var amount int64
	switch {
	case discount.Type == "percentage" && discount.Value > 0:
		amount = roundCents(float64(subtotalCents) * float64(discount.Value) / 100.0)
	case discount.Type == "fixed" && discount.Value > 0:
		amount = discount.Value
	}
	if amount < 0 {
		return 0
	}
	if amount > subtotalCents {
		return subtotalCents
	}
	return amount
}

// computeDeposit returns the up-front deposit in cents, clamped to [0, grandTotal].
func computeDeposit(grandTotalCents int64, deposit DepositInput) int64 {
	if !deposit.Required || deposit.Value <= 0 {
		return 0
	}
	var amount int64
	switch deposit.Type {
	case "fixed":
		amount = deposit.Value
	default:
		amount = roundCents(float64(grandTotalCents) * float64(deposit.Value) / 100.0)
	}
	if amount < 0 {
		return 0
	}
	if amount > grandTotalCents {
		return grandTotalCents
	}
	return amount
}

// ComputeTotals runs the pricing pipeline in its fixed order: line totals are
// summed into the subtotal, the discount is clamped and subtracted, tax is
// applied to the discounted amount, and the deposit is derived from the grand
// total. Inconsistent inputs clamp; the result never contains negatives.
func ComputeTotals(items []LineInput, discount DiscountInput, tax TaxInput, deposit DepositInput) Totals {
	lines := make([]CalculatedLine, 0, len(items))
	var subtotal int64
	for _, item := range items {
		lineTotal := LineTotalCents(item.Quantity, item.UnitPriceCents)
		lines = append(lines, CalculatedLine{
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: lineTotal,
		})
		subtotal += lineTotal
	}

	discountAmount := computeDiscount(subtotal, discount)
	afterDiscount := subtotal - discountAmount

	var taxAmount int64
	if tax.Enabled && tax.RateBps > 0 {
		taxAmount = roundCents(float64(afterDiscount) * float64(tax.RateBps) / 10000.0)
	}

	grandTotal := afterDiscount + taxAmount

	return Totals{
		Lines:                  lines,
		SubtotalCents:          subtotal,
		DiscountAmountCents:    discountAmount,
		AfterDiscountCents:     afterDiscount,
		TaxAmountCents:         taxAmount,
		GrandTotalCents:        grandTotal,
		DepositCalculatedCents: computeDeposit(grandTotal, deposit),
	}
}

// ApplyClientMarkup returns a copy of the items with each unit price raised
// by the markup percent. The marked-up lines then flow through the same
// ComputeTotals; internal and partner figures never see the markup.
func ApplyClientMarkup(items []LineInput, markupPercent int64) []LineInput {
	if markupPercent <= 0 {
		return items
	}
	factor := 1.0 + float64(markupPercent)/100.0
	out := make([]LineInput, len(items))
	for i, item := range items {
		out[i] = item
		out[i].UnitPriceCents = roundCents(float64(item.UnitPriceCents) * factor)
	}
	return out
}
