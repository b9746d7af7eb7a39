package service

import "math"

// Margin is the split of a gross job value between the company and the
// partner who delivered the work.
type Margin struct {
	CCCMarginCents       int64 `json:"cccMarginCents"`
	PartnerEarningsCents int64 `json:"partnerEarningsCents"`
}

// SplitMargin splits a gross amount per the partner's charge config. The
// margin clamps to [0, gross] so the two sides always sum to the gross and
// neither goes negative; malformed configs degrade to a zero margin rather
// than erroring.
func SplitMargin(grossCents int64, chargeType string, chargeValue int64) Margin {
	if grossCents <= 0 {
		return Margin{}
	}

	var margin int64
	switch chargeType {
	case "percentage":
		margin = int64(math.Round(float64(grossCents) * float64(chargeValue) / 100.0))
	case "fixed":
		margin = chargeValue
	}

	if margin < 0 {
		margin = 0
	}
	if margin > grossCents {
		margin = grossCents
	}

	return Margin{
		CCCMarginCents:       margin,
		PartnerEarningsCents: grossCents - margin,
	}
}
