package service

import "math"

// ComputeFeeCents derives the fee the partner owes on an emergency callout.
// The partner collects the full amount from the client and the fee becomes a
// debt to the company, settled later through the finance recorder.
func ComputeFeeCents(totalCollectedCents int64, feePercent int64) int64 {
	if totalCollectedCents <= 0 || feePercent <= 0 {
		return 0
	}
	fee := int64(math.Round(float64(totalCollectedCents) * float64(feePercent) / 100.0))
	if fee > totalCollectedCents {
		return totalCollectedCents
	}
	return fee
}
