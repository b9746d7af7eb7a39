package service

import "testing"

func TestSplitMargin(t *testing.T) {
	tests := []struct {
		name         string
		grossCents   int64
		chargeType   string
		chargeValue  int64
		wantMargin   int64
		wantEarnings int64
	}{
		{"percentage split", 100000, "percentage", 20, 20000, 80000},
		{"fixed split", 100000, "fixed", 15000, 15000, 85000},
		{"fixed exceeding gross clamps", 10000, "fixed", 25000, 10000, 0},
		{"negative value clamps to zero", 10000, "fixed", -500, 0, 10000},
		{"percentage over 100 clamps", 10000, "percentage", 150, 10000, 0},
		{"zero gross", 0, "percentage", 20, 0, 0},
		{"unknown charge type", 10000, "hourly", 20, 0, 10000},
		{"rounding", 99999, "percentage", 33, 33000, 66999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := SplitMargin(tt.grossCents, tt.chargeType, tt.chargeValue)
			if m.CCCMarginCents != tt.wantMargin {
				t.Errorf("CCCMarginCents = %d, want %d", m.CCCMarginCents, tt.wantMargin)
			}
			if m.PartnerEarningsCents != tt.wantEarnings {
				t.Errorf("PartnerEarningsCents = %d, want %d", m.PartnerEarningsCents, tt.wantEarnings)
			}
			if m.CCCMarginCents+m.PartnerEarningsCents != tt.grossCents {
				t.Errorf("split does not sum to gross: %d + %d != %d",
					m.CCCMarginCents, m.PartnerEarningsCents, tt.grossCents)
			}
		})
	}
}
