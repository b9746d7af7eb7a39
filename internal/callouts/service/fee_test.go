package service

import "testing"

func TestComputeFeeCents(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		feePercent int64
		want       int64
	}{
		{"twenty percent", 30000, 20, 6000},
		{"rounds to nearest cent", 9999, 15, 1500},
		{"zero total", 0, 20, 0},
		{"zero percent", 30000, 0, 0},
		{"negative percent", 30000, -5, 0},
		{"over one hundred percent clamps", 10000, 120, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeFeeCents(tt.total, tt.feePercent); got != tt.want {
				t.Errorf("ComputeFeeCents(%d, %d) = %d, want %d", tt.total, tt.feePercent, got, tt.want)
			}
		})
	}
}
