package service

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		docType string
		from    string
		to      string
		want    bool
	}{
		{"invoice", "draft", "sent", true},
		{"invoice", "sent", "paid", true},
		{"invoice", "draft", "paid", false},
		{"invoice", "paid", "sent", false},
		{"quote", "draft", "sent", true},
		{"quote", "sent", "accepted", true},
		{"quote", "sent", "rejected", true},
		{"quote", "draft", "accepted", false},
		{"quote", "accepted", "rejected", false},
		{"invoice", "sent", "accepted", false},
		{"unknown", "draft", "sent", false},
	}

	for _, tt := range tests {
		if got := canTransition(tt.docType, tt.from, tt.to); got != tt.want {
			t.Errorf("canTransition(%s, %s, %s) = %v, want %v", tt.docType, tt.from, tt.to, got, tt.want)
		}
	}
}
