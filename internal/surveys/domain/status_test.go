package domain

import "testing"

func TestCanTransitionStatus(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{StatusRequested, StatusAccepted, true},
		{StatusRequested, StatusDeclined, true},
		{StatusAccepted, StatusScheduled, true},
		{StatusScheduled, StatusCompleted, true},
		{StatusRequested, StatusScheduled, false},
		{StatusAccepted, StatusCompleted, false},
		{StatusDeclined, StatusAccepted, false},
		{StatusCompleted, StatusScheduled, false},
		{"bogus", StatusAccepted, false},
	}

	for _, tt := range tests {
		if got := CanTransitionStatus(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionStatus(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanTransitionBooking(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{BookingPendingClient, BookingClientAccepted, true},
		{BookingPendingClient, BookingClientDeclined, true},
		{BookingPendingClient, BookingClientCounter, true},
		{BookingClientCounter, BookingPendingClient, true},
		{BookingClientAccepted, BookingConfirmed, true},
		{BookingPendingClient, BookingConfirmed, false},
		{BookingClientDeclined, BookingPendingClient, false},
		{BookingConfirmed, BookingPendingClient, false},
	}

	for _, tt := range tests {
		if got := CanTransitionBooking(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionBooking(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
