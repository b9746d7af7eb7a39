// Package domain holds the survey state machines: the survey's own lifecycle
// and the booking negotiation with the client.
package domain

// Survey lifecycle statuses.
const (
	StatusRequested = "requested"
	StatusAccepted  = "accepted"
	StatusDeclined  = "declined"
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
)

// Booking negotiation statuses.
const (
	BookingPendingClient  = "pending_client"
	BookingClientAccepted = "client_accepted"
	BookingClientDeclined = "client_declined"
	BookingClientCounter  = "client_counter"
	BookingConfirmed      = "confirmed"
)

var statusTransitions = map[string][]string{
	StatusRequested: {StatusAccepted, StatusDeclined},
	StatusAccepted:  {StatusScheduled},
	StatusScheduled: {StatusCompleted},
}

var bookingTransitions = map[string][]string{
	BookingPendingClient:  {BookingClientAccepted, BookingClientDeclined, BookingClientCounter},
	BookingClientCounter:  {BookingPendingClient},
	BookingClientAccepted: {BookingConfirmed},
}

// CanTransitionStatus reports whether the survey lifecycle allows the move.
func CanTransitionStatus(from, to string) bool {
	return contains(statusTransitions[from], to)
}

// CanTransitionBooking reports whether the booking negotiation allows the move.
func CanTransitionBooking(from, to string) bool {
	return contains(bookingTransitions[from], to)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
