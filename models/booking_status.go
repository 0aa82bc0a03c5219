package models

import "fmt"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
	BookingCompleted: {},
	BookingCancelled: {},
}

// CanTransitionTo reports whether the move is legal. Staying in the same state is always allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if s == target {
		return s.IsValid()
	}
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

func (s BookingStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

func ParseBookingStatus(raw string) (BookingStatus, error) {
	s := BookingStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid booking status: %q", raw)
	}
	return s, nil
}
