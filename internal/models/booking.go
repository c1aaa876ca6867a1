package models

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus is the persisted lifecycle status of a booking.
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	StatusCanceled BookingStatus = "CANCELED"
)

// BookingState is a query-time filter bucket. It is never stored: CURRENT,
// PAST and FUTURE are computed from the booking range against "now", while
// WAITING and REJECTED filter on the persisted status.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState matches a state token case-insensitively.
func ParseBookingState(token string) (BookingState, error) {
	switch BookingState(strings.ToUpper(strings.TrimSpace(token))) {
	case StateAll:
		return StateAll, nil
	case StateCurrent:
		return StateCurrent, nil
	case StatePast:
		return StatePast, nil
	case StateFuture:
		return StateFuture, nil
	case StateWaiting:
		return StateWaiting, nil
	case StateRejected:
		return StateRejected, nil
	default:
		return "", fmt.Errorf("unknown state: %s", token)
	}
}

type Booking struct {
	ID        int64         `json:"id"`
	ItemID    int64         `json:"item_id"`
	BookerID  int64         `json:"booker_id"`
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	// Resolved references, populated by the service layer on reads.
	Item   *Item `json:"item,omitempty"`
	Booker *User `json:"booker,omitempty"`
}

// BookingFilter parameterizes the store's state-filtered listing queries.
// Now is fixed by the caller so one request sees one consistent "now".
type BookingFilter struct {
	State BookingState
	Now   time.Time
}

// BookingExportRow is a flattened booking used by the xlsx export.
type BookingExportRow struct {
	ID         int64
	ItemName   string
	BookerName string
	Start      time.Time
	End        time.Time
	Status     BookingStatus
	CreatedAt  time.Time
}
