package models

import "time"

type Item struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	RequestID   int64     `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemPatch carries a partial item update. Nil fields are left unchanged.
type ItemPatch struct {
	Name        *string
	Description *string
	Available   *bool
}

// ItemView is an item enriched with comments and, for the owner's eyes,
// the closest bookings around "now".
type ItemView struct {
	Item        Item       `json:"item"`
	Comments    []*Comment `json:"comments"`
	LastBooking *Booking   `json:"last_booking,omitempty"`
	NextBooking *Booking   `json:"next_booking,omitempty"`
}
