package models

import "time"

// ItemRequest is a wanted-item posting. Owners reply by creating items
// that reference the request via Item.RequestID.
type ItemRequest struct {
	ID          int64     `json:"id"`
	RequesterID int64     `json:"requester_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemRequestView bundles a request with the items posted in reply.
type ItemRequestView struct {
	Request ItemRequest `json:"request"`
	Items   []*Item     `json:"items"`
}
