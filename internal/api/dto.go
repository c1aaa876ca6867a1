package api

import (
	"shareit/internal/models"
)

// Wire shapes for the REST API. Timestamps use the zone-less local
// date-time format.

type userRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type userPatchRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type itemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   int64  `json:"requestId,omitempty"`
}

type itemPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type itemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   int64  `json:"requestId,omitempty"`
}

type itemViewResponse struct {
	itemResponse
	Comments    []commentResponse `json:"comments"`
	LastBooking *bookingShort     `json:"lastBooking,omitempty"`
	NextBooking *bookingShort     `json:"nextBooking,omitempty"`
}

type commentRequest struct {
	Text string `json:"text"`
}

type commentResponse struct {
	ID         int64           `json:"id"`
	Text       string          `json:"text"`
	AuthorName string          `json:"authorName"`
	Created    models.DateTime `json:"created"`
}

type createBookingRequest struct {
	ItemID int64           `json:"itemId"`
	Start  models.DateTime `json:"start"`
	End    models.DateTime `json:"end"`
}

type bookingResponse struct {
	ID     int64                `json:"id"`
	Start  models.DateTime      `json:"start"`
	End    models.DateTime      `json:"end"`
	Status models.BookingStatus `json:"status"`
	Item   *itemResponse        `json:"item,omitempty"`
	Booker *userResponse        `json:"booker,omitempty"`
}

// bookingShort is the compact booking reference embedded in item views.
type bookingShort struct {
	ID       int64           `json:"id"`
	BookerID int64           `json:"bookerId"`
	Start    models.DateTime `json:"start"`
	End      models.DateTime `json:"end"`
}

type itemRequestRequest struct {
	Description string `json:"description"`
}

type itemRequestResponse struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Created     models.DateTime `json:"created"`
	Items       []itemResponse  `json:"items"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toItemResponse(i *models.Item) itemResponse {
	return itemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		RequestID:   i.RequestID,
	}
}

func toCommentResponse(c *models.Comment) commentResponse {
	return commentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    models.NewDateTime(c.CreatedAt),
	}
}

func toBookingResponse(b *models.Booking) bookingResponse {
	resp := bookingResponse{
		ID:     b.ID,
		Start:  models.NewDateTime(b.Start),
		End:    models.NewDateTime(b.End),
		Status: b.Status,
	}
	if b.Item != nil {
		item := toItemResponse(b.Item)
		resp.Item = &item
	}
	if b.Booker != nil {
		booker := toUserResponse(b.Booker)
		resp.Booker = &booker
	}
	return resp
}

func toBookingResponses(bookings []*models.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}

func toBookingShort(b *models.Booking) *bookingShort {
	if b == nil {
		return nil
	}
	return &bookingShort{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    models.NewDateTime(b.Start),
		End:      models.NewDateTime(b.End),
	}
}

func toItemViewResponse(v *models.ItemView) itemViewResponse {
	resp := itemViewResponse{
		itemResponse: toItemResponse(&v.Item),
		Comments:     make([]commentResponse, 0, len(v.Comments)),
		LastBooking:  toBookingShort(v.LastBooking),
		NextBooking:  toBookingShort(v.NextBooking),
	}
	for _, c := range v.Comments {
		resp.Comments = append(resp.Comments, toCommentResponse(c))
	}
	return resp
}

func toItemRequestResponse(v *models.ItemRequestView) itemRequestResponse {
	resp := itemRequestResponse{
		ID:          v.Request.ID,
		Description: v.Request.Description,
		Created:     models.NewDateTime(v.Request.CreatedAt),
		Items:       make([]itemResponse, 0, len(v.Items)),
	}
	for _, item := range v.Items {
		resp.Items = append(resp.Items, toItemResponse(item))
	}
	return resp
}
