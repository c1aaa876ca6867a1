package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

// Repository is the persistence contract consumed by the services.
// database.DB implements it over sqlite.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// Items
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	ListItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error)
	CountItemsByOwner(ctx context.Context, ownerID int64) (int, error)
	SearchItems(ctx context.Context, text string) ([]*models.Item, error)
	ListItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error)

	// Bookings
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status models.BookingStatus) error
	ListBookingsByBooker(ctx context.Context, bookerID int64, f models.BookingFilter) ([]*models.Booking, error)
	ListBookingsByOwner(ctx context.Context, ownerID int64, f models.BookingFilter) ([]*models.Booking, error)
	CountFinishedBookings(ctx context.Context, bookerID, itemID int64, now time.Time) (int, error)
	LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	ExportBookings(ctx context.Context) ([]models.BookingExportRow, error)

	// Comments
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByItem(ctx context.Context, itemID int64) ([]*models.Comment, error)

	// Item requests
	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	ListRequestsByRequester(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error)
	ListOtherRequests(ctx context.Context, requesterID int64, offset, limit int) ([]*models.ItemRequest, error)
}

// SearchCache caches item search results keyed by the normalized query.
type SearchCache interface {
	Get(ctx context.Context, query string) ([]*models.Item, bool, error)
	Set(ctx context.Context, query string, items []*models.Item) error
	Invalidate(ctx context.Context) error
}

// EventPublisher publishes domain events to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// ExportWorker accepts asynchronous bookings-export tasks.
type ExportWorker interface {
	EnqueueBookingsExport(ctx context.Context) error
}
