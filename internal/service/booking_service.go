package service

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// BookingService owns the booking lifecycle: creation, owner approval and
// rejection, point reads with participant authorization, and state-filtered
// listings for bookers and owners.
type BookingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreateBookingRequest is the add-booking payload after boundary validation.
type CreateBookingRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

// CreateBooking validates the requester, the item, self-booking and
// availability — in that order — and persists a WAITING booking.
func (s *BookingService) CreateBooking(ctx context.Context, requesterID int64, req CreateBookingRequest) (*models.Booking, error) {
	booker, err := s.repo.GetUser(ctx, requesterID)
	if err != nil {
		return nil, NotFoundf("user with id %d not found", requesterID)
	}

	item, err := s.repo.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, NotFoundf("item with id %d not found", req.ItemID)
	}

	if item.OwnerID == requesterID {
		return nil, Validationf("cannot book your own item")
	}

	if !item.Available {
		return nil, Validationf("item with id %d is not available", req.ItemID)
	}

	booking := &models.Booking{
		ItemID:   req.ItemID,
		BookerID: requesterID,
		Start:    req.Start,
		End:      req.End,
		Status:   models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}
	booking.Item = item
	booking.Booker = booker

	metrics.IncBookingCreated()
	s.publishEvent(events.EventBookingCreated, booking)

	return booking, nil
}

// FinalizeBooking sets the status to APPROVED or REJECTED. Only the owner
// of the booked item may decide. Re-finalizing an already decided booking
// overwrites the status: last write wins.
func (s *BookingService) FinalizeBooking(ctx context.Context, userID, bookingID int64, approved bool) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, NotFoundf("booking with id %d not found", bookingID)
	}

	item, err := s.repo.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, Validationf("only the item owner can approve or reject a booking")
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}
	if err := s.repo.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	booking.Status = status
	booking.Item = item

	if booker, err := s.repo.GetUser(ctx, booking.BookerID); err == nil {
		booking.Booker = booker
	}

	metrics.IncBookingFinalized(string(status))
	s.publishEvent(eventType, booking)

	return booking, nil
}

// GetBooking returns the booking to its booker or the item's owner only.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID int64) (*models.Booking, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, NotFoundf("user with id %d not found", userID)
	}

	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, NotFoundf("booking with id %d not found", bookingID)
	}

	item, err := s.repo.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if userID != booking.BookerID && userID != item.OwnerID {
		return nil, Validationf("user %d is not authorized to view booking %d", userID, bookingID)
	}

	booking.Item = item
	if booker, err := s.repo.GetUser(ctx, booking.BookerID); err == nil {
		booking.Booker = booker
	}
	return booking, nil
}

// ListByBooker returns the user's own bookings matching the state token,
// newest start first. The state token is matched case-insensitively.
func (s *BookingService) ListByBooker(ctx context.Context, userID int64, stateToken string) ([]*models.Booking, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, NotFoundf("user with id %d not found", userID)
	}

	state, err := models.ParseBookingState(stateToken)
	if err != nil {
		return nil, Validationf("unknown state: %s", stateToken)
	}

	bookings, err := s.repo.ListBookingsByBooker(ctx, userID, models.BookingFilter{State: state, Now: time.Now()})
	if err != nil {
		return nil, err
	}
	if err := s.attachRefs(ctx, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByOwner returns bookings of the user's items matching the state
// token. A user owning no items gets NotFound before any filtering.
func (s *BookingService) ListByOwner(ctx context.Context, userID int64, stateToken string) ([]*models.Booking, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, NotFoundf("user with id %d not found", userID)
	}

	count, err := s.repo.CountItemsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, NotFoundf("user %d has no items", userID)
	}

	state, err := models.ParseBookingState(stateToken)
	if err != nil {
		return nil, Validationf("unknown state: %s", stateToken)
	}

	bookings, err := s.repo.ListBookingsByOwner(ctx, userID, models.BookingFilter{State: state, Now: time.Now()})
	if err != nil {
		return nil, err
	}
	if err := s.attachRefs(ctx, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// attachRefs resolves item and booker references for a result set, loading
// each referenced row once.
func (s *BookingService) attachRefs(ctx context.Context, bookings []*models.Booking) error {
	items := make(map[int64]*models.Item)
	users := make(map[int64]*models.User)

	for _, b := range bookings {
		item, ok := items[b.ItemID]
		if !ok {
			var err error
			item, err = s.repo.GetItem(ctx, b.ItemID)
			if err != nil {
				return err
			}
			items[b.ItemID] = item
		}
		b.Item = item

		booker, ok := users[b.BookerID]
		if !ok {
			var err error
			booker, err = s.repo.GetUser(ctx, b.BookerID)
			if err != nil {
				return err
			}
			users[b.BookerID] = booker
		}
		b.Booker = booker
	}
	return nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		BookerID:  booking.BookerID,
		Status:    string(booking.Status),
		Start:     booking.Start,
		End:       booking.End,
	}
	if booking.Item != nil {
		payload.ItemName = booking.Item.Name
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
