package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo     domain.Repository
	cache    domain.SearchCache
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewItemService(repo domain.Repository, cache domain.SearchCache, eventBus domain.EventPublisher, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		repo:     repo,
		cache:    cache,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error) {
	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		return nil, NotFoundf("user with id %d not found", ownerID)
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil, Validationf("item name is required")
	}
	if item.RequestID != 0 {
		if _, err := s.repo.GetRequest(ctx, item.RequestID); err != nil {
			return nil, NotFoundf("request with id %d not found", item.RequestID)
		}
	}

	item.OwnerID = ownerID
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateSearchCache(ctx)
	s.publishItemEvent(events.EventItemCreated, item)

	return item, nil
}

// UpdateItem applies a partial patch. Items of other users are not visible
// for editing, so a foreign item reads as absent.
func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, NotFoundf("item with id %d not found", itemID)
	}
	if item.OwnerID != ownerID {
		return nil, NotFoundf("item with id %d not found for user %d", itemID, ownerID)
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, Validationf("item name cannot be blank")
		}
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateSearchCache(ctx)
	return item, nil
}

// GetItem returns the item with its comments. The owner additionally sees
// the closest approved bookings around now.
func (s *ItemService) GetItem(ctx context.Context, userID, itemID int64) (*models.ItemView, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, NotFoundf("user with id %d not found", userID)
	}

	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, NotFoundf("item with id %d not found", itemID)
	}

	view := &models.ItemView{Item: *item}
	view.Comments, err = s.repo.ListCommentsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if view.Comments == nil {
		view.Comments = []*models.Comment{}
	}

	if item.OwnerID == userID {
		if err := s.attachClosestBookings(ctx, view); err != nil {
			return nil, err
		}
	}
	return view, nil
}

// ListByOwner returns all of the owner's items with comments and closest
// bookings.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]*models.ItemView, error) {
	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		return nil, NotFoundf("user with id %d not found", ownerID)
	}

	items, err := s.repo.ListItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	views := make([]*models.ItemView, 0, len(items))
	for _, item := range items {
		view := &models.ItemView{Item: *item}
		view.Comments, err = s.repo.ListCommentsByItem(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		if view.Comments == nil {
			view.Comments = []*models.Comment{}
		}
		if err := s.attachClosestBookings(ctx, view); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Search finds available items by text in name or description. Blank text
// yields an empty result, not an error. Results are cached per query.
func (s *ItemService) Search(ctx context.Context, text string) ([]*models.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []*models.Item{}, nil
	}

	key := strings.ToLower(text)
	if s.cache != nil {
		if items, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			return items, nil
		}
	}

	items, err := s.repo.SearchItems(ctx, text)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.Item{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, items); err != nil {
			s.logger.Warn().Err(err).Str("query", key).Msg("search cache set error")
		}
	}
	return items, nil
}

// AddComment lets a user comment on an item only after an approved booking
// of that item has ended.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, Validationf("comment text is required")
	}

	author, err := s.repo.GetUser(ctx, authorID)
	if err != nil {
		return nil, NotFoundf("user with id %d not found", authorID)
	}
	if _, err := s.repo.GetItem(ctx, itemID); err != nil {
		return nil, NotFoundf("item with id %d not found", itemID)
	}

	finished, err := s.repo.CountFinishedBookings(ctx, authorID, itemID, time.Now())
	if err != nil {
		return nil, err
	}
	if finished == 0 {
		return nil, Validationf("user %d has not finished a booking of item %d", authorID, itemID)
	}

	comment := &models.Comment{
		ItemID:   itemID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	comment.AuthorName = author.Name

	if s.eventBus != nil {
		_ = s.eventBus.PublishJSON(events.EventCommentAdded, comment)
	}
	return comment, nil
}

func (s *ItemService) attachClosestBookings(ctx context.Context, view *models.ItemView) error {
	now := time.Now()
	last, err := s.repo.LastBookingForItem(ctx, view.Item.ID, now)
	if err != nil {
		return err
	}
	next, err := s.repo.NextBookingForItem(ctx, view.Item.ID, now)
	if err != nil {
		return err
	}
	view.LastBooking = last
	view.NextBooking = next
	return nil
}

func (s *ItemService) invalidateSearchCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("search cache invalidate error")
	}
}

func (s *ItemService) publishItemEvent(eventType string, item *models.Item) {
	if s.eventBus == nil {
		return
	}

	payload := events.ItemEventPayload{
		ItemID:    item.ID,
		OwnerID:   item.OwnerID,
		Name:      item.Name,
		Available: item.Available,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("item_id", item.ID).Msg("publish event error")
	}
}
