package service

import (
	"context"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewRequestService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, eventBus: eventBus, logger: logger}
}

func (s *RequestService) CreateRequest(ctx context.Context, requesterID int64, description string) (*models.ItemRequest, error) {
	if _, err := s.repo.GetUser(ctx, requesterID); err != nil {
		return nil, NotFoundf("user with id %d not found", requesterID)
	}
	if strings.TrimSpace(description) == "" {
		return nil, Validationf("request description is required")
	}

	request := &models.ItemRequest{
		RequesterID: requesterID,
		Description: description,
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		_ = s.eventBus.PublishJSON(events.EventRequestCreated, request)
	}
	return request, nil
}

// ListOwn returns the user's requests with their replies, newest first.
func (s *RequestService) ListOwn(ctx context.Context, requesterID int64) ([]*models.ItemRequestView, error) {
	if _, err := s.repo.GetUser(ctx, requesterID); err != nil {
		return nil, NotFoundf("user with id %d not found", requesterID)
	}

	requests, err := s.repo.ListRequestsByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, requests)
}

// ListAll pages through other users' requests, newest first.
func (s *RequestService) ListAll(ctx context.Context, userID int64, offset, limit int) ([]*models.ItemRequestView, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, NotFoundf("user with id %d not found", userID)
	}
	if offset < 0 || limit < 0 {
		return nil, Validationf("offset and limit must not be negative")
	}
	if limit == 0 {
		limit = models.DefaultRequestPageSize
	}

	requests, err := s.repo.ListOtherRequests(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, requests)
}

func (s *RequestService) GetRequest(ctx context.Context, userID, requestID int64) (*models.ItemRequestView, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, NotFoundf("user with id %d not found", userID)
	}

	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, NotFoundf("request with id %d not found", requestID)
	}

	views, err := s.buildViews(ctx, []*models.ItemRequest{request})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *RequestService) buildViews(ctx context.Context, requests []*models.ItemRequest) ([]*models.ItemRequestView, error) {
	views := make([]*models.ItemRequestView, 0, len(requests))
	for _, r := range requests {
		items, err := s.repo.ListItemsByRequest(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []*models.Item{}
		}
		views = append(views, &models.ItemRequestView{Request: *r, Items: items})
	}
	return views, nil
}
