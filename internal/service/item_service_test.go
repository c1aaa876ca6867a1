package service

import (
	"context"
	"errors"
	"testing"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeCache is a minimal in-memory SearchCache for service tests.
type fakeCache struct {
	entries     map[string][]*models.Item
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]*models.Item{}}
}

func (c *fakeCache) Get(ctx context.Context, query string) ([]*models.Item, bool, error) {
	items, ok := c.entries[query]
	return items, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, query string, items []*models.Item) error {
	c.entries[query] = items
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context) error {
	c.entries = map[string][]*models.Item{}
	c.invalidated++
	return nil
}

func TestCreateItem(t *testing.T) {
	owner := &models.User{ID: 1, Name: "Owner"}

	repo := new(mockRepo)
	cache := newFakeCache()
	bus := &recordingBus{}
	svc := NewItemService(repo, cache, bus, &testLogger)

	repo.On("GetUser", mock.Anything, owner.ID).Return(owner, nil)
	repo.On("CreateItem", mock.Anything, mock.AnythingOfType("*models.Item")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Item).ID = 10
		}).
		Return(nil)

	item, err := svc.CreateItem(context.Background(), owner.ID, &models.Item{Name: "Drill", Available: true})
	require.NoError(t, err)
	assert.Equal(t, int64(10), item.ID)
	assert.Equal(t, owner.ID, item.OwnerID)
	assert.Equal(t, 1, cache.invalidated)
	assert.Equal(t, []string{"item_created"}, bus.published)
}

func TestCreateItemBlankName(t *testing.T) {
	owner := &models.User{ID: 1}

	repo := new(mockRepo)
	svc := NewItemService(repo, nil, nil, &testLogger)

	repo.On("GetUser", mock.Anything, owner.ID).Return(owner, nil)

	_, err := svc.CreateItem(context.Background(), owner.ID, &models.Item{Name: "   "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateItemUnknownRequest(t *testing.T) {
	owner := &models.User{ID: 1}

	repo := new(mockRepo)
	svc := NewItemService(repo, nil, nil, &testLogger)

	repo.On("GetUser", mock.Anything, owner.ID).Return(owner, nil)
	repo.On("GetRequest", mock.Anything, int64(77)).Return(nil, errors.New("no rows"))

	_, err := svc.CreateItem(context.Background(), owner.ID, &models.Item{Name: "Drill", RequestID: 77})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "request with id 77 not found")
}

func TestUpdateItemForeignItemReadsAsAbsent(t *testing.T) {
	item := &models.Item{ID: 10, OwnerID: 1, Name: "Drill"}

	repo := new(mockRepo)
	svc := NewItemService(repo, nil, nil, &testLogger)

	repo.On("GetItem", mock.Anything, item.ID).Return(item, nil)

	_, err := svc.UpdateItem(context.Background(), 2, item.ID, models.ItemPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "item with id 10 not found for user 2")
	repo.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything)
}

func TestGetItemOwnerSeesClosestBookings(t *testing.T) {
	owner := &models.User{ID: 1}
	stranger := &models.User{ID: 2}
	item := &models.Item{ID: 10, OwnerID: owner.ID, Name: "Drill"}
	last := &models.Booking{ID: 5, ItemID: item.ID}
	next := &models.Booking{ID: 6, ItemID: item.ID}

	newRepo := func() *mockRepo {
		repo := new(mockRepo)
		repo.On("GetUser", mock.Anything, owner.ID).Return(owner, nil).Maybe()
		repo.On("GetUser", mock.Anything, stranger.ID).Return(stranger, nil).Maybe()
		repo.On("GetItem", mock.Anything, item.ID).Return(item, nil)
		repo.On("ListCommentsByItem", mock.Anything, item.ID).Return(nil, nil)
		repo.On("LastBookingForItem", mock.Anything, item.ID, mock.Anything).Return(last, nil).Maybe()
		repo.On("NextBookingForItem", mock.Anything, item.ID, mock.Anything).Return(next, nil).Maybe()
		return repo
	}

	t.Run("owner", func(t *testing.T) {
		svc := NewItemService(newRepo(), nil, nil, &testLogger)
		view, err := svc.GetItem(context.Background(), owner.ID, item.ID)
		require.NoError(t, err)
		assert.Equal(t, last, view.LastBooking)
		assert.Equal(t, next, view.NextBooking)
		assert.NotNil(t, view.Comments)
	})

	t.Run("non-owner", func(t *testing.T) {
		repo := newRepo()
		svc := NewItemService(repo, nil, nil, &testLogger)
		view, err := svc.GetItem(context.Background(), stranger.ID, item.ID)
		require.NoError(t, err)
		assert.Nil(t, view.LastBooking)
		assert.Nil(t, view.NextBooking)
		repo.AssertNotCalled(t, "LastBookingForItem", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSearch(t *testing.T) {
	items := []*models.Item{{ID: 10, Name: "Drill", Available: true}}

	repo := new(mockRepo)
	cache := newFakeCache()
	svc := NewItemService(repo, cache, nil, &testLogger)

	repo.On("SearchItems", mock.Anything, "Drill").Return(items, nil).Once()

	got, err := svc.Search(context.Background(), "Drill")
	require.NoError(t, err)
	assert.Equal(t, items, got)

	// Second call is served from the cache, keyed case-insensitively
	got, err = svc.Search(context.Background(), "dRILL")
	require.NoError(t, err)
	assert.Equal(t, items, got)
	repo.AssertExpectations(t)
}

func TestSearchBlankText(t *testing.T) {
	repo := new(mockRepo)
	svc := NewItemService(repo, nil, nil, &testLogger)

	got, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
	repo.AssertNotCalled(t, "SearchItems", mock.Anything, mock.Anything)
}

func TestAddComment(t *testing.T) {
	author := &models.User{ID: 2, Name: "Alice"}
	item := &models.Item{ID: 10, OwnerID: 1, Name: "Drill"}

	repo := new(mockRepo)
	svc := NewItemService(repo, nil, nil, &testLogger)

	repo.On("GetUser", mock.Anything, author.ID).Return(author, nil)
	repo.On("GetItem", mock.Anything, item.ID).Return(item, nil)
	repo.On("CountFinishedBookings", mock.Anything, author.ID, item.ID, mock.Anything).Return(1, nil)
	repo.On("CreateComment", mock.Anything, mock.AnythingOfType("*models.Comment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Comment).ID = 7
		}).
		Return(nil)

	comment, err := svc.AddComment(context.Background(), author.ID, item.ID, "worked great")
	require.NoError(t, err)
	assert.Equal(t, int64(7), comment.ID)
	assert.Equal(t, "Alice", comment.AuthorName)
}

func TestAddCommentWithoutFinishedBooking(t *testing.T) {
	author := &models.User{ID: 2}
	item := &models.Item{ID: 10, OwnerID: 1}

	repo := new(mockRepo)
	svc := NewItemService(repo, nil, nil, &testLogger)

	repo.On("GetUser", mock.Anything, author.ID).Return(author, nil)
	repo.On("GetItem", mock.Anything, item.ID).Return(item, nil)
	repo.On("CountFinishedBookings", mock.Anything, author.ID, item.ID, mock.Anything).Return(0, nil)

	_, err := svc.AddComment(context.Background(), author.ID, item.ID, "nice")
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "user 2 has not finished a booking of item 10")
	repo.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything)
}
