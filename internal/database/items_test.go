package database

import (
	"context"
	"testing"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchItems(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")

	drill := &models.Item{OwnerID: owner.ID, Name: "Power Drill", Description: "cordless", Available: true}
	saw := &models.Item{OwnerID: owner.ID, Name: "Saw", Description: "hand saw with drill bits", Available: true}
	hidden := &models.Item{OwnerID: owner.ID, Name: "Drill Press", Description: "heavy", Available: false}
	for _, item := range []*models.Item{drill, saw, hidden} {
		require.NoError(t, db.CreateItem(ctx, item))
	}

	t.Run("matches name and description case-insensitively", func(t *testing.T) {
		got, err := db.SearchItems(ctx, "dRiLl")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, drill.ID, got[0].ID)
		assert.Equal(t, saw.ID, got[1].ID)
	})

	t.Run("skips unavailable items", func(t *testing.T) {
		got, err := db.SearchItems(ctx, "press")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestListAndCountItemsByOwner(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")

	createTestItem(t, db, owner.ID, "Drill", true)
	createTestItem(t, db, owner.ID, "Saw", false)
	createTestItem(t, db, other.ID, "Ladder", true)

	items, err := db.ListItemsByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	count, err := db.CountItemsByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = db.CountItemsByOwner(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUpdateItem(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	item.Name = "Hammer Drill"
	item.Available = false
	require.NoError(t, db.UpdateItem(ctx, item))

	got, err := db.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hammer Drill", got.Name)
	assert.False(t, got.Available)

	missing := &models.Item{ID: 999, Name: "Ghost"}
	assert.ErrorIs(t, db.UpdateItem(ctx, missing), ErrNotFound)
}

func TestItemsByRequest(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	requester := createTestUser(t, db, "Requester", "req@example.com")

	request := &models.ItemRequest{RequesterID: requester.ID, Description: "need a drill"}
	require.NoError(t, db.CreateRequest(ctx, request))

	reply := &models.Item{OwnerID: owner.ID, Name: "Drill", Available: true, RequestID: request.ID}
	require.NoError(t, db.CreateItem(ctx, reply))
	// unrelated item
	createTestItem(t, db, owner.ID, "Saw", true)

	items, err := db.ListItemsByRequest(ctx, request.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, reply.ID, items[0].ID)
	assert.Equal(t, request.ID, items[0].RequestID)
}
