package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medizo/models"
	"medizo/store"
)

func TestOrderStoreSequentialNumbers(t *testing.T) {
	s := NewOrderStore()
	ctx := context.Background()

	var numbers []string
	for i := 0; i < 3; i++ {
		o := models.Order{UserID: "u1", Items: []models.OrderItem{{ProductID: "p1", Qty: 1}}}
		require.NoError(t, s.Create(ctx, &o))
		numbers = append(numbers, o.OrderNumber)
		assert.Len(t, o.OrderNumber, 6)
	}

	assert.Equal(t, []string{"000001", "000002", "000003"}, numbers)
}

func TestOrderStoreConcurrentNumbersUnique(t *testing.T) {
	s := NewOrderStore()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	results := make([]string, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			o := models.Order{UserID: "u1"}
			if err := s.Create(ctx, &o); err == nil {
				results[i] = o.OrderNumber
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, num := range results {
		require.NotEmpty(t, num)
		assert.False(t, seen[num], "duplicate order number %s", num)
		seen[num] = true
	}
}

func TestOrderStoreDefaultsAndGet(t *testing.T) {
	s := NewOrderStore()
	ctx := context.Background()

	o := models.Order{UserID: "u1"}
	require.NoError(t, s.Create(ctx, &o))

	got, err := s.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = s.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestOrderStoreListByUserNewestFirst(t *testing.T) {
	s := NewOrderStore()
	ctx := context.Background()

	for _, userID := range []string{"u1", "u2", "u1"} {
		o := models.Order{UserID: userID}
		require.NoError(t, s.Create(ctx, &o))
		time.Sleep(2 * time.Millisecond)
	}

	orders, err := s.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.True(t, !orders[0].CreatedAt.Before(orders[1].CreatedAt), "newest first")

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOrderStoreUpdateStatus(t *testing.T) {
	s := NewOrderStore()
	ctx := context.Background()

	o := models.Order{UserID: "u1"}
	require.NoError(t, s.Create(ctx, &o))

	eta := time.Now().Add(72 * time.Hour).UTC()
	updated, err := s.UpdateStatus(ctx, o.ID, store.StatusUpdate{
		Status:            models.StatusConfirmed,
		EstimatedDelivery: &eta,
		TrackingInfo:      "NPX-1234",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
	require.NotNil(t, updated.EstimatedDelivery)
	assert.Equal(t, eta, *updated.EstimatedDelivery)
	assert.Equal(t, "NPX-1234", updated.TrackingInfo)

	// Omitted fields are preserved.
	updated, err = s.UpdateStatus(ctx, o.ID, store.StatusUpdate{Status: models.StatusShipped})
	require.NoError(t, err)
	assert.NotNil(t, updated.EstimatedDelivery)
	assert.Equal(t, "NPX-1234", updated.TrackingInfo)

	_, err = s.UpdateStatus(ctx, "missing", store.StatusUpdate{Status: models.StatusConfirmed})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestOrderStoreUpdateStatusRejectsStaleTransition(t *testing.T) {
	s := NewOrderStore()
	ctx := context.Background()

	o := models.Order{UserID: "u1"}
	require.NoError(t, s.Create(ctx, &o))

	// Two admins read the order while it is still pending; both moves look
	// legal against that read.
	first, err := s.GetByID(ctx, o.ID)
	require.NoError(t, err)
	second, err := s.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.True(t, models.CanTransition(first.Status, models.StatusDelivered))
	require.True(t, models.CanTransition(second.Status, models.StatusConfirmed))

	// The first write lands.
	_, err = s.UpdateStatus(ctx, o.ID, store.StatusUpdate{Status: models.StatusDelivered})
	require.NoError(t, err)

	// The second write was validated against the stale read; the store
	// re-checks under its lock and rejects the backward move.
	_, err = s.UpdateStatus(ctx, o.ID, store.StatusUpdate{Status: models.StatusConfirmed})
	assert.ErrorIs(t, err, store.ErrInvalidTransition)

	got, err := s.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, got.Status)

	// Terminal states stay terminal.
	_, err = s.UpdateStatus(ctx, o.ID, store.StatusUpdate{Status: models.StatusCancelled})
	assert.ErrorIs(t, err, store.ErrInvalidTransition)
}

func TestOrderStoreReadsAreIsolated(t *testing.T) {
	s := NewOrderStore()
	ctx := context.Background()

	items := []models.OrderItem{{ProductID: "p1", Name: "Aspirin 500mg", Price: 120, Qty: 1}}
	o := models.Order{UserID: "u1", Items: items}
	require.NoError(t, s.Create(ctx, &o))

	// Mutating the caller's slice after create must not reach stored state.
	items[0].Name = "tampered"

	got, err := s.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Aspirin 500mg", got.Items[0].Name)

	// Nor may mutating a returned order.
	got.Items[0].Price = 999
	fresh, err := s.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(120), fresh.Items[0].Price)
}
