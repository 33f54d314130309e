package memstore

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"medizo/models"
	"medizo/store"
)

type OrderStore struct {
	mu         sync.RWMutex
	orders     []models.Order
	nextID     int
	nextNumber int
}

func NewOrderStore() *OrderStore {
	return &OrderStore{nextID: 1, nextNumber: 1}
}

func (s *OrderStore) Create(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o.ID = strconv.Itoa(s.nextID)
	s.nextID++
	// Number assignment happens under the lock, so sequential uniqueness
	// holds even for concurrent checkouts.
	o.OrderNumber = fmt.Sprintf("%06d", s.nextNumber)
	s.nextNumber++

	if o.Status == "" {
		o.Status = models.StatusPending
	}
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	s.orders = append(s.orders, copyOrder(*o))
	return nil
}

func (s *OrderStore) GetByID(_ context.Context, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID == id {
			cp := copyOrder(o)
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *OrderStore) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var orders []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			orders = append(orders, copyOrder(o))
		}
	}
	sortNewestFirst(orders)
	return orders, nil
}

func (s *OrderStore) ListAll(_ context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, copyOrder(o))
	}
	sortNewestFirst(orders)
	return orders, nil
}

func (s *OrderStore) UpdateStatus(_ context.Context, id string, upd store.StatusUpdate) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}
		// The transition is checked against the status held right now,
		// under the write lock, so a stale read elsewhere cannot push
		// the order backward.
		if !models.CanTransition(s.orders[i].Status, upd.Status) {
			return nil, store.ErrInvalidTransition
		}
		s.orders[i].Status = upd.Status
		if upd.EstimatedDelivery != nil {
			s.orders[i].EstimatedDelivery = upd.EstimatedDelivery
		}
		if upd.TrackingInfo != "" {
			s.orders[i].TrackingInfo = upd.TrackingInfo
		}
		s.orders[i].UpdatedAt = time.Now().UTC()
		cp := copyOrder(s.orders[i])
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func sortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// copyOrder clones the slice and pointer fields so callers never share
// mutable state with the store.
func copyOrder(o models.Order) models.Order {
	if o.Items != nil {
		items := make([]models.OrderItem, len(o.Items))
		copy(items, o.Items)
		o.Items = items
	}
	if o.EstimatedDelivery != nil {
		eta := *o.EstimatedDelivery
		o.EstimatedDelivery = &eta
	}
	return o
}
