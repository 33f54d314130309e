// Package memstore holds the in-memory fallback backend. Every store guards
// its data with a mutex, so concurrent requests cannot race the way the
// unsynchronized array fallback of earlier revisions could. Data is lost on
// restart.
package memstore

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"medizo/models"
	"medizo/store"
)

type ProductStore struct {
	mu       sync.RWMutex
	products []models.Product
	nextID   int
}

func NewProductStore() *ProductStore {
	return &ProductStore{nextID: 1}
}

func (s *ProductStore) Find(_ context.Context, q store.ProductQuery) (*store.ProductPage, error) {
	q = q.Normalize()

	s.mu.RLock()
	results := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if matchesQuery(p, q) {
			results = append(results, copyProduct(p))
		}
	}
	s.mu.RUnlock()

	switch q.Sort {
	case store.SortPriceAsc:
		sort.SliceStable(results, func(i, j int) bool { return results[i].Price < results[j].Price })
	case store.SortPriceDesc:
		sort.SliceStable(results, func(i, j int) bool { return results[i].Price > results[j].Price })
	default:
		// pop and new both list newest first
		sort.SliceStable(results, func(i, j int) bool { return results[i].CreatedAt.After(results[j].CreatedAt) })
	}

	total := len(results)
	pages := (total + q.Limit - 1) / q.Limit
	if pages < 1 {
		pages = 1
	}

	start := (q.Page - 1) * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}

	return &store.ProductPage{
		Items: results[start:end],
		Total: total,
		Page:  q.Page,
		Pages: pages,
	}, nil
}

func matchesQuery(p models.Product, q store.ProductQuery) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.Featured != nil && p.Featured != *q.Featured {
		return false
	}
	return true
}

func (s *ProductStore) Categories(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var categories []string
	for _, p := range s.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *ProductStore) GetByID(_ context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			cp := copyProduct(p)
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *ProductStore) Create(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = strconv.Itoa(s.nextID)
	s.nextID++
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	// Images is always a slice, never null, matching the document backend.
	if p.Images == nil {
		p.Images = []string{}
	}
	syncImage(p)
	s.products = append(s.products, copyProduct(*p))
	return nil
}

func (s *ProductStore) Update(_ context.Context, p *models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.products {
		if existing.ID == p.ID {
			p.CreatedAt = existing.CreatedAt
			p.UpdatedAt = time.Now().UTC()
			if p.Images == nil {
				p.Images = []string{}
			}
			syncImage(p)
			s.products[i] = copyProduct(*p)
			cp := copyProduct(*p)
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *ProductStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// syncImage keeps the legacy single-image field aligned with the images array.
func syncImage(p *models.Product) {
	if len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
}

// copyProduct clones the images slice so callers never share mutable state
// with the store.
func copyProduct(p models.Product) models.Product {
	images := make([]string, len(p.Images))
	copy(images, p.Images)
	p.Images = images
	return p
}
