package memstore

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"medizo/models"
	"medizo/store"
)

type ReviewStore struct {
	mu      sync.RWMutex
	reviews []models.Review
	nextID  int
}

func NewReviewStore() *ReviewStore {
	return &ReviewStore{nextID: 1}
}

func (s *ReviewStore) Create(_ context.Context, r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = strconv.Itoa(s.nextID)
	s.nextID++
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.Replies == nil {
		r.Replies = []models.ReviewReply{}
	}

	s.reviews = append(s.reviews, *r)
	return nil
}

func (s *ReviewStore) ListByProduct(_ context.Context, productID string) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reviews []models.Review
	for _, r := range s.reviews {
		if r.ProductID == productID {
			reviews = append(reviews, copyReview(r))
		}
	}
	sortReviewsNewestFirst(reviews)
	return reviews, nil
}

func (s *ReviewStore) ListAll(_ context.Context) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := make([]models.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		reviews = append(reviews, copyReview(r))
	}
	sortReviewsNewestFirst(reviews)
	return reviews, nil
}

func (s *ReviewStore) AddReply(_ context.Context, reviewID string, reply models.ReviewReply) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reviews {
		if s.reviews[i].ID != reviewID {
			continue
		}
		s.reviews[i].Replies = append(s.reviews[i].Replies, reply)
		s.reviews[i].UpdatedAt = time.Now().UTC()
		cp := copyReview(s.reviews[i])
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (s *ReviewStore) Delete(_ context.Context, reviewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.reviews {
		if r.ID == reviewID {
			s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func copyReview(r models.Review) models.Review {
	cp := r
	cp.Replies = make([]models.ReviewReply, len(r.Replies))
	copy(cp.Replies, r.Replies)
	return cp
}

func sortReviewsNewestFirst(reviews []models.Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
}
