// Package store defines the persistence interfaces the HTTP layer depends on.
// Two backends implement them: mongostore (MongoDB) and memstore (process-local
// fallback used when no database is configured). The backend is selected once
// at startup so both code paths share identical query semantics.
package store

import (
	"context"
	"errors"
	"time"

	"medizo/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when a user email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidTransition is returned when an order status write would not be
	// a legal move from the order's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)

const (
	DefaultPageLimit = 20

	SortPopular   = "pop"
	SortNewest    = "new"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// ProductQuery filters and paginates a catalog listing. Search is a
// case-insensitive substring match over name and description.
type ProductQuery struct {
	Search   string
	Category string
	Sort     string
	Limit    int
	Page     int
	Featured *bool
}

// Normalize replaces out-of-range paging values and unknown sort keys with
// defaults, so malformed query parameters cannot poison a listing.
func (q ProductQuery) Normalize() ProductQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	switch q.Sort {
	case SortNewest, SortPriceAsc, SortPriceDesc:
	default:
		q.Sort = SortPopular
	}
	return q
}

// ProductPage is one page of a catalog listing.
type ProductPage struct {
	Items []models.Product
	Total int
	Page  int
	Pages int
}

// StatusUpdate is an admin-requested order mutation. Stores validate the
// transition against the current status as part of the write itself, so a
// concurrent update cannot slip a stale precondition through.
type StatusUpdate struct {
	Status            models.OrderStatus
	EstimatedDelivery *time.Time
	TrackingInfo      string
}

type ProductStore interface {
	Find(ctx context.Context, q ProductQuery) (*ProductPage, error)
	Categories(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type OrderStore interface {
	// Create assigns the ID, sequential order number, timestamps and the
	// default pending status.
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	// UpdateStatus atomically checks the transition and writes the new
	// status, returning ErrInvalidTransition when the move is not legal
	// from the order's current status.
	UpdateStatus(ctx context.Context, id string, upd StatusUpdate) (*models.Order, error)
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type ReviewStore interface {
	Create(ctx context.Context, r *models.Review) error
	ListByProduct(ctx context.Context, productID string) ([]models.Review, error)
	ListAll(ctx context.Context) ([]models.Review, error)
	AddReply(ctx context.Context, reviewID string, reply models.ReviewReply) (*models.Review, error)
	Delete(ctx context.Context, reviewID string) error
}
