package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusInWarehouse    OrderStatus = "in_warehouse"
	StatusShipped        OrderStatus = "shipped"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// statusSequence is the fulfilment path an order moves along. Cancellation
// branches off from any non-terminal state.
var statusSequence = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusInWarehouse,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
}

func (s OrderStatus) sequenceIndex() int {
	for i, st := range statusSequence {
		if st == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	return s == StatusCancelled || s.sequenceIndex() >= 0
}

// Terminal reports whether an order in state s can never move again.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether an order may move from one status to another.
// Allowed moves are any strictly forward step along the fulfilment sequence,
// or cancellation from a non-terminal state.
func CanTransition(from, to OrderStatus) bool {
	if !to.Valid() {
		return false
	}
	if to == StatusCancelled {
		return !from.Terminal()
	}
	fi, ti := from.sequenceIndex(), to.sequenceIndex()
	return fi >= 0 && ti > fi
}

// TransitionSources lists every status an order may currently be in for a
// move to the given status to be legal.
func TransitionSources(to OrderStatus) []OrderStatus {
	all := append(append([]OrderStatus{}, statusSequence...), StatusCancelled)
	var sources []OrderStatus
	for _, from := range all {
		if CanTransition(from, to) {
			sources = append(sources, from)
		}
	}
	return sources
}

// OrderItem is a denormalized snapshot of a product at order-creation time.
// Later price or name changes do not affect past orders.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// ShippingAddress is the delivery address captured at checkout.
type ShippingAddress struct {
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	AddressLine  string `json:"addressLine"`
	Province     string `json:"province"`
	City         string `json:"city"`
	Municipality string `json:"municipality"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

// Order represents a placed order.
type Order struct {
	ID                string          `json:"_id,omitempty"`
	OrderNumber       string          `json:"orderNumber"`
	UserID            string          `json:"userId"`
	Items             []OrderItem     `json:"items"`
	Subtotal          float64         `json:"subtotal"`
	Tax               float64         `json:"tax"`
	ShippingFee       float64         `json:"shippingFee"`
	Total             float64         `json:"total"`
	Status            OrderStatus     `json:"status"`
	Shipping          ShippingAddress `json:"shipping"`
	EstimatedDelivery *time.Time      `json:"estimatedDelivery,omitempty"`
	TrackingInfo      string          `json:"trackingInfo,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}
