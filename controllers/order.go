package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"medizo/middleware"
	"medizo/models"
	"medizo/pricing"
	"medizo/store"
	"medizo/utils"
)

const defaultShippingCountry = "Nepal"

// OrderController handles checkout, order history and the admin status
// workflow.
type OrderController struct {
	orders store.OrderStore
	logger zerolog.Logger
}

func NewOrderController(orders store.OrderStore, logger zerolog.Logger) *OrderController {
	return &OrderController{orders: orders, logger: logger}
}

type createOrderRequest struct {
	Items           []models.OrderItem      `json:"items"`
	Total           *float64                `json:"total"`
	Subtotal        *float64                `json:"subtotal"`
	Shipping        models.ShippingAddress  `json:"shipping"`
	ShippingAddress *models.ShippingAddress `json:"shippingAddress"`
}

// Quote prices a cart without creating anything. The checkout page and order
// creation share the same calculator, so previews always match the stored
// order.
func (oc *OrderController) Quote(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Items []models.OrderItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validateItems(body.Items); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, pricing.Calculate(body.Items))
}

// Create places an order for the authenticated user. The server recomputes
// the price breakdown and rejects a client-supplied total that disagrees
// beyond rounding tolerance.
func (oc *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if len(body.Items) == 0 {
		utils.WriteError(w, http.StatusBadRequest, "No items in order")
		return
	}
	if err := validateItems(body.Items); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	breakdown := pricing.Calculate(body.Items)
	if body.Total != nil && !breakdown.MatchesTotal(*body.Total) {
		utils.WriteError(w, http.StatusBadRequest, "Order total does not match server calculation")
		return
	}

	address := body.Shipping
	if body.ShippingAddress != nil {
		address = *body.ShippingAddress
	}
	if address.Country == "" {
		address.Country = defaultShippingCountry
	}

	order := models.Order{
		UserID:      claims.Subject,
		Items:       body.Items,
		Subtotal:    breakdown.Subtotal,
		Tax:         breakdown.Tax,
		ShippingFee: breakdown.Shipping,
		Total:       breakdown.Total,
		Status:      models.StatusPending,
		Shipping:    address,
	}

	if err := oc.orders.Create(r.Context(), &order); err != nil {
		oc.logger.Error().Err(err).Msg("create order")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, order)
}

// ListMine returns the authenticated user's orders, newest first.
func (oc *OrderController) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orders, err := oc.orders.ListByUser(r.Context(), claims.Subject)
	if err != nil {
		oc.logger.Error().Err(err).Msg("list user orders")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// AdminList returns every order, newest first.
func (oc *OrderController) AdminList(w http.ResponseWriter, r *http.Request) {
	orders, err := oc.orders.ListAll(r.Context())
	if err != nil {
		oc.logger.Error().Err(err).Msg("admin list orders")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// UpdateStatus moves an order along its lifecycle. The requested status must
// be a legal transition from the current one; anything else is a 409.
func (oc *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Status            string `json:"status"`
		EstimatedDelivery string `json:"estimatedDelivery"`
		TrackingInfo      string `json:"trackingInfo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	status := models.OrderStatus(body.Status)
	if !status.Valid() {
		utils.WriteError(w, http.StatusBadRequest, "Unknown status")
		return
	}

	var estimatedDelivery *time.Time
	if body.EstimatedDelivery != "" {
		t, err := time.Parse(time.RFC3339, body.EstimatedDelivery)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid estimatedDelivery date")
			return
		}
		estimatedDelivery = &t
	}

	order, err := oc.orders.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Order not found")
			return
		}
		oc.logger.Error().Err(err).Msg("find order")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if !models.CanTransition(order.Status, status) {
		utils.WriteError(w, http.StatusConflict,
			fmt.Sprintf("Cannot transition order from %s to %s", order.Status, status))
		return
	}

	updated, err := oc.orders.UpdateStatus(r.Context(), id, store.StatusUpdate{
		Status:            status,
		EstimatedDelivery: estimatedDelivery,
		TrackingInfo:      body.TrackingInfo,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Order not found")
			return
		}
		if errors.Is(err, store.ErrInvalidTransition) {
			// A concurrent update changed the status after our read; the
			// store rejected the now-illegal write.
			from := order.Status
			if current, cerr := oc.orders.GetByID(r.Context(), id); cerr == nil {
				from = current.Status
			}
			utils.WriteError(w, http.StatusConflict,
				fmt.Sprintf("Cannot transition order from %s to %s", from, status))
			return
		}
		oc.logger.Error().Err(err).Msg("update order status")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	oc.logger.Info().
		Str("order_id", updated.ID).
		Str("order_number", updated.OrderNumber).
		Str("from", string(order.Status)).
		Str("to", string(updated.Status)).
		Msg("order status updated")

	utils.WriteJSON(w, http.StatusOK, updated)
}

func validateItems(items []models.OrderItem) error {
	for i, it := range items {
		if it.Qty <= 0 {
			return fmt.Errorf("item %d has invalid quantity", i)
		}
		if it.Price < 0 {
			return fmt.Errorf("item %d has invalid price", i)
		}
	}
	return nil
}
