package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{
		StatusPending, StatusConfirmed, StatusInWarehouse,
		StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled,
	} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, OrderStatus("refunded").Valid())
	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("Pending").Valid(), "statuses are case-sensitive")
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"next step forward", StatusPending, StatusConfirmed, true},
		{"skip ahead is still forward", StatusPending, StatusShipped, true},
		{"full sequence jump", StatusPending, StatusDelivered, true},
		{"mid-sequence forward", StatusInWarehouse, StatusOutForDelivery, true},
		{"backward move rejected", StatusDelivered, StatusPending, false},
		{"single step backward rejected", StatusShipped, StatusInWarehouse, false},
		{"same status rejected", StatusConfirmed, StatusConfirmed, false},
		{"cancel from pending", StatusPending, StatusCancelled, true},
		{"cancel from out_for_delivery", StatusOutForDelivery, StatusCancelled, true},
		{"cancel after delivery rejected", StatusDelivered, StatusCancelled, false},
		{"double cancel rejected", StatusCancelled, StatusCancelled, false},
		{"un-cancel rejected", StatusCancelled, StatusPending, false},
		{"resume after cancel rejected", StatusCancelled, StatusShipped, false},
		{"unknown target rejected", StatusPending, OrderStatus("archived"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusOutForDelivery.Terminal())
}

func TestTransitionSources(t *testing.T) {
	nonTerminal := []OrderStatus{
		StatusPending, StatusConfirmed, StatusInWarehouse,
		StatusShipped, StatusOutForDelivery,
	}

	assert.Equal(t, nonTerminal, TransitionSources(StatusDelivered))
	assert.Equal(t, nonTerminal, TransitionSources(StatusCancelled))
	assert.Equal(t, []OrderStatus{StatusPending}, TransitionSources(StatusConfirmed))
	assert.Empty(t, TransitionSources(StatusPending), "nothing moves back to pending")
}
