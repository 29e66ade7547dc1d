// Package lifecycle validates booking and order status changes. Cancelled and
// completed are terminal; setting the current status again is a permitted
// no-op so that cancelling twice stays idempotent.
package lifecycle

import (
	"errors"
	"strings"

	"restaurant-booking-api/models"
)

var bookingStatuses = map[models.BookingStatus]bool{
	models.BookingPending:   true,
	models.BookingConfirmed: true,
	models.BookingCancelled: true,
	models.BookingCompleted: true,
}

var orderStatuses = map[models.OrderStatus]bool{
	models.OrderPending:   true,
	models.OrderConfirmed: true,
	models.OrderPreparing: true,
	models.OrderCancelled: true,
	models.OrderCompleted: true,
}

// CanTransitionBooking checks whether a booking may move from one status to
// another.
func CanTransitionBooking(from, to models.BookingStatus) error {
	if !bookingStatuses[to] {
		return unknownStatus(string(to), bookingStatusNames())
	}
	if from == to {
		return nil
	}
	if from == models.BookingCancelled || from == models.BookingCompleted {
		return terminalStatus(string(from))
	}
	return nil
}

// CanTransitionOrder checks whether an order may move from one status to
// another.
func CanTransitionOrder(from, to models.OrderStatus) error {
	if !orderStatuses[to] {
		return unknownStatus(string(to), orderStatusNames())
	}
	if from == to {
		return nil
	}
	if from == models.OrderCancelled || from == models.OrderCompleted {
		return terminalStatus(string(from))
	}
	return nil
}

func unknownStatus(status string, valid []string) error {
	return errors.New("unknown status '" + status + "'. Valid statuses are: " + strings.Join(valid, ", "))
}

func terminalStatus(status string) error {
	return errors.New("status '" + status + "' is terminal and cannot be changed")
}

func bookingStatusNames() []string {
	return []string{
		string(models.BookingPending),
		string(models.BookingConfirmed),
		string(models.BookingCancelled),
		string(models.BookingCompleted),
	}
}

func orderStatusNames() []string {
	return []string{
		string(models.OrderPending),
		string(models.OrderConfirmed),
		string(models.OrderPreparing),
		string(models.OrderCancelled),
		string(models.OrderCompleted),
	}
}
