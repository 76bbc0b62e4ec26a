// Package notifications turns outbox events into customer and courier
// messages and fans panic alerts out to administrators.
package notifications

import (
	"fmt"

	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/core/domain/model/user"
)

// customerMessage renders the message sent to the order's customer for the
// given event. Unknown event types fall back to a generic status update so a
// new event never goes silent.
func customerMessage(event order.Event) string {
	switch event.Type {
	case order.EventOrderCreated:
		return fmt.Sprintf(
			"Hi %s, your delivery order %s has been received. Pickup: %s. Dropoff: %s. Amount: KES %d.",
			event.CustomerName, event.OrderID, event.PickupAddress, event.DropoffAddress, event.Amount)
	case order.EventCourierAssigned:
		return fmt.Sprintf(
			"Hi %s, courier %s (%s) is on the way to pick up your order %s.",
			event.CustomerName, event.CourierName, event.CourierPhone, event.OrderID)
	case order.EventDeliveryCompleted:
		return fmt.Sprintf(
			"Hi %s, your order %s has been delivered. Thank you for choosing us!",
			event.CustomerName, event.OrderID)
	case order.EventOrderCancelled:
		return fmt.Sprintf(
			"Hi %s, your order %s has been cancelled.",
			event.CustomerName, event.OrderID)
	case order.EventPaymentReconciled:
		return fmt.Sprintf(
			"Hi %s, we have received your payment of KES %d for order %s. M-Pesa receipt: %s.",
			event.CustomerName, event.Amount, event.OrderID, event.MpesaReceipt)
	default:
		return fmt.Sprintf(
			"Hi %s, your order %s is now %s.",
			event.CustomerName, event.OrderID, event.Status)
	}
}

// courierAssignmentMessage renders the pickup briefing sent to the courier
// when an order is assigned to them.
func courierAssignmentMessage(event order.Event) string {
	return fmt.Sprintf(
		"New delivery %s assigned to you. Pickup: %s. Dropoff: %s. Customer: %s (%s). Amount: KES %d.",
		event.OrderID, event.PickupAddress, event.DropoffAddress,
		event.CustomerName, event.CustomerPhone, event.Amount)
}

// panicMessage renders the alert broadcast to administrators when a courier
// triggers a panic.
func panicMessage(courier *user.User, message string) string {
	alert := fmt.Sprintf("PANIC ALERT: courier %s (%s) needs assistance.",
		courier.Name(), courier.Phone().String())
	if location := courier.Location(); location != nil {
		alert += " Location: " + location.String() + "."
	} else {
		alert += " Location not available."
	}
	if message != "" {
		alert += " Message: " + message
	}
	return alert
}
