package order

import "time"

// EventType names a domain event emitted on an order state change.
type EventType string

const (
	EventOrderCreated      EventType = "OrderCreated"
	EventCourierAssigned   EventType = "CourierAssigned"
	EventDeliveryCompleted EventType = "DeliveryCompleted"
	EventOrderCancelled    EventType = "OrderCancelled"
	EventPaymentReconciled EventType = "PaymentReconciled"
)

// Event is a snapshot of the facts a notification needs, written to the
// outbox in the same transaction as the state change that produced it.
// The dispatcher job drains the outbox and turns events into channel sends,
// so a failed send never touches the request path.
type Event struct {
	Type           EventType `json:"type"`
	OrderID        string    `json:"orderId"`
	Status         string    `json:"status"`
	CustomerName   string    `json:"customerName"`
	CustomerPhone  string    `json:"customerPhone"`
	PickupAddress  string    `json:"pickupAddress"`
	DropoffAddress string    `json:"dropoffAddress"`
	Amount         int64     `json:"amount"`
	CourierName    string    `json:"courierName,omitempty"`
	CourierPhone   string    `json:"courierPhone,omitempty"`
	MpesaReceipt   string    `json:"mpesaReceipt,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// NewStatusEvent snapshots an order into an event of the given type.
func NewStatusEvent(eventType EventType, o *Order, occurredAt time.Time) Event {
	return Event{
		Type:           eventType,
		OrderID:        o.ID().String(),
		Status:         o.Status().String(),
		CustomerName:   o.CustomerName(),
		CustomerPhone:  o.CustomerPhone().String(),
		PickupAddress:  o.PickupAddress(),
		DropoffAddress: o.DropoffAddress(),
		Amount:         o.Amount().Amount(),
		MpesaReceipt:   o.MpesaReceipt(),
		OccurredAt:     occurredAt,
	}
}

// NewCourierAssignedEvent snapshots an assignment, carrying the courier's
// contact so the dispatcher can message both parties.
func NewCourierAssignedEvent(o *Order, courierName, courierPhone string, occurredAt time.Time) Event {
	e := NewStatusEvent(EventCourierAssigned, o, occurredAt)
	e.CourierName = courierName
	e.CourierPhone = courierPhone
	return e
}
