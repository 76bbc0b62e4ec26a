// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The human-readable order identifier is the primary key; statuses are stored
// as their string form so the table reads naturally in psql and raw queries.
type OrderDTO struct {
	OrderID           string      `gorm:"primaryKey;column:order_id"`
	CustomerName      string      `gorm:"not null"`
	CustomerPhone     string      `gorm:"not null;index"`
	PickupAddress     string      `gorm:"not null"`
	DropoffAddress    string      `gorm:"not null"`
	Amount            int64       `gorm:"not null"`
	Status            string      `gorm:"not null;index"`
	PaymentStatus     string      `gorm:"not null;index"`
	CourierID         *uuid.UUID  `gorm:"type:uuid;index"`
	MerchantID        uuid.UUID   `gorm:"type:uuid;not null;index"`
	DeliveryProof     string
	MpesaReceipt      string
	CheckoutRequestID string      `gorm:"index"`
	Metadata          MetadataDTO `gorm:"embedded;embeddedPrefix:metadata_"`
	DeliveredAt       *time.Time
	PaidAt            *time.Time
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// MetadataDTO holds the optional typed attributes embedded in the order row.
type MetadataDTO struct {
	VehicleType   string
	ExternalRef   string
	PaymentMethod string
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		OrderID:           aggregate.ID().String(),
		CustomerName:      aggregate.CustomerName(),
		CustomerPhone:     aggregate.CustomerPhone().String(),
		PickupAddress:     aggregate.PickupAddress(),
		DropoffAddress:    aggregate.DropoffAddress(),
		Amount:            aggregate.Amount().Amount(),
		Status:            aggregate.Status().String(),
		PaymentStatus:     aggregate.PaymentStatus().String(),
		CourierID:         courierID,
		MerchantID:        aggregate.MerchantID().Bytes(),
		DeliveryProof:     aggregate.DeliveryProof(),
		MpesaReceipt:      aggregate.MpesaReceipt(),
		CheckoutRequestID: aggregate.CheckoutRequestID(),
		Metadata: MetadataDTO{
			VehicleType:   aggregate.Metadata().VehicleType,
			ExternalRef:   aggregate.Metadata().ExternalRef,
			PaymentMethod: aggregate.Metadata().PaymentMethod,
		},
		DeliveredAt: aggregate.DeliveredAt(),
		CreatedAt:   aggregate.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := order.OrderIDFromString(dto.OrderID)
	if err != nil {
		return nil, err
	}

	phone, err := kernel.NewPhone(dto.CustomerPhone)
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.CustomerName,
		phone,
		dto.PickupAddress,
		dto.DropoffAddress,
		amount,
		status,
		paymentStatus,
		courierID,
		merchantID,
		dto.DeliveryProof,
		dto.MpesaReceipt,
		dto.CheckoutRequestID,
		order.Metadata{
			VehicleType:   dto.Metadata.VehicleType,
			ExternalRef:   dto.Metadata.ExternalRef,
			PaymentMethod: dto.Metadata.PaymentMethod,
		},
		dto.DeliveredAt,
		dto.CreatedAt,
	)
}
