// Package outboxrepo persists domain events for the notification outbox.
// Events are inserted in the same transaction as the state change they
// describe and drained by the dispatch job.
package outboxrepo

import (
	"encoding/json"
	"time"

	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/core/ports"
)

// OutboxEventDTO represents one stored domain event. The event snapshot is
// kept as a JSON payload so the table schema survives event shape changes.
type OutboxEventDTO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	EventType string `gorm:"not null;index"`
	Payload   []byte `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
	SentAt    *time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming convention.
func (OutboxEventDTO) TableName() string {
	return "outbox_events"
}

func fromDomain(event order.Event) (OutboxEventDTO, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return OutboxEventDTO{}, err
	}

	return OutboxEventDTO{
		EventType: string(event.Type),
		Payload:   payload,
	}, nil
}

func toEntry(dto OutboxEventDTO) (ports.OutboxEntry, error) {
	var event order.Event
	if err := json.Unmarshal(dto.Payload, &event); err != nil {
		return ports.OutboxEntry{}, err
	}

	return ports.OutboxEntry{
		ID:        dto.ID,
		Event:     event,
		CreatedAt: dto.CreatedAt,
	}, nil
}
