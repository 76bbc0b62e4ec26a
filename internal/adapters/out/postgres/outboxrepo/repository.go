package outboxrepo

import (
	"context"
	"time"

	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/core/ports"
	"mparcel/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add enqueues a domain event for later dispatch.
func (r *GormOutboxRepository) Add(ctx context.Context, event order.Event) error {
	dto, err := fromDomain(event)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetPending retrieves undispatched entries in insertion order.
func (r *GormOutboxRepository) GetPending(ctx context.Context, limit int) ([]ports.OutboxEntry, error) {
	var dtos []OutboxEventDTO
	err := r.db.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]ports.OutboxEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toEntry(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// MarkSent records that an entry has been dispatched.
func (r *GormOutboxRepository) MarkSent(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Model(&OutboxEventDTO{}).
		Where("id = ?", id).
		Update("sent_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outboxEvent", id)
	}

	return nil
}
