package queries

import (
	"context"

	"mparcel/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListCouriersQueryHandler lists couriers with derived availability.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type ListCouriersQueryHandler struct {
	db *gorm.DB
}

// NewListCouriersQueryHandler creates a handler for courier listing queries.
func NewListCouriersQueryHandler(db *gorm.DB) ListCouriersQueryHandler {
	return ListCouriersQueryHandler{db: db}
}

// Handle executes the query. Couriers without an active order sort first;
// within each group the order is by name.
func (h ListCouriersQueryHandler) Handle(
	ctx context.Context,
	query ListCouriersQuery,
) ([]ListCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]ListCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			u.id,
			u.name,
			u.phone,
			EXISTS (
				SELECT 1 FROM orders o
				WHERE o.courier_id = u.id AND o.status IN ('Pending', 'InTransit')
			) AS is_assigned
		FROM users u
		WHERE u.role = 'courier'
		ORDER BY is_assigned, u.name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var courier ListCouriersQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &courier.Name, &courier.Phone, &courier.IsAssigned); err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		courier.ID = courierID
		couriers = append(couriers, courier)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
