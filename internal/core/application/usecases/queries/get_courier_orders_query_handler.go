package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetCourierOrdersQueryHandler retrieves a courier's active assignments.
type GetCourierOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierOrdersQueryHandler creates a handler for the courier
// assignment listing.
func NewGetCourierOrdersQueryHandler(db *gorm.DB) GetCourierOrdersQueryHandler {
	return GetCourierOrdersQueryHandler{db: db}
}

// Handle executes the query. Only in-transit orders are returned; completed
// deliveries drop off the courier's work list.
func (h GetCourierOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCourierOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(orderSummarySelect+`
		WHERE o.courier_id = ? AND o.status = 'InTransit'
		ORDER BY o.created_at DESC
	`, query.CourierID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}
