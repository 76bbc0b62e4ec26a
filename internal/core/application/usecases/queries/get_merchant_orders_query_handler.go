package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetMerchantOrdersQueryHandler retrieves a merchant's own orders.
type GetMerchantOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetMerchantOrdersQueryHandler creates a handler for the merchant
// order listing.
func NewGetMerchantOrdersQueryHandler(db *gorm.DB) GetMerchantOrdersQueryHandler {
	return GetMerchantOrdersQueryHandler{db: db}
}

// Handle executes the query, most recently created orders first.
func (h GetMerchantOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetMerchantOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(orderSummarySelect+`
		WHERE o.merchant_id = ?
		ORDER BY o.created_at DESC
	`, query.MerchantID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}
