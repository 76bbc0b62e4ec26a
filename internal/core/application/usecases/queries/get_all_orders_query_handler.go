package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// GetAllOrdersQueryHandler retrieves the platform-wide order list.
type GetAllOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllOrdersQueryHandler creates a handler for the admin order listing.
func NewGetAllOrdersQueryHandler(db *gorm.DB) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db}
}

// Handle executes the query, most recently created orders first.
func (h GetAllOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAllOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(orderSummarySelect + `
		ORDER BY o.created_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}

// orderSummarySelect resolves the courier and merchant references for
// display. Couriers are optional; merchants always exist but the join stays
// LEFT so a missing row degrades to empty display fields instead of hiding
// the order.
const orderSummarySelect = `
	SELECT
		o.order_id,
		o.customer_name,
		o.customer_phone,
		o.pickup_address,
		o.dropoff_address,
		o.amount,
		o.status,
		o.payment_status,
		o.courier_id,
		c.name  AS courier_name,
		c.phone AS courier_phone,
		m.name  AS merchant_name,
		m.phone AS merchant_phone,
		o.mpesa_receipt,
		o.created_at
	FROM orders o
	LEFT JOIN users c ON c.id = o.courier_id
	LEFT JOIN users m ON m.id = o.merchant_id
`

func scanOrderSummaries(rows *sql.Rows) ([]OrderSummary, error) {
	summaries := make([]OrderSummary, 0)

	for rows.Next() {
		var summary OrderSummary
		var courierID, courierName, courierPhone sql.NullString
		var merchantName, merchantPhone sql.NullString

		err := rows.Scan(
			&summary.OrderID,
			&summary.CustomerName,
			&summary.CustomerPhone,
			&summary.PickupAddress,
			&summary.DropoffAddress,
			&summary.Amount,
			&summary.Status,
			&summary.PaymentStatus,
			&courierID,
			&courierName,
			&courierPhone,
			&merchantName,
			&merchantPhone,
			&summary.MpesaReceipt,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		summary.CourierID = courierID.String
		summary.CourierName = courierName.String
		summary.CourierPhone = courierPhone.String
		summary.MerchantName = merchantName.String
		summary.MerchantPhone = merchantPhone.String
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
