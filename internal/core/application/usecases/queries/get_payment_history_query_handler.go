package queries

import (
	"context"
	"database/sql"

	"mparcel/internal/core/domain/model/user"

	"gorm.io/gorm"
)

// GetPaymentHistoryQueryHandler retrieves settled payments from the orders
// table. There is no separate payments table: the order carries its receipt
// and settlement time, so the history is a filtered projection.
type GetPaymentHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetPaymentHistoryQueryHandler creates a handler for payment history
// queries.
func NewGetPaymentHistoryQueryHandler(db *gorm.DB) GetPaymentHistoryQueryHandler {
	return GetPaymentHistoryQueryHandler{db: db}
}

// Handle executes the query, most recently settled payments first.
func (h GetPaymentHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetPaymentHistoryQuery,
) ([]PaymentRecord, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const baseQuery = `
		SELECT
			order_id,
			mpesa_receipt,
			amount,
			customer_name,
			customer_phone,
			payment_status,
			paid_at
		FROM orders
		WHERE payment_status <> 'Unpaid'
	`

	var rows *sql.Rows
	var err error
	if query.ActorRole() == user.RoleAdmin {
		rows, err = h.db.WithContext(ctx).Raw(baseQuery + `
			ORDER BY paid_at DESC NULLS LAST
		`).Rows()
	} else {
		rows, err = h.db.WithContext(ctx).Raw(baseQuery+`
			AND merchant_id = ?
			ORDER BY paid_at DESC NULLS LAST
		`, query.ActorID().String()).Rows()
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]PaymentRecord, 0)
	for rows.Next() {
		var record PaymentRecord
		var paidAt sql.NullTime

		err = rows.Scan(
			&record.OrderID,
			&record.Receipt,
			&record.Amount,
			&record.CustomerName,
			&record.CustomerPhone,
			&record.PaymentStatus,
			&paidAt,
		)
		if err != nil {
			return nil, err
		}

		record.PaidAt = paidAt.Time
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
