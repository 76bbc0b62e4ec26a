package queries

import (
	"context"

	"mparcel/internal/core/domain/model/user"

	"gorm.io/gorm"
)

// GetDashboardStatsQueryHandler computes dashboard counters in a single
// aggregate scan over the actor's slice of the orders table.
type GetDashboardStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetDashboardStatsQueryHandler creates a handler for dashboard queries.
func NewGetDashboardStatsQueryHandler(db *gorm.DB) GetDashboardStatsQueryHandler {
	return GetDashboardStatsQueryHandler{db: db}
}

// Handle executes the query.
func (h GetDashboardStatsQueryHandler) Handle(
	ctx context.Context,
	query GetDashboardStatsQuery,
) (DashboardStats, error) {
	if err := query.Validate(); err != nil {
		return DashboardStats{}, err
	}

	const statsSelect = `
		SELECT
			COUNT(*)                                                    AS total_orders,
			COUNT(*) FILTER (WHERE status = 'Pending')                  AS pending_orders,
			COUNT(*) FILTER (WHERE status = 'InTransit')                AS in_transit_orders,
			COUNT(*) FILTER (WHERE status = 'Delivered')                AS delivered_orders,
			COUNT(*) FILTER (WHERE status = 'Cancelled')                AS cancelled_orders,
			COUNT(*) FILTER (WHERE payment_status = 'Unpaid')           AS unpaid_orders,
			COUNT(*) FILTER (WHERE payment_status <> 'Unpaid')          AS paid_orders,
			COALESCE(SUM(amount) FILTER (WHERE payment_status <> 'Unpaid'), 0) AS paid_revenue
		FROM orders
	`

	row := h.scopedQuery(ctx, statsSelect, query).Row()

	var stats DashboardStats
	err := row.Scan(
		&stats.TotalOrders,
		&stats.PendingOrders,
		&stats.InTransitOrders,
		&stats.DeliveredOrders,
		&stats.CancelledOrders,
		&stats.UnpaidOrders,
		&stats.PaidOrders,
		&stats.PaidRevenue,
	)
	if err != nil {
		return DashboardStats{}, err
	}

	return stats, nil
}

func (h GetDashboardStatsQueryHandler) scopedQuery(
	ctx context.Context,
	statsSelect string,
	query GetDashboardStatsQuery,
) *gorm.DB {
	db := h.db.WithContext(ctx)

	switch query.ActorRole() {
	case user.RoleMerchant:
		return db.Raw(statsSelect+`WHERE merchant_id = ?`, query.ActorID().String())
	case user.RoleCourier:
		return db.Raw(statsSelect+`WHERE courier_id = ?`, query.ActorID().String())
	default:
		return db.Raw(statsSelect)
	}
}
