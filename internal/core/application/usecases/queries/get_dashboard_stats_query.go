package queries

import (
	"errors"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/pkg/guard"
)

var ErrGetDashboardStatsQueryIsNotConstructed = errors.New(
	"GetDashboardStatsQuery must be created via NewGetDashboardStatsQuery constructor",
)

// GetDashboardStatsQuery retrieves aggregate counters for the dashboard.
// Admins see platform-wide numbers, merchants their own orders, couriers
// their own deliveries.
type GetDashboardStatsQuery struct { //nolint:recvcheck //using for validation
	actorID   kernel.UUID
	actorRole user.Role

	guard guard.ConstructorGuard
}

// NewGetDashboardStatsQuery creates a query scoped to the given actor.
func NewGetDashboardStatsQuery(actorID kernel.UUID, actorRole user.Role) (GetDashboardStatsQuery, error) {
	if err := errors.Join(actorID.Validate(), actorRole.Validate()); err != nil {
		return GetDashboardStatsQuery{}, err
	}

	return GetDashboardStatsQuery{
		actorID:   actorID,
		actorRole: actorRole,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDashboardStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardStatsQueryIsNotConstructed)
}

func (q GetDashboardStatsQuery) ActorID() kernel.UUID { return q.actorID }
func (q GetDashboardStatsQuery) ActorRole() user.Role { return q.actorRole }

// DashboardStats aggregates order and payment counters for one actor's
// scope. PaidRevenue sums the amounts of settled orders.
type DashboardStats struct {
	TotalOrders     int64
	PendingOrders   int64
	InTransitOrders int64
	DeliveredOrders int64
	CancelledOrders int64
	UnpaidOrders    int64
	PaidOrders      int64
	PaidRevenue     int64
}
