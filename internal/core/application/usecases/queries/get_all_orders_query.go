package queries

import (
	"errors"
	"time"

	"mparcel/internal/pkg/guard"
)

var ErrGetAllOrdersQueryIsNotConstructed = errors.New(
	"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
)

// GetAllOrdersQuery retrieves every order on the platform, most recent
// first. Admin-facing; merchants get the scoped GetMerchantOrdersQuery.
type GetAllOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery creates a query to retrieve all orders.
func NewGetAllOrdersQuery() GetAllOrdersQuery {
	return GetAllOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

// OrderSummary is the order read model shared by the listing queries. The
// courier and merchant references come resolved with name and phone for
// display; the courier fields are empty when no courier is assigned.
type OrderSummary struct {
	OrderID        string
	CustomerName   string
	CustomerPhone  string
	PickupAddress  string
	DropoffAddress string
	Amount         int64
	Status         string
	PaymentStatus  string
	CourierID      string
	CourierName    string
	CourierPhone   string
	MerchantName   string
	MerchantPhone  string
	MpesaReceipt   string
	CreatedAt      time.Time
}
