// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/pkg/guard"
)

var ErrListCouriersQueryIsNotConstructed = errors.New(
	"ListCouriersQuery must be created via NewListCouriersQuery constructor",
)

// ListCouriersQuery retrieves every courier together with a derived
// availability flag, prioritized for assignment: free couriers first,
// each group sorted by name. When every courier is busy the full list
// still comes back, all flagged as assigned, so dispatch can pick the
// least-bad option instead of getting an empty page.
type ListCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewListCouriersQuery creates a query to list couriers for assignment.
func NewListCouriersQuery() ListCouriersQuery {
	return ListCouriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListCouriersQuery) Validate() error {
	return q.guard.Validate(ErrListCouriersQueryIsNotConstructed)
}

// ListCouriersQueryResponse is the courier read model for assignment.
// IsAssigned is derived from the orders table: a courier with any order
// currently in transit counts as busy.
type ListCouriersQueryResponse struct {
	ID         kernel.UUID
	Name       string
	Phone      string
	IsAssigned bool
}
