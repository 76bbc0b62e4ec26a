package queries

import (
	"errors"
	"time"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/pkg/guard"
)

var ErrGetPaymentHistoryQueryIsNotConstructed = errors.New(
	"GetPaymentHistoryQuery must be created via NewGetPaymentHistoryQuery constructor",
)

// GetPaymentHistoryQuery retrieves settled payments, most recent first.
// Admins see the whole platform; merchants see payments on their own
// orders only.
type GetPaymentHistoryQuery struct { //nolint:recvcheck //using for validation
	actorID   kernel.UUID
	actorRole user.Role

	guard guard.ConstructorGuard
}

// NewGetPaymentHistoryQuery creates a query scoped to the given actor.
func NewGetPaymentHistoryQuery(actorID kernel.UUID, actorRole user.Role) (GetPaymentHistoryQuery, error) {
	if err := errors.Join(actorID.Validate(), actorRole.Validate()); err != nil {
		return GetPaymentHistoryQuery{}, err
	}

	return GetPaymentHistoryQuery{
		actorID:   actorID,
		actorRole: actorRole,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPaymentHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentHistoryQueryIsNotConstructed)
}

func (q GetPaymentHistoryQuery) ActorID() kernel.UUID { return q.actorID }
func (q GetPaymentHistoryQuery) ActorRole() user.Role { return q.actorRole }

// PaymentRecord is the read model of one settled payment.
type PaymentRecord struct {
	OrderID       string
	Receipt       string
	Amount        int64
	CustomerName  string
	CustomerPhone string
	PaymentStatus string
	PaidAt        time.Time
}
