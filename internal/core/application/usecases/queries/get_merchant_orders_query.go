package queries

import (
	"errors"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/pkg/guard"
)

var ErrGetMerchantOrdersQueryIsNotConstructed = errors.New(
	"GetMerchantOrdersQuery must be created via NewGetMerchantOrdersQuery constructor",
)

// GetMerchantOrdersQuery retrieves the orders created by one merchant,
// most recent first.
type GetMerchantOrdersQuery struct { //nolint:recvcheck //using for validation
	merchantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetMerchantOrdersQuery creates a query scoped to a merchant.
func NewGetMerchantOrdersQuery(merchantID kernel.UUID) (GetMerchantOrdersQuery, error) {
	if err := merchantID.Validate(); err != nil {
		return GetMerchantOrdersQuery{}, err
	}

	return GetMerchantOrdersQuery{
		merchantID: merchantID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMerchantOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetMerchantOrdersQueryIsNotConstructed)
}

// MerchantID returns the merchant scope of the query.
func (q GetMerchantOrdersQuery) MerchantID() kernel.UUID {
	return q.merchantID
}
