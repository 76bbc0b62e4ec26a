package order

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"mparcel/internal/pkg/errs"
)

// orderIDPrefix marks human-readable order identifiers, e.g. "ORD1714988123456".
const orderIDPrefix = "ORD"

// OrderID is the human-readable, globally unique, immutable identifier of an
// order: the prefix followed by the creation time in Unix milliseconds. It is
// also the AccountReference sent to the payment gateway at STK initiation.
type OrderID struct {
	value string
}

// NewOrderID derives an identifier from the creation instant. Millisecond
// resolution is monotonic enough to avoid collisions at the order volumes the
// platform handles.
func NewOrderID(createdAt time.Time) OrderID {
	return OrderID{value: orderIDPrefix + strconv.FormatInt(createdAt.UnixMilli(), 10)}
}

// OrderIDFromString parses and validates an identifier from the wire or store.
func OrderIDFromString(value string) (OrderID, error) {
	if value == "" {
		return OrderID{}, errs.NewValueIsRequiredError("orderId")
	}
	digits, ok := strings.CutPrefix(value, orderIDPrefix)
	if !ok || digits == "" {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%q does not start with %q", value, orderIDPrefix))
	}
	if _, err := strconv.ParseInt(digits, 10, 64); err != nil {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return OrderID{value: value}, nil
}

// Validate ensures the OrderID was created through a constructor.
func (id OrderID) Validate() error {
	if id.value == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	return nil
}

// String returns the identifier, e.g. "ORD1714988123456".
func (id OrderID) String() string {
	return id.value
}

// IsEqual compares two identifiers.
func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}
