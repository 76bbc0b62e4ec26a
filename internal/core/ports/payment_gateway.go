package ports

import (
	"context"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/order"
)

// STKPushRequest describes a payment prompt to push to a customer's phone.
type STKPushRequest struct {
	Phone   kernel.Phone
	Amount  kernel.Money
	OrderID order.OrderID
}

// STKPushAck is the gateway's synchronous acknowledgement of an STK push.
// It confirms only that the prompt was accepted for delivery; the payment
// outcome arrives later through the asynchronous callback.
type STKPushAck struct {
	MerchantRequestID   string
	CheckoutRequestID   string
	ResponseCode        string
	ResponseDescription string
	CustomerMessage     string
}

// PaymentGateway defines the outbound contract to the mobile-money provider.
type PaymentGateway interface {
	// InitiateSTKPush asks the provider to prompt the customer's phone
	// for payment. A non-nil error means the prompt was not accepted;
	// the ack's CheckoutRequestID correlates the eventual callback.
	InitiateSTKPush(ctx context.Context, request STKPushRequest) (STKPushAck, error)
}
