package http

import (
	"errors"
	"net/http"
	"time"

	"mparcel/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned on every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps a use case error to an HTTP response. Unknown errors are
// reported as 500 without leaking internals.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrPermissionDenied):
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConflict):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrUpstreamFailure):
		return ctx.JSON(http.StatusBadGateway, ErrorResponse{
			Code:    http.StatusBadGateway,
			Message: "Payment provider is unavailable",
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	ID string `json:"id"`
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type OrderMetadataDTO struct {
	VehicleType   string `json:"vehicleType,omitempty"`
	ExternalRef   string `json:"externalRef,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

type CreateOrderRequest struct {
	CustomerName   string           `json:"customerName"`
	CustomerPhone  string           `json:"customerPhone"`
	PickupAddress  string           `json:"pickupAddress"`
	DropoffAddress string           `json:"dropoffAddress"`
	Amount         int64            `json:"amount"`
	Metadata       OrderMetadataDTO `json:"metadata"`
}

type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

type EditOrderRequest struct {
	CustomerName   *string           `json:"customerName"`
	CustomerPhone  *string           `json:"customerPhone"`
	PickupAddress  *string           `json:"pickupAddress"`
	DropoffAddress *string           `json:"dropoffAddress"`
	Amount         *int64            `json:"amount"`
	Metadata       *OrderMetadataDTO `json:"metadata"`
	CourierID      *string           `json:"courierId"`
	ClearCourier   bool              `json:"clearCourier"`
}

type AssignCourierRequest struct {
	CourierID string `json:"courierId"`
}

type ConfirmDeliveryRequest struct {
	Outcome  string `json:"outcome"`
	ProofRef string `json:"proofRef"`
}

type OrderResponse struct {
	OrderID        string    `json:"orderId"`
	CustomerName   string    `json:"customerName"`
	CustomerPhone  string    `json:"customerPhone"`
	PickupAddress  string    `json:"pickupAddress"`
	DropoffAddress string    `json:"dropoffAddress"`
	Amount         int64     `json:"amount"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"paymentStatus"`
	CourierID      string    `json:"courierId,omitempty"`
	CourierName    string    `json:"courierName,omitempty"`
	CourierPhone   string    `json:"courierPhone,omitempty"`
	MerchantName   string    `json:"merchantName,omitempty"`
	MerchantPhone  string    `json:"merchantPhone,omitempty"`
	MpesaReceipt   string    `json:"mpesaReceipt,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type CourierResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	IsAssigned bool   `json:"isAssigned"`
}

type STKPushResponse struct {
	CheckoutRequestID string `json:"checkoutRequestId"`
	CustomerMessage   string `json:"customerMessage"`
}

type PaymentRecordResponse struct {
	OrderID       string    `json:"orderId"`
	Receipt       string    `json:"receipt,omitempty"`
	Amount        int64     `json:"amount"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	PaymentStatus string    `json:"paymentStatus"`
	PaidAt        time.Time `json:"paidAt"`
}

type PanicRequest struct {
	Message string   `json:"message"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

type PanicResponse struct {
	AdminsNotified int `json:"adminsNotified"`
}

type DashboardResponse struct {
	TotalOrders     int64 `json:"totalOrders"`
	PendingOrders   int64 `json:"pendingOrders"`
	InTransitOrders int64 `json:"inTransitOrders"`
	DeliveredOrders int64 `json:"deliveredOrders"`
	CancelledOrders int64 `json:"cancelledOrders"`
	UnpaidOrders    int64 `json:"unpaidOrders"`
	PaidOrders      int64 `json:"paidOrders"`
	PaidRevenue     int64 `json:"paidRevenue"`
}
