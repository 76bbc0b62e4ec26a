// Package http is the inbound REST adapter. It binds requests into commands
// and queries, enforces authentication and maps use case errors to statuses.
package http

import (
	"log/slog"
	"net/http"

	"mparcel/internal/adapters/out/mpesa"
	"mparcel/internal/core/application/usecases/commands"
	"mparcel/internal/core/application/usecases/queries"
	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	registerUserHandler     commands.RegisterUserCommandHandler
	createOrderHandler      commands.CreateOrderCommandHandler
	editOrderHandler        commands.EditOrderCommandHandler
	assignCourierHandler    commands.AssignCourierCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler
	deleteOrderHandler      commands.DeleteOrderCommandHandler
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler
	initiatePaymentHandler  commands.InitiatePaymentCommandHandler
	reconcilePaymentHandler commands.ReconcilePaymentCommandHandler
	triggerPanicHandler     commands.TriggerPanicCommandHandler

	// Query handlers
	authenticateUserHandler  queries.AuthenticateUserQueryHandler
	listCouriersHandler      queries.ListCouriersQueryHandler
	getAllOrdersHandler      queries.GetAllOrdersQueryHandler
	getMerchantOrdersHandler queries.GetMerchantOrdersQueryHandler
	getCourierOrdersHandler  queries.GetCourierOrdersQueryHandler
	getPaymentHistoryHandler queries.GetPaymentHistoryQueryHandler
	getDashboardHandler      queries.GetDashboardStatsQueryHandler

	tokens *TokenIssuer
	logger *slog.Logger
}

// Handlers bundles the use case handlers the server depends on.
type Handlers struct {
	RegisterUser      commands.RegisterUserCommandHandler
	CreateOrder       commands.CreateOrderCommandHandler
	EditOrder         commands.EditOrderCommandHandler
	AssignCourier     commands.AssignCourierCommandHandler
	CancelOrder       commands.CancelOrderCommandHandler
	DeleteOrder       commands.DeleteOrderCommandHandler
	CompleteDelivery  commands.CompleteDeliveryCommandHandler
	InitiatePayment   commands.InitiatePaymentCommandHandler
	ReconcilePayment  commands.ReconcilePaymentCommandHandler
	TriggerPanic      commands.TriggerPanicCommandHandler
	AuthenticateUser  queries.AuthenticateUserQueryHandler
	ListCouriers      queries.ListCouriersQueryHandler
	GetAllOrders      queries.GetAllOrdersQueryHandler
	GetMerchantOrders queries.GetMerchantOrdersQueryHandler
	GetCourierOrders  queries.GetCourierOrdersQueryHandler
	GetPaymentHistory queries.GetPaymentHistoryQueryHandler
	GetDashboardStats queries.GetDashboardStatsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(handlers Handlers, tokens *TokenIssuer, logger *slog.Logger) *Server {
	return &Server{
		registerUserHandler:     handlers.RegisterUser,
		createOrderHandler:      handlers.CreateOrder,
		editOrderHandler:        handlers.EditOrder,
		assignCourierHandler:    handlers.AssignCourier,
		cancelOrderHandler:      handlers.CancelOrder,
		deleteOrderHandler:      handlers.DeleteOrder,
		completeDeliveryHandler: handlers.CompleteDelivery,
		initiatePaymentHandler:  handlers.InitiatePayment,
		reconcilePaymentHandler: handlers.ReconcilePayment,
		triggerPanicHandler:     handlers.TriggerPanic,

		authenticateUserHandler:  handlers.AuthenticateUser,
		listCouriersHandler:      handlers.ListCouriers,
		getAllOrdersHandler:      handlers.GetAllOrders,
		getMerchantOrdersHandler: handlers.GetMerchantOrders,
		getCourierOrdersHandler:  handlers.GetCourierOrders,
		getPaymentHistoryHandler: handlers.GetPaymentHistory,
		getDashboardHandler:      handlers.GetDashboardStats,

		tokens: tokens,
		logger: logger.With("component", "http"),
	}
}

// RegisterRoutes mounts all API routes on the echo instance. The payment
// callback and auth endpoints are public; everything else requires a token.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/auth/register", s.Register)
	api.POST("/auth/login", s.Login)
	api.POST("/payments/callback", s.PaymentCallback)

	protected := api.Group("", s.tokens.Middleware())
	protected.POST("/orders", s.CreateOrder)
	protected.GET("/orders", s.GetAllOrders)
	protected.GET("/orders/mine", s.GetMyOrders)
	protected.PATCH("/orders/:id", s.EditOrder)
	protected.DELETE("/orders/:id", s.DeleteOrder)
	protected.POST("/orders/:id/assign", s.AssignCourier)
	protected.POST("/orders/:id/cancel", s.CancelOrder)
	protected.POST("/orders/:id/confirm", s.ConfirmDelivery)
	protected.GET("/couriers", s.GetCouriers)
	protected.POST("/payments/stkpush/:id", s.InitiatePayment)
	protected.GET("/payments/history", s.GetPaymentHistory)
	protected.POST("/panic", s.TriggerPanic)
	protected.GET("/dashboard", s.GetDashboard)
}

// Register handles POST /api/v1/auth/register - creates a new account.
func (s *Server) Register(ctx echo.Context) error {
	var request RegisterRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	phone, err := kernel.NewPhone(request.Phone)
	if err != nil {
		return writeError(ctx, err)
	}

	role, err := user.RoleFromString(request.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRegisterUserCommand(request.Name, phone, request.Password, role)
	if err != nil {
		return writeError(ctx, err)
	}

	id, err := s.registerUserHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RegisterResponse{ID: id.String()})
}

// Login handles POST /api/v1/auth/login - verifies credentials and issues a
// token.
func (s *Server) Login(ctx echo.Context) error {
	var request LoginRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	phone, err := kernel.NewPhone(request.Phone)
	if err != nil {
		// don't reveal whether the phone is registered
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Invalid phone number or password",
		})
	}

	query, err := queries.NewAuthenticateUserQuery(phone, request.Password)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Invalid phone number or password",
		})
	}

	account, err := s.authenticateUserHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Invalid phone number or password",
		})
	}

	token, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, LoginResponse{
		Token: token,
		ID:    account.ID.String(),
		Name:  account.Name,
		Role:  account.Role.String(),
	})
}

// CreateOrder handles POST /api/v1/orders - registers a new delivery order
// for the calling merchant.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	phone, err := kernel.NewPhone(request.CustomerPhone)
	if err != nil {
		return writeError(ctx, err)
	}

	amount, err := kernel.NewMoney(request.Amount)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		principal.ID,
		request.CustomerName,
		phone,
		request.PickupAddress,
		request.DropoffAddress,
		amount,
		order.Metadata{
			VehicleType:   request.Metadata.VehicleType,
			ExternalRef:   request.Metadata.ExternalRef,
			PaymentMethod: request.Metadata.PaymentMethod,
		},
	)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

// GetAllOrders handles GET /api/v1/orders - admin view of every order.
func (s *Server) GetAllOrders(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	if principal.Role != user.RoleAdmin {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "Admin access required",
		})
	}

	summaries, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(summaries))
}

// GetMyOrders handles GET /api/v1/orders/mine - a merchant sees the orders
// they created, a courier sees their active assignments.
func (s *Server) GetMyOrders(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	var summaries []queries.OrderSummary

	switch principal.Role {
	case user.RoleCourier:
		query, err := queries.NewGetCourierOrdersQuery(principal.ID)
		if err != nil {
			return writeError(ctx, err)
		}
		summaries, err = s.getCourierOrdersHandler.Handle(ctx.Request().Context(), query)
		if err != nil {
			return writeError(ctx, err)
		}
	default:
		query, err := queries.NewGetMerchantOrdersQuery(principal.ID)
		if err != nil {
			return writeError(ctx, err)
		}
		summaries, err = s.getMerchantOrdersHandler.Handle(ctx.Request().Context(), query)
		if err != nil {
			return writeError(ctx, err)
		}
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(summaries))
}

// EditOrder handles PATCH /api/v1/orders/:id - partial update of an order.
func (s *Server) EditOrder(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	orderID, err := order.OrderIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request EditOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	patch, err := toEditOrderPatch(request)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewEditOrderCommand(orderID, principal.ID, principal.Role, patch)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.editOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignCourier handles POST /api/v1/orders/:id/assign - puts a courier on
// the order and moves it in transit.
func (s *Server) AssignCourier(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	orderID, err := order.OrderIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request AssignCourierRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	courierID, err := kernel.UUIDFromString(request.CourierID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID, principal.ID, principal.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	orderID, err := order.OrderIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, principal.ID, principal.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/:id.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	orderID, err := order.OrderIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, principal.ID, principal.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmDelivery handles POST /api/v1/orders/:id/confirm - the assigned
// courier closes out the delivery as Delivered or Cancelled.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	orderID, err := order.OrderIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request ConfirmDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	outcome, err := order.StatusFromString(request.Outcome)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID, principal.ID, outcome, request.ProofRef)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCouriers handles GET /api/v1/couriers - lists couriers, free ones first.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers, err := s.listCouriersHandler.Handle(ctx.Request().Context(), queries.NewListCouriersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]CourierResponse, len(couriers))
	for i, courier := range couriers {
		response[i] = CourierResponse{
			ID:         courier.ID.String(),
			Name:       courier.Name,
			Phone:      courier.Phone,
			IsAssigned: courier.IsAssigned,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// InitiatePayment handles POST /api/v1/payments/stkpush/:id - pops an M-Pesa
// payment prompt on the customer's phone.
func (s *Server) InitiatePayment(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	orderID, err := order.OrderIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewInitiatePaymentCommand(orderID, principal.ID, principal.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	ack, err := s.initiatePaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, STKPushResponse{
		CheckoutRequestID: ack.CheckoutRequestID,
		CustomerMessage:   ack.CustomerMessage,
	})
}

// PaymentCallback handles POST /api/v1/payments/callback - the asynchronous
// M-Pesa result. The gateway is always acknowledged with 200; anything else
// makes Safaricom retry or disable the URL.
func (s *Server) PaymentCallback(ctx echo.Context) error {
	var envelope mpesa.CallbackEnvelope
	if err := ctx.Bind(&envelope); err != nil {
		s.logger.Warn("undecodable payment callback", "error", err)
		return ctx.JSON(http.StatusOK, map[string]any{"ResultCode": 0, "ResultDesc": "Accepted"})
	}

	details := envelope.Details()

	cmd, err := commands.NewReconcilePaymentCommand(
		details.ResultCode,
		details.ResultDescription,
		details.CheckoutRequestID,
		details.Receipt,
		details.Amount,
		details.Phone,
	)
	if err != nil {
		s.logger.Warn("malformed payment callback",
			"checkoutRequestId", details.CheckoutRequestID,
			"error", err)
		return ctx.JSON(http.StatusOK, map[string]any{"ResultCode": 0, "ResultDesc": "Accepted"})
	}

	if err := s.reconcilePaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		// infra failure: let the gateway retry the callback later
		s.logger.Error("payment reconciliation failed",
			"checkoutRequestId", details.CheckoutRequestID,
			"error", err)
		return ctx.JSON(http.StatusInternalServerError, map[string]any{"ResultCode": 1, "ResultDesc": "Retry"})
	}

	return ctx.JSON(http.StatusOK, map[string]any{"ResultCode": 0, "ResultDesc": "Accepted"})
}

// GetPaymentHistory handles GET /api/v1/payments/history.
func (s *Server) GetPaymentHistory(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	query, err := queries.NewGetPaymentHistoryQuery(principal.ID, principal.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	records, err := s.getPaymentHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]PaymentRecordResponse, len(records))
	for i, record := range records {
		response[i] = PaymentRecordResponse{
			OrderID:       record.OrderID,
			Receipt:       record.Receipt,
			Amount:        record.Amount,
			CustomerName:  record.CustomerName,
			CustomerPhone: record.CustomerPhone,
			PaymentStatus: record.PaymentStatus,
			PaidAt:        record.PaidAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// TriggerPanic handles POST /api/v1/panic - a courier broadcasts an
// emergency alert to all admins.
func (s *Server) TriggerPanic(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	var request PanicRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var location *kernel.GeoLocation
	if request.Lat != nil && request.Lon != nil {
		loc, err := kernel.NewGeoLocation(*request.Lat, *request.Lon)
		if err != nil {
			return writeError(ctx, err)
		}
		location = &loc
	}

	cmd, err := commands.NewTriggerPanicCommand(principal.ID, request.Message, location)
	if err != nil {
		return writeError(ctx, err)
	}

	notified, err := s.triggerPanicHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PanicResponse{AdminsNotified: notified})
}

// GetDashboard handles GET /api/v1/dashboard - role-scoped order and payment
// counters.
func (s *Server) GetDashboard(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	query, err := queries.NewGetDashboardStatsQuery(principal.ID, principal.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	stats, err := s.getDashboardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DashboardResponse{
		TotalOrders:     stats.TotalOrders,
		PendingOrders:   stats.PendingOrders,
		InTransitOrders: stats.InTransitOrders,
		DeliveredOrders: stats.DeliveredOrders,
		CancelledOrders: stats.CancelledOrders,
		UnpaidOrders:    stats.UnpaidOrders,
		PaidOrders:      stats.PaidOrders,
		PaidRevenue:     stats.PaidRevenue,
	})
}

func toOrderResponses(summaries []queries.OrderSummary) []OrderResponse {
	response := make([]OrderResponse, len(summaries))
	for i, summary := range summaries {
		response[i] = OrderResponse{
			OrderID:        summary.OrderID,
			CustomerName:   summary.CustomerName,
			CustomerPhone:  summary.CustomerPhone,
			PickupAddress:  summary.PickupAddress,
			DropoffAddress: summary.DropoffAddress,
			Amount:         summary.Amount,
			Status:         summary.Status,
			PaymentStatus:  summary.PaymentStatus,
			CourierID:      summary.CourierID,
			CourierName:    summary.CourierName,
			CourierPhone:   summary.CourierPhone,
			MerchantName:   summary.MerchantName,
			MerchantPhone:  summary.MerchantPhone,
			MpesaReceipt:   summary.MpesaReceipt,
			CreatedAt:      summary.CreatedAt,
		}
	}
	return response
}

func toEditOrderPatch(request EditOrderRequest) (commands.EditOrderPatch, error) {
	patch := commands.EditOrderPatch{
		CustomerName:   request.CustomerName,
		PickupAddress:  request.PickupAddress,
		DropoffAddress: request.DropoffAddress,
		ClearCourier:   request.ClearCourier,
	}

	if request.CustomerPhone != nil {
		phone, err := kernel.NewPhone(*request.CustomerPhone)
		if err != nil {
			return commands.EditOrderPatch{}, err
		}
		patch.CustomerPhone = &phone
	}

	if request.Amount != nil {
		amount, err := kernel.NewMoney(*request.Amount)
		if err != nil {
			return commands.EditOrderPatch{}, err
		}
		patch.Amount = &amount
	}

	if request.Metadata != nil {
		metadata := order.Metadata{
			VehicleType:   request.Metadata.VehicleType,
			ExternalRef:   request.Metadata.ExternalRef,
			PaymentMethod: request.Metadata.PaymentMethod,
		}
		patch.Metadata = &metadata
	}

	if request.CourierID != nil {
		courierID, err := kernel.UUIDFromString(*request.CourierID)
		if err != nil {
			return commands.EditOrderPatch{}, err
		}
		patch.CourierID = &courierID
	}

	return patch, nil
}
