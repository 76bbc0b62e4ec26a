package cmd

import (
	"log/slog"

	httpin "mparcel/internal/adapters/in/http"
	"mparcel/internal/adapters/out/mpesa"
	"mparcel/internal/adapters/out/notify"
	"mparcel/internal/adapters/out/postgres"
	"mparcel/internal/core/application/usecases/commands"
	"mparcel/internal/core/application/usecases/queries"
	"mparcel/internal/core/domain/services"
	"mparcel/internal/core/ports"
	"mparcel/internal/jobs"
	"mparcel/internal/notifications"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	gateway    ports.PaymentGateway
	dispatcher *notifications.Dispatcher
	tokens     *httpin.TokenIssuer
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}

	redisClient := redis.NewClient(&redis.Options{Addr: config.RedisAddr})

	gateway, err := mpesa.NewClient(mpesa.Config{
		BaseURL:     config.MpesaBaseURL,
		ConsumerKey: config.MpesaConsumerKey,
		ConsumerSec: config.MpesaConsumerSecret,
		Shortcode:   config.MpesaShortcode,
		Passkey:     config.MpesaPasskey,
		CallbackURL: config.MpesaCallbackURL,
	}, mpesa.NewRedisTokenStore(redisClient))
	if err != nil {
		return nil, err
	}
	root.gateway = gateway

	whatsapp, err := notify.NewWhatsAppChannel(notify.WhatsAppConfig{
		BaseURL:       config.WhatsAppBaseURL,
		PhoneNumberID: config.WhatsAppPhoneNumberID,
		AccessToken:   config.WhatsAppAccessToken,
	})
	if err != nil {
		return nil, err
	}

	sms, err := notify.NewSMSChannel(notify.SMSConfig{
		BaseURL:  config.SMSBaseURL,
		APIKey:   config.SMSAPIKey,
		Username: config.SMSUsername,
		SenderID: config.SMSSenderID,
	})
	if err != nil {
		return nil, err
	}

	dispatcher, err := notifications.NewDispatcher(whatsapp, sms, logger)
	if err != nil {
		return nil, err
	}
	root.dispatcher = dispatcher

	tokens, err := httpin.NewTokenIssuer(config.JWTSecret)
	if err != nil {
		return nil, err
	}
	root.tokens = tokens

	return root, nil
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterUserCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateEditOrderCommandHandler() commands.EditOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewEditOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateInitiatePaymentCommandHandler() commands.InitiatePaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewInitiatePaymentCommandHandler(f, c.gateway)
}

func (c *CompositionRoot) CreateReconcilePaymentCommandHandler() commands.ReconcilePaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcilePaymentCommandHandler(f, services.NewPaymentMatcher(), c.logger)
}

func (c *CompositionRoot) CreateTriggerPanicCommandHandler() commands.TriggerPanicCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTriggerPanicCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchNotificationsCommandHandler(f, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateAuthenticateUserQueryHandler() queries.AuthenticateUserQueryHandler {
	return queries.NewAuthenticateUserQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCouriersQueryHandler() queries.ListCouriersQueryHandler {
	return queries.NewListCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMerchantOrdersQueryHandler() queries.GetMerchantOrdersQueryHandler {
	return queries.NewGetMerchantOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierOrdersQueryHandler() queries.GetCourierOrdersQueryHandler {
	return queries.NewGetCourierOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPaymentHistoryQueryHandler() queries.GetPaymentHistoryQueryHandler {
	return queries.NewGetPaymentHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDashboardStatsQueryHandler() queries.GetDashboardStatsQueryHandler {
	return queries.NewGetDashboardStatsQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every handler into the inbound REST adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		RegisterUser:      c.CreateRegisterUserCommandHandler(),
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		EditOrder:         c.CreateEditOrderCommandHandler(),
		AssignCourier:     c.CreateAssignCourierCommandHandler(),
		CancelOrder:       c.CreateCancelOrderCommandHandler(),
		DeleteOrder:       c.CreateDeleteOrderCommandHandler(),
		CompleteDelivery:  c.CreateCompleteDeliveryCommandHandler(),
		InitiatePayment:   c.CreateInitiatePaymentCommandHandler(),
		ReconcilePayment:  c.CreateReconcilePaymentCommandHandler(),
		TriggerPanic:      c.CreateTriggerPanicCommandHandler(),
		AuthenticateUser:  c.CreateAuthenticateUserQueryHandler(),
		ListCouriers:      c.CreateListCouriersQueryHandler(),
		GetAllOrders:      c.CreateGetAllOrdersQueryHandler(),
		GetMerchantOrders: c.CreateGetMerchantOrdersQueryHandler(),
		GetCourierOrders:  c.CreateGetCourierOrdersQueryHandler(),
		GetPaymentHistory: c.CreateGetPaymentHistoryQueryHandler(),
		GetDashboardStats: c.CreateGetDashboardStatsQueryHandler(),
	}, c.tokens, c.logger)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateDispatchNotificationsCommandHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
