package bootstrap

import (
	"log"

	"pepper-ai-be/internal/config"
	"pepper-ai-be/internal/controller"
	"pepper-ai-be/internal/pkg/logger"
	"pepper-ai-be/internal/pkg/mailer"
	"pepper-ai-be/internal/repository/unitofwork"
	"pepper-ai-be/internal/service"
	"pepper-ai-be/pkg/fal"

	pkgNats "pepper-ai-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	GenerationController controller.IGenerationController
	LoraController       controller.ILoraController
	GalleryController    controller.IGalleryController
	PaymentController    controller.IPaymentController
	UserController       controller.IUserController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Provider
	falClient := fal.NewClient(cfg.Fal.APIKey, cfg.Fal.BaseURL)

	// 3. Services
	receiptPublisher := service.NewPublisherService(cfg.Topics.PurchaseReceipt, pubSub)
	alertPublisher := service.NewPublisherService(cfg.Topics.UnresolvedGrant, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.PurchaseReceipt,
		cfg.Topics.UnresolvedGrant,
		emailService,
		cfg.App.AdminEmail,
	)

	generationService := service.NewGenerationService(uowFactory, falClient, natsPub, sysLogger)
	loraService := service.NewLoraService(uowFactory, falClient, natsPub, sysLogger)
	galleryService := service.NewGalleryService(uowFactory)
	userService := service.NewUserService(uowFactory)
	paymentService := service.NewPaymentService(
		uowFactory,
		cfg.Stripe.SecretKey,
		cfg.Stripe.WebhookSecret,
		cfg.App.ClientURL,
		receiptPublisher,
		alertPublisher,
		natsPub,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		GenerationController: controller.NewGenerationController(generationService),
		LoraController:       controller.NewLoraController(loraService),
		GalleryController:    controller.NewGalleryController(galleryService),
		PaymentController:    controller.NewPaymentController(paymentService),
		UserController:       controller.NewUserController(userService),

		ConsumerService: consumerService,
	}
}
