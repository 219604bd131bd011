package bootstrap

import (
	"log"
	"time"

	"humanlenk-be/internal/config"
	"humanlenk-be/internal/constant"
	"humanlenk-be/internal/controller"
	"humanlenk-be/internal/pkg/logger"
	"humanlenk-be/internal/pkg/mailer"
	"humanlenk-be/internal/pkg/serverutils"
	"humanlenk-be/internal/repository/unitofwork"
	"humanlenk-be/internal/service"
	"humanlenk-be/pkg/chat"
	"humanlenk-be/pkg/completion"
	"humanlenk-be/pkg/completion/factory"
	pktNats "humanlenk-be/pkg/nats"
	"humanlenk-be/pkg/ratelimit"
	"humanlenk-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController   controller.IAuthController
	ChatController   controller.IChatController
	FileController   controller.IFileController
	SurveyController controller.ISurveyController
	AdminController  controller.IAdminController

	// Background services (main.go starts these)
	AuditService service.IAuditService

	// Shared infrastructure the server wires as middleware
	SysLogger logger.ILogger
	Limiter   serverutils.Limiter
}

// NewContainer wires every dependency. Optional infrastructure (completion
// provider, MinIO, Redis, NATS, SMTP) degrades to nil with a warning; only
// the database is required.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	publisherService := service.NewPublisherService(cfg.App.AuditTopic, pubSub)

	// NATS mirror, optional
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	auditService := service.NewAuditService(pubSub, cfg.App.AuditTopic, sysLogger, natsPub)

	// 3. Completion provider
	var provider completion.Provider
	if cfg.Ai.APIKey != "" || cfg.Ai.Provider == "ollama" {
		var err error
		provider, err = factory.NewProvider(cfg.Ai.Provider, cfg.Ai.Model, cfg.Ai.BaseURL, cfg.Ai.APIKey)
		if err != nil {
			log.Printf("[WARN] Failed to initialize completion provider: %v (fallback replies only)", err)
			provider = nil
		} else {
			log.Printf("[INFO] Using completion provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)
		}
	} else {
		log.Printf("[WARN] No completion provider configured (fallback replies only)")
	}
	assembler := chat.NewAssembler(constant.ChatSystemPromptV1, constant.ChatHistoryContextLimit)

	// 4. Object storage, optional
	var store storage.ObjectStore
	if cfg.Storage.AccessKey != "" {
		minioStore, err := storage.NewMinioStore(
			cfg.Storage.Endpoint,
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			cfg.Storage.Bucket,
			cfg.Storage.UseSSL,
		)
		if err != nil {
			log.Printf("[WARN] Failed to connect to object storage: %v (uploads disabled)", err)
		} else {
			store = minioStore
		}
	} else {
		log.Printf("[WARN] Object storage not configured (uploads disabled)")
	}

	// 5. Rate limiter, optional
	var limiter serverutils.Limiter
	if cfg.App.RedisURL != "" {
		addr, password := parseRedisURL(cfg.App.RedisURL)
		fixedWindow, err := ratelimit.NewFixedWindowLimiter(
			addr,
			password,
			"humanlenk:ratelimit",
			cfg.RateLimit.Limit,
			time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
		)
		if err != nil {
			log.Printf("[WARN] Failed to initialize rate limiter: %v (limiting disabled)", err)
		} else {
			limiter = fixedWindow
		}
	}

	// 6. Services
	authService := service.NewAuthService(uowFactory, emailService, publisherService, cfg.JWT.Secret)
	chatService := service.NewChatService(uowFactory, provider, assembler, sysLogger)
	fileService := service.NewFileService(uowFactory, store, publisherService, sysLogger, cfg.App.BaseURL)
	surveyService := service.NewSurveyService(uowFactory, publisherService)
	adminService := service.NewAdminService(uowFactory, sysLogger, store, publisherService)

	// 7. Controllers
	return &Container{
		AuthController:   controller.NewAuthController(authService),
		ChatController:   controller.NewChatController(chatService),
		FileController:   controller.NewFileController(fileService),
		SurveyController: controller.NewSurveyController(surveyService),
		AdminController:  controller.NewAdminController(adminService),

		AuditService: auditService,
		SysLogger:    sysLogger,
		Limiter:      limiter,
	}
}

func parseRedisURL(raw string) (addr, password string) {
	opt, err := redis.ParseURL(raw)
	if err != nil {
		// treat the raw value as host:port
		return raw, ""
	}
	return opt.Addr, opt.Password
}
