package config

import (
	"wallet-service/src/internal/delivery/http"
	"wallet-service/src/internal/delivery/http/middleware"
	"wallet-service/src/internal/delivery/http/route"
	"wallet-service/src/internal/gateway/messaging"
	"wallet-service/src/internal/repository"
	"wallet-service/src/internal/usecase"
	"wallet-service/src/pkg/databases/mysql"
	"wallet-service/src/pkg/kafka"
	"wallet-service/src/pkg/log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type BootstrapConfig struct {
	DB          mysql.DBInterface
	App         *fiber.App
	Log         log.Log
	Validate    *validator.Validate
	Config      *viper.Viper
	Producer    kafka.Producer
	Redis       redis.UniversalClient
	AsynqClient *asynq.Client
	AsynqMux    *asynq.ServeMux
}

func Bootstrap(config *BootstrapConfig) {
	// setup repositories
	walletRepository := repository.NewWalletRepository(config.DB)
	fundsRequestRepository := repository.NewFundsRequestRepository(config.DB)
	ledgerRepository := repository.NewLedgerRepository(config.DB)
	balanceCache := repository.NewRedisBalanceCache(config.Redis)

	// setup producers; a disabled kafka producer means no event gateway
	var fundsRequestProducer *messaging.FundsRequestProducer
	if config.Producer != nil {
		fundsRequestProducer = messaging.NewFundsRequestProducer(config.Producer, config.Log)
	}

	// setup use cases
	walletUseCase := usecase.NewWalletUseCase(config.Log, config.Validate, walletRepository, ledgerRepository, balanceCache, config.Config)
	fundsRequestUseCase := usecase.NewFundsRequestUseCase(config.Log, config.Validate, walletRepository, fundsRequestRepository, balanceCache, config.Config, fundsRequestProducer, config.AsynqClient)

	// setup controllers
	walletController := http.NewWalletController(walletUseCase, fundsRequestUseCase, config.Log)
	adminController := http.NewAdminController(fundsRequestUseCase, walletUseCase, config.Log)

	if config.AsynqMux != nil {
		config.AsynqMux.HandleFunc(messaging.TaskFundsRequestProcessed, fundsRequestUseCase.NotifyProcessed)
	}

	routeConfig := route.RouteConfig{
		App:              config.App,
		WalletController: walletController,
		AdminController:  adminController,
		AuthMiddleware:   middleware.VerifyBearer(config.Config),
	}
	routeConfig.Setup()
}
