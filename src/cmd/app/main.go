package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wallet-service/src/internal/config"
	"wallet-service/src/pkg/log"

	"github.com/hibiken/asynq"
)

func main() {
	viperConfig := config.NewViper()
	log.InitLogger(viperConfig)
	logger := log.GetLogger()

	validate := config.NewValidator(viperConfig)
	app := config.NewFiber(viperConfig)
	db := config.NewDatabase(viperConfig, logger)

	config.LoadRedisConfig(viperConfig)
	redisClient := config.NewRedis()

	config.NewKafkaConfig(viperConfig)
	producer := config.NewKafkaProducer(viperConfig, logger)

	asynqClient := config.NewAsynqClient(viperConfig)
	asynqServer := config.NewAsynqServer(viperConfig)
	asynqMux := asynq.NewServeMux()

	config.Bootstrap(&config.BootstrapConfig{
		DB:          db,
		App:         app,
		Log:         logger,
		Validate:    validate,
		Config:      viperConfig,
		Producer:    producer,
		Redis:       redisClient,
		AsynqClient: asynqClient,
		AsynqMux:    asynqMux,
	})

	// Start instead of Run: Run installs its own signal handling, which
	// would race the explicit shutdown below
	if err := asynqServer.Start(asynqMux); err != nil {
		logger.Error("main", fmt.Sprintf("failed to start asynq server: %v", err), "main", "")
		os.Exit(1)
	}

	go func() {
		webPort := viperConfig.GetInt("web.port")
		if err := app.Listen(fmt.Sprintf(":%d", webPort)); err != nil {
			logger.Error("main", fmt.Sprintf("failed to start server: %v", err), "main", "")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("main", "shutting down", "main", "")

	asynqServer.Shutdown()
	if asynqClient != nil {
		_ = asynqClient.Close()
	}
	if producer != nil {
		_ = producer.Close()
	}
	if err := app.Shutdown(); err != nil {
		logger.Error("main", fmt.Sprintf("shutdown error: %v", err), "main", "")
	}
}
