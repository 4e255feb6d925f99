package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"oabplanner/backend/config"
	"oabplanner/backend/mailer"
	"oabplanner/backend/quiz"
	"oabplanner/backend/repository"
	"oabplanner/backend/routes"
	"oabplanner/backend/utils"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := utils.InitLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := repository.InitDB(cfg)
	if err != nil {
		logger.Fatal("Error initializing database", zap.Error(err))
	}
	store := repository.NewStore(db)

	redisClient, err := repository.NewRedisClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Warn("Redis unavailable, dashboard stats will not be cached", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	app := routes.NewApp(routes.Deps{
		Store: store,
		Cache: repository.NewStatsCache(redisClient, cfg.StatsCacheTTL),
		Mailer: mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		}),
		Cfg:         cfg,
		Logger:      logger,
		QuizOptions: []quiz.RegistryOption{quiz.WithRetention(cfg.QuizRetention)},
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down server")
		if err := app.Shutdown(); err != nil {
			logger.Error("Error during shutdown", zap.Error(err))
		}
	}()

	logger.Info("Starting server", zap.String("port", cfg.ServerPort), zap.String("db_type", cfg.DBType))
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
