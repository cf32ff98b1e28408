package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"careline/backend/internal/api/handler"
	"careline/backend/internal/config"
	"careline/backend/internal/messaging"
	"careline/backend/internal/models"
	"careline/backend/internal/moderation"
	"careline/backend/internal/notify"
	"careline/backend/internal/realtime"
	"careline/backend/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	// TranslateError потрібен, щоб порушення унікальних індексів
	// поверталось як gorm.ErrDuplicatedKey.
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect PostgreSQL")
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Перевірка з'єднання Redis
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect Redis")
	}

	// 3. Міграції
	err = db.AutoMigrate(
		&models.HelpRequest{},
		&models.Conversation{},
		&models.Message{},
		&models.MessageReport{},
		&models.UserRestriction{},
		&models.MessageAuditLog{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	log.Info().Msg("database and redis connections established, migrations complete")
	return db, rdb
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Production() {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	log.Info().Str("env", cfg.Env).Msg("starting careline backend")

	// 1. Залежності та сховище
	db, rdb := setupDependencies(cfg)
	store := storage.NewService(db, rdb)

	// 2. Сервіси
	msgSvc := messaging.NewService(store)
	modSvc := moderation.NewService(store, store)

	if cfg.TelegramBotToken != "" {
		notifier, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramAdminChatID)
		if err != nil {
			// Бот не критичний для роботи сервісу.
			log.Error().Err(err).Msg("telegram notifier disabled")
		} else {
			modSvc.SetNotifier(notifier)
		}
	}

	// 3. Realtime hub
	hub := realtime.NewHub(store)
	go hub.Run()

	// 4. Роутинг та HTTP-сервер
	h := handler.NewHandler(msgSvc, modSvc, hub, cfg)
	r := handler.BuildRouter(h, cfg, rdb)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Info().Int("port", cfg.Port).Msg("listening")
	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
