package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notemark/internal/adapters/cache"
	httpServer "notemark/internal/adapters/http"
	"notemark/internal/adapters/postgres"
	"notemark/internal/adapters/services"
	"notemark/internal/app"
	"notemark/internal/config"
	"notemark/internal/db"
	"notemark/pkg/logger"
	"notemark/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTEMARK_LOGGER_MODE"
	EnvLoggerLevel = "NOTEMARK_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDatabase         = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "notemark service started"
	LogServiceShutdownDone = "notemark service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitDatabase        = "initializing database"
	LogInitCache           = "initializing cache"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

const migrationsDir = "migrations"

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		database, err := db.New(ctx, &cfg.Postgres, migrationsDir)
		if err != nil {
			log.Error(ctx, ErrInitDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitCache)
		redisCache, err := cache.NewRedisCache(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		svcFactory := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.GetTokenTTL(), cfg.JWT.BCryptCost)

		authUseCase := app.NewAuthUseCase(
			repoFactory.UserRepository(),
			svcFactory.PasswordService(),
			svcFactory.TokenService(),
		)
		userUseCase := app.NewUserUseCase(repoFactory.UserRepository(), redisCache)
		noteUseCase := app.NewNoteUseCase(repoFactory.NoteRepository())

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(fiberApp, authUseCase, userUseCase, noteUseCase, svcFactory.TokenService())

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				log.Info(ctx, "Closing Redis connection")
				return redisCache.Close()
			},
			// Закрытие пула базы данных.
			func(ctx context.Context) error {
				log.Info(ctx, "Closing database pool")
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
