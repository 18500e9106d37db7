package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/pressure-helper/internal/bot"
	"github.com/vladimiradmaev/pressure-helper/internal/bot/handlers"
	"github.com/vladimiradmaev/pressure-helper/internal/bot/state"
	"github.com/vladimiradmaev/pressure-helper/internal/cache"
	"github.com/vladimiradmaev/pressure-helper/internal/config"
	"github.com/vladimiradmaev/pressure-helper/internal/database"
	"github.com/vladimiradmaev/pressure-helper/internal/domain"
	"github.com/vladimiradmaev/pressure-helper/internal/logger"
	"github.com/vladimiradmaev/pressure-helper/internal/repository"
	"github.com/vladimiradmaev/pressure-helper/internal/services"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	logger.Info("Starting Pressure Helper Bot...")
	if envErr != nil {
		logger.Warn(".env file not found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("Invalid timezone", "error", err)
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", "driver", cfg.DB.Driver, "error", err)
	}

	adviceCache, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		logger.Fatal("Failed to initialize cache", "backend", cfg.Cache.Backend, "error", err)
	}

	var stateManager state.StateManager = state.NewManager()
	if rc, ok := adviceCache.(*cache.Redis); ok {
		defer rc.Close()
		stateManager = state.NewRedisManager(rc.Client(), state.DefaultTTL)
	}
	logger.Info("Cache initialized", "backend", cfg.Cache.Backend, "expiry", cfg.Cache.Expiry())

	generator, err := services.NewGenerator(ctx, cfg.AI)
	if err != nil {
		logger.Fatal("Failed to create text generator", "provider", cfg.AI.Provider, "error", err)
	}
	if closer, ok := generator.(io.Closer); ok {
		defer closer.Close()
	}

	deps := handlers.Dependencies{
		UserService:   services.NewUserService(repository.NewUserRepository(db)),
		ReadingSvc:    services.NewReadingService(repository.NewReadingRepository(db), loc),
		AdviceSvc:     services.NewAdviceService(generator, adviceCache, cfg.AI.Timeout),
		ReportSvc:     services.NewReportService(cfg.Report.Dir),
		IncludeAdvice: cfg.Report.IncludeAdvice,
	}
	logger.Info("Services initialized successfully")

	var telegramBot domain.BotService
	telegramBot, err = bot.NewBot(cfg.TelegramToken, deps, stateManager)
	if err != nil {
		logger.Fatal("Failed to create bot", "error", err)
	}

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	if err := telegramBot.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", "error", err)
		stop()
		os.Exit(1)
	}
	logger.Info("Bot stopped")
}
