package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"rug-quote/internal/bot"
	"rug-quote/internal/calculator"
	"rug-quote/internal/config"
	"rug-quote/internal/preferences"
	"rug-quote/internal/storage"
	"rug-quote/pkg/cart"
	"rug-quote/pkg/logger"
	"rug-quote/pkg/redis"
)

// ENTRY POINT

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Инициализация логгера
	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	// Обработка сигналов завершения
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	// Инициализация Redis клиента
	redisClient := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.StateTTL)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx); err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Инициализация PostgreSQL хранилища
	pgStorage, err := storage.NewPostgresStorage(ctx, storage.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}, redisClient, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init PostgreSQL storage", zap.Error(err))
	}
	defer pgStorage.Close()

	// Миграции: "rugbot migrate up|down|status" только управляет схемой
	if len(os.Args) > 2 && os.Args[1] == "migrate" {
		cmd, err := storage.ParseMigrateCommand(os.Args[2])
		if err == nil {
			err = storage.Migrate(ctx, pgStorage.DB(), cmd, zapLogger)
		}
		if err != nil {
			zapLogger.Fatal("Migration command failed", zap.Error(err))
		}
		return
	}
	if err := storage.Migrate(ctx, pgStorage.DB(), storage.MigrateUp, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Цены: значения по умолчанию, env, YAML, затем правки админа из базы
	pricing, err := config.LoadPricing(cfg.Pricing)
	if err != nil {
		zapLogger.Fatal("Failed to load pricing", zap.Error(err))
	}
	if overrides, err := pgStorage.GetMaterialMultipliers(ctx); err != nil {
		zapLogger.Warn("Using configured materials only", zap.Error(err))
	} else if merged, err := config.OverlayMaterials(pricing, overrides); err != nil {
		zapLogger.Warn("Ignoring material overrides", zap.Error(err))
	} else {
		pricing = merged
	}

	calc, err := calculator.New(pricing, cfg.Pricing.CalculatorOptions()...)
	if err != nil {
		zapLogger.Fatal("Invalid pricing config", zap.Error(err))
	}
	zapLogger.Info("Pricing loaded",
		zap.Float64("base_price_per_sqft", pricing.BasePricePerSqFt),
		zap.Strings("materials", calc.Materials()),
		zap.Bool("strict", calc.Strict()))

	// Инициализация клиента корзины
	cartClient := cart.NewClient(cfg.Cart.StoreURL, zapLogger,
		cart.WithHTTPClient(&http.Client{Timeout: cfg.Cart.Timeout}),
		cart.WithMaxRetries(cfg.Cart.MaxRetries),
	)

	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		zapLogger.Fatal("Failed to create bot API", zap.Error(err))
	}
	zapLogger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))

	// Создание бота
	tgBot := bot.New(botAPI, bot.Deps{
		State:     bot.NewStateStorage(redisClient),
		Prefs:     preferences.New(preferences.NewRedisStore(redisClient)),
		Calc:      calc,
		Quotes:    pgStorage,
		Cart:      cartClient,
		Limiter:   storage.NewRateLimiter(redisClient),
		Materials: pgStorage,
	}, bot.Settings{
		ProductID:     cfg.Cart.ProductID,
		AdminIDs:      cfg.Admin.IDs,
		ChannelID:     cfg.Admin.ChannelID,
		CartAddLimit:  cfg.RateLimit.CartAdds,
		CartAddWindow: cfg.RateLimit.Window,
	}, zapLogger)

	// Запуск бота
	if err := tgBot.Start(ctx, botAPI); err != nil {
		zapLogger.Fatal("Bot stopped with error", zap.Error(err))
	}

	zapLogger.Info("Bot shutdown gracefully")
}
