// Package api wires the storefront process: configuration, observability,
// stores with graceful fallbacks, and the gin router.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	"github.com/thinkfashz/Osart/internal/clients/genai"
	"github.com/thinkfashz/Osart/internal/clients/supabase"
	adminmemory "github.com/thinkfashz/Osart/internal/domains/admin/adapters/memory"
	adminpostgres "github.com/thinkfashz/Osart/internal/domains/admin/adapters/persistence/postgres"
	adminapp "github.com/thinkfashz/Osart/internal/domains/admin/application"
	adminports "github.com/thinkfashz/Osart/internal/domains/admin/ports"
	cartmemory "github.com/thinkfashz/Osart/internal/domains/cart/adapters/memory"
	cartredis "github.com/thinkfashz/Osart/internal/domains/cart/adapters/redis"
	cartapp "github.com/thinkfashz/Osart/internal/domains/cart/application"
	cartports "github.com/thinkfashz/Osart/internal/domains/cart/ports"
	catalogmemory "github.com/thinkfashz/Osart/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/thinkfashz/Osart/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/thinkfashz/Osart/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/thinkfashz/Osart/internal/domains/catalog/application"
	catalogdomain "github.com/thinkfashz/Osart/internal/domains/catalog/domain"
	catalogports "github.com/thinkfashz/Osart/internal/domains/catalog/ports"
	checkoutmemory "github.com/thinkfashz/Osart/internal/domains/checkout/adapters/memory"
	checkoutobs "github.com/thinkfashz/Osart/internal/domains/checkout/adapters/observability"
	checkoutpostgres "github.com/thinkfashz/Osart/internal/domains/checkout/adapters/persistence/postgres"
	checkoutredis "github.com/thinkfashz/Osart/internal/domains/checkout/adapters/redis"
	checkoutworkflows "github.com/thinkfashz/Osart/internal/domains/checkout/adapters/workflows"
	checkoutapp "github.com/thinkfashz/Osart/internal/domains/checkout/application"
	checkoutports "github.com/thinkfashz/Osart/internal/domains/checkout/ports"
	quizmemory "github.com/thinkfashz/Osart/internal/domains/quiz/adapters/memory"
	quizapp "github.com/thinkfashz/Osart/internal/domains/quiz/application"
	usersmemory "github.com/thinkfashz/Osart/internal/domains/users/adapters/memory"
	userspostgres "github.com/thinkfashz/Osart/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/thinkfashz/Osart/internal/domains/users/application"
	usersports "github.com/thinkfashz/Osart/internal/domains/users/ports"
	verificationmemory "github.com/thinkfashz/Osart/internal/domains/verification/adapters/memory"
	verificationredis "github.com/thinkfashz/Osart/internal/domains/verification/adapters/redis"
	verificationsender "github.com/thinkfashz/Osart/internal/domains/verification/adapters/sender"
	verificationapp "github.com/thinkfashz/Osart/internal/domains/verification/application"
	verificationports "github.com/thinkfashz/Osart/internal/domains/verification/ports"
	"github.com/thinkfashz/Osart/internal/platform/migrations"
	platformobservability "github.com/thinkfashz/Osart/internal/platform/observability"
	platformpostgres "github.com/thinkfashz/Osart/internal/platform/postgres"
	platformredis "github.com/thinkfashz/Osart/internal/platform/redis"
	"github.com/thinkfashz/Osart/internal/server"
)

// Run boots the storefront HTTP API with observability, stores, and the
// settlement orchestrator wired.
func Run(ctx context.Context) error {
	const serviceName = "osart-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	cfg := LoadConfig()
	if cfg.JWTSigningKey == DefaultSigningKey {
		logger.Warn("JWT_SIGNING_KEY not set, using the development signing key")
	}

	db, closeDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer closeDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	redisClient, closeRedis := platformredis.ConnectFromEnv(ctx, logger)
	defer closeRedis()

	catalogService := catalogobs.New(
		catalogapp.NewService(buildCatalogRepository(ctx, db, logger)),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.domains.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.domains.catalog.application")),
	)
	cartService := cartapp.NewService(buildCartStore(redisClient), catalogService)
	verifier := verificationapp.NewService(
		buildVerificationStore(redisClient),
		verificationsender.NewLogSender(logger),
	)

	orders := buildOrderRepository(db)
	sink := supabase.NewFromEnv(logger)
	var orchestrator checkoutports.Orchestrator = checkoutworkflows.NewInlineOrderWorkflows(orders, sink, logger)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal unavailable, settling orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orchestrator = checkoutworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal order settlement enabled", slog.String("namespace", cfg.TemporalNamespace))
	}
	checkoutService := checkoutobs.New(
		checkoutapp.NewService(buildCheckoutStore(redisClient), orders, cartService, verifier, orchestrator),
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(instruments.Tracer("internal.domains.checkout.application")),
		checkoutobs.WithMeter(instruments.Meter("internal.domains.checkout.application")),
	)

	usersService := buildUsersService(cfg, db)
	quizService := quizapp.NewService(quizmemory.NewStore(), usersService, logger)
	genaiClient := genai.NewFromEnv(logger)
	adminService := buildAdminService(db, catalogService, orders, genaiClient)

	router := server.NewRouter(server.APIs{
		Catalog:   server.NewCatalogAPI(catalogService),
		Users:     server.NewUserAPI(usersService, orders),
		Carts:     server.NewCartAPI(cartService),
		Checkout:  server.NewCheckoutAPI(checkoutService),
		Quiz:      server.NewQuizAPI(quizService),
		Admin:     server.NewAdminAPI(adminService, checkoutService),
		Assistant: server.NewAssistantAPI(genaiClient, catalogService),
	}, server.NewAuthMiddleware(usersService))
	router.Use(otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("Osart API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("Osart API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildCatalogRepository prefers postgres, seeding the catalog on first boot.
// Without a database the in-memory repository ships pre-seeded.
func buildCatalogRepository(ctx context.Context, db *gorm.DB, logger *slog.Logger) catalogports.Repository {
	if db == nil {
		return catalogmemory.NewSeededRepository(catalogdomain.SeedProducts())
	}
	repo := catalogpostgres.NewRepository(db)
	existing, err := repo.List(ctx, catalogports.Filter{})
	if err != nil {
		logger.Warn("failed to inspect catalog, skipping seed", slog.String("error", err.Error()))
		return repo
	}
	if len(existing) > 0 {
		return repo
	}
	for _, product := range catalogdomain.SeedProducts() {
		if _, err := repo.Save(ctx, product); err != nil {
			logger.Warn("failed to seed product",
				slog.Int64("product.id", product.ID), slog.String("error", err.Error()))
		}
	}
	logger.Info("catalog seeded", slog.Int("products", len(catalogdomain.SeedProducts())))
	return repo
}

func buildCartStore(redisClient *redis.Client) cartports.Store {
	if redisClient != nil {
		return cartredis.NewStore(redisClient, cartredis.DefaultTTL)
	}
	return cartmemory.NewStore()
}

func buildCheckoutStore(redisClient *redis.Client) checkoutports.Store {
	if redisClient != nil {
		return checkoutredis.NewStore(redisClient, checkoutredis.DefaultTTL)
	}
	return checkoutmemory.NewStore()
}

func buildVerificationStore(redisClient *redis.Client) verificationports.Store {
	if redisClient != nil {
		return verificationredis.NewStore(redisClient)
	}
	return verificationmemory.NewStore()
}

func buildOrderRepository(db *gorm.DB) checkoutports.OrderRepository {
	if db != nil {
		return checkoutpostgres.NewOrderRepository(db)
	}
	return checkoutmemory.NewOrderRepository()
}

func buildUsersService(cfg Config, db *gorm.DB) *usersapp.Service {
	var repo usersports.Repository = usersmemory.NewRepository()
	var sessions usersports.SessionStore = usersmemory.NewSessionStore()
	if db != nil {
		repo = userspostgres.NewRepository(db)
		sessions = userspostgres.NewSessionStore(db)
	}
	return usersapp.NewService(repo, sessions, []byte(cfg.JWTSigningKey),
		usersapp.WithAdminEmail(cfg.AdminEmail))
}

func buildAdminService(db *gorm.DB, catalog catalogports.Service, orders checkoutports.OrderRepository, auditor *genai.Client) *adminapp.Service {
	var expenses adminports.ExpenseStore = adminmemory.NewExpenseStore()
	var config adminports.ConfigStore = adminmemory.NewConfigStore()
	if db != nil {
		expenses = adminpostgres.NewExpenseStore(db)
		config = adminpostgres.NewConfigStore(db)
	}
	return adminapp.NewService(catalog, orders, expenses, config, auditor)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
