package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/thinkfashz/Osart/internal/clients/supabase"
	checkoutmemory "github.com/thinkfashz/Osart/internal/domains/checkout/adapters/memory"
	checkoutpostgres "github.com/thinkfashz/Osart/internal/domains/checkout/adapters/persistence/postgres"
	checkoutports "github.com/thinkfashz/Osart/internal/domains/checkout/ports"
	"github.com/thinkfashz/Osart/internal/platform/migrations"
	platformobservability "github.com/thinkfashz/Osart/internal/platform/observability"
	platformpostgres "github.com/thinkfashz/Osart/internal/platform/postgres"
	orderactivities "github.com/thinkfashz/Osart/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/thinkfashz/Osart/internal/platform/temporal/workflows/orders"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()
	const serviceName = "osart-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orders, cleanupOrders := buildOrderRepository(ctx, logger)
	defer cleanupOrders()
	sink := supabase.NewFromEnv(logger)
	activities := orderactivities.NewActivities(orders, sink)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderSettlementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderSettlementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderSettlementWorkflowName})
	w.RegisterActivityWithOptions(activities.PersistOrder, activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})
	w.RegisterActivityWithOptions(activities.PublishOrder, activity.RegisterOptions{Name: orderactivities.PublishOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderSettlementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildOrderRepository(ctx context.Context, logger *slog.Logger) (checkoutports.OrderRepository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		logger.Warn("worker falling back to in-memory order repository")
		return checkoutmemory.NewOrderRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("worker failed to apply schema", slog.String("error", err.Error()))
	}
	logger.Info("worker order repository configured with postgres")
	return checkoutpostgres.NewOrderRepository(db), cleanup
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
