package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	notificationsclient "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/clients/http/notifications"
	productsclient "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/clients/http/products"
	usersclient "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/clients/http/users"
	ordershttp "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/adapters/http"
	ordersmemory "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/adapters/memory"
	ordersobs "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/application"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/domain"
	ordersports "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/ports"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/migrations"
	platformobservability "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/observability"
	platformpostgres "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/postgres"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/shared/health"
)

const serviceName = "order-service"

// Run boots the order service with observability, repositories, collaborator
// clients, and workflows wired.
func Run(ctx context.Context) error {
	cfg := LoadConfig()
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

	repo, cleanupRepo := BuildRepository(ctx, cfg, logger)
	defer cleanupRepo()

	userDirectory, err := usersclient.NewClient(cfg.UserServiceURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build user service client: %w", err)
	}
	productCatalog, err := productsclient.NewClient(cfg.ProductServiceURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build product service client: %w", err)
	}
	notifier, err := notificationsclient.NewClient(cfg.NotificationServiceURL, nil,
		notificationsclient.WithLogger(logger),
		notificationsclient.WithMeter(instruments.Meter("internal.clients.notifications")))
	if err != nil {
		return fmt.Errorf("failed to build notification service client: %w", err)
	}

	coreService := ordersapp.NewService(repo, userDirectory, productCatalog, notifier,
		ordersapp.WithLogger(logger))
	service := ordersobs.New(
		coreService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var workflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(service)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running order creation inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		workflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handler := ordershttp.NewHandler(service, workflows)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.GET("/health", health.Handler(serviceName))
	handler.Register(router)

	addr := ":" + cfg.Port
	logger.Info("order service listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("order service exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// BuildRepository wires the order store, shared with the Temporal worker
// process.
func BuildRepository(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, func()) {
	db, cleanup := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		repo := ordersmemory.NewRepository()
		seed(ctx, repo, logger)
		return repo, cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to in-memory repository", slog.String("error", err.Error()))
		cleanup()
		repo := ordersmemory.NewRepository()
		seed(ctx, repo, logger)
		return repo, func() {}
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), cleanup
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
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

// seed loads the demo orders the platform ships with.
func seed(ctx context.Context, repo ordersports.Repository, logger *slog.Logger) {
	fixtures := []domain.Order{
		{
			ID:         1,
			UserID:     1,
			ProductID:  1,
			Quantity:   1,
			TotalPrice: decimal.NewFromFloat(1299.99),
			Status:     domain.StatusConfirmed,
			CreatedAt:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:         2,
			UserID:     2,
			ProductID:  2,
			Quantity:   2,
			TotalPrice: decimal.NewFromFloat(2399.98),
			Status:     domain.StatusShipped,
			CreatedAt:  time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC),
		},
	}
	for i := range fixtures {
		if _, err := repo.Save(ctx, &fixtures[i]); err != nil {
			logger.Warn("failed to seed order", slog.Int64("order.id", fixtures[i].ID), slog.String("error", err.Error()))
		}
	}
}
