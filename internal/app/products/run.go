package products

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	productscache "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/adapters/cache"
	productshttp "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/adapters/http"
	productsmemory "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/adapters/memory"
	productspostgres "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/adapters/persistence/postgres"
	productsapp "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/application"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/domain"
	productsports "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/ports"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/migrations"
	platformobservability "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/observability"
	platformpostgres "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/postgres"
	platformredis "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/redis"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/shared/health"
)

const serviceName = "product-service"

// Run boots the product service with observability, repositories, and the
// read-through cache wired.
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

	repo, cleanupRepo := buildRepository(ctx, cfg, logger)
	defer cleanupRepo()
	if client, cleanupRedis := platformredis.ConnectFromEnv(ctx, logger); client != nil {
		defer cleanupRedis()
		repo = productscache.NewRepository(repo, client, productscache.DefaultTTL, logger)
		logger.Info("product repository wrapped with redis cache")
	}
	service := productsapp.NewService(repo)
	handler := productshttp.NewHandler(service)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.GET("/health", health.Handler(serviceName))
	handler.Register(router)

	addr := ":" + cfg.Port
	logger.Info("product service listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("product service exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildRepository(ctx context.Context, cfg Config, logger *slog.Logger) (productsports.Repository, func()) {
	db, cleanup := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		repo := productsmemory.NewRepository()
		seed(ctx, repo, logger)
		return repo, cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to in-memory repository", slog.String("error", err.Error()))
		cleanup()
		repo := productsmemory.NewRepository()
		seed(ctx, repo, logger)
		return repo, func() {}
	}
	logger.Info("product repository configured with postgres")
	return productspostgres.NewRepository(db), cleanup
}

// seed loads the demo catalog the platform ships with.
func seed(ctx context.Context, repo productsports.Repository, logger *slog.Logger) {
	fixtures := []domain.Product{
		{ID: 1, Name: "Laptop Dell XPS", Price: decimal.NewFromFloat(1299.99), Category: "Informatique", Stock: 15},
		{ID: 2, Name: "iPhone 15 Pro", Price: decimal.NewFromFloat(1199.99), Category: "Téléphones", Stock: 8},
		{ID: 3, Name: "Chaise de bureau", Price: decimal.NewFromFloat(249.99), Category: "Mobilier", Stock: 22},
		{ID: 4, Name: "Écran 4K 27\"", Price: decimal.NewFromFloat(349.99), Category: "Informatique", Stock: 12},
	}
	for i := range fixtures {
		if _, err := repo.Save(ctx, &fixtures[i]); err != nil {
			logger.Warn("failed to seed product", slog.Int64("product.id", fixtures[i].ID), slog.String("error", err.Error()))
		}
	}
}
