package users

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	usershttp "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/users/adapters/http"
	usersmemory "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/users/adapters/memory"
	userspostgres "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/users/application"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/users/domain"
	usersports "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/users/ports"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/migrations"
	platformobservability "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/observability"
	platformpostgres "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/postgres"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/shared/health"
)

const serviceName = "user-service"

// Run boots the user service with observability and repositories wired.
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
	service := usersapp.NewService(repo)
	handler := usershttp.NewHandler(service)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.GET("/health", health.Handler(serviceName))
	handler.Register(router)

	addr := ":" + cfg.Port
	logger.Info("user service listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("user service exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildRepository(ctx context.Context, cfg Config, logger *slog.Logger) (usersports.Repository, func()) {
	db, cleanup := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		repo := usersmemory.NewRepository()
		seed(ctx, repo, logger)
		return repo, cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to in-memory repository", slog.String("error", err.Error()))
		cleanup()
		repo := usersmemory.NewRepository()
		seed(ctx, repo, logger)
		return repo, func() {}
	}
	logger.Info("user repository configured with postgres")
	return userspostgres.NewRepository(db), cleanup
}

// seed loads the demo fixtures the platform ships with.
func seed(ctx context.Context, repo usersports.Repository, logger *slog.Logger) {
	fixtures := []domain.User{
		{ID: 1, Name: "Alice Dupont", Email: "alice@example.com", Role: domain.RoleUser},
		{ID: 2, Name: "Bob Martin", Email: "bob@example.com", Role: domain.RoleAdmin},
		{ID: 3, Name: "Claire Bernard", Email: "claire@example.com", Role: domain.RoleUser},
	}
	for i := range fixtures {
		if _, err := repo.Save(ctx, &fixtures[i]); err != nil {
			logger.Warn("failed to seed user", slog.Int64("user.id", fixtures[i].ID), slog.String("error", err.Error()))
		}
	}
}
