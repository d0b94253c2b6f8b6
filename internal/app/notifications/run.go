package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	notificationshttp "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/adapters/http"
	notificationsmemory "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/adapters/memory"
	notificationspostgres "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/adapters/persistence/postgres"
	notificationsapp "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/application"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/domain"
	notificationsports "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/ports"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/migrations"
	platformobservability "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/observability"
	platformpostgres "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/postgres"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/shared/health"
)

const serviceName = "notification-service"

// Run boots the notification service with observability and repositories
// wired.
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
	service := notificationsapp.NewService(repo)
	handler := notificationshttp.NewHandler(service)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.GET("/health", health.Handler(serviceName))
	handler.Register(router)

	addr := ":" + cfg.Port
	logger.Info("notification service listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("notification service exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildRepository(ctx context.Context, cfg Config, logger *slog.Logger) (notificationsports.Repository, func()) {
	db, cleanup := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		repo := notificationsmemory.NewRepository()
		seed(ctx, repo, logger)
		return repo, cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to in-memory repository", slog.String("error", err.Error()))
		cleanup()
		repo := notificationsmemory.NewRepository()
		seed(ctx, repo, logger)
		return repo, func() {}
	}
	logger.Info("notification repository configured with postgres")
	return notificationspostgres.NewRepository(db), cleanup
}

// seed loads the demo notifications the platform ships with.
func seed(ctx context.Context, repo notificationsports.Repository, logger *slog.Logger) {
	now := time.Now().UTC()
	readAt := now
	fixtures := []domain.Notification{
		{
			ID:        1,
			UserID:    1,
			Message:   "Welcome to our platform!",
			Type:      "welcome",
			Status:    domain.StatusUnread,
			CreatedAt: now,
		},
		{
			ID:        2,
			UserID:    1,
			Message:   "Your order #1 has been confirmed.",
			Type:      "order_confirmed",
			Status:    domain.StatusRead,
			CreatedAt: now,
			ReadAt:    &readAt,
		},
		{
			ID:        3,
			UserID:    2,
			Message:   "Your order #2 has been shipped.",
			Type:      "order_shipped",
			Status:    domain.StatusUnread,
			CreatedAt: now,
		},
	}
	for i := range fixtures {
		if _, err := repo.Save(ctx, &fixtures[i]); err != nil {
			logger.Warn("failed to seed notification", slog.Int64("notification.id", fixtures[i].ID), slog.String("error", err.Error()))
		}
	}
}
