package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/app/orders"
	notificationsclient "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/clients/http/notifications"
	productsclient "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/clients/http/products"
	usersclient "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/clients/http/users"
	platformobservability "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/observability"
	orderactivities "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "order-worker"
	cfg := orders.LoadConfig()
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

	repo, cleanupRepo := orders.BuildRepository(ctx, cfg, logger)
	defer cleanupRepo()
	userDirectory, err := usersclient.NewClient(cfg.UserServiceURL, nil)
	if err != nil {
		logger.Error("failed to build user service client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	productCatalog, err := productsclient.NewClient(cfg.ProductServiceURL, nil)
	if err != nil {
		logger.Error("failed to build product service client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	notifier, err := notificationsclient.NewClient(cfg.NotificationServiceURL, nil,
		notificationsclient.WithLogger(logger),
		notificationsclient.WithMeter(instruments.Meter("internal.clients.notifications")))
	if err != nil {
		logger.Error("failed to build notification service client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	activities := orderactivities.NewActivities(repo, userDirectory, productCatalog, notifier)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderCreationWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderCreationWorkflowName})
	w.RegisterActivityWithOptions(activities.CheckUser, activity.RegisterOptions{Name: orderactivities.CheckUserActivityName})
	w.RegisterActivityWithOptions(activities.FetchProduct, activity.RegisterOptions{Name: orderactivities.FetchProductActivityName})
	w.RegisterActivityWithOptions(activities.PersistOrder, activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})
	w.RegisterActivityWithOptions(activities.Notify, activity.RegisterOptions{Name: orderactivities.NotifyActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderCreationTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
