package orders

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/domain"
	orderports "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/ports"
	orderactivities "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/temporal/activities/orders"
)

const (
	// OrderCreationWorkflowName is the public identifier for registering the workflow.
	OrderCreationWorkflowName = "orders.workflows.Creation"
	// OrderCreationTaskQueue is the queue consumed by the order worker.
	OrderCreationTaskQueue = "ORDER_CREATION"
)

// Application error types carried across the workflow boundary so the
// orchestrator can map failures back onto the HTTP taxonomy.
const (
	ErrTypeInvalidInput      = "InvalidInput"
	ErrTypeUserNotFound      = "UserNotFound"
	ErrTypeProductNotFound   = "ProductNotFound"
	ErrTypeInsufficientStock = "InsufficientStock"
)

// OrderCreationWorkflowInput captures the payload required to place an order.
type OrderCreationWorkflowInput struct {
	Command orderports.CreateOrderInput
	TraceID string
}

// OrderCreationWorkflow runs the same sequence as the inline path: check the
// user, fetch the product, verify stock, persist, then notify best-effort.
// Activities run with a single attempt so durable execution keeps the
// surface's no-retry semantics.
func OrderCreationWorkflow(ctx workflow.Context, input OrderCreationWorkflowInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderCreationWorkflow started", withTraceID(input.TraceID, "userId", input.Command.UserID)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	// Same validation gate as the synchronous path, so the caller sees the
	// same answer for bad input no matter which orchestrator placed the order.
	if input.Command.UserID <= 0 {
		return nil, temporal.NewApplicationError(domain.ErrInvalidUserID.Error(), ErrTypeInvalidInput)
	}
	if input.Command.ProductID <= 0 {
		return nil, temporal.NewApplicationError(domain.ErrInvalidProductID.Error(), ErrTypeInvalidInput)
	}
	quantity := input.Command.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, temporal.NewApplicationError(domain.ErrInvalidQuantity.Error(), ErrTypeInvalidInput)
	}

	var exists bool
	if err := workflow.ExecuteActivity(ctx, orderactivities.CheckUserActivityName, input.Command.UserID).Get(ctx, &exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, temporal.NewApplicationError("user not found", ErrTypeUserNotFound)
	}

	var product *orderports.ProductInfo
	if err := workflow.ExecuteActivity(ctx, orderactivities.FetchProductActivityName, input.Command.ProductID).Get(ctx, &product); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, temporal.NewApplicationError("product not found", ErrTypeProductNotFound)
	}
	if product.Stock < quantity {
		return nil, temporal.NewApplicationError("insufficient stock", ErrTypeInsufficientStock)
	}

	var order domain.Order
	err := workflow.ExecuteActivity(ctx, orderactivities.PersistOrderActivityName, orderactivities.PersistOrderInput{
		UserID:    input.Command.UserID,
		ProductID: input.Command.ProductID,
		Quantity:  quantity,
		UnitPrice: product.Price,
	}).Get(ctx, &order)
	if err != nil {
		logger.Error("OrderCreationWorkflow failed", withTraceID(input.TraceID, "userId", input.Command.UserID, "error", err)...)
		return nil, err
	}

	notification := orderports.Notification{
		UserID:  order.UserID,
		Message: fmt.Sprintf("Your order #%d for %s has been created.", order.ID, product.Name),
		Type:    "order_created",
	}
	if err := workflow.ExecuteActivity(ctx, orderactivities.NotifyActivityName, notification).Get(ctx, nil); err != nil {
		// The order is already persisted; a lost notification never fails
		// the operation.
		logger.Warn("order notification activity failed", withTraceID(input.TraceID, "orderId", order.ID, "error", err)...)
	}

	logger.Info("OrderCreationWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return &order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
