package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/domain"
	orderports "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/ports"
	orderactivities "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/platform/temporal/activities/orders"
)

type workflowFixture struct {
	env          *testsuite.TestWorkflowEnvironment
	persistCalls int
	notifyCalls  int
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	suite := &testsuite.WorkflowTestSuite{}
	fixture := &workflowFixture{env: suite.NewTestWorkflowEnvironment()}

	fixture.env.RegisterWorkflowWithOptions(OrderCreationWorkflow,
		workflow.RegisterOptions{Name: OrderCreationWorkflowName})
	fixture.env.RegisterActivityWithOptions(
		func(ctx context.Context, userID int64) (bool, error) { return true, nil },
		activity.RegisterOptions{Name: orderactivities.CheckUserActivityName})
	fixture.env.RegisterActivityWithOptions(
		func(ctx context.Context, productID int64) (*orderports.ProductInfo, error) {
			return &orderports.ProductInfo{
				ID: productID, Name: "Laptop Dell XPS",
				Price: decimal.NewFromFloat(1299.99), Stock: 15,
			}, nil
		},
		activity.RegisterOptions{Name: orderactivities.FetchProductActivityName})
	fixture.env.RegisterActivityWithOptions(
		func(ctx context.Context, input orderactivities.PersistOrderInput) (*domain.Order, error) {
			fixture.persistCalls++
			order, err := domain.NewOrder(input.UserID, input.ProductID, input.Quantity, input.UnitPrice, fixture.env.Now())
			if err != nil {
				return nil, err
			}
			order.ID = 1
			return order, nil
		},
		activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})
	fixture.env.RegisterActivityWithOptions(
		func(ctx context.Context, notification orderports.Notification) error {
			fixture.notifyCalls++
			return nil
		},
		activity.RegisterOptions{Name: orderactivities.NotifyActivityName})

	return fixture
}

func (f *workflowFixture) run(command orderports.CreateOrderInput) (*domain.Order, error) {
	f.env.ExecuteWorkflow(OrderCreationWorkflowName, OrderCreationWorkflowInput{Command: command})
	if err := f.env.GetWorkflowError(); err != nil {
		return nil, err
	}
	var order domain.Order
	if err := f.env.GetWorkflowResult(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

func applicationErrorType(t *testing.T, err error) string {
	t.Helper()
	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	return appErr.Type()
}

func TestWorkflow_PlacesOrder(t *testing.T) {
	fixture := newWorkflowFixture(t)

	order, err := fixture.run(orderports.CreateOrderInput{UserID: 1, ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, order.Status)
	require.Equal(t, "2599.98", order.TotalPrice.StringFixed(2))
	require.Equal(t, 1, fixture.notifyCalls)
}

func TestWorkflow_QuantityDefaultsToOne(t *testing.T) {
	fixture := newWorkflowFixture(t)

	order, err := fixture.run(orderports.CreateOrderInput{UserID: 1, ProductID: 1})
	require.NoError(t, err)
	require.Equal(t, int32(1), order.Quantity)
}

func TestWorkflow_NegativeQuantityNeverReachesPersistence(t *testing.T) {
	fixture := newWorkflowFixture(t)

	_, err := fixture.run(orderports.CreateOrderInput{UserID: 1, ProductID: 1, Quantity: -1})
	require.Error(t, err)
	require.Equal(t, ErrTypeInvalidInput, applicationErrorType(t, err))
	require.Zero(t, fixture.persistCalls)
	require.Zero(t, fixture.notifyCalls)
}

func TestWorkflow_MissingIDsRejected(t *testing.T) {
	fixture := newWorkflowFixture(t)

	_, err := fixture.run(orderports.CreateOrderInput{ProductID: 1, Quantity: 1})
	require.Error(t, err)
	require.Equal(t, ErrTypeInvalidInput, applicationErrorType(t, err))
	require.Zero(t, fixture.persistCalls)

	fixture = newWorkflowFixture(t)
	_, err = fixture.run(orderports.CreateOrderInput{UserID: 1, Quantity: 1})
	require.Error(t, err)
	require.Equal(t, ErrTypeInvalidInput, applicationErrorType(t, err))
	require.Zero(t, fixture.persistCalls)
}
