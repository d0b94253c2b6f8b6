//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	notificationsclient "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/clients/http/notifications"
	productsclient "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/clients/http/products"
	usersclient "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/clients/http/users"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/ports"
	pacttest "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/test/pact"
)

var jsonContentType = matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

func newPact(t *testing.T, provider string) *pactconsumer.V2HTTPMockProvider {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: provider,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)
	return pact
}

func mockBaseURL(config pactconsumer.MockServerConfig) string {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, config.Port)
}

func TestUserDirectoryContract(t *testing.T) {
	pact := newPact(t, pacttest.UserProviderName)

	userBodyMatcher := matchers.Map{
		"id":    matchers.Like(pacttest.ExistingUserID),
		"name":  matchers.Like("Alice Dupont"),
		"email": matchers.Like("alice@example.com"),
		"role":  matchers.Term("user", "user|admin"),
	}

	pact.AddInteraction().
		Given(pacttest.StateUserExists).
		UponReceiving("a lookup for an existing user").
		WithRequest("GET", fmt.Sprintf("/users/%d", pacttest.ExistingUserID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(userBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateUserMissing).
		UponReceiving("a lookup for a missing user").
		WithRequest("GET", fmt.Sprintf("/users/%d", pacttest.MissingUserID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"error": matchers.S("user not found"),
			})
		})

	err := pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		directory, err := usersclient.NewClient(mockBaseURL(config), nil)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		exists, err := directory.Exists(ctx, pacttest.ExistingUserID)
		if err != nil {
			return fmt.Errorf("check existing user: %w", err)
		}
		if !exists {
			return fmt.Errorf("expected user %d to exist", pacttest.ExistingUserID)
		}

		exists, err = directory.Exists(ctx, pacttest.MissingUserID)
		if err != nil {
			return fmt.Errorf("check missing user: %w", err)
		}
		if exists {
			return fmt.Errorf("expected user %d to be missing", pacttest.MissingUserID)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestProductCatalogContract(t *testing.T) {
	pact := newPact(t, pacttest.ProductProviderName)

	productBodyMatcher := matchers.Map{
		"id":    matchers.Like(pacttest.ExistingProductID),
		"name":  matchers.Like(pacttest.ExampleProductName),
		"price": matchers.Like(pacttest.ExampleProductPrice),
		"stock": matchers.Like(pacttest.ExampleProductStock),
	}

	pact.AddInteraction().
		Given(pacttest.StateProductExists).
		UponReceiving("a lookup for an existing product").
		WithRequest("GET", fmt.Sprintf("/products/%d", pacttest.ExistingProductID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(productBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateProductMissing).
		UponReceiving("a lookup for a missing product").
		WithRequest("GET", fmt.Sprintf("/products/%d", pacttest.MissingProductID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"error": matchers.S("product not found"),
			})
		})

	err := pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		catalog, err := productsclient.NewClient(mockBaseURL(config), nil)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		product, err := catalog.GetProduct(ctx, pacttest.ExistingProductID)
		if err != nil {
			return fmt.Errorf("fetch existing product: %w", err)
		}
		if product == nil || product.ID != pacttest.ExistingProductID {
			return fmt.Errorf("expected product %d, got %+v", pacttest.ExistingProductID, product)
		}
		if product.Price.IsZero() || product.Stock == 0 {
			return fmt.Errorf("expected price and stock to be set, got %+v", product)
		}

		product, err = catalog.GetProduct(ctx, pacttest.MissingProductID)
		if err != nil {
			return fmt.Errorf("fetch missing product: %w", err)
		}
		if product != nil {
			return fmt.Errorf("expected nil for missing product, got %+v", product)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNotifierContract(t *testing.T) {
	pact := newPact(t, pacttest.NotificationProviderName)

	pact.AddInteraction().
		Given(pacttest.StateNotificationBaseline).
		UponReceiving("a request to deliver an order notification").
		WithRequest("POST", "/notifications", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"userId":  matchers.Like(pacttest.ExistingUserID),
				"message": matchers.Like("Your order #1 for Laptop Dell XPS has been created."),
				"type":    matchers.Term("order_created", "order_created|order_status"),
			})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":      matchers.Like(int64(1)),
				"userId":  matchers.Like(pacttest.ExistingUserID),
				"message": matchers.Like("Your order #1 for Laptop Dell XPS has been created."),
				"type":    matchers.Like("order_created"),
				"status":  matchers.Term("unread", "unread|read"),
			})
		})

	err := pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		notifier, err := notificationsclient.NewClient(mockBaseURL(config), nil)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return notifier.Send(ctx, ports.Notification{
			UserID:  pacttest.ExistingUserID,
			Message: "Your order #1 for Laptop Dell XPS has been created.",
			Type:    "order_created",
		})
	})
	require.NoError(t, err)
}
