//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	notificationshttp "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/adapters/http"
	notificationsmemory "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/adapters/memory"
	notificationsapp "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/application"
	productshttp "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/adapters/http"
	productsmemory "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/adapters/memory"
	productsapp "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/application"
	productdomain "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/domain"
	usershttp "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/users/adapters/http"
	usersmemory "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/users/adapters/memory"
	usersapp "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/users/application"
	userdomain "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/users/domain"
	pacttest "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/test/pact"
)

func requirePactFile(t *testing.T, provider string) string {
	t.Helper()
	pactFile := filepath.ToSlash(pacttest.PactFile(t, provider))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}
	return pactFile
}

func newProviderServer(t testing.TB, register func(gin.IRouter)) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())
	register(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestUserProviderPact(t *testing.T) {
	repo := usersmemory.NewRepository()
	server := newProviderServer(t, usershttp.NewHandler(usersapp.NewService(repo)).Register)
	pactFile := requirePactFile(t, pacttest.UserProviderName)

	resetUsers := func(t testing.TB) {
		users, err := repo.List(context.Background())
		require.NoError(t, err)
		for _, user := range users {
			_ = repo.Delete(context.Background(), user.ID)
		}
	}
	seedUser := func(t testing.TB, id int64) {
		user, err := userdomain.NewUser("Alice Dupont", "alice@example.com", userdomain.RoleUser)
		require.NoError(t, err)
		user.ID = id
		_, err = repo.Save(context.Background(), user)
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: server.URL,
		Provider:        pacttest.UserProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers: models.StateHandlers{
			pacttest.StateUserExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
				resetUsers(t)
				if setup {
					seedUser(t, pacttest.ExistingUserID)
				}
				return nil, nil
			},
			pacttest.StateUserMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
				resetUsers(t)
				return nil, nil
			},
		},
	})
	require.NoError(t, err)
}

func TestProductProviderPact(t *testing.T) {
	repo := productsmemory.NewRepository()
	server := newProviderServer(t, productshttp.NewHandler(productsapp.NewService(repo)).Register)
	pactFile := requirePactFile(t, pacttest.ProductProviderName)

	resetProducts := func(t testing.TB) {
		products, err := repo.List(context.Background())
		require.NoError(t, err)
		for _, product := range products {
			_ = repo.Delete(context.Background(), product.ID)
		}
	}
	seedProduct := func(t testing.TB, id int64) {
		product, err := productdomain.NewProduct(pacttest.ExampleProductName,
			decimal.NewFromFloat(pacttest.ExampleProductPrice), "Informatique", pacttest.ExampleProductStock)
		require.NoError(t, err)
		product.ID = id
		_, err = repo.Save(context.Background(), product)
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: server.URL,
		Provider:        pacttest.ProductProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers: models.StateHandlers{
			pacttest.StateProductExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
				resetProducts(t)
				if setup {
					seedProduct(t, pacttest.ExistingProductID)
				}
				return nil, nil
			},
			pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
				resetProducts(t)
				return nil, nil
			},
		},
	})
	require.NoError(t, err)
}

func TestNotificationProviderPact(t *testing.T) {
	repo := notificationsmemory.NewRepository()
	server := newProviderServer(t, notificationshttp.NewHandler(notificationsapp.NewService(repo)).Register)
	pactFile := requirePactFile(t, pacttest.NotificationProviderName)

	verifier := pactprovider.NewVerifier()
	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: server.URL,
		Provider:        pacttest.NotificationProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers: models.StateHandlers{
			pacttest.StateNotificationBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
				return nil, nil
			},
		},
	})
	require.NoError(t, err)
}
