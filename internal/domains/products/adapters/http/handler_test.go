package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/adapters/memory"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/application"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := NewHandler(application.NewService(memory.NewRepository()))
	router := gin.New()
	handler.Register(router)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateProduct_Success(t *testing.T) {
	router := newTestRouter(t)

	resp := doRequest(router, http.MethodPost, "/products",
		`{"name":"Laptop Dell XPS","price":1299.99,"category":"Informatique","stock":15}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	var created Product
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.Equal(t, int64(1), created.ID)
	require.InDelta(t, 1299.99, created.Price, 0.0001)
}

func TestCreateProduct_MissingPrice(t *testing.T) {
	router := newTestRouter(t)

	resp := doRequest(router, http.MethodPost, "/products", `{"name":"Gratuit","category":"Divers"}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.JSONEq(t, `{"error":"name, price and category are required"}`, resp.Body.String())
}

func TestListProducts_CategoryFilter(t *testing.T) {
	router := newTestRouter(t)
	doRequest(router, http.MethodPost, "/products", `{"name":"Laptop","price":1299.99,"category":"Informatique","stock":15}`)
	doRequest(router, http.MethodPost, "/products", `{"name":"Chaise","price":249.99,"category":"Mobilier","stock":22}`)

	resp := doRequest(router, http.MethodGet, "/products?category=informatique", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var list []Product
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "Laptop", list[0].Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	router := newTestRouter(t)

	resp := doRequest(router, http.MethodGet, "/products/9", "")
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.JSONEq(t, `{"error":"product not found"}`, resp.Body.String())
}

func TestDeleteProduct_AlwaysNoContent(t *testing.T) {
	router := newTestRouter(t)

	resp := doRequest(router, http.MethodDelete, "/products/123", "")
	require.Equal(t, http.StatusNoContent, resp.Code)
}

func TestAdjustStock(t *testing.T) {
	router := newTestRouter(t)
	doRequest(router, http.MethodPost, "/products", `{"name":"Écran 4K 27\"","price":349.99,"category":"Informatique","stock":12}`)

	resp := doRequest(router, http.MethodPatch, "/products/1/stock", `{"quantity":-4}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var updated Product
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	require.Equal(t, int32(8), updated.Stock)
}

func TestAdjustStock_MissingQuantity(t *testing.T) {
	router := newTestRouter(t)
	doRequest(router, http.MethodPost, "/products", `{"name":"Laptop","price":1299.99,"category":"Informatique","stock":15}`)

	resp := doRequest(router, http.MethodPatch, "/products/1/stock", `{}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.JSONEq(t, `{"error":"quantity is required"}`, resp.Body.String())
}
