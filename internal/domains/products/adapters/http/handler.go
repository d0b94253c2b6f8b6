package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/application"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/domain"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/ports"
	apierrors "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/shared/errors"
)

// Product is the transport representation of a catalog entry.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int32   `json:"stock"`
}

type createRequest struct {
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Category string   `json:"category"`
	Stock    int32    `json:"stock"`
}

type updateRequest struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Category *string  `json:"category"`
	Stock    *int32   `json:"stock"`
}

type stockRequest struct {
	Quantity *int32 `json:"quantity"`
}

// Handler exposes the catalog REST surface.
type Handler struct {
	service   ports.Service
	responder *apierrors.Responder
}

// NewHandler wires the products HTTP adapter.
func NewHandler(service ports.Service) *Handler {
	responder := apierrors.NewResponder(func(err error) (apierrors.APIError, bool) {
		switch {
		case errors.Is(err, ports.ErrNotFound):
			return apierrors.NewNotFound("product"), true
		case errors.Is(err, application.ErrInvalidInput):
			return apierrors.NewValidation(err.Error()), true
		default:
			return apierrors.APIError{}, false
		}
	})
	return &Handler{service: service, responder: responder}
}

// Register mounts the product routes on the given router.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/products", h.list)
	r.GET("/products/:id", h.get)
	r.POST("/products", h.create)
	r.PUT("/products/:id", h.update)
	r.DELETE("/products/:id", h.delete)
	r.PATCH("/products/:id/stock", h.adjustStock)
}

func (h *Handler) list(c *gin.Context) {
	products, err := h.service.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransportList(products))
}

func (h *Handler) get(c *gin.Context) {
	id, ok := h.entityID(c)
	if !ok {
		return
	}
	product, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransport(product))
}

func (h *Handler) create(c *gin.Context) {
	var payload createRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithMessage("%s", err.Error()))
		return
	}
	if payload.Price == nil {
		apierrors.Respond(c, apierrors.NewValidation("name, price and category are required"))
		return
	}
	product, err := h.service.Create(c.Request.Context(), ports.CreateProductInput{
		Name:     payload.Name,
		Price:    decimal.NewFromFloat(*payload.Price),
		Category: payload.Category,
		Stock:    payload.Stock,
	})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTransport(product))
}

func (h *Handler) update(c *gin.Context) {
	id, ok := h.entityID(c)
	if !ok {
		return
	}
	var payload updateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithMessage("%s", err.Error()))
		return
	}
	input := ports.UpdateProductInput{
		Name:     payload.Name,
		Category: payload.Category,
		Stock:    payload.Stock,
	}
	if payload.Price != nil {
		price := decimal.NewFromFloat(*payload.Price)
		input.Price = &price
	}
	product, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransport(product))
}

// delete always reports success: removing an absent product has never been
// an error on this surface.
func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err == nil {
		if err := h.service.Delete(c.Request.Context(), id); err != nil {
			h.responder.RespondError(c, err)
			return
		}
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) adjustStock(c *gin.Context) {
	id, ok := h.entityID(c)
	if !ok {
		return
	}
	var payload stockRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithMessage("%s", err.Error()))
		return
	}
	if payload.Quantity == nil {
		apierrors.Respond(c, apierrors.NewValidation("quantity is required"))
		return
	}
	product, err := h.service.AdjustStock(c.Request.Context(), id, *payload.Quantity)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransport(product))
}

func (h *Handler) entityID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.Respond(c, apierrors.NewNotFound("product"))
		return 0, false
	}
	return id, true
}

func toTransport(product *domain.Product) Product {
	return Product{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price.InexactFloat64(),
		Category: product.Category,
		Stock:    product.Stock,
	}
}

func toTransportList(products []*domain.Product) []Product {
	result := make([]Product, 0, len(products))
	for _, product := range products {
		result = append(result, toTransport(product))
	}
	return result
}
