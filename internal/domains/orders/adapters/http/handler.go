package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/application"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/domain"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/ports"
	apierrors "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/shared/errors"
)

// Order is the transport representation of an order.
type Order struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	ProductID  int64     `json:"productId"`
	Quantity   int32     `json:"quantity"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type createRequest struct {
	UserID    *int64 `json:"userId"`
	ProductID *int64 `json:"productId"`
	Quantity  int32  `json:"quantity"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type summaryResponse struct {
	TotalOrders    int            `json:"totalOrders"`
	TotalRevenue   float64        `json:"totalRevenue"`
	OrdersByStatus map[string]int `json:"ordersByStatus"`
}

// Handler exposes the orders REST surface. Creation goes through the
// workflow orchestrator; every other operation hits the service directly.
type Handler struct {
	service   ports.Service
	workflows ports.WorkflowOrchestrator
	responder *apierrors.Responder
}

// NewHandler wires the orders HTTP adapter.
func NewHandler(service ports.Service, workflows ports.WorkflowOrchestrator) *Handler {
	responder := apierrors.NewResponder(func(err error) (apierrors.APIError, bool) {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			return apierrors.NewNotFound("user"), true
		case errors.Is(err, application.ErrProductNotFound):
			return apierrors.NewNotFound("product"), true
		case errors.Is(err, ports.ErrNotFound):
			return apierrors.NewNotFound("order"), true
		case errors.Is(err, application.ErrInsufficientStock):
			return apierrors.NewValidation("insufficient stock"), true
		case errors.Is(err, application.ErrInvalidInput):
			return apierrors.NewValidation(err.Error()), true
		default:
			return apierrors.APIError{}, false
		}
	})
	return &Handler{service: service, workflows: workflows, responder: responder}
}

// Register mounts the order routes on the given router.
//
// gin cannot mount a static /orders/stats segment next to the :id wildcard,
// so the stats route shares the wildcard slot and dispatches on its value.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/orders", h.list)
	r.GET("/orders/:id", h.get)
	r.POST("/orders", h.create)
	r.PUT("/orders/:id/status", h.updateStatus)
	r.DELETE("/orders/:id", h.delete)
	r.GET("/orders/:id/summary", h.summary)
}

func (h *Handler) list(c *gin.Context) {
	filter, ok := listFilter(c)
	if !ok {
		// An unparsable userId can never match a stored order.
		c.JSON(http.StatusOK, []Order{})
		return
	}
	orders, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransportList(orders))
}

func (h *Handler) get(c *gin.Context) {
	id, ok := h.entityID(c)
	if !ok {
		return
	}
	order, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransport(order))
}

func (h *Handler) create(c *gin.Context) {
	var payload createRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithMessage("%s", err.Error()))
		return
	}
	if payload.UserID == nil || payload.ProductID == nil {
		apierrors.Respond(c, apierrors.NewValidation("userId and productId are required"))
		return
	}
	order, err := h.workflows.CreateOrder(c.Request.Context(), ports.CreateOrderInput{
		UserID:    *payload.UserID,
		ProductID: *payload.ProductID,
		Quantity:  payload.Quantity,
	})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTransport(order))
}

func (h *Handler) updateStatus(c *gin.Context) {
	id, ok := h.entityID(c)
	if !ok {
		return
	}
	var payload statusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithMessage("%s", err.Error()))
		return
	}
	order, err := h.service.UpdateStatus(c.Request.Context(), id, payload.Status)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransport(order))
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := h.entityID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) summary(c *gin.Context) {
	if c.Param("id") != "stats" {
		apierrors.Respond(c, apierrors.NewNotFound("order"))
		return
	}
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	byStatus := make(map[string]int, len(summary.OrdersByStatus))
	for status, count := range summary.OrdersByStatus {
		byStatus[string(status)] = count
	}
	c.JSON(http.StatusOK, summaryResponse{
		TotalOrders:    summary.TotalOrders,
		TotalRevenue:   summary.TotalRevenue.InexactFloat64(),
		OrdersByStatus: byStatus,
	})
}

func (h *Handler) entityID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.Respond(c, apierrors.NewNotFound("order"))
		return 0, false
	}
	return id, true
}

func listFilter(c *gin.Context) (ports.Filter, bool) {
	var filter ports.Filter
	if raw := c.Query("userId"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return ports.Filter{}, false
		}
		filter.UserID = &userID
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.Status(raw)
		filter.Status = &status
	}
	return filter, true
}

func toTransport(order *domain.Order) Order {
	return Order{
		ID:         order.ID,
		UserID:     order.UserID,
		ProductID:  order.ProductID,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice.InexactFloat64(),
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

func toTransportList(orders []*domain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, toTransport(order))
	}
	return result
}
