package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/application"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/domain"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/ports"
	apierrors "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/shared/errors"
)

// Notification is the transport representation of a notification.
type Notification struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
}

type createRequest struct {
	UserID  int64  `json:"userId"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Handler exposes the notifications REST surface.
type Handler struct {
	service   ports.Service
	responder *apierrors.Responder
}

// NewHandler wires the notifications HTTP adapter.
func NewHandler(service ports.Service) *Handler {
	responder := apierrors.NewResponder(func(err error) (apierrors.APIError, bool) {
		switch {
		case errors.Is(err, ports.ErrNotFound):
			return apierrors.NewNotFound("notification"), true
		case errors.Is(err, application.ErrInvalidInput):
			return apierrors.NewValidation(err.Error()), true
		default:
			return apierrors.APIError{}, false
		}
	})
	return &Handler{service: service, responder: responder}
}

// Register mounts the notification routes on the given router. The
// user-scoped operations live under /users because gin cannot mount a
// static segment next to the :id wildcard within one method tree.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/notifications", h.list)
	r.GET("/notifications/:id", h.get)
	r.POST("/notifications", h.create)
	r.POST("/notifications/broadcast", h.broadcast)
	r.PATCH("/notifications/:id/read", h.markRead)
	r.DELETE("/notifications/:id", h.delete)
	r.PATCH("/users/:userId/notifications/read-all", h.markAllRead)
	r.GET("/users/:userId/notifications/stats", h.stats)
}

func (h *Handler) list(c *gin.Context) {
	filter, ok := listFilter(c)
	if !ok {
		c.JSON(http.StatusOK, []Notification{})
		return
	}
	notifications, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransportList(notifications))
}

func (h *Handler) get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "notification")
	if !ok {
		return
	}
	notification, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransport(notification))
}

// create answers 200 rather than 201; the legacy surface never used 201 here
// and its clients depend on that.
func (h *Handler) create(c *gin.Context) {
	var payload createRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithMessage("%s", err.Error()))
		return
	}
	notification, err := h.service.Create(c.Request.Context(), ports.CreateNotificationInput{
		UserID:  payload.UserID,
		Message: payload.Message,
		Type:    payload.Type,
	})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransport(notification))
}

func (h *Handler) broadcast(c *gin.Context) {
	message := c.Query("message")
	kind := c.Query("notification_type")
	created, err := h.service.Broadcast(c.Request.Context(), ports.BroadcastInput{
		Message: message,
		Type:    kind,
	})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("Notification sent to %d users", len(created)),
		"notifications": toTransportList(created),
	})
}

func (h *Handler) markRead(c *gin.Context) {
	id, ok := h.pathID(c, "id", "notification")
	if !ok {
		return
	}
	notification, err := h.service.MarkRead(c.Request.Context(), id)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransport(notification))
}

func (h *Handler) markAllRead(c *gin.Context) {
	userID, ok := h.pathID(c, "userId", "user")
	if !ok {
		return
	}
	count, err := h.service.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d notifications marked as read", count),
	})
}

func (h *Handler) stats(c *gin.Context) {
	userID, ok := h.pathID(c, "userId", "user")
	if !ok {
		return
	}
	stats, err := h.service.StatsForUser(c.Request.Context(), userID)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := h.pathID(c, "id", "notification")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

func (h *Handler) pathID(c *gin.Context, param, entity string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		apierrors.Respond(c, apierrors.NewNotFound(entity))
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

func toTransport(notification *domain.Notification) Notification {
	return Notification{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Message:   notification.Message,
		Type:      notification.Type,
		Status:    string(notification.Status),
		CreatedAt: notification.CreatedAt,
		ReadAt:    notification.ReadAt,
	}
}

func toTransportList(notifications []*domain.Notification) []Notification {
	result := make([]Notification, 0, len(notifications))
	for _, notification := range notifications {
		result = append(result, toTransport(notification))
	}
	return result
}
