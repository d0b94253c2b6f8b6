package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/users/application"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/users/domain"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/users/ports"
	apierrors "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/shared/errors"
)

// User is the transport representation of a user.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type registerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type updateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// Handler exposes the users REST surface.
type Handler struct {
	service   ports.Service
	responder *apierrors.Responder
}

// NewHandler wires the users HTTP adapter.
func NewHandler(service ports.Service) *Handler {
	responder := apierrors.NewResponder(func(err error) (apierrors.APIError, bool) {
		switch {
		case errors.Is(err, ports.ErrNotFound):
			return apierrors.NewNotFound("user"), true
		case errors.Is(err, application.ErrInvalidInput):
			return apierrors.NewValidation(err.Error()), true
		default:
			return apierrors.APIError{}, false
		}
	})
	return &Handler{service: service, responder: responder}
}

// Register mounts the user routes on the given router.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/users", h.list)
	r.GET("/users/:id", h.get)
	r.POST("/users", h.create)
	r.PUT("/users/:id", h.update)
	r.DELETE("/users/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransportList(users))
}

func (h *Handler) get(c *gin.Context) {
	id, ok := h.entityID(c)
	if !ok {
		return
	}
	user, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransport(user))
}

func (h *Handler) create(c *gin.Context) {
	var payload registerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithMessage("%s", err.Error()))
		return
	}
	user, err := h.service.Register(c.Request.Context(), ports.RegisterUserInput{
		Name:  payload.Name,
		Email: payload.Email,
		Role:  payload.Role,
	})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTransport(user))
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
	user, err := h.service.Update(c.Request.Context(), id, ports.UpdateUserInput{
		Name:  payload.Name,
		Email: payload.Email,
		Role:  payload.Role,
	})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransport(user))
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

// entityID parses the id path parameter. Non-numeric ids behave like
// unknown ids so /users/abc answers 404, matching the legacy surface.
func (h *Handler) entityID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.Respond(c, apierrors.NewNotFound("user"))
		return 0, false
	}
	return id, true
}

func toTransport(user *domain.User) User {
	return User{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}

func toTransportList(users []*domain.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, toTransport(user))
	}
	return result
}
