package project

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lashdiary/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/projects", h.Create)
	rg.GET("/projects/:id", h.GetByID)
	rg.PATCH("/projects/:id/delivered", h.MarkDelivered)
	rg.GET("/invites/:token", h.ResolveToken)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create project")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"project": p, "invite_token": p.InviteToken})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid project id")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Project not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"project": p})
}

func (h *Handler) ResolveToken(c *gin.Context) {
	invite, err := h.service.ResolveToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "This booking link is invalid or has expired")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to resolve invite")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invite": invite})
}

func (h *Handler) MarkDelivered(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid project id")
		return
	}

	p, err := h.service.MarkDelivered(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Project not found")
		case errors.Is(err, ErrInvalidStatusTransition):
			response.Error(c, http.StatusConflict, "INVALID_STATUS", "Project is not pending")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update project")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"project": p})
}
