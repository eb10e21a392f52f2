package consultation

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
	rg.POST("/consultations", h.Create)
	rg.GET("/consultations", h.ListByDate)
	rg.PATCH("/consultations/:id/cancel", h.Cancel)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid consultation date or time")
		case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrOverbooking):
			response.Error(c, http.StatusConflict, "SLOT_CONFLICT", "This slot has just been taken. Please pick another time.")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create consultation")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"consultation": created})
}

func (h *Handler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date query parameter is required")
		return
	}

	rows, err := h.service.ListByDate(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load consultations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"consultations": rows})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid consultation id")
		return
	}

	cancelled, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Consultation not found")
		case errors.Is(err, ErrInvalidStatusTransition):
			response.Error(c, http.StatusConflict, "INVALID_STATUS", "Consultation is already cancelled")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel consultation")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"consultation": cancelled})
}
