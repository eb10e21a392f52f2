package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lashdiary/internal/pkg/response"
)

// Handler exposes the operational surface of the outbox: inspecting
// permanently failed entries and forcing a drain without waiting for the
// cron tick.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/outbox")
	{
		g.GET("/failed", h.ListFailed)
		g.POST("/run", h.Run)
	}
}

func (h *Handler) ListFailed(c *gin.Context) {
	limit := 20
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
			if limit > 100 {
				limit = 100
			}
		}
	}

	entries, err := h.service.ListFailed(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list outbox entries")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

func (h *Handler) Run(c *gin.Context) {
	if err := h.service.ProcessPending(c.Request.Context()); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Outbox run failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "drained"})
}
