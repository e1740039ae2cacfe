package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danidevdc/calendar-citas-app/internal/handler"
	statsService "github.com/danidevdc/calendar-citas-app/internal/service/stats"
)

type Handler struct {
	service *statsService.Service
}

func NewHandler(service *statsService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetStats(c *gin.Context) {
	handler.Success(c, http.StatusOK, h.service.Stats())
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetStats)
}
