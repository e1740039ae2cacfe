package holiday

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danidevdc/calendar-citas-app/internal/handler"
	"github.com/danidevdc/calendar-citas-app/internal/model"
	holidayService "github.com/danidevdc/calendar-citas-app/internal/service/holiday"
)

type Handler struct {
	service *holidayService.Service
}

func NewHandler(service *holidayService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListHolidays(c *gin.Context) {
	handler.Success(c, http.StatusOK, h.service.List())
}

func (h *Handler) CreateHoliday(c *gin.Context) {
	var req model.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	rule, err := h.service.Add(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Success(c, http.StatusCreated, rule)
}

func (h *Handler) DeleteHoliday(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("key")); err != nil {
		handler.Error(c, err)
		return
	}
	handler.Success(c, http.StatusOK, nil)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	holidays := r.Group("/holidays")
	{
		holidays.GET("", h.ListHolidays)
		holidays.POST("", h.CreateHoliday)
		holidays.DELETE("/:key", h.DeleteHoliday)
	}
}
