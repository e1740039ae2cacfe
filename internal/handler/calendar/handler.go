package calendar

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	calendarProjection "github.com/danidevdc/calendar-citas-app/internal/calendar"
	"github.com/danidevdc/calendar-citas-app/internal/handler"
	citaService "github.com/danidevdc/calendar-citas-app/internal/service/cita"
)

type Handler struct {
	service *citaService.Service
}

func NewHandler(service *citaService.Service) *Handler {
	return &Handler{service: service}
}

// GetEvents projects the stored citas into calendar events, optionally
// bounded to the visible range.
func (h *Handler) GetEvents(c *gin.Context) {
	var from, to time.Time
	if v := c.Query("start"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			handler.BadRequest(c, "invalid start date")
			return
		}
		from = t
	}
	if v := c.Query("end"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			handler.BadRequest(c, "invalid end date")
			return
		}
		to = t
	}

	events := calendarProjection.EventsInRange(h.service.List(), from, to)
	handler.Success(c, http.StatusOK, events)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	calendar := r.Group("/calendar")
	{
		calendar.GET("/events", h.GetEvents)
	}
}
