package cita

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danidevdc/calendar-citas-app/internal/handler"
	"github.com/danidevdc/calendar-citas-app/internal/model"
	citaService "github.com/danidevdc/calendar-citas-app/internal/service/cita"
)

type Handler struct {
	service *citaService.Service
}

func NewHandler(service *citaService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateCita(c *gin.Context) {
	var req model.CreateCitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	cita, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Success(c, http.StatusCreated, cita)
}

func (h *Handler) GetCita(c *gin.Context) {
	cita, err := h.service.Get(c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Success(c, http.StatusOK, cita)
}

func (h *Handler) ListCitas(c *gin.Context) {
	handler.Success(c, http.StatusOK, h.service.List())
}

func (h *Handler) UpdateCita(c *gin.Context) {
	var req model.UpdateCitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	cita, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Success(c, http.StatusOK, cita)
}

func (h *Handler) DeleteCita(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handler.Error(c, err)
		return
	}
	handler.Success(c, http.StatusOK, nil)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	fecha := c.Query("date")
	if fecha == "" {
		handler.BadRequest(c, "date query parameter is required")
		return
	}
	handler.Success(c, http.StatusOK, h.service.Availability(fecha))
}

// SyncNow is the manual refresh button behind the UI.
func (h *Handler) SyncNow(c *gin.Context) {
	count, err := h.service.Sync(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Success(c, http.StatusOK, gin.H{"loaded": count})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	citas := r.Group("/citas")
	{
		citas.GET("/availability", h.GetAvailability)
		citas.POST("", h.CreateCita)
		citas.GET("", h.ListCitas)
		citas.GET("/:id", h.GetCita)
		citas.PUT("/:id", h.UpdateCita)
		citas.DELETE("/:id", h.DeleteCita)
	}
	r.POST("/sync", h.SyncNow)
}
