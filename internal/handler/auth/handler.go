package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danidevdc/calendar-citas-app/internal/handler"
	authService "github.com/danidevdc/calendar-citas-app/internal/service/auth"
)

type Handler struct {
	service *authService.Service
}

func NewHandler(service *authService.Service) *Handler {
	return &Handler{service: service}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	token, err := h.service.Login(req.Password)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Success(c, http.StatusOK, gin.H{"token": token})
}

// Logout is stateless on the server. Tokens expire on their own; the
// endpoint exists so clients have a uniform place to end a session.
func (h *Handler) Logout(c *gin.Context) {
	handler.Success(c, http.StatusOK, nil)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
}
