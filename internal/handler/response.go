package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/danidevdc/calendar-citas-app/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Status: "success", Data: data})
}

// Error maps the application error taxonomy onto HTTP statuses. Scheduling
// rejections stay 4xx: they are operator feedback, not server faults.
func Error(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)
	c.JSON(httpStatusFor(code), Response{
		Status:  "error",
		Code:    string(code),
		Message: err.Error(),
	})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Status:  "error",
		Code:    string(apperrors.ErrBadRequest),
		Message: message,
	})
}

func httpStatusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrInvalidDateTime, apperrors.ErrInPast,
		apperrors.ErrHoliday, apperrors.ErrWeekend, apperrors.ErrBadRequest:
		return http.StatusBadRequest
	case apperrors.ErrSlotTaken, apperrors.ErrAlreadyExists:
		return http.StatusConflict
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrPersistenceFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
