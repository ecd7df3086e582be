package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/family_crisis_hub/internal/ai"
	"github.com/shenikar/family_crisis_hub/internal/circle"
	"github.com/shenikar/family_crisis_hub/internal/preparedness"
	"github.com/shenikar/family_crisis_hub/internal/service"
	"github.com/sirupsen/logrus"
)

// respondError переводит доменные ошибки в HTTP-статусы
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	status, message := http.StatusInternalServerError, "internal server error"

	switch {
	case errors.Is(err, circle.ErrNotFound), errors.Is(err, preparedness.ErrItemNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, service.ErrOffline), errors.Is(err, ai.ErrOffline), errors.Is(err, preparedness.ErrOffline):
		status, message = http.StatusServiceUnavailable, service.OfflineBanner
	case errors.Is(err, service.ErrPlanInFlight), errors.Is(err, service.ErrNoCircle):
		status = http.StatusConflict
	case errors.Is(err, ai.ErrInvalidResponse), errors.Is(err, ai.ErrProvider):
		status, message = http.StatusBadGateway, ai.UserMessage(err)
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, circle.ErrInvalidInput):
		status, message = http.StatusBadRequest, err.Error()
	}

	var userErr *service.UserError
	if errors.As(err, &userErr) {
		message = userErr.Message
	}

	entry := log.WithError(err).WithField("status", status)
	switch status {
	case http.StatusNotFound, http.StatusInternalServerError, http.StatusBadGateway:
		entry.Error("Request failed")
	default:
		entry.Warn("Request rejected")
	}
	c.JSON(status, gin.H{"error": message})
}

