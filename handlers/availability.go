package handlers

import (
	"net/http"
	"time"

	"roomly/services/availability"
	"roomly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler serves the two read-only availability queries.
type AvailabilityHandler struct {
	Service availability.Service
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(svc availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetDaySlotsHandler answers GET /api/availability/rooms/:roomID/slots?date=YYYY-MM-DD.
func (h *AvailabilityHandler) GetDaySlotsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	roomID := c.Param("roomID")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter: date"})
		return
	}

	resp, err := h.Service.DaySlots(c.Request.Context(), roomID, date, time.Now())
	if err != nil {
		status := availabilityErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("slot query failed",
				zap.String("roomID", roomID), zap.String("date", date), zap.Error(err))
			c.JSON(status, gin.H{"error": "failed to compute availability"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCalendarHandler answers GET /api/availability/rooms/:roomID/calendar?month=M&year=YYYY.
func (h *AvailabilityHandler) GetCalendarHandler(c *gin.Context) {
	logger := utils.GetLogger()
	roomID := c.Param("roomID")

	year, month, ok := monthQuery(c)
	if !ok {
		return
	}

	resp, err := h.Service.Calendar(c.Request.Context(), roomID, year, month, time.Now())
	if err != nil {
		status := availabilityErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("calendar query failed",
				zap.String("roomID", roomID), zap.Int("year", year), zap.Int("month", int(month)), zap.Error(err))
			c.JSON(status, gin.H{"error": "failed to compute calendar restrictions"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// availabilityErrorStatus maps engine errors to HTTP statuses. Upstream
// fetch failures stay 500 so they are never mistaken for an empty day.
func availabilityErrorStatus(err error) int {
	if qe, ok := err.(*availability.QueryError); ok {
		switch qe.Code {
		case availability.CodeInvalidInput:
			return http.StatusBadRequest
		case availability.CodeNotFound:
			return http.StatusNotFound
		}
	}
	return http.StatusInternalServerError
}
