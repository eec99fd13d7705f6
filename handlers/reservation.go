package handlers

import (
	"net/http"
	"time"

	"roomly/services/reservation"
	"roomly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationHandler serves the reservation write path.
type ReservationHandler struct {
	Service reservation.Service
}

// NewReservationHandler constructs the handler.
func NewReservationHandler(svc reservation.Service) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

// CreateReservationHandler answers POST /api/reservations.
func (h *ReservationHandler) CreateReservationHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req reservation.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "message": err.Error()})
		return
	}

	res, err := h.Service.Create(c.Request.Context(), req, time.Now())
	if err != nil {
		status := reservationErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("reservation create failed", zap.String("roomID", req.RoomID), zap.Error(err))
			c.JSON(status, gin.H{"error": "failed to create reservation"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ConfirmReservationHandler answers POST /api/reservations/:id/confirm.
func (h *ReservationHandler) ConfirmReservationHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	res, err := h.Service.Confirm(c.Request.Context(), id)
	if err != nil {
		status := reservationErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("reservation confirm failed", zap.String("reservationID", id), zap.Error(err))
			c.JSON(status, gin.H{"error": "failed to confirm reservation"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// CancelReservationHandler answers POST /api/reservations/:id/cancel.
func (h *ReservationHandler) CancelReservationHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	res, err := h.Service.Cancel(c.Request.Context(), id)
	if err != nil {
		status := reservationErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("reservation cancel failed", zap.String("reservationID", id), zap.Error(err))
			c.JSON(status, gin.H{"error": "failed to cancel reservation"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func reservationErrorStatus(err error) int {
	if be, ok := err.(*reservation.BookingError); ok {
		switch be.Code {
		case reservation.CodeInvalidInput:
			return http.StatusBadRequest
		case reservation.CodeNotFound:
			return http.StatusNotFound
		case reservation.CodeRestricted:
			return http.StatusUnprocessableEntity
		case reservation.CodeConflict:
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}
