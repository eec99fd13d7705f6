package handlers

import (
	"net/http"
	"time"

	blackoutRepo "roomly/database/repository/blackout"
	"roomly/models"
	"roomly/services/availability"
	"roomly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// BlackoutHandler serves administrator blackout management.
type BlackoutHandler struct {
	Repo  blackoutRepo.BlackoutRepository
	Cache *redis.Client
}

// NewBlackoutHandler constructs the handler.
func NewBlackoutHandler(repo blackoutRepo.BlackoutRepository, cache *redis.Client) *BlackoutHandler {
	return &BlackoutHandler{Repo: repo, Cache: cache}
}

// CreateBlackoutHandler answers POST /api/rooms/:roomID/blackouts.
func (h *BlackoutHandler) CreateBlackoutHandler(c *gin.Context) {
	logger := utils.GetLogger()
	roomID := c.Param("roomID")

	var input struct {
		Start  time.Time `json:"start" binding:"required"`
		End    time.Time `json:"end" binding:"required"`
		Reason string    `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "message": err.Error()})
		return
	}
	if !input.Start.Before(input.End) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "blackout start must be before end"})
		return
	}

	blackout := models.Blackout{
		RoomID: roomID,
		Start:  input.Start,
		End:    input.End,
		Reason: input.Reason,
	}
	if err := h.Repo.Create(c.Request.Context(), &blackout); err != nil {
		logger.Error("failed to create blackout", zap.String("roomID", roomID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create blackout"})
		return
	}

	availability.InvalidateRoomCache(c.Request.Context(), h.Cache, roomID)
	c.JSON(http.StatusCreated, blackout)
}

// ListBlackoutsHandler answers GET /api/rooms/:roomID/blackouts?month=M&year=YYYY.
func (h *BlackoutHandler) ListBlackoutsHandler(c *gin.Context) {
	roomID := c.Param("roomID")

	year, month, ok := monthQuery(c)
	if !ok {
		return
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	next := first.AddDate(0, 1, 0)

	blackouts, err := h.Repo.GetOverlappingRange(c.Request.Context(), roomID, first, next)
	if err != nil {
		utils.GetLogger().Error("failed to list blackouts", zap.String("roomID", roomID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list blackouts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blackouts": blackouts})
}

// DeleteBlackoutHandler answers DELETE /api/rooms/:roomID/blackouts/:id.
func (h *BlackoutHandler) DeleteBlackoutHandler(c *gin.Context) {
	roomID := c.Param("roomID")
	blackoutID := c.Param("id")

	if err := h.Repo.Delete(c.Request.Context(), blackoutID); err != nil {
		if err == blackoutRepo.ErrBlackoutNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "blackout not found"})
			return
		}
		utils.GetLogger().Error("failed to delete blackout", zap.String("blackoutID", blackoutID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete blackout"})
		return
	}

	availability.InvalidateRoomCache(c.Request.Context(), h.Cache, roomID)
	c.JSON(http.StatusOK, gin.H{"message": "blackout deleted"})
}
