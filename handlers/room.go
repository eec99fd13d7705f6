package handlers

import (
	"net/http"

	roomRepo "roomly/database/repository/room"
	"roomly/models"
	"roomly/services/availability"
	"roomly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RoomHandler serves room management, including the availability policy.
type RoomHandler struct {
	Repo  roomRepo.RoomRepository
	Cache *redis.Client
}

// NewRoomHandler constructs the handler.
func NewRoomHandler(repo roomRepo.RoomRepository, cache *redis.Client) *RoomHandler {
	return &RoomHandler{Repo: repo, Cache: cache}
}

// CreateRoomHandler answers POST /api/rooms.
func (h *RoomHandler) CreateRoomHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "message": err.Error()})
		return
	}
	if room.Policy != nil {
		if err := room.Policy.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid availability policy", "message": err.Error()})
			return
		}
	}

	if err := h.Repo.Create(c.Request.Context(), &room); err != nil {
		logger.Error("failed to create room", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}
	c.JSON(http.StatusCreated, room)
}

// GetRoomHandler answers GET /api/rooms/:roomID.
func (h *RoomHandler) GetRoomHandler(c *gin.Context) {
	roomID := c.Param("roomID")

	room, err := h.Repo.GetByID(c.Request.Context(), roomID)
	if err != nil {
		if err == roomRepo.ErrRoomNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		utils.GetLogger().Error("failed to fetch room", zap.String("roomID", roomID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch room"})
		return
	}
	c.JSON(http.StatusOK, room)
}

// ListRoomsHandler answers GET /api/rooms.
func (h *RoomHandler) ListRoomsHandler(c *gin.Context) {
	rooms, err := h.Repo.List(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("failed to list rooms", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// UpdatePolicyHandler answers PUT /api/rooms/:roomID/policy. Policy
// changes alter every future availability answer, so the room's cached
// responses are dropped.
func (h *RoomHandler) UpdatePolicyHandler(c *gin.Context) {
	logger := utils.GetLogger()
	roomID := c.Param("roomID")

	var policy models.AvailabilityPolicy
	if err := c.ShouldBindJSON(&policy); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "message": err.Error()})
		return
	}
	if err := policy.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid availability policy", "message": err.Error()})
		return
	}

	if err := h.Repo.UpdatePolicy(c.Request.Context(), roomID, &policy); err != nil {
		if err == roomRepo.ErrRoomNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		logger.Error("failed to update room policy", zap.String("roomID", roomID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update room policy"})
		return
	}

	availability.InvalidateRoomCache(c.Request.Context(), h.Cache, roomID)
	c.JSON(http.StatusOK, gin.H{"message": "availability policy updated"})
}

// DeleteRoomHandler answers DELETE /api/rooms/:roomID.
func (h *RoomHandler) DeleteRoomHandler(c *gin.Context) {
	roomID := c.Param("roomID")

	if err := h.Repo.Delete(c.Request.Context(), roomID); err != nil {
		if err == roomRepo.ErrRoomNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		utils.GetLogger().Error("failed to delete room", zap.String("roomID", roomID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete room"})
		return
	}

	availability.InvalidateRoomCache(c.Request.Context(), h.Cache, roomID)
	c.JSON(http.StatusOK, gin.H{"message": "room deleted"})
}
